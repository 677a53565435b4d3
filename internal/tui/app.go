package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/resolve"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Tab identifies a top-level screen
type Tab int

const (
	TabHome Tab = iota
	TabSearch
	TabSuggest
	TabSaved
)

var tabNames = []string{"Home", "Search", "Suggest", "Saved"}

// String returns the tab label
func (t Tab) String() string {
	if int(t) < len(tabNames) {
		return tabNames[t]
	}
	return "?"
}

// Vertical layout: tab bar + blank line on top, input line, footer line
const (
	HeaderHeight = 2
	FooterHeight = 1
	InputHeight  = 2

	tickInterval = 100 * time.Millisecond
)

// Services bundles the services the UI drives
type Services struct {
	Discovery *service.DiscoveryService
	Details   *service.DetailsService
	Search    *service.SearchService
	Favorites *service.FavoritesService
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Tab   Tab
	Ready bool

	// Services
	Svc     Services
	updates <-chan resolve.Update
	logger  *slog.Logger

	// Home
	HomeList *components.MovieList
	window   domain.TrendingWindow

	// Search: one input and one result list per mode
	searchMode service.Mode
	inputs     map[service.Mode]*textinput.Model
	results    map[service.Mode]*components.MovieList
	typing     bool // Input has focus on Search and Suggest tabs

	// Saved
	SavedList    *components.MovieList
	filterInput  textinput.Model
	filterActive bool

	// Detail page, with the pages it was opened from
	Detail     *components.Detail
	detailOpen bool
	detailID   int
	history    []domain.ResolvedMovie

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
}

// NewModel creates a new application model. updates is the channel the
// search service publishes to.
func NewModel(svc Services, updates <-chan resolve.Update, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	m := Model{
		Tab:        TabHome,
		Svc:        svc,
		updates:    updates,
		logger:     logger,
		HomeList:   components.NewMovieList("Featured"),
		window:     domain.TrendingDay,
		searchMode: service.ModeKeyword,
		inputs:     make(map[service.Mode]*textinput.Model),
		results:    make(map[service.Mode]*components.MovieList),
		SavedList:  components.NewMovieList("Saved movies"),
		Detail:     components.NewDetail(),
	}

	for mode, placeholder := range map[service.Mode]string{
		service.ModeKeyword:   "search titles...",
		service.ModeAssist:    "describe a movie...",
		service.ModeRecommend: "what are you in the mood for?",
	} {
		ti := newInput(placeholder, "> ")
		m.inputs[mode] = &ti

		list := components.NewMovieList(resultTitle(mode))
		list.SetShowRationale(mode == service.ModeRecommend)
		list.SetSavedFunc(svc.Favorites.IsSaved)
		if mode == service.ModeRecommend {
			list.SetEmptyMessage("No suggestions yet")
		}
		m.results[mode] = list
	}

	m.filterInput = newInput("type to filter...", "/ ")
	m.HomeList.SetSavedFunc(svc.Favorites.IsSaved)
	m.HomeList.SetLoading(true)
	m.SavedList.SetEmptyMessage("Nothing saved yet")
	m.refreshSaved()

	return m
}

func newInput(placeholder, prompt string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = prompt
	ti.PromptStyle = styles.PromptStyle
	ti.TextStyle = styles.InputStyle
	return ti
}

func resultTitle(mode service.Mode) string {
	switch mode {
	case service.ModeAssist:
		return "AI search"
	case service.ModeRecommend:
		return "Suggestions"
	default:
		return "Results"
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadHomeCmd(m.Svc.Discovery, m.window),
		WaitForUpdateCmd(m.updates),
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.HomeList.UpdateSpinnerFrame(m.SpinnerFrame)
		for _, list := range m.results {
			list.UpdateSpinnerFrame(m.SpinnerFrame)
		}
		m.Detail.UpdateSpinnerFrame(m.SpinnerFrame)
		return m, TickCmd(tickInterval)

	case HomeLoadedMsg:
		if msg.Window != m.window {
			return m, nil // A newer window was requested
		}
		m.applyHome(msg.Home)
		if msg.Err != nil {
			m.setStatus("Could not load home", true)
		}
		return m, nil

	case GenresLoadedMsg:
		if msg.Err != nil {
			return m, nil // Lists keep whatever labels they had
		}
		for _, list := range m.results {
			list.SetGenres(msg.Genres)
		}
		return m, nil

	case SearchUpdateMsg:
		m.applySearchUpdate(msg.Update)
		return m, WaitForUpdateCmd(m.updates)

	case DetailsLoadedMsg:
		if !m.detailOpen || msg.ID != m.detailID {
			return m, nil
		}
		if msg.Err != nil {
			m.Detail.SetFailed()
			m.setStatus("Could not load details", true)
			return m, nil
		}
		d := msg.Details
		m.Detail.SetDetails(d.Movie, d.Cast, d.Similar, d.Genres)
		return m, nil

	case SavedToggledMsg:
		if msg.Err != nil {
			m.setStatus("Could not update saved movies", true)
			return m, nil
		}
		if msg.Saved {
			m.setStatus("Saved "+msg.Movie.Title, false)
		} else {
			m.setStatus("Removed "+msg.Movie.Title, false)
		}
		if m.detailOpen && msg.Movie.ID == m.detailID {
			m.Detail.SetSaved(msg.Saved)
		}
		m.refreshSaved()
		return m, nil
	}

	return m, nil
}

func (m *Model) applyHome(home *service.Home) {
	if home == nil {
		m.HomeList.SetItems(nil)
		return
	}

	m.HomeList.SetGenres(home.Genres)
	for _, list := range m.results {
		list.SetGenres(home.Genres)
	}
	m.SavedList.SetGenres(home.Genres)

	m.HomeList.SetMovies(append(append([]domain.Movie{}, home.Featured...), home.Trending...))
	if len(home.Featured) > 0 {
		m.HomeList.SetSection(0, "Featured")
	}
	m.HomeList.SetSection(len(home.Featured), "Trending "+windowLabel(home.Window))
	m.HomeList.SetTitle("Discover")
}

func windowLabel(w domain.TrendingWindow) string {
	if w == domain.TrendingWeek {
		return "this week"
	}
	return "today"
}

// applySearchUpdate renders one searcher update into the list for its mode
func (m *Model) applySearchUpdate(u resolve.Update) {
	list, ok := m.results[service.Mode(u.Source)]
	if !ok {
		return
	}

	if u.Loading {
		list.SetLoading(true)
		return
	}
	list.SetItems(u.Movies)
}

// refreshSaved reloads the saved list, applying the active filter
func (m *Model) refreshSaved() {
	query := ""
	if m.filterActive {
		query = m.filterInput.Value()
	}

	matches := m.Svc.Favorites.Filter(query)
	items := make([]domain.ResolvedMovie, len(matches))
	for i, r := range matches {
		items[i] = domain.ResolvedMovie{Movie: r.Movie}
	}

	m.SavedList.SetItems(items)
	for i, r := range matches {
		if len(r.MatchedIndexes) > 0 {
			m.SavedList.SetHighlights(i, r.MatchedIndexes)
		}
	}
	if query != "" {
		m.SavedList.SetEmptyMessage("No matches")
	} else {
		m.SavedList.SetEmptyMessage("Nothing saved yet")
	}
}

// activeMode is the search mode of the current tab
func (m *Model) activeMode() (service.Mode, bool) {
	switch m.Tab {
	case TabSearch:
		return m.searchMode, true
	case TabSuggest:
		return service.ModeRecommend, true
	default:
		return "", false
	}
}

// activeList is the list the cursor keys move
func (m *Model) activeList() *components.MovieList {
	if m.detailOpen {
		return m.Detail.Similar
	}
	switch m.Tab {
	case TabHome:
		return m.HomeList
	case TabSaved:
		return m.SavedList
	}
	if mode, ok := m.activeMode(); ok {
		return m.results[mode]
	}
	return nil
}

func (m *Model) switchTab(tab Tab) tea.Cmd {
	m.Tab = tab
	m.detailOpen = false
	m.history = nil
	m.blurInputs()

	if mode, ok := m.activeMode(); ok {
		m.typing = true
		return tea.Batch(m.inputs[mode].Focus(), LoadGenresCmd(m.Svc.Discovery))
	}
	return nil
}

func (m *Model) blurInputs() {
	m.typing = false
	for _, in := range m.inputs {
		in.Blur()
	}
}

// openDetail shows the page for movie and fetches its details
func (m *Model) openDetail(movie domain.ResolvedMovie) tea.Cmd {
	m.detailOpen = true
	m.detailID = movie.ID
	m.history = append(m.history, movie)
	m.blurInputs()
	m.Detail.Open(movie, m.Svc.Favorites.IsSaved(movie.ID))
	return LoadDetailsCmd(m.Svc.Details, movie.ID)
}

// closeDetail returns to the previous page
func (m *Model) closeDetail() tea.Cmd {
	if len(m.history) > 1 {
		prev := m.history[len(m.history)-2]
		m.history = m.history[:len(m.history)-2]
		return m.openDetail(prev)
	}
	m.history = nil
	m.detailOpen = false
	return nil
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.StatusMsg = msg
	m.StatusIsErr = isErr
}

// quit closes every searcher so in-flight sessions are cancelled
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Svc.Search.Close()
	m.logger.Info("closing searchers")
	return m, tea.Quit
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m.quit()
	}

	if m.filterActive && m.filterInput.Focused() {
		return m.handleFilterKey(msg)
	}
	if m.typing && !m.detailOpen {
		return m.handleTypingKey(msg)
	}

	list := m.activeList()
	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()

	case key.Matches(msg, Keys.Escape):
		if m.detailOpen {
			return m, m.closeDetail()
		}
		if m.filterActive {
			m.filterActive = false
			m.filterInput.SetValue("")
			m.refreshSaved()
		}
		return m, nil

	case key.Matches(msg, Keys.Up):
		if list != nil {
			list.MoveUp()
		}
	case key.Matches(msg, Keys.Down):
		if list != nil {
			list.MoveDown()
		}
	case key.Matches(msg, Keys.Home):
		if list != nil {
			list.JumpToTop()
		}
	case key.Matches(msg, Keys.End):
		if list != nil {
			list.JumpToBottom()
		}

	case key.Matches(msg, Keys.Enter):
		if list != nil {
			if sel := list.Selected(); sel != nil {
				return m, m.openDetail(*sel)
			}
		}

	case key.Matches(msg, Keys.ToggleSaved):
		if m.detailOpen {
			if movie := m.Detail.Movie(); movie != nil {
				return m, ToggleSavedCmd(m.Svc.Favorites, *movie)
			}
			return m, nil
		}
		if list != nil {
			if sel := list.Selected(); sel != nil {
				return m, ToggleSavedCmd(m.Svc.Favorites, sel.Movie)
			}
		}

	case key.Matches(msg, Keys.Tab1):
		return m, m.switchTab(TabHome)
	case key.Matches(msg, Keys.Tab2):
		return m, m.switchTab(TabSearch)
	case key.Matches(msg, Keys.Tab3):
		return m, m.switchTab(TabSuggest)
	case key.Matches(msg, Keys.Tab4):
		return m, m.switchTab(TabSaved)
	case key.Matches(msg, Keys.NextTab):
		return m, m.switchTab((m.Tab + 1) % Tab(len(tabNames)))
	case key.Matches(msg, Keys.PrevTab):
		return m, m.switchTab((m.Tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))

	case m.detailOpen:
		return m, nil

	case m.Tab == TabHome && key.Matches(msg, Keys.ToggleWindow):
		m.window = m.window.Toggle()
		m.HomeList.SetLoading(true)
		return m, LoadHomeCmd(m.Svc.Discovery, m.window)

	case m.Tab == TabHome && key.Matches(msg, Keys.Refresh):
		m.HomeList.SetLoading(true)
		return m, LoadHomeCmd(m.Svc.Discovery, m.window)

	case m.Tab == TabSaved && key.Matches(msg, Keys.Filter):
		m.filterActive = true
		return m, m.filterInput.Focus()

	case m.Tab == TabSearch && key.Matches(msg, Keys.ToggleMode):
		m.toggleSearchMode()
		return m, nil

	case key.Matches(msg, Keys.Focus):
		if mode, ok := m.activeMode(); ok {
			m.typing = true
			return m, m.inputs[mode].Focus()
		}
	}

	return m, nil
}

func (m *Model) toggleSearchMode() {
	focused := m.typing
	m.inputs[m.searchMode].Blur()
	if m.searchMode == service.ModeKeyword {
		m.searchMode = service.ModeAssist
	} else {
		m.searchMode = service.ModeKeyword
	}
	if focused {
		m.inputs[m.searchMode].Focus()
	}
}

// handleTypingKey routes keys while a search input has focus
func (m Model) handleTypingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	mode, _ := m.activeMode()
	list := m.results[mode]

	switch {
	case key.Matches(msg, Keys.Escape):
		m.blurInputs()
		return m, nil
	case msg.Type == tea.KeyUp:
		list.MoveUp()
		return m, nil
	case msg.Type == tea.KeyDown:
		list.MoveDown()
		return m, nil
	case key.Matches(msg, Keys.Enter):
		if sel := list.Selected(); sel != nil {
			return m, m.openDetail(*sel)
		}
		return m, nil
	case m.Tab == TabSearch && key.Matches(msg, Keys.ToggleMode):
		m.toggleSearchMode()
		return m, nil
	}

	input := m.inputs[mode]
	before := input.Value()
	updated, cmd := input.Update(msg)
	*input = updated

	if input.Value() != before {
		m.Svc.Search.Submit(mode, input.Value())
	}
	return m, cmd
}

// handleFilterKey routes keys while the saved-list filter has focus
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		m.filterActive = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.refreshSaved()
		return m, nil
	case key.Matches(msg, Keys.Enter):
		// Keep the filter applied and return to the list
		m.filterInput.Blur()
		return m, nil
	}

	before := m.filterInput.Value()
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if m.filterInput.Value() != before {
		m.refreshSaved()
	}
	return m, cmd
}

func (m *Model) updateLayout() {
	contentWidth := m.Width - 4
	bodyHeight := m.Height - HeaderHeight - FooterHeight

	m.HomeList.SetSize(contentWidth, bodyHeight)
	for mode, list := range m.results {
		list.SetSize(contentWidth, bodyHeight-InputHeight)
		m.inputs[mode].Width = contentWidth - 4
	}
	m.SavedList.SetSize(contentWidth, bodyHeight-InputHeight)
	m.filterInput.Width = contentWidth - 4
	m.Detail.SetSize(contentWidth, bodyHeight)
}
