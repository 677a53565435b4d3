package components

import (
	"fmt"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Layout constants for movie lists
const (
	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// MovieList is a scrollable list of movies with optional section headings,
// rationale lines and match highlighting
type MovieList struct {
	title string
	items []domain.ResolvedMovie

	sections   map[int]string // Heading rendered above the item at index
	highlights map[int][]int  // Title match positions per item
	rationale  bool           // Render the rationale under each title
	emptyMsg   string

	genres  domain.GenreMap
	isSaved func(id int) bool

	// Selection
	cursor int
	offset int

	// Dimensions
	width  int
	height int

	// Loading state
	loading      bool
	spinnerFrame int
}

// NewMovieList creates an empty list with a title
func NewMovieList(title string) *MovieList {
	return &MovieList{
		title:    title,
		emptyMsg: "No results",
	}
}

// SetItems replaces the list content and resets selection
func (l *MovieList) SetItems(items []domain.ResolvedMovie) {
	l.items = items
	l.sections = nil
	l.highlights = nil
	l.cursor = 0
	l.offset = 0
	l.loading = false
}

// SetMovies replaces the list content with plain movies
func (l *MovieList) SetMovies(movies []domain.Movie) {
	items := make([]domain.ResolvedMovie, len(movies))
	for i, m := range movies {
		items[i] = domain.ResolvedMovie{Movie: m}
	}
	l.SetItems(items)
}

// SetSection sets a heading above the item at index
func (l *MovieList) SetSection(index int, heading string) {
	if l.sections == nil {
		l.sections = make(map[int]string)
	}
	l.sections[index] = heading
}

// SetHighlights sets the matched title positions for the item at index
func (l *MovieList) SetHighlights(index int, positions []int) {
	if l.highlights == nil {
		l.highlights = make(map[int][]int)
	}
	l.highlights[index] = positions
}

// SetShowRationale toggles rationale lines
func (l *MovieList) SetShowRationale(show bool) { l.rationale = show }

// SetEmptyMessage sets the text shown when the list has no items
func (l *MovieList) SetEmptyMessage(msg string) { l.emptyMsg = msg }

// SetTitle sets the list heading
func (l *MovieList) SetTitle(title string) { l.title = title }

// SetGenres sets the map used for genre labels
func (l *MovieList) SetGenres(genres domain.GenreMap) { l.genres = genres }

// SetSavedFunc sets the predicate used for the saved marker
func (l *MovieList) SetSavedFunc(fn func(id int) bool) { l.isSaved = fn }

// SetLoading shows or hides the loading indicator
func (l *MovieList) SetLoading(loading bool) { l.loading = loading }

// IsLoading returns whether the loading indicator is shown
func (l *MovieList) IsLoading() bool { return l.loading }

// UpdateSpinnerFrame advances the loading animation
func (l *MovieList) UpdateSpinnerFrame(frame int) { l.spinnerFrame = frame }

// SetSize updates the component dimensions
func (l *MovieList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.clampOffset()
}

// Len returns the number of items
func (l *MovieList) Len() int { return len(l.items) }

// Cursor returns the selected index
func (l *MovieList) Cursor() int { return l.cursor }

// Selected returns the selected item, or nil when the list is empty
func (l *MovieList) Selected() *domain.ResolvedMovie {
	if l.loading || l.cursor < 0 || l.cursor >= len(l.items) {
		return nil
	}
	return &l.items[l.cursor]
}

// MoveUp moves the cursor up
func (l *MovieList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
		l.clampOffset()
	}
}

// MoveDown moves the cursor down
func (l *MovieList) MoveDown() {
	if l.cursor < len(l.items)-1 {
		l.cursor++
		l.clampOffset()
	}
}

// JumpToTop moves the cursor to the first item
func (l *MovieList) JumpToTop() {
	l.cursor = 0
	l.offset = 0
}

// JumpToBottom moves the cursor to the last item
func (l *MovieList) JumpToBottom() {
	if len(l.items) > 0 {
		l.cursor = len(l.items) - 1
		l.clampOffset()
	}
}

// rowHeight is the number of lines one item takes
func (l *MovieList) rowHeight() int {
	if l.rationale {
		return 2
	}
	return 1
}

// maxVisible is the number of items that fit, ignoring section headings
func (l *MovieList) maxVisible() int {
	n := (l.height - 1 - ScrollIndicatorLines - len(l.sections)) / l.rowHeight()
	if n < 1 {
		n = 1
	}
	return n
}

func (l *MovieList) clampOffset() {
	visible := l.maxVisible()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// View renders the list
func (l *MovieList) View() string {
	itemWidth := l.width
	if itemWidth < 10 {
		itemWidth = 10
	}

	titleLine := styles.AccentStyle.Render(styles.Truncate(l.title, itemWidth))

	if l.loading {
		spinner := styles.SpinnerFrames[l.spinnerFrame%len(styles.SpinnerFrames)]
		return titleLine + "\n \n" + styles.DimStyle.Render(spinner+" Loading...")
	}

	if len(l.items) == 0 {
		return titleLine + "\n \n" + styles.DimStyle.Render(l.emptyMsg)
	}

	end := l.offset + l.maxVisible()
	if end > len(l.items) {
		end = len(l.items)
	}

	var lines []string
	for i := l.offset; i < end; i++ {
		if heading, ok := l.sections[i]; ok {
			lines = append(lines, styles.TitleStyle.Render(styles.Truncate(heading, itemWidth)))
		}
		lines = append(lines, l.renderItem(i, i == l.cursor, itemWidth)...)
	}

	// Always reserve the indicator lines so the layout doesn't shift
	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < len(l.items) {
		footer = styles.DimStyle.Render("↓ more")
	}

	return titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
}

func (l *MovieList) renderItem(i int, selected bool, width int) []string {
	item := l.items[i]

	marker := "  "
	if l.isSaved != nil && l.isSaved(item.ID) {
		marker = styles.SavedMark + " "
	}

	meta := formatMeta(item.Movie, l.genres)
	metaWidth := len([]rune(meta)) + 1
	titleWidth := width - 4 - metaWidth
	if titleWidth < 8 {
		titleWidth = 8
		meta = ""
	}

	title := styles.Truncate(item.Title, titleWidth)
	parts := styles.HighlightParts(title, l.highlights[i])
	if meta != "" {
		gray := styles.DimGray
		parts = append(parts, styles.RowPart{Text: " " + meta, Foreground: &gray})
	}

	lines := []string{marker + styles.RenderListRow(parts, selected, width-2)}
	if l.rationale {
		lines = append(lines, "    "+styles.RationaleStyle.Render(styles.Truncate(item.Rationale, width-4)))
	}
	return lines
}

// formatMeta renders "2014 · ★ 8.4 · Adventure, Drama"
func formatMeta(m domain.Movie, genres domain.GenreMap) string {
	var parts []string
	if year := m.Year(); year != "" {
		parts = append(parts, year)
	}
	if m.VoteAverage > 0 {
		parts = append(parts, fmt.Sprintf("★ %s", m.FormattedRating()))
	}
	if labels := genres.Labels(m.GenreIDList()); len(labels) > 0 {
		if len(labels) > 2 {
			labels = labels[:2]
		}
		parts = append(parts, strings.Join(labels, ", "))
	}
	return strings.Join(parts, " · ")
}
