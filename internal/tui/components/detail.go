package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// castLines is the number of cast members shown on a detail page
const castLines = 8

// Detail displays a movie page: header, overview, cast, and a selectable
// list of similar movies
type Detail struct {
	movie     *domain.Movie
	rationale string
	cast      []domain.Credit
	genres    domain.GenreMap
	saved     bool
	imageBase string

	loading      bool
	spinnerFrame int

	Similar *MovieList

	width  int
	height int
}

// NewDetail creates an empty detail view
func NewDetail() *Detail {
	similar := NewMovieList("More like this")
	similar.SetEmptyMessage("Nothing similar found")
	return &Detail{Similar: similar}
}

// SetImageBase sets the base URL poster links are built from
func (d *Detail) SetImageBase(base string) { d.imageBase = base }

// Open shows a loading page for movie while details are fetched
func (d *Detail) Open(movie domain.ResolvedMovie, saved bool) {
	m := movie.Movie
	d.movie = &m
	d.rationale = movie.Rationale
	d.cast = nil
	d.saved = saved
	d.loading = true
	d.Similar.SetItems(nil)
}

// SetDetails fills the page with fetched details
func (d *Detail) SetDetails(movie *domain.Movie, cast []domain.Credit, similar []domain.Movie, genres domain.GenreMap) {
	d.loading = false
	if movie != nil {
		d.movie = movie
	}
	d.cast = cast
	d.genres = genres
	d.Similar.SetGenres(genres)
	d.Similar.SetMovies(similar)
}

// SetFailed stops the loading indicator, keeping the summary data
func (d *Detail) SetFailed() {
	d.loading = false
	d.Similar.SetItems(nil)
}

// Movie returns the displayed movie, as complete as it has been loaded
func (d *Detail) Movie() *domain.Movie { return d.movie }

// SetSaved updates the saved indicator
func (d *Detail) SetSaved(saved bool) { d.saved = saved }

// UpdateSpinnerFrame advances the loading animation
func (d *Detail) UpdateSpinnerFrame(frame int) {
	d.spinnerFrame = frame
	d.Similar.UpdateSpinnerFrame(frame)
}

// SetSize updates the component dimensions
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the page
func (d *Detail) View() string {
	if d.movie == nil {
		return styles.DimStyle.Render("No movie selected")
	}

	width := d.width
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	b.WriteString(d.renderHeader(width))
	b.WriteString("\n\n")

	if d.rationale != "" {
		b.WriteString(styles.RationaleStyle.Render(wordWrap(d.rationale, width)))
		b.WriteString("\n\n")
	}

	if d.movie.Overview != "" {
		b.WriteString(styles.SubtitleStyle.Render(wordWrap(d.movie.Overview, width)))
		b.WriteString("\n\n")
	}

	if d.loading {
		spinner := styles.SpinnerFrames[d.spinnerFrame%len(styles.SpinnerFrames)]
		b.WriteString(styles.DimStyle.Render(spinner + " Loading details..."))
		return b.String()
	}

	if len(d.cast) > 0 {
		b.WriteString(styles.AccentStyle.Render("Cast"))
		b.WriteString("\n")
		b.WriteString(renderCast(d.cast, width))
		b.WriteString("\n\n")
	}

	used := lipgloss.Height(b.String())
	d.Similar.SetSize(width, d.height-used)
	b.WriteString(d.Similar.View())

	return b.String()
}

func (d *Detail) renderHeader(width int) string {
	m := d.movie
	var b strings.Builder

	title := m.Title
	if d.saved {
		title = styles.SavedChar + " " + title
	}
	b.WriteString(styles.TitleStyle.Render(styles.Truncate(title, width)))
	b.WriteString("\n")

	// Meta line: Year · Runtime · Genres
	var metaParts []string
	if year := m.Year(); year != "" {
		metaParts = append(metaParts, year)
	}
	if runtime := m.FormattedRuntime(); runtime != "" {
		metaParts = append(metaParts, runtime)
	}
	labels := d.genres.Labels(m.GenreIDList())
	if len(labels) == 0 {
		for _, g := range m.Genres {
			labels = append(labels, g.Name)
		}
	}
	if len(labels) > 0 {
		metaParts = append(metaParts, strings.Join(labels, ", "))
	}
	b.WriteString(styles.DimStyle.Render(styles.Truncate(strings.Join(metaParts, " · "), width)))

	if m.VoteAverage > 0 {
		var ratingStyle lipgloss.Style
		switch {
		case m.VoteAverage >= 7:
			ratingStyle = lipgloss.NewStyle().Foreground(styles.Green)
		case m.VoteAverage >= 5:
			ratingStyle = lipgloss.NewStyle().Foreground(styles.MarqueeGold)
		default:
			ratingStyle = lipgloss.NewStyle().Foreground(styles.Red)
		}
		b.WriteString("\n")
		b.WriteString(ratingStyle.Render(fmt.Sprintf("★ %s", m.FormattedRating())))
	}

	if d.imageBase != "" {
		if poster := domain.ImageURL(d.imageBase, m.PosterPath); poster != "" {
			b.WriteString("\n")
			b.WriteString(styles.DimStyle.Render(styles.Truncate(poster, width)))
		}
	}

	return b.String()
}

func renderCast(cast []domain.Credit, width int) string {
	if len(cast) > castLines {
		cast = cast[:castLines]
	}
	lines := make([]string, len(cast))
	for i, c := range cast {
		line := c.Name
		if c.Character != "" {
			line += styles.DimStyle.Render(" as " + c.Character)
		}
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wordLen := len([]rune(word))

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}

		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}
