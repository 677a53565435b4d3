package domain

import (
	"fmt"
	"strings"
)

// Movie is a movie record as returned by the metadata service.
// Summary endpoints fill GenreIDs; the detail endpoint fills Genres, Runtime
// and Overview instead.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview,omitempty"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	GenreIDs     []int   `json:"genre_ids,omitempty"`
	Genres       []Genre `json:"genres,omitempty"`
	Runtime      int     `json:"runtime,omitempty"` // Minutes
}

// Year returns the release year, or "" when the release date is unknown
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// FormattedRating returns the vote average with one decimal
func (m Movie) FormattedRating() string {
	return fmt.Sprintf("%.1f", m.VoteAverage)
}

// FormattedRuntime returns the runtime in a human-readable format
func (m Movie) FormattedRuntime() string {
	if m.Runtime <= 0 {
		return ""
	}
	h := m.Runtime / 60
	mins := m.Runtime % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// GenreIDList returns the genre ids regardless of which shape the record carries
func (m Movie) GenreIDList() []int {
	if len(m.GenreIDs) > 0 || len(m.Genres) == 0 {
		return m.GenreIDs
	}
	ids := make([]int, len(m.Genres))
	for i, g := range m.Genres {
		ids[i] = g.ID
	}
	return ids
}

// ImageURL joins an image base URL with a poster or backdrop path
func ImageURL(base, path string) string {
	if path == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// ResolvedMovie is a suggestion that was matched to a metadata record.
// Rationale is empty for keyword search and the title-list variant.
type ResolvedMovie struct {
	Movie
	Rationale string `json:"explanation,omitempty"`
}

// FavoriteRecord is a saved movie, persisted verbatim as it was when saved.
type FavoriteRecord = Movie

// Suggestion is a single model-proposed title prior to metadata lookup.
// The title is not guaranteed to exist in the metadata service.
type Suggestion struct {
	Title     string
	Rationale string
}

// Genre is a metadata-service genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreMap maps genre id to display name
type GenreMap map[int]string

// NewGenreMap builds a lookup map from a genre list
func NewGenreMap(genres []Genre) GenreMap {
	m := make(GenreMap, len(genres))
	for _, g := range genres {
		m[g.ID] = g.Name
	}
	return m
}

// Labels returns the names for ids, skipping ids the map doesn't know
func (g GenreMap) Labels(ids []int) []string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := g[id]; ok {
			labels = append(labels, name)
		}
	}
	return labels
}

// Credit is a cast member of a movie
type Credit struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

// TrendingWindow selects the trending time window
type TrendingWindow string

const (
	TrendingDay  TrendingWindow = "day"
	TrendingWeek TrendingWindow = "week"
)

// Valid reports whether w is a window the metadata service accepts
func (w TrendingWindow) Valid() bool {
	return w == TrendingDay || w == TrendingWeek
}

// Toggle returns the other window
func (w TrendingWindow) Toggle() TrendingWindow {
	if w == TrendingWeek {
		return TrendingDay
	}
	return TrendingWeek
}

// ChatMessage is one message of a chat-completion prompt
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat roles
const (
	RoleSystem = "system"
	RoleUser   = "user"
)
