package tui

import (
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/resolve"
	"github.com/mmcdole/marquee/internal/service"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// HomeLoadedMsg signals that the home screen content has been loaded
type HomeLoadedMsg struct {
	Home   *service.Home
	Window domain.TrendingWindow
	Err    error
}

// GenresLoadedMsg carries the genre labels for the search result lists
type GenresLoadedMsg struct {
	Genres domain.GenreMap
	Err    error
}

// DetailsLoadedMsg signals that a detail page has been loaded
type DetailsLoadedMsg struct {
	ID      int
	Details *service.Details
	Err     error
}

// SearchUpdateMsg carries an update published by one of the searchers
type SearchUpdateMsg struct {
	resolve.Update
}

// SavedToggledMsg signals that a movie was saved or removed
type SavedToggledMsg struct {
	Movie domain.FavoriteRecord
	Saved bool
	Err   error
}

// TickMsg drives the spinner animation
type TickMsg struct{}
