package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/resolve"
	"github.com/mmcdole/marquee/internal/service"
)

// Command factories for async operations

// LoadHomeCmd loads the home screen for a trending window
func LoadHomeCmd(svc *service.DiscoveryService, window domain.TrendingWindow) tea.Cmd {
	return func() tea.Msg {
		home, err := svc.Home(context.Background(), window)
		return HomeLoadedMsg{Home: home, Window: window, Err: err}
	}
}

// LoadGenresCmd loads the genre list
func LoadGenresCmd(svc *service.DiscoveryService) tea.Cmd {
	return func() tea.Msg {
		genres, err := svc.Genres(context.Background())
		return GenresLoadedMsg{Genres: genres, Err: err}
	}
}

// LoadDetailsCmd loads the detail page of a movie
func LoadDetailsCmd(svc *service.DetailsService, id int) tea.Cmd {
	return func() tea.Msg {
		details, err := svc.Details(context.Background(), id)
		return DetailsLoadedMsg{ID: id, Details: details, Err: err}
	}
}

// ToggleSavedCmd saves or removes a movie
func ToggleSavedCmd(svc *service.FavoritesService, movie domain.FavoriteRecord) tea.Cmd {
	return func() tea.Msg {
		saved, err := svc.Toggle(movie)
		return SavedToggledMsg{Movie: movie, Saved: saved, Err: err}
	}
}

// WaitForUpdateCmd waits for the next searcher update
func WaitForUpdateCmd(updates <-chan resolve.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return nil
		}
		return SearchUpdateMsg{Update: u}
	}
}

// TickCmd creates a tick command for the spinner animation
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}
