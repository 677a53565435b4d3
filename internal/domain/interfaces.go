package domain

import "context"

// TitleLookup resolves a free-text title to candidate movies, best match first
type TitleLookup interface {
	Search(ctx context.Context, title string) ([]Movie, error)
}

// Completer sends a chat prompt to the completion gateway and returns the raw text
type Completer interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

// MetadataRepository provides the metadata-service endpoints the app consumes
// (implemented by the tmdb client)
type MetadataRepository interface {
	TitleLookup

	// Discover returns popular movies
	Discover(ctx context.Context) ([]Movie, error)

	// Trending returns trending movies for the window
	Trending(ctx context.Context, window TrendingWindow) ([]Movie, error)

	// Genres returns the movie genre list
	Genres(ctx context.Context) ([]Genre, error)

	// SearchPage returns one page of title search results
	SearchPage(ctx context.Context, title string, page int) ([]Movie, error)

	// Movie returns full details for a movie
	Movie(ctx context.Context, id int) (*Movie, error)

	// Credits returns the cast of a movie
	Credits(ctx context.Context, id int) ([]Credit, error)

	// Similar returns movies similar to a movie
	Similar(ctx context.Context, id int) ([]Movie, error)
}

// FavoritesStore persists the saved-movies set.
// Absent or unreadable data reads as an empty set.
type FavoritesStore interface {
	List() []FavoriteRecord
	IsSaved(id int) bool

	// Toggle adds the record if no saved record has its id, otherwise removes it.
	// Returns the new saved state.
	Toggle(record FavoriteRecord) (bool, error)

	Close() error
}
