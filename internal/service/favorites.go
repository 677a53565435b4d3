package service

import (
	"log/slog"
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/marquee/internal/domain"
)

// FilterResult is a saved movie matched by the saved-list filter
type FilterResult struct {
	Movie          domain.FavoriteRecord
	MatchedIndexes []int // Title positions that matched, for highlighting
	Distance       int   // Lower is better
}

// FavoritesService manages the saved-movies list
type FavoritesService struct {
	store  domain.FavoritesStore
	logger *slog.Logger
}

// NewFavoritesService creates a new favorites service
func NewFavoritesService(store domain.FavoritesStore, logger *slog.Logger) *FavoritesService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FavoritesService{store: store, logger: logger}
}

// List returns the saved movies in the order they were saved
func (s *FavoritesService) List() []domain.FavoriteRecord {
	return s.store.List()
}

// IsSaved reports whether the movie is saved
func (s *FavoritesService) IsSaved(id int) bool {
	return s.store.IsSaved(id)
}

// Toggle saves or removes a movie and returns the new state
func (s *FavoritesService) Toggle(movie domain.FavoriteRecord) (bool, error) {
	saved, err := s.store.Toggle(movie)
	if err != nil {
		s.logger.Error("failed to toggle saved movie", "id", movie.ID, "error", err)
		return saved, err
	}
	s.logger.Info("toggled saved movie", "id", movie.ID, "title", movie.Title, "saved", saved)
	return saved, nil
}

// Filter fuzzy-matches saved titles against query, best match first.
// An empty query returns every saved movie unranked.
func (s *FavoritesService) Filter(query string) []FilterResult {
	saved := s.store.List()
	query = strings.TrimSpace(query)

	if query == "" {
		results := make([]FilterResult, len(saved))
		for i, m := range saved {
			results[i] = FilterResult{Movie: m}
		}
		return results
	}

	titles := make([]string, len(saved))
	for i, m := range saved {
		titles[i] = m.Title
	}

	ranks := lfuzzy.RankFindFold(query, titles)
	sort.Stable(ranks)

	results := make([]FilterResult, 0, len(ranks))
	for _, r := range ranks {
		results = append(results, FilterResult{
			Movie:          saved[r.OriginalIndex],
			MatchedIndexes: highlight(query, r.Target),
			Distance:       r.Distance,
		})
	}
	return results
}

// highlight returns the positions in title matched by query
func highlight(query, title string) []int {
	matches := fuzzy.Find(strings.ToLower(query), []string{strings.ToLower(title)})
	if len(matches) == 0 {
		return nil
	}
	return matches[0].MatchedIndexes
}
