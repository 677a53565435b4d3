package service

import (
	"context"
	"log/slog"

	"github.com/sourcegraph/conc/pool"

	"github.com/mmcdole/marquee/internal/domain"
)

// Home screen slice sizes
const (
	FeaturedCount = 3
	TrendingCount = 8
)

// Home is the content of the home screen
type Home struct {
	Window   domain.TrendingWindow
	Featured []domain.Movie
	Trending []domain.Movie
	Genres   domain.GenreMap
}

// DiscoveryService loads the browse screens
type DiscoveryService struct {
	repo   domain.MetadataRepository
	logger *slog.Logger
}

// NewDiscoveryService creates a new discovery service
func NewDiscoveryService(repo domain.MetadataRepository, logger *slog.Logger) *DiscoveryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DiscoveryService{repo: repo, logger: logger}
}

// Home fetches popular movies, trending movies for window, and the genre
// list concurrently. Any failure fails the whole load.
func (s *DiscoveryService) Home(ctx context.Context, window domain.TrendingWindow) (*Home, error) {
	if !window.Valid() {
		window = domain.TrendingDay
	}

	home := &Home{Window: window}
	p := pool.New().WithContext(ctx).WithCancelOnError()

	p.Go(func(ctx context.Context) error {
		movies, err := s.repo.Discover(ctx)
		if err != nil {
			return err
		}
		home.Featured = head(movies, FeaturedCount)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		movies, err := s.repo.Trending(ctx, window)
		if err != nil {
			return err
		}
		home.Trending = head(movies, TrendingCount)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		genres, err := s.repo.Genres(ctx)
		if err != nil {
			return err
		}
		home.Genres = domain.NewGenreMap(genres)
		return nil
	})

	if err := p.Wait(); err != nil {
		s.logger.Error("failed to load home", "window", window, "error", err)
		return nil, err
	}

	s.logger.Info("loaded home", "window", window, "featured", len(home.Featured), "trending", len(home.Trending))
	return home, nil
}

// Genres returns the genre id to name map
func (s *DiscoveryService) Genres(ctx context.Context) (domain.GenreMap, error) {
	genres, err := s.repo.Genres(ctx)
	if err != nil {
		s.logger.Error("failed to load genres", "error", err)
		return nil, err
	}
	return domain.NewGenreMap(genres), nil
}
