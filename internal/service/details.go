package service

import (
	"context"
	"log/slog"

	"github.com/sourcegraph/conc/pool"

	"github.com/mmcdole/marquee/internal/domain"
)

// SimilarCount is the number of similar movies on a detail page
const SimilarCount = 6

// Details is the content of a movie detail page
type Details struct {
	Movie   *domain.Movie
	Cast    []domain.Credit
	Similar []domain.Movie
	Genres  domain.GenreMap
}

// DetailsService loads movie detail pages
type DetailsService struct {
	repo   domain.MetadataRepository
	logger *slog.Logger
}

// NewDetailsService creates a new details service
func NewDetailsService(repo domain.MetadataRepository, logger *slog.Logger) *DetailsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailsService{repo: repo, logger: logger}
}

// Details fetches the movie, its cast, similar movies and the genre list
// concurrently
func (s *DetailsService) Details(ctx context.Context, id int) (*Details, error) {
	d := &Details{}
	p := pool.New().WithContext(ctx).WithCancelOnError()

	p.Go(func(ctx context.Context) error {
		movie, err := s.repo.Movie(ctx, id)
		if err != nil {
			return err
		}
		d.Movie = movie
		return nil
	})
	p.Go(func(ctx context.Context) error {
		cast, err := s.repo.Credits(ctx, id)
		if err != nil {
			return err
		}
		d.Cast = cast
		return nil
	})
	p.Go(func(ctx context.Context) error {
		similar, err := s.repo.Similar(ctx, id)
		if err != nil {
			return err
		}
		d.Similar = head(similar, SimilarCount)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		genres, err := s.repo.Genres(ctx)
		if err != nil {
			return err
		}
		d.Genres = domain.NewGenreMap(genres)
		return nil
	})

	if err := p.Wait(); err != nil {
		s.logger.Error("failed to load details", "id", id, "error", err)
		return nil, err
	}

	s.logger.Debug("loaded details", "id", id, "cast", len(d.Cast), "similar", len(d.Similar))
	return d, nil
}
