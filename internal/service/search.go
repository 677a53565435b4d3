package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/resolve"
)

// Mode selects one of the search boxes. The value is also the Source of the
// updates published for that box.
type Mode string

const (
	ModeKeyword   Mode = "keyword"
	ModeAssist    Mode = "assist"
	ModeRecommend Mode = "recommend"
)

// SearchOptions holds debounce delays and suggestion limits
type SearchOptions struct {
	KeywordDebounce   time.Duration
	AssistDebounce    time.Duration
	RecommendDebounce time.Duration
	AssistLimit       int
	RecommendLimit    int
}

// SearchService owns one Searcher per search mode. Every update from every
// mode goes to the same publish function.
type SearchService struct {
	recommend *resolve.Pipeline
	searchers map[Mode]*resolve.Searcher
	logger    *slog.Logger
}

// NewSearchService creates the keyword, assist and recommend searchers
func NewSearchService(
	repo domain.MetadataRepository,
	completer domain.Completer,
	opts SearchOptions,
	publish resolve.PublishFunc,
	logger *slog.Logger,
) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}

	assist := resolve.NewPipeline(resolve.VariantTitles, opts.AssistLimit, completer, repo, logger)
	recommend := resolve.NewPipeline(resolve.VariantRecommend, opts.RecommendLimit, completer, repo, logger)

	return &SearchService{
		recommend: recommend,
		searchers: map[Mode]*resolve.Searcher{
			ModeKeyword:   resolve.NewSearcher(string(ModeKeyword), KeywordResolver(repo), opts.KeywordDebounce, publish, logger),
			ModeAssist:    resolve.NewSearcher(string(ModeAssist), assist, opts.AssistDebounce, publish, logger),
			ModeRecommend: resolve.NewSearcher(string(ModeRecommend), recommend, opts.RecommendDebounce, publish, logger),
		},
		logger: logger,
	}
}

// Submit feeds search box input to the searcher for mode
func (s *SearchService) Submit(mode Mode, query string) {
	searcher, ok := s.searchers[mode]
	if !ok {
		s.logger.Warn("unknown search mode", "mode", mode)
		return
	}
	searcher.Submit(query)
}

// Recommend runs the recommendation pipeline once, without debouncing
func (s *SearchService) Recommend(ctx context.Context, query string) ([]domain.ResolvedMovie, error) {
	return s.recommend.Resolve(ctx, query)
}

// Close cancels every session. Late results are discarded.
func (s *SearchService) Close() {
	for _, searcher := range s.searchers {
		searcher.Close()
	}
}

// KeywordResolver searches titles directly, first page only, without
// rationale
func KeywordResolver(repo domain.MetadataRepository) resolve.Resolver {
	return resolve.ResolverFunc(func(ctx context.Context, query string) ([]domain.ResolvedMovie, error) {
		query = strings.TrimSpace(query)
		if query == "" {
			return nil, nil
		}

		movies, err := repo.SearchPage(ctx, query, 1)
		if err != nil {
			return nil, err
		}

		resolved := make([]domain.ResolvedMovie, len(movies))
		for i, m := range movies {
			resolved[i] = domain.ResolvedMovie{Movie: m}
		}
		return resolved, nil
	})
}
