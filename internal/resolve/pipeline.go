package resolve

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/sourcegraph/conc/iter"

	"github.com/mmcdole/marquee/internal/completion"
	"github.com/mmcdole/marquee/internal/domain"
)

// Resolver turns a free-text query into an ordered list of movies
type Resolver interface {
	Resolve(ctx context.Context, query string) ([]domain.ResolvedMovie, error)
}

// ResolverFunc adapts a function to Resolver
type ResolverFunc func(ctx context.Context, query string) ([]domain.ResolvedMovie, error)

// Resolve calls f
func (f ResolverFunc) Resolve(ctx context.Context, query string) ([]domain.ResolvedMovie, error) {
	return f(ctx, query)
}

// Pipeline resolves a natural-language query through the completion gateway
// and one metadata lookup per suggested title.
type Pipeline struct {
	variant   Variant
	limit     int
	completer domain.Completer
	lookup    domain.TitleLookup
	logger    *slog.Logger
}

// Ensure Pipeline implements Resolver
var _ Resolver = (*Pipeline)(nil)

// NewPipeline creates a pipeline for a variant. limit is the number of
// suggestions the model is asked for and the lookup concurrency bound.
func NewPipeline(variant Variant, limit int, completer domain.Completer, lookup domain.TitleLookup, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if limit <= 0 {
		switch variant {
		case VariantRecommend:
			limit = completion.RecommendLimit
		default:
			limit = completion.TitleLimit
		}
	}
	return &Pipeline{
		variant:   variant,
		limit:     limit,
		completer: completer,
		lookup:    lookup,
		logger:    logger.With("variant", variant.String()),
	}
}

// Variant returns the pipeline's variant
func (p *Pipeline) Variant() Variant { return p.variant }

// Limit returns the suggestion limit
func (p *Pipeline) Limit() int { return p.limit }

// Resolve runs the pipeline for query.
//
// An empty query returns no results without any network call. A failed
// completion returns its error (domain.ErrCancelled when ctx was cancelled).
// Malformed model output resolves to an empty list. Each suggestion gets its
// own lookup; lookups that fail or find nothing are dropped, and the rest keep
// suggestion order with the rationale of the suggestion at the same index.
func (p *Pipeline) Resolve(ctx context.Context, query string) ([]domain.ResolvedMovie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	text, err := p.completer.Complete(ctx, p.prompt(query))
	if err != nil {
		return nil, err
	}

	suggestions, err := ParseSuggestions(text, p.variant)
	if err != nil {
		p.logger.Warn("model output not usable", "query", query, "error", err, "text", text)
		return []domain.ResolvedMovie{}, nil
	}
	p.logger.Debug("parsed suggestions", "query", query, "count", len(suggestions))

	if ctx.Err() != nil {
		return nil, domain.ErrCancelled
	}

	return p.join(suggestions, p.lookupAll(ctx, suggestions)), nil
}

func (p *Pipeline) prompt(query string) []domain.ChatMessage {
	if p.variant == VariantRecommend {
		return completion.RecommendPrompt(query, p.limit)
	}
	return completion.TitlePrompt(query, p.limit)
}

// lookupAll resolves every suggestion concurrently, at most limit at a time.
// Slot i holds the best match for suggestions[i], or nil.
//
// Lookups do not inherit ctx cancellation: a superseded session's lookups run
// to completion and their results are discarded by the caller.
func (p *Pipeline) lookupAll(ctx context.Context, suggestions []domain.Suggestion) []*domain.Movie {
	lookupCtx := context.WithoutCancel(ctx)

	mapper := iter.Mapper[domain.Suggestion, *domain.Movie]{MaxGoroutines: p.limit}
	return mapper.Map(suggestions, func(s *domain.Suggestion) *domain.Movie {
		candidates, err := p.lookup.Search(lookupCtx, s.Title)
		if err != nil {
			if errors.Is(err, domain.ErrCancelled) {
				p.logger.Debug("lookup cancelled", "title", s.Title)
			} else {
				p.logger.Warn("lookup failed", "title", s.Title, "error", err)
			}
			return nil
		}
		if len(candidates) == 0 {
			p.logger.Debug("no match for suggestion", "title", s.Title)
			return nil
		}
		best := candidates[0]
		return &best
	})
}

// join merges lookup results with suggestions by index, dropping empty slots
func (p *Pipeline) join(suggestions []domain.Suggestion, matches []*domain.Movie) []domain.ResolvedMovie {
	resolved := make([]domain.ResolvedMovie, 0, len(matches))
	for i, m := range matches {
		if m == nil {
			continue
		}
		resolved = append(resolved, domain.ResolvedMovie{
			Movie:     *m,
			Rationale: suggestions[i].Rationale,
		})
	}
	return resolved
}
