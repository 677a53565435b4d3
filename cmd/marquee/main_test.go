package main

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/log"
	"github.com/mmcdole/marquee/internal/resolve"
	"github.com/mmcdole/marquee/internal/service"
)

type catalogue struct{}

func (catalogue) Search(_ context.Context, title string) ([]domain.Movie, error) {
	return []domain.Movie{{ID: 1, Title: title, ReleaseDate: "2009-06-12"}}, nil
}

func (c catalogue) SearchPage(ctx context.Context, title string, _ int) ([]domain.Movie, error) {
	return c.Search(ctx, title)
}

func (catalogue) Discover(context.Context) ([]domain.Movie, error) { return nil, nil }

func (catalogue) Trending(context.Context, domain.TrendingWindow) ([]domain.Movie, error) {
	return nil, nil
}

func (catalogue) Genres(context.Context) ([]domain.Genre, error) { return nil, nil }

func (catalogue) Movie(context.Context, int) (*domain.Movie, error) { return nil, domain.ErrNotFound }

func (catalogue) Credits(context.Context, int) ([]domain.Credit, error) { return nil, nil }

func (catalogue) Similar(context.Context, int) ([]domain.Movie, error) { return nil, nil }

// slowCompleter answers after delay unless ctx ends first
type slowCompleter struct {
	delay time.Duration
	text  string
	err   error
}

func (c slowCompleter) Complete(ctx context.Context, _ []domain.ChatMessage) (string, error) {
	select {
	case <-time.After(c.delay):
		return c.text, c.err
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", domain.ErrCancelled, ctx.Err())
	}
}

func newSearchService(t *testing.T, completer domain.Completer) *service.SearchService {
	t.Helper()
	svc := service.NewSearchService(catalogue{}, completer, service.SearchOptions{}, func(resolve.Update) {}, log.NullLogger())
	t.Cleanup(svc.Close)
	return svc
}

func TestPrintSuggestions(t *testing.T) {
	svc := newSearchService(t, slowCompleter{
		delay: 200 * time.Millisecond,
		text:  `[{"title":"Moon","explanation":"One actor, one base."}]`,
	})

	var out bytes.Buffer
	require.NoError(t, printSuggestions(context.Background(), svc, "space mystery", &out))
	assert.Contains(t, out.String(), "Moon (2009)")
	assert.Contains(t, out.String(), "One actor, one base.")
}

func TestPrintSuggestionsNoResults(t *testing.T) {
	svc := newSearchService(t, slowCompleter{text: `[]`})

	var out bytes.Buffer
	require.NoError(t, printSuggestions(context.Background(), svc, "anything", &out))
	assert.Contains(t, out.String(), "No suggestions found.")
}

func TestPrintSuggestionsCancelledExitsQuietly(t *testing.T) {
	svc := newSearchService(t, slowCompleter{delay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	var out bytes.Buffer
	start := time.Now()
	err := printSuggestions(ctx, svc, "space mystery", &out)

	assert.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.NotContains(t, out.String(), "cancel")
	assert.NotContains(t, out.String(), "timed out")
}

func TestPrintSuggestionsReportsFailure(t *testing.T) {
	svc := newSearchService(t, slowCompleter{err: fmt.Errorf("%w: status 502", domain.ErrRequestFailed)})

	var out bytes.Buffer
	err := printSuggestions(context.Background(), svc, "space mystery", &out)
	assert.ErrorIs(t, err, domain.ErrRequestFailed)
}
