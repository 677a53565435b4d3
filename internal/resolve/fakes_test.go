package resolve

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mmcdole/marquee/internal/domain"
)

// fakeCompleter answers every prompt with the same text, or per-query text
// when byQuery has an entry whose key appears in the user message
type fakeCompleter struct {
	text    string
	err     error
	byQuery map[string]string
	gate    chan struct{} // When set, Complete waits on it or ctx

	calls   atomic.Int32
	mu      sync.Mutex
	prompts [][]domain.ChatMessage
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.prompts = append(f.prompts, messages)
	f.mu.Unlock()

	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return "", domain.ErrCancelled
		}
	}
	if f.err != nil {
		return "", f.err
	}
	for q, text := range f.byQuery {
		if len(messages) > 1 && strings.Contains(messages[1].Content, q) {
			return text, nil
		}
	}
	return f.text, nil
}

// fakeLookup returns canned candidates per title
type fakeLookup struct {
	results map[string][]domain.Movie
	errs    map[string]error

	mu    sync.Mutex
	calls []string

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	hold        chan struct{} // When set, Search blocks until closed
}

func (f *fakeLookup) Search(ctx context.Context, title string) ([]domain.Movie, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.maxInFlight.Load()
		if n <= peak || f.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, title)
	f.mu.Unlock()

	if f.hold != nil {
		<-f.hold
	}
	if err := f.errs[title]; err != nil {
		return nil, err
	}
	return f.results[title], nil
}

func (f *fakeLookup) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func movie(id int, title string) domain.Movie {
	return domain.Movie{ID: id, Title: title, PosterPath: "/" + title + ".jpg", VoteAverage: 7.5, GenreIDs: []int{878}}
}
