package resolve

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

const testDelay = 20 * time.Millisecond

// recorder collects published updates on a buffered channel
type recorder struct {
	ch chan Update
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan Update, 64)}
}

func (r *recorder) publish(u Update) { r.ch <- u }

func (r *recorder) next(t *testing.T) Update {
	t.Helper()
	select {
	case u := <-r.ch:
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
		return Update{}
	}
}

func (r *recorder) settled(t *testing.T) Update {
	t.Helper()
	for {
		u := r.next(t)
		if !u.Loading {
			return u
		}
	}
}

func (r *recorder) none(t *testing.T, wait time.Duration) {
	t.Helper()
	select {
	case u := <-r.ch:
		t.Fatalf("unexpected update: %+v", u)
	case <-time.After(wait):
	}
}

func TestSearcherDebounceRunsOnlyLatest(t *testing.T) {
	completer := &fakeCompleter{byQuery: map[string]string{
		`"q1"`: `["One"]`,
		`"q2"`: `["Two"]`,
	}}
	lookup := &fakeLookup{results: map[string][]domain.Movie{
		"One": {movie(1, "One")},
		"Two": {movie(2, "Two")},
	}}
	rec := newRecorder()
	s := NewSearcher("ai", NewPipeline(VariantTitles, 4, completer, lookup, nil), testDelay, rec.publish, nil)
	defer s.Close()

	s.Submit("q1")
	s.Submit("q2")

	loading := rec.next(t)
	assert.True(t, loading.Loading)
	assert.Equal(t, "q2", loading.Query)
	assert.NotEmpty(t, loading.Session)

	done := rec.settled(t)
	assert.Equal(t, loading.Session, done.Session)
	assert.Equal(t, "ai", done.Source)
	require.Len(t, done.Movies, 1)
	assert.Equal(t, "Two", done.Movies[0].Title)

	assert.Equal(t, int32(1), completer.calls.Load())
	rec.none(t, 3*testDelay)
}

func TestSearcherDiscardsSupersededResults(t *testing.T) {
	hold := make(chan struct{})
	completer := &fakeCompleter{byQuery: map[string]string{
		`"q1"`: `["Old"]`,
		`"q2"`: `["New"]`,
	}}
	slow := &fakeLookup{
		results: map[string][]domain.Movie{"Old": {movie(1, "Old")}},
		hold:    hold,
	}
	fast := &fakeLookup{results: map[string][]domain.Movie{"New": {movie(2, "New")}}}

	// Route q1 through the blocked lookup and q2 through the open one
	resolver := ResolverFunc(func(ctx context.Context, query string) ([]domain.ResolvedMovie, error) {
		if query == "q1" {
			return NewPipeline(VariantTitles, 4, completer, slow, nil).Resolve(ctx, query)
		}
		return NewPipeline(VariantTitles, 4, completer, fast, nil).Resolve(ctx, query)
	})

	rec := newRecorder()
	s := NewSearcher("ai", resolver, testDelay, rec.publish, nil)
	defer s.Close()

	s.Submit("q1")
	first := rec.next(t)
	require.True(t, first.Loading)
	require.Eventually(t, func() bool { return slow.callCount() == 1 }, time.Second, 5*time.Millisecond)

	s.Submit("q2")
	second := rec.next(t)
	require.True(t, second.Loading)
	assert.NotEqual(t, first.Session, second.Session)

	done := rec.settled(t)
	assert.Equal(t, second.Session, done.Session)
	require.Len(t, done.Movies, 1)
	assert.Equal(t, "New", done.Movies[0].Title)

	// Releasing q1's lookups after q2 settled must not publish anything
	close(hold)
	rec.none(t, 5*testDelay)
	assert.Equal(t, second.Session, s.Current())
}

func TestSearcherCancelsInFlightCompletion(t *testing.T) {
	gate := make(chan struct{})
	completer := &fakeCompleter{text: `["Moon"]`, gate: gate}
	lookup := &fakeLookup{results: map[string][]domain.Movie{"Moon": {movie(1, "Moon")}}}
	rec := newRecorder()
	s := NewSearcher("ai", NewPipeline(VariantTitles, 4, completer, lookup, nil), testDelay, rec.publish, nil)
	defer s.Close()

	s.Submit("q1")
	require.True(t, rec.next(t).Loading)
	require.Eventually(t, func() bool { return completer.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	s.Submit("")
	cleared := rec.next(t)
	assert.False(t, cleared.Loading)
	assert.Empty(t, cleared.Session)
	assert.Empty(t, cleared.Movies)

	// The gated completion observed cancellation; nothing more is published
	rec.none(t, 5*testDelay)
	assert.Equal(t, int32(1), completer.calls.Load())
	assert.Zero(t, lookup.callCount())
	close(gate)
}

func TestSearcherEmptyQueryClearsWithoutRequest(t *testing.T) {
	completer := &fakeCompleter{text: `["Moon"]`}
	rec := newRecorder()
	s := NewSearcher("recommend", NewPipeline(VariantRecommend, 6, completer, &fakeLookup{}, nil), testDelay, rec.publish, nil)
	defer s.Close()

	s.Submit("   ")
	u := rec.next(t)
	assert.Equal(t, Update{Source: "recommend"}, u)
	assert.Zero(t, completer.calls.Load())
}

func TestSearcherFailurePublishesEmptyList(t *testing.T) {
	completer := &fakeCompleter{err: fmt.Errorf("%w: status 502", domain.ErrRequestFailed)}
	rec := newRecorder()
	s := NewSearcher("ai", NewPipeline(VariantTitles, 4, completer, &fakeLookup{}, nil), testDelay, rec.publish, nil)
	defer s.Close()

	s.Submit("space mystery")
	require.True(t, rec.next(t).Loading)

	done := rec.next(t)
	assert.False(t, done.Loading)
	assert.NotNil(t, done.Movies)
	assert.Empty(t, done.Movies)
	assert.Equal(t, done.Session, s.Current())
}

func TestSearcherCloseStopsEverything(t *testing.T) {
	completer := &fakeCompleter{text: `["Moon"]`}
	rec := newRecorder()
	s := NewSearcher("ai", NewPipeline(VariantTitles, 4, completer, &fakeLookup{}, nil), testDelay, rec.publish, nil)

	s.Submit("moon")
	s.Close()
	s.Submit("moon again")
	s.Close()

	rec.none(t, 5*testDelay)
	assert.Zero(t, completer.calls.Load())
	assert.Equal(t, "ai", s.Name())
}
