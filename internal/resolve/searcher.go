package resolve

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmcdole/marquee/internal/domain"
)

// Update is a state change published by a Searcher.
//
// Loading updates open a session; a settled, failed, or cleared session
// publishes Loading=false with the final movie list (empty on failure).
// Cancelled sessions publish nothing.
type Update struct {
	Source  string // Name of the publishing searcher
	Session string // Session identifier, "" for a clear
	Query   string
	Movies  []domain.ResolvedMovie
	Loading bool
}

// PublishFunc receives updates. It is called with the searcher's lock held,
// so updates arrive in order; it must not call back into the Searcher.
type PublishFunc func(Update)

// Searcher owns the query session of one search box: it debounces input,
// runs at most one live session, and discards results of superseded ones.
type Searcher struct {
	name     string
	resolver Resolver
	delay    time.Duration
	publish  PublishFunc
	logger   *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending uint64 // Debounce generation; a timer fires only if still current
	current string // Live session id
	cancel  context.CancelFunc
	closed  bool
}

// NewSearcher creates a searcher. delay is the debounce interval.
func NewSearcher(name string, resolver Resolver, delay time.Duration, publish PublishFunc, logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = slog.Default()
	}
	if publish == nil {
		publish = func(Update) {}
	}
	return &Searcher{
		name:     name,
		resolver: resolver,
		delay:    delay,
		publish:  publish,
		logger:   logger.With("searcher", name),
	}
}

// Name returns the searcher name used as Update.Source
func (s *Searcher) Name() string { return s.name }

// Submit records new input. The query runs once input has been quiet for the
// debounce delay; newer input before then replaces it without any request.
func (s *Searcher) Submit(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending++
	gen := s.pending
	s.timer = time.AfterFunc(s.delay, func() { s.fire(gen, query) })
}

// Current returns the id of the latest session, or "" after a clear or Close
func (s *Searcher) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Close cancels any pending or in-flight session. Later Submits are ignored
// and late results are discarded.
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending++
	s.endSessionLocked()
}

// fire starts a session once the debounce timer elapses
func (s *Searcher) fire(gen uint64, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.pending {
		return
	}

	// Supersede whatever is still in flight
	s.endSessionLocked()

	query = strings.TrimSpace(query)
	if query == "" {
		s.publish(Update{Source: s.name})
		return
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	s.current = id
	s.cancel = cancel

	s.logger.Debug("session started", "session", id, "query", query)
	s.publish(Update{Source: s.name, Session: id, Query: query, Loading: true})

	go s.run(ctx, id, query)
}

func (s *Searcher) run(ctx context.Context, id, query string) {
	movies, err := s.resolver.Resolve(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != id {
		s.logger.Debug("discarding superseded session", "session", id, "query", query)
		return
	}
	if errors.Is(err, domain.ErrCancelled) {
		s.logger.Debug("session cancelled", "session", id)
		return
	}

	if err != nil {
		s.logger.Error("search failed", "session", id, "query", query, "error", err)
		movies = nil
	}
	if movies == nil {
		movies = []domain.ResolvedMovie{}
	}

	s.cancel()
	s.cancel = nil

	s.logger.Debug("session settled", "session", id, "results", len(movies))
	s.publish(Update{Source: s.name, Session: id, Query: query, Movies: movies})
}

// endSessionLocked cancels and forgets the live session
func (s *Searcher) endSessionLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.current = ""
}
