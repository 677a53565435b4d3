package tui

import (
	"log/slog"
	"sync"

	"github.com/mmcdole/marquee/internal/resolve"
)

// updateBuffer is the capacity of the search update channel
const updateBuffer = 256

// ChannelPublisher adapts searcher updates to a channel for Bubble Tea.
type ChannelPublisher struct {
	ch     chan resolve.Update
	mu     sync.Mutex // Serializes producers while the buffer is compacted
	logger *slog.Logger
}

// NewChannelPublisher creates a new channel-based publisher.
func NewChannelPublisher(logger *slog.Logger) *ChannelPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChannelPublisher{
		ch:     make(chan resolve.Update, updateBuffer),
		logger: logger,
	}
}

// Publish sends an update to the channel without blocking. Searchers call it
// with their lock held, so it must never wait on the UI. When the buffer is
// full one queued update is dropped to make room, preferring the oldest
// loading update so that settles always get through.
func (p *ChannelPublisher) Publish(u resolve.Update) {
	p.mu.Lock()
	defer p.mu.Unlock()

	select {
	case p.ch <- u:
		return
	default:
	}

	queued := make([]resolve.Update, 0, updateBuffer)
drain:
	for len(queued) < updateBuffer {
		select {
		case q := <-p.ch:
			queued = append(queued, q)
		default:
			break drain
		}
	}

	if len(queued) == cap(p.ch) {
		drop := evictionIndex(queued)
		p.logger.Warn("search update buffer full, dropping update",
			"source", queued[drop].Source, "session", queued[drop].Session, "loading", queued[drop].Loading)
		queued = append(queued[:drop], queued[drop+1:]...)
	}

	// Only producers write, and they hold mu, so there is room for all of these
	for _, q := range append(queued, u) {
		p.ch <- q
	}
}

// evictionIndex picks the update to drop from a full queue: the oldest
// loading update, else the oldest update a later one from the same source
// replaces, else the oldest
func evictionIndex(queued []resolve.Update) int {
	for i, q := range queued {
		if q.Loading {
			return i
		}
	}
	for i, q := range queued {
		for _, later := range queued[i+1:] {
			if later.Source == q.Source {
				return i
			}
		}
	}
	return 0
}

// Updates returns the receive side of the channel
func (p *ChannelPublisher) Updates() <-chan resolve.Update {
	return p.ch
}
