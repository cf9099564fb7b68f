package devserver

import (
	"sync"

	"innocrawl/models"
)

// StatusHub fans job status snapshots out to feed subscribers. The latest
// snapshot per job is retained and replayed to new subscribers on attach, so
// a client reconnecting after a gap immediately sees current state.
type StatusHub struct {
	mu          sync.Mutex
	subscribers map[string]map[chan models.StatusSnapshot]struct{}
	latest      map[string]models.StatusSnapshot
}

// NewStatusHub initializes an empty hub.
func NewStatusHub() *StatusHub {
	return &StatusHub{
		subscribers: make(map[string]map[chan models.StatusSnapshot]struct{}),
		latest:      make(map[string]models.StatusSnapshot),
	}
}

// Publish records the job's latest snapshot and delivers it to every
// subscriber. Slow subscribers drop updates rather than block the pipeline.
func (h *StatusHub) Publish(jobID string, snap models.StatusSnapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest[jobID] = snap
	for ch := range h.subscribers[jobID] {
		select {
		case ch <- snap:
		default:
		}
	}
}

// Subscribe attaches a new feed for the job. The latest known snapshot, if
// any, is queued immediately.
func (h *StatusHub) Subscribe(jobID string) chan models.StatusSnapshot {
	ch := make(chan models.StatusSnapshot, 16)

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.subscribers[jobID]; !exists {
		h.subscribers[jobID] = make(map[chan models.StatusSnapshot]struct{})
	}
	h.subscribers[jobID][ch] = struct{}{}

	if snap, exists := h.latest[jobID]; exists {
		ch <- snap
	}
	return ch
}

// Unsubscribe detaches a feed and closes its channel.
func (h *StatusHub) Unsubscribe(jobID string, ch chan models.StatusSnapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs, exists := h.subscribers[jobID]; exists {
		if _, attached := subs[ch]; attached {
			delete(subs, ch)
			close(ch)
		}
	}
}
