// Package debug keeps a small in-process history of request/response pairs
// for inspection. It replaces the single global "last auth" blob with a
// bounded ring plus a subscriber feed; nothing here survives a restart.
package debug

import (
	"sync"
	"time"
)

// DefaultCapacity bounds the ring. 32 captures is plenty for eyeballing a
// client handshake.
const DefaultCapacity = 32

// Capture is one recorded request/response pair.
type Capture struct {
	Time     time.Time      `json:"time"`
	Method   string         `json:"method"`
	Path     string         `json:"path"`
	Request  map[string]any `json:"request"`
	Response any            `json:"response"`
}

// Recorder is a fixed-capacity ring of captures. Concurrent writers race
// last-write-wins; that is acceptable for a debug aid.
type Recorder struct {
	mu    sync.RWMutex
	ring  []Capture
	next  int
	count int

	subMu sync.Mutex
	subs  map[chan Capture]struct{}
}

func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Recorder{
		ring: make([]Capture, capacity),
		subs: make(map[chan Capture]struct{}),
	}
}

// Record stores a capture, evicting the oldest when full, and fans it out to
// subscribers. Slow subscribers are skipped, never waited on.
func (r *Recorder) Record(c Capture) {
	r.mu.Lock()
	r.ring[r.next] = c
	r.next = (r.next + 1) % len(r.ring)
	if r.count < len(r.ring) {
		r.count++
	}
	r.mu.Unlock()

	r.subMu.Lock()
	for ch := range r.subs {
		select {
		case ch <- c:
		default:
		}
	}
	r.subMu.Unlock()
}

// Last returns the most recent capture.
func (r *Recorder) Last() (Capture, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.count == 0 {
		return Capture{}, false
	}
	idx := (r.next - 1 + len(r.ring)) % len(r.ring)
	return r.ring[idx], true
}

// List returns captures oldest first.
func (r *Recorder) List() []Capture {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Capture, 0, r.count)
	start := r.next - r.count
	for i := 0; i < r.count; i++ {
		out = append(out, r.ring[(start+i+len(r.ring))%len(r.ring)])
	}
	return out
}

// Subscribe registers a feed of future captures. The returned cancel func
// must be called to release the channel.
func (r *Recorder) Subscribe() (<-chan Capture, func()) {
	ch := make(chan Capture, 8)
	r.subMu.Lock()
	r.subs[ch] = struct{}{}
	r.subMu.Unlock()

	cancel := func() {
		r.subMu.Lock()
		delete(r.subs, ch)
		r.subMu.Unlock()
	}
	return ch, cancel
}
