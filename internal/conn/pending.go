package conn

import "sync"

// pendingSend is one outbound frame buffer whose memory must outlive
// the asynchronous send that is still in flight for it. The
// completion callback needs a stable identity to release the right
// entry; that role is played by a monotonic handle returned from Add
// and looked up again from Complete — a map keyed by identity rather
// than a positional slice.
type pendingSend struct {
	handle uint64
	buffer []byte
}

// PendingSends tracks a stream's in-flight send buffers. Complete
// removes an entry by identity regardless of completion order —
// completion order is not meaningful, so removal is a map delete
// rather than a slice compaction.
type PendingSends struct {
	mu      sync.Mutex
	next    uint64
	entries map[uint64]*pendingSend
}

// NewPendingSends returns an empty tracker.
func NewPendingSends() *PendingSends {
	return &PendingSends{entries: make(map[uint64]*pendingSend)}
}

// Add registers buffer as in flight and returns the handle the eventual
// completion callback must pass to Complete. The caller MUST keep
// buffer itself alive (by not reusing its backing array) until
// Complete is called — PendingSends only tracks the reference, it
// doesn't defensively copy.
func (p *PendingSends) Add(buffer []byte) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	h := p.next
	p.next++
	p.entries[h] = &pendingSend{handle: h, buffer: buffer}
	return h
}

// Complete releases the entry identified by handle. It reports whether
// an entry was actually found — a second Complete for the same handle
// is a programming error, so callers should treat a false return as a
// bug, not a no-op to ignore silently.
func (p *PendingSends) Complete(handle uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.entries[handle]; !ok {
		return false
	}
	delete(p.entries, handle)
	return true
}

// Len reports how many sends are currently in flight.
func (p *PendingSends) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// ReleaseAll drops every still-pending entry synchronously — used at
// stream close, where uncompleted entries must not outlive the
// stream regardless of whether their in-flight send ever completes.
func (p *PendingSends) ReleaseAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = make(map[uint64]*pendingSend)
}
