package fetch

import "sync"

// Sequencer hands out monotonically increasing request tickets for one domain.
// Only the response to the most recently issued ticket may be applied; earlier
// responses are stale no matter when they arrive.
type Sequencer struct {
	mu     sync.Mutex
	latest uint64
}

// Next issues a new ticket, superseding every ticket issued before it.
func (s *Sequencer) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// Current reports whether ticket is still the latest one issued.
func (s *Sequencer) Current(ticket uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ticket == s.latest
}

// Latest returns the most recently issued ticket, 0 if none.
func (s *Sequencer) Latest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}
