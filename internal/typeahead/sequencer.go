package typeahead

import "sync/atomic"

// Sequencer hands out monotonically increasing tokens for outgoing
// lookups and decides whether a completed lookup is still current. A
// response may only be applied when its token equals the highest token
// issued so far, which yields last-request-wins semantics regardless of
// network completion order.
type Sequencer struct {
	highest atomic.Uint64
}

// Next issues a fresh token, superseding all previously issued ones.
func (s *Sequencer) Next() uint64 {
	return s.highest.Add(1)
}

// Current reports whether the given token is still the latest issued.
func (s *Sequencer) Current(token uint64) bool {
	return s.highest.Load() == token
}
