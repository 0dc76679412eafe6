package sequence

import "sync/atomic"

// Sequencer issues strictly monotonic sequence IDs. Deterministic and
// replay-safe: after WAL replay it resumes from the last replayed seq.
type Sequencer struct {
	next atomic.Uint64
}

func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

// Next returns the next sequence ID.
func (s *Sequencer) Next() uint64 {
	return s.next.Add(1)
}

// Current returns the last issued sequence.
func (s *Sequencer) Current() uint64 {
	return s.next.Load()
}

// Reset positions the sequencer. Only valid after replay, before the
// engine accepts traffic.
func (s *Sequencer) Reset(v uint64) {
	s.next.Store(v)
}
