package snapshot

import "lob/infra/memory"

// Reader marks the span of a consistent snapshot. It is a thin adapter
// over the reclamation epoch: while a Reader is between Begin and End,
// orders it may still observe are not recycled.
type Reader struct {
	clock *memory.Clock
	epoch *memory.ReaderEpoch
}

func NewReader(clock *memory.Clock) *Reader {
	return &Reader{
		clock: clock,
		epoch: memory.NewReaderEpoch(),
	}
}

// Begin marks the start of a consistent snapshot.
func (r *Reader) Begin() {
	r.epoch.Enter(r.clock)
}

// End marks the end of a snapshot.
func (r *Reader) End() {
	r.epoch.Exit()
}

// Epoch exposes the underlying epoch for reclaimers.
func (r *Reader) Epoch() *memory.ReaderEpoch {
	return r.epoch
}
