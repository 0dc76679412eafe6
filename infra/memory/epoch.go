package memory

import "sync/atomic"

// Epochs coordinate reclamation between the write path and snapshot
// readers: a retired object may be reused only once every reader that
// could still see it has exited its read section.

const inactive = ^uint64(0)

// Clock is the global reclamation epoch.
type Clock struct {
	epoch atomic.Uint64
}

func (c *Clock) Now() uint64     { return c.epoch.Load() }
func (c *Clock) Advance() uint64 { return c.epoch.Add(1) }

// ReaderEpoch marks when a reader entered a read section.
type ReaderEpoch struct {
	epoch atomic.Uint64
}

func NewReaderEpoch() *ReaderEpoch {
	r := &ReaderEpoch{}
	r.epoch.Store(inactive)
	return r
}

func (r *ReaderEpoch) Enter(c *Clock) { r.epoch.Store(c.Now()) }
func (r *ReaderEpoch) Exit()          { r.epoch.Store(inactive) }
func (r *ReaderEpoch) Value() uint64  { return r.epoch.Load() }

// Reclaim advances the clock and drains the ring into the pool while no
// reader holds an older epoch. FIFO order means the first unsafe object
// makes everything behind it unsafe too, so draining stops there.
func Reclaim[T any](c *Clock, ring *Ring[*T], pool *Pool[T], readers ...*ReaderEpoch) {
	c.Advance()
	min := minReaderEpoch(readers...)

	for {
		obj, ok := ring.Dequeue()
		if !ok {
			return
		}
		if min == inactive {
			pool.Put(obj)
			continue
		}
		_ = ring.Enqueue(obj)
		return
	}
}

func minReaderEpoch(rs ...*ReaderEpoch) uint64 {
	min := inactive
	for _, r := range rs {
		if r == nil {
			continue
		}
		if v := r.Value(); v < min {
			min = v
		}
	}
	return min
}
