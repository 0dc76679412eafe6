package snapshot

import "time"

// Snapshot is a persisted view of all resting orders plus the seq they
// are consistent with. The WAL tail past Seq is replayed on top of it.
type Snapshot struct {
	Seq     uint64
	Created time.Time
	Orders  []OrderEntry
}

type OrderEntry struct {
	ID    uint64
	Side  int
	Type  int
	Price int64
	Qty   int64
}
