package snapshot

import (
	"encoding/gob"
	"os"

	"lob/domain/book"
	"lob/infra/memory"
)

// Load rebuilds the resting book from a snapshot file. A missing file
// is not an error; the WAL replays from the beginning instead. Returns
// the seq the snapshot is consistent with.
func Load(path string, b *book.Book, pool *memory.Pool[book.Order]) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil
	}
	defer f.Close()

	var s Snapshot
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return 0, err
	}

	for _, e := range s.Orders {
		o := pool.Get()
		*o = book.Order{
			ID:        e.ID,
			Side:      book.Side(e.Side),
			Type:      book.OrderType(e.Type),
			Price:     e.Price,
			Initial:   e.Qty,
			Remaining: e.Qty,
		}
		// A snapshot holds only resting, non-crossed orders, so no
		// trades come out of this.
		if _, err := b.AddOrder(o); err != nil {
			return 0, err
		}
	}

	return s.Seq, nil
}
