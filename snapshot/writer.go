package snapshot

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"time"

	"lob/domain/book"
)

type Writer struct {
	Dir string
}

// Write persists every resting order plus seq. The file is written to a
// temp name and renamed so a crash mid-write never leaves a torn
// snapshot behind.
func (w *Writer) Write(seq uint64, b *book.Book, r *Reader) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return err
	}

	s := Snapshot{
		Seq:     seq,
		Created: time.Now(),
		Orders:  make([]OrderEntry, 0, b.Size()),
	}

	r.Begin()
	collect := func(o *book.Order) {
		s.Orders = append(s.Orders, OrderEntry{
			ID:    o.ID,
			Side:  int(o.Side),
			Type:  int(o.Type),
			Price: o.Price,
			Qty:   o.Remaining,
		})
	}
	b.BidsWalk(collect)
	b.AsksWalk(collect)
	r.End()

	tmp := filepath.Join(w.Dir, "snapshot.bin.tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(&s); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(w.Dir, "snapshot.bin"))
}
