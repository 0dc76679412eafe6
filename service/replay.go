package service

import (
	"fmt"

	"go.uber.org/zap"

	"lob/domain/book"
	"lob/infra/memory"
	"lob/infra/sequence"
	"lob/infra/wal"
)

// Replay rebuilds in-memory state from the entry WAL. It MUST run
// before the engine accepts traffic. Records at or below fromSeq are
// already covered by the loaded snapshot and are skipped. The outbox
// is NOT replayed: trades regenerated here were already published (or
// are still pending) in their original outbox entries.
func Replay(
	dir string,
	fromSeq uint64,
	b *book.Book,
	pool *memory.Pool[book.Order],
	seqGen *sequence.Sequencer,
	log *zap.Logger,
) error {
	if log == nil {
		log = zap.NewNop()
	}

	lastSeq, err := wal.Replay(dir, func(rec *wal.Record) error {
		if rec.Seq <= fromSeq {
			return nil
		}

		cmd, err := wal.DecodeCommand(rec.Data)
		if err != nil {
			return fmt.Errorf("replay seq %d: %w", rec.Seq, err)
		}

		switch rec.Type {
		case wal.RecordPlace:
			o := pool.Get()
			*o = book.Order{
				ID:        cmd.OrderID,
				Type:      book.OrderType(cmd.Type),
				Side:      book.Side(cmd.Side),
				Price:     cmd.Price,
				Initial:   cmd.Qty,
				Remaining: cmd.Qty,
			}
			_, err := b.AddOrder(o)
			return err

		case wal.RecordCancel:
			b.CancelOrder(cmd.OrderID)
			return nil

		case wal.RecordModify:
			_, err := b.ModifyOrder(book.OrderModify{
				ID:    cmd.OrderID,
				Side:  book.Side(cmd.Side),
				Price: cmd.Price,
				Qty:   cmd.Qty,
			})
			return err

		default:
			return fmt.Errorf("replay seq %d: unknown record type %d", rec.Seq, rec.Type)
		}
	})
	if err != nil {
		return err
	}

	if lastSeq < fromSeq {
		lastSeq = fromSeq
	}
	seqGen.Reset(lastSeq)

	log.Info("wal replay complete",
		zap.Uint64("last_seq", lastSeq),
		zap.Int("resting_orders", b.Size()),
	)
	return nil
}
