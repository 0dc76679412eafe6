package service

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"lob/domain/book"
	"lob/infra/memory"
	"lob/infra/outbox"
	"lob/infra/sequence"
	"lob/infra/wal"
	"lob/metrics"
	"lob/snapshot"
)

// OrderService is the ONLY write entry point into the engine. It owns
// the serialization the core requires: one mutex guards every mutation
// across the book, the WAL, and the outbox, so no caller ever observes
// a partial multi-structure update.
type OrderService struct {
	mu sync.Mutex

	book     *book.Book
	pool     *memory.Pool[book.Order]
	ring     *memory.Ring[*book.Order]
	clock    *memory.Clock
	reader   *snapshot.Reader
	seq      *sequence.Sequencer
	tradeSeq *sequence.Sequencer
	wal      *wal.WAL
	outbox   *outbox.Outbox
	stats    *metrics.Engine
	log      *zap.Logger
}

// Deps carries everything the service coordinates. WAL, Outbox, and
// Stats may be nil (tests, replay tooling); the corresponding step is
// skipped.
type Deps struct {
	Book     *book.Book
	Pool     *memory.Pool[book.Order]
	Ring     *memory.Ring[*book.Order]
	Clock    *memory.Clock
	Reader   *snapshot.Reader
	Seq      *sequence.Sequencer
	TradeSeq *sequence.Sequencer
	WAL      *wal.WAL
	Outbox   *outbox.Outbox
	Stats    *metrics.Engine
	Log      *zap.Logger
}

func New(d Deps) *OrderService {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	s := &OrderService{
		book:     d.Book,
		pool:     d.Pool,
		ring:     d.Ring,
		clock:    d.Clock,
		reader:   d.Reader,
		seq:      d.Seq,
		tradeSeq: d.TradeSeq,
		wal:      d.WAL,
		outbox:   d.Outbox,
		stats:    d.Stats,
		log:      d.Log,
	}

	// Every order the book is done with flows through the retire ring
	// and back into the pool once no snapshot reader can see it.
	s.book.OnRetire(func(o *book.Order) {
		if !s.ring.Enqueue(o) {
			// Ring full: let the GC take this one instead of blocking
			// the matching path.
			s.log.Warn("retire ring full, dropping order to GC",
				zap.Uint64("order_id", o.ID))
		}
	})
	return s
}

// TradeEvent is the published form of one trade.
type TradeEvent struct {
	V    int      `json:"v"`
	Seq  uint64   `json:"seq"`
	Bid  TradeLeg `json:"bid"`
	Ask  TradeLeg `json:"ask"`
	Time int64    `json:"time"`
}

type TradeLeg struct {
	OrderID uint64 `json:"order_id"`
	Price   int64  `json:"price"`
	Qty     int64  `json:"qty"`
}

// PlaceOrder submits a new order. It returns the trades produced by
// this call and the command's sequence number. A non-nil error is an
// invariant violation surfaced from matching.
func (s *OrderService) PlaceOrder(
	otype book.OrderType,
	id uint64,
	side book.Side,
	price int64,
	qty int64,
) (book.Trades, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.seq.Next()
	s.logIntent(wal.RecordPlace, seq, wal.Command{
		OrderID: id,
		Side:    uint32(side),
		Type:    uint32(otype),
		Price:   price,
		Qty:     qty,
	})

	o := s.pool.Get()
	*o = book.Order{
		ID:        id,
		Type:      otype,
		Side:      side,
		Price:     price,
		Initial:   qty,
		Remaining: qty,
	}

	sizeBefore := s.book.Size()
	trades, err := s.book.AddOrder(o)
	if err != nil {
		s.log.Error("matching aborted", zap.Uint64("seq", seq), zap.Error(err))
		return trades, seq, err
	}
	// A rejected submission (duplicate id, unmatchable FillAndKill)
	// neither trades nor grows the book.
	accepted := len(trades) > 0 || s.book.Size() > sizeBefore

	s.publishTrades(trades)
	if s.stats != nil {
		if accepted {
			s.stats.OrdersPlaced.Inc()
		} else {
			s.stats.OrdersRejected.Inc()
		}
		s.stats.RestingOrders.Set(float64(s.book.Size()))
	}
	return trades, seq, nil
}

// CancelOrder removes a resting order. Unknown ids are a no-op.
func (s *OrderService) CancelOrder(id uint64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.seq.Next()
	s.logIntent(wal.RecordCancel, seq, wal.Command{OrderID: id})

	had := s.book.Has(id)
	s.book.CancelOrder(id)

	if s.stats != nil {
		if had {
			s.stats.OrdersCancelled.Inc()
		}
		s.stats.RestingOrders.Set(float64(s.book.Size()))
	}
	return seq
}

// ModifyOrder cancels and reinserts an order with new attributes,
// preserving its original type. Unknown ids produce no trades.
func (s *OrderService) ModifyOrder(
	id uint64,
	side book.Side,
	price int64,
	qty int64,
) (book.Trades, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.seq.Next()
	s.logIntent(wal.RecordModify, seq, wal.Command{
		OrderID: id,
		Side:    uint32(side),
		Price:   price,
		Qty:     qty,
	})

	trades, err := s.book.ModifyOrder(book.OrderModify{
		ID:    id,
		Side:  side,
		Price: price,
		Qty:   qty,
	})
	if err != nil {
		s.log.Error("matching aborted", zap.Uint64("seq", seq), zap.Error(err))
		return trades, seq, err
	}

	s.publishTrades(trades)
	if s.stats != nil {
		s.stats.OrdersModified.Inc()
		s.stats.RestingOrders.Set(float64(s.book.Size()))
	}
	return trades, seq, nil
}

// Size is the number of resting orders.
func (s *OrderService) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Size()
}

// Depth returns aggregate quantity per price level, best-to-worst on
// each side.
func (s *OrderService) Depth() book.LevelBook {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Levels()
}

// WriteSnapshot persists the resting book at the current seq.
func (s *OrderService) WriteSnapshot(w *snapshot.Writer) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.seq.Current()
	if err := w.Write(seq, s.book, s.reader); err != nil {
		return seq, err
	}
	if s.wal != nil {
		_ = s.wal.TruncateBefore(seq)
	}
	return seq, nil
}

// AdvanceEpoch reclaims retired orders. Intended to run periodically
// from a background job.
func (s *OrderService) AdvanceEpoch() {
	memory.Reclaim(s.clock, s.ring, s.pool, s.reader.Epoch())
}

func (s *OrderService) logIntent(t wal.RecordType, seq uint64, cmd wal.Command) {
	if s.wal == nil {
		return
	}
	if err := s.wal.Append(wal.NewRecord(t, seq, wal.EncodeCommand(cmd))); err != nil {
		s.log.Warn("wal append failed", zap.Uint64("seq", seq), zap.Error(err))
		return
	}
	if s.stats != nil {
		s.stats.WALAppends.Inc()
	}
}

func (s *OrderService) publishTrades(trades book.Trades) {
	for _, t := range trades {
		seq := s.tradeSeq.Next()
		if s.stats != nil {
			s.stats.Trades.Inc()
			s.stats.TradedQty.Add(float64(t.Bid.Qty))
		}
		if s.outbox == nil {
			continue
		}
		ev := TradeEvent{
			V:    1,
			Seq:  seq,
			Bid:  TradeLeg{OrderID: t.Bid.OrderID, Price: t.Bid.Price, Qty: t.Bid.Qty},
			Ask:  TradeLeg{OrderID: t.Ask.OrderID, Price: t.Ask.Price, Qty: t.Ask.Qty},
			Time: time.Now().UnixNano(),
		}
		payload, err := json.Marshal(ev)
		if err != nil {
			s.log.Error("trade event marshal failed", zap.Uint64("seq", seq), zap.Error(err))
			continue
		}
		if err := s.outbox.Put(seq, payload); err != nil {
			s.log.Error("outbox put failed", zap.Uint64("seq", seq), zap.Error(err))
		}
	}
}
