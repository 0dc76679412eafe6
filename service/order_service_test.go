package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"lob/domain/book"
	"lob/infra/memory"
	"lob/infra/outbox"
	"lob/infra/sequence"
	"lob/infra/wal"
	"lob/snapshot"
)

type harness struct {
	svc    *OrderService
	walDir string
	wal    *wal.WAL
	outbox *outbox.Outbox
	ring   *memory.Ring[*book.Order]
	pool   *memory.Pool[book.Order]
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	walDir := t.TempDir()
	w, err := wal.Open(wal.Config{Dir: walDir})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ob, err := outbox.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ob.Close() })

	pool := memory.NewPool(func() *book.Order { return &book.Order{} })
	ring := memory.NewRing[*book.Order](1 << 10)
	clock := &memory.Clock{}
	reader := snapshot.NewReader(clock)

	svc := New(Deps{
		Book:     book.New(),
		Pool:     pool,
		Ring:     ring,
		Clock:    clock,
		Reader:   reader,
		Seq:      sequence.New(0),
		TradeSeq: sequence.New(0),
		WAL:      w,
		Outbox:   ob,
	})

	return &harness{svc: svc, walDir: walDir, wal: w, outbox: ob, ring: ring, pool: pool}
}

func TestPlaceOrderSequencesAndMatches(t *testing.T) {
	h := newHarness(t)

	trades, seq, err := h.svc.PlaceOrder(book.GoodTillCancel, 1, book.Buy, 100, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(1), seq)
	require.Empty(t, trades)

	trades, seq, err = h.svc.PlaceOrder(book.GoodTillCancel, 2, book.Sell, 100, 4)
	require.NoError(t, err)
	require.Equal(t, uint64(2), seq)
	require.Len(t, trades, 1)
	require.Equal(t, int64(4), trades[0].Bid.Qty)

	require.Equal(t, 1, h.svc.Size())
	require.Equal(t, []book.LevelInfo{{Price: 100, Qty: 6}}, h.svc.Depth().Bids)
}

func TestCommandsAreJournaled(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.svc.PlaceOrder(book.GoodTillCancel, 1, book.Buy, 100, 10)
	require.NoError(t, err)
	h.svc.CancelOrder(1)
	_, _, err = h.svc.ModifyOrder(2, book.Sell, 105, 3)
	require.NoError(t, err)
	require.NoError(t, h.wal.Sync())

	var types []wal.RecordType
	last, err := wal.Replay(h.walDir, func(rec *wal.Record) error {
		types = append(types, rec.Type)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, uint64(3), last)
	require.Equal(t, []wal.RecordType{wal.RecordPlace, wal.RecordCancel, wal.RecordModify}, types)
}

func TestTradesLandInOutbox(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.svc.PlaceOrder(book.GoodTillCancel, 1, book.Buy, 100, 10)
	require.NoError(t, err)
	_, _, err = h.svc.PlaceOrder(book.GoodTillCancel, 2, book.Sell, 99, 10)
	require.NoError(t, err)

	var events []TradeEvent
	err = h.outbox.ScanPending(func(e *outbox.Entry) error {
		require.Equal(t, outbox.StateNew, e.State)
		var ev TradeEvent
		require.NoError(t, json.Unmarshal(e.Payload, &ev))
		events = append(events, ev)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, events, 1)
	require.Equal(t, uint64(1), events[0].Seq)
	require.Equal(t, TradeLeg{OrderID: 1, Price: 100, Qty: 10}, events[0].Bid)
	require.Equal(t, TradeLeg{OrderID: 2, Price: 99, Qty: 10}, events[0].Ask)

	high, err := h.outbox.MaxSeq()
	require.NoError(t, err)
	require.Equal(t, uint64(1), high)
}

func TestReplayRebuildsIdenticalBook(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.svc.PlaceOrder(book.GoodTillCancel, 1, book.Buy, 100, 10)
	require.NoError(t, err)
	_, _, err = h.svc.PlaceOrder(book.GoodTillCancel, 2, book.Sell, 105, 4)
	require.NoError(t, err)
	_, _, err = h.svc.PlaceOrder(book.FillAndKill, 3, book.Buy, 105, 2)
	require.NoError(t, err)
	_, _, err = h.svc.ModifyOrder(1, book.Buy, 101, 8)
	require.NoError(t, err)
	h.svc.CancelOrder(2)
	require.NoError(t, h.wal.Sync())

	want := h.svc.Depth()

	rebuilt := book.New()
	pool := memory.NewPool(func() *book.Order { return &book.Order{} })
	seqGen := sequence.New(0)
	require.NoError(t, Replay(h.walDir, 0, rebuilt, pool, seqGen, nil))

	require.Equal(t, want, rebuilt.Levels())
	require.Equal(t, h.svc.Size(), rebuilt.Size())
	require.Equal(t, uint64(5), seqGen.Current())
}

func TestSnapshotAndTailReplay(t *testing.T) {
	h := newHarness(t)
	snapDir := t.TempDir()

	_, _, err := h.svc.PlaceOrder(book.GoodTillCancel, 1, book.Buy, 100, 10)
	require.NoError(t, err)
	_, _, err = h.svc.PlaceOrder(book.GoodTillCancel, 2, book.Sell, 110, 5)
	require.NoError(t, err)

	snapSeq, err := h.svc.WriteSnapshot(&snapshot.Writer{Dir: snapDir})
	require.NoError(t, err)
	require.Equal(t, uint64(2), snapSeq)

	// Traffic after the snapshot lands only in the WAL tail.
	_, _, err = h.svc.PlaceOrder(book.GoodTillCancel, 3, book.Buy, 99, 7)
	require.NoError(t, err)
	h.svc.CancelOrder(2)
	require.NoError(t, h.wal.Sync())

	rebuilt := book.New()
	pool := memory.NewPool(func() *book.Order { return &book.Order{} })
	loadedSeq, err := snapshot.Load(snapDir+"/snapshot.bin", rebuilt, pool)
	require.NoError(t, err)
	require.Equal(t, snapSeq, loadedSeq)

	seqGen := sequence.New(0)
	require.NoError(t, Replay(h.walDir, loadedSeq, rebuilt, pool, seqGen, nil))

	require.Equal(t, h.svc.Depth(), rebuilt.Levels())
	require.Equal(t, uint64(4), seqGen.Current())
}

func TestRetiredOrdersAreReclaimed(t *testing.T) {
	h := newHarness(t)

	// A crossing pair fully fills both orders.
	_, _, err := h.svc.PlaceOrder(book.GoodTillCancel, 1, book.Buy, 100, 5)
	require.NoError(t, err)
	_, _, err = h.svc.PlaceOrder(book.GoodTillCancel, 2, book.Sell, 100, 5)
	require.NoError(t, err)

	require.Equal(t, 2, h.ring.Len())

	h.svc.AdvanceEpoch()
	require.Equal(t, 0, h.ring.Len())
}

func TestTradeSeqIsContiguousAcrossCalls(t *testing.T) {
	h := newHarness(t)

	for i := uint64(1); i <= 3; i++ {
		_, _, err := h.svc.PlaceOrder(book.GoodTillCancel, i, book.Buy, 100, 1)
		require.NoError(t, err)
	}
	_, _, err := h.svc.PlaceOrder(book.GoodTillCancel, 10, book.Sell, 100, 3)
	require.NoError(t, err)

	var seqs []uint64
	require.NoError(t, h.outbox.ScanPending(func(e *outbox.Entry) error {
		seqs = append(seqs, e.Seq)
		return nil
	}))
	require.Equal(t, []uint64{1, 2, 3}, seqs)
}
