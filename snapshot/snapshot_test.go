package snapshot

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"lob/domain/book"
	"lob/infra/memory"
)

func TestWriteLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	b := book.New()
	orders := []*book.Order{
		{ID: 1, Type: book.GoodTillCancel, Side: book.Buy, Price: 100, Initial: 10, Remaining: 10},
		{ID: 2, Type: book.GoodTillCancel, Side: book.Buy, Price: 99, Initial: 5, Remaining: 5},
		{ID: 3, Type: book.GoodTillCancel, Side: book.Sell, Price: 105, Initial: 7, Remaining: 7},
	}
	for _, o := range orders {
		_, err := b.AddOrder(o)
		require.NoError(t, err)
	}

	clock := &memory.Clock{}
	w := &Writer{Dir: dir}
	require.NoError(t, w.Write(42, b, NewReader(clock)))

	rebuilt := book.New()
	pool := memory.NewPool(func() *book.Order { return &book.Order{} })
	seq, err := Load(filepath.Join(dir, "snapshot.bin"), rebuilt, pool)
	require.NoError(t, err)
	require.Equal(t, uint64(42), seq)

	require.Equal(t, b.Size(), rebuilt.Size())
	require.Equal(t, b.Levels(), rebuilt.Levels())
}

func TestLoadMissingFileIsClean(t *testing.T) {
	b := book.New()
	pool := memory.NewPool(func() *book.Order { return &book.Order{} })

	seq, err := Load(filepath.Join(t.TempDir(), "snapshot.bin"), b, pool)
	require.NoError(t, err)
	require.Equal(t, uint64(0), seq)
	require.Equal(t, 0, b.Size())
}

func TestWriteIsAtomic(t *testing.T) {
	dir := t.TempDir()

	b := book.New()
	_, err := b.AddOrder(&book.Order{
		ID: 1, Type: book.GoodTillCancel, Side: book.Buy,
		Price: 10, Initial: 1, Remaining: 1,
	})
	require.NoError(t, err)

	w := &Writer{Dir: dir}
	require.NoError(t, w.Write(1, b, NewReader(&memory.Clock{})))

	// No temp file left behind after a successful write.
	require.NoFileExists(t, filepath.Join(dir, "snapshot.bin.tmp"))
	require.FileExists(t, filepath.Join(dir, "snapshot.bin"))
}

func TestReaderEpochLifecycle(t *testing.T) {
	clock := &memory.Clock{}
	clock.Advance()

	r := NewReader(clock)
	require.Equal(t, ^uint64(0), r.Epoch().Value())

	r.Begin()
	require.Equal(t, uint64(1), r.Epoch().Value())

	r.End()
	require.Equal(t, ^uint64(0), r.Epoch().Value())
}
