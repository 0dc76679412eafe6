package memory

import "testing"

func TestRingEnqueueDequeue(t *testing.T) {
	r := NewRing[int](4)

	for i := 1; i <= 4; i++ {
		if !r.Enqueue(i) {
			t.Fatalf("enqueue %d failed", i)
		}
	}
	if r.Enqueue(5) {
		t.Fatal("enqueue succeeded on full ring")
	}
	if r.Len() != 4 {
		t.Fatalf("expected len 4, got %d", r.Len())
	}

	for i := 1; i <= 4; i++ {
		v, ok := r.Dequeue()
		if !ok || v != i {
			t.Fatalf("dequeue %d: got %d ok=%v", i, v, ok)
		}
	}
	if _, ok := r.Dequeue(); ok {
		t.Fatal("dequeue succeeded on empty ring")
	}
}

func TestRingWrapAround(t *testing.T) {
	r := NewRing[int](2)

	for i := 0; i < 100; i++ {
		if !r.Enqueue(i) {
			t.Fatalf("enqueue %d failed", i)
		}
		v, ok := r.Dequeue()
		if !ok || v != i {
			t.Fatalf("wrap at %d: got %d ok=%v", i, v, ok)
		}
	}
}

func TestRingSizeMustBePowerOfTwo(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non power-of-two size")
		}
	}()
	NewRing[int](3)
}

func TestReclaimDrainsWithNoActiveReaders(t *testing.T) {
	type obj struct{ id int }

	clock := &Clock{}
	ring := NewRing[*obj](8)
	pool := NewPool(func() *obj { return &obj{} })
	reader := NewReaderEpoch()

	for i := 0; i < 5; i++ {
		ring.Enqueue(&obj{id: i})
	}

	Reclaim(clock, ring, pool, reader)
	if ring.Len() != 0 {
		t.Fatalf("expected empty ring, %d left", ring.Len())
	}
}

func TestReclaimBlockedByActiveReader(t *testing.T) {
	type obj struct{ id int }

	clock := &Clock{}
	ring := NewRing[*obj](8)
	pool := NewPool(func() *obj { return &obj{} })
	reader := NewReaderEpoch()

	ring.Enqueue(&obj{id: 1})
	ring.Enqueue(&obj{id: 2})

	reader.Enter(clock)
	Reclaim(clock, ring, pool, reader)
	if ring.Len() != 2 {
		t.Fatalf("reclaim freed objects under an active reader, %d left", ring.Len())
	}

	reader.Exit()
	Reclaim(clock, ring, pool, reader)
	if ring.Len() != 0 {
		t.Fatalf("expected drain after reader exit, %d left", ring.Len())
	}
}

func TestMinReaderEpoch(t *testing.T) {
	clock := &Clock{}
	clock.Advance()
	clock.Advance()

	a := NewReaderEpoch()
	b := NewReaderEpoch()

	if minReaderEpoch(a, b) != inactive {
		t.Fatal("expected inactive with no readers entered")
	}

	a.Enter(clock)
	if got := minReaderEpoch(a, b); got != 2 {
		t.Fatalf("expected epoch 2, got %d", got)
	}
	if minReaderEpoch(nil, a) != 2 {
		t.Fatal("nil readers should be skipped")
	}
}

func TestPoolReuse(t *testing.T) {
	type obj struct{ n int }
	pool := NewPool(func() *obj { return &obj{} })

	o := pool.Get()
	o.n = 42
	pool.Put(o)

	// Not guaranteed to be the same object, but Get must always
	// return something usable.
	if pool.Get() == nil {
		t.Fatal("pool returned nil")
	}
}
