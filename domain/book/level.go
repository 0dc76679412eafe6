package book

// level is the FIFO queue of resting orders at one price. Arrival order
// is preserved: matching drains from head, new orders append at tail.
type level struct {
	price    int64
	head     *Order
	tail     *Order
	totalQty int64
	count    int
}

func (l *level) enqueue(o *Order) {
	if l.head == nil {
		l.head = o
	} else {
		l.tail.next = o
		o.prev = l.tail
	}
	l.tail = o
	o.level = l
	l.totalQty += o.Remaining
	l.count++
}

// unlink removes o from the queue. o.Remaining must already reflect any
// fills; totalQty is kept in sync by the matching loop.
func (l *level) unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		l.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		l.tail = o.prev
	}
	o.next, o.prev, o.level = nil, nil, nil
	l.totalQty -= o.Remaining
	l.count--
}

func (l *level) empty() bool { return l.head == nil }

// LevelInfo is the per-price aggregate used for depth reporting.
type LevelInfo struct {
	Price int64
	Qty   int64
}

// LevelBook holds both sides of the depth view, each ordered
// best-to-worst: bids by price descending, asks ascending.
type LevelBook struct {
	Bids []LevelInfo
	Asks []LevelInfo
}
