package book

import "fmt"

type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "buy"
	}
	return "sell"
}

type OrderType int

const (
	// GoodTillCancel rests in the book until filled or cancelled.
	GoodTillCancel OrderType = iota
	// FillAndKill must cross immediately on submission; any remainder
	// left after its match round is discarded.
	FillAndKill
)

// Order is the mutable fill state of one submitted order.
// The book is its sole owner: the id index and the price level both
// reference the same *Order, but only Book methods create or remove it.
type Order struct {
	ID        uint64
	Type      OrderType
	Side      Side
	Price     int64
	Initial   int64
	Remaining int64

	// Intrusive position within the price level queue. Doubly linked so
	// cancellation unlinks in O(1) without scanning the level.
	next  *Order
	prev  *Order
	level *level
}

// InvalidFillError reports a fill larger than an order's remaining
// quantity. It can only be produced by a bad matched quantity, so it is
// a defect signal, not an input error, and aborts the operation that
// raised it.
type InvalidFillError struct {
	OrderID   uint64
	Requested int64
	Remaining int64
}

func (e *InvalidFillError) Error() string {
	return fmt.Sprintf(
		"order %d cannot fill %d, only %d remaining",
		e.OrderID, e.Requested, e.Remaining,
	)
}

// Fill consumes qty from the remaining quantity.
func (o *Order) Fill(qty int64) error {
	if qty > o.Remaining {
		return &InvalidFillError{
			OrderID:   o.ID,
			Requested: qty,
			Remaining: o.Remaining,
		}
	}
	o.Remaining -= qty
	return nil
}

func (o *Order) IsFilled() bool { return o.Remaining == 0 }

func (o *Order) FilledQuantity() int64 { return o.Initial - o.Remaining }
