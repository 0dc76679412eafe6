package book

// TradeInfo is one leg of a trade. Price is the resting price of the
// order on that leg, not the aggressor's price.
type TradeInfo struct {
	OrderID uint64
	Price   int64
	Qty     int64
}

// Trade pairs the bid and ask legs of one matched quantity. Trades are
// reports only; the book never references them again.
type Trade struct {
	Bid TradeInfo
	Ask TradeInfo
}

type Trades []Trade

// OrderModify requests a price/quantity/side change for a live order.
// It is consumed once: the existing order is cancelled and a brand-new
// order (same id, original type, no time priority) re-enters the book.
type OrderModify struct {
	ID    uint64
	Side  Side
	Price int64
	Qty   int64
}

// ToOrder builds the replacement order, preserving the original type.
func (m OrderModify) ToOrder(t OrderType) *Order {
	return &Order{
		ID:        m.ID,
		Type:      t,
		Side:      m.Side,
		Price:     m.Price,
		Initial:   m.Qty,
		Remaining: m.Qty,
	}
}
