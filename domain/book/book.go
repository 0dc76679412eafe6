package book

import "github.com/tidwall/btree"

// Book is the matching core for a single instrument: two price ladders,
// an id index into them, and the matching loop. It is a synchronous,
// single-threaded structure; callers sharing one instance must
// serialize mutations externally.
type Book struct {
	bids  btree.Map[int64, *level]
	asks  btree.Map[int64, *level]
	index map[uint64]*Order

	// retire is called once for every order the book is finished with:
	// fully filled, cancelled, or never admitted. Wired by the service
	// layer for pool reclamation; nil is a no-op.
	retire func(*Order)
}

func New() *Book {
	return &Book{index: make(map[uint64]*Order)}
}

// OnRetire installs the retirement hook.
func (b *Book) OnRetire(fn func(*Order)) { b.retire = fn }

// Has reports whether an order with this id is resting.
func (b *Book) Has(id uint64) bool {
	_, ok := b.index[id]
	return ok
}

// Size is the number of resting orders.
func (b *Book) Size() int { return len(b.index) }

// CanMatch reports whether an order at price on side would cross the
// opposite ladder right now.
func (b *Book) CanMatch(side Side, price int64) bool {
	if side == Buy {
		best, _, ok := b.asks.Min()
		return ok && price >= best
	}
	best, _, ok := b.bids.Max()
	return ok && price <= best
}

// AddOrder admits o and runs the matching loop, returning the trades
// produced by this call. Duplicate ids and FillAndKill orders that
// cannot cross are silent no-ops. A non-nil error is an InvalidFillError
// and aborts matching mid-call.
func (b *Book) AddOrder(o *Order) (Trades, error) {
	if _, ok := b.index[o.ID]; ok {
		b.drop(o)
		return nil, nil
	}
	if o.Type == FillAndKill && !b.CanMatch(o.Side, o.Price) {
		b.drop(o)
		return nil, nil
	}

	ladder := &b.asks
	if o.Side == Buy {
		ladder = &b.bids
	}
	lvl, ok := ladder.Get(o.Price)
	if !ok {
		lvl = &level{price: o.Price}
		ladder.Set(o.Price, lvl)
	}
	lvl.enqueue(o)
	b.index[o.ID] = o

	return b.match()
}

// CancelOrder removes a resting order. Unknown ids are a no-op. The
// level unlink, empty-level removal, and index delete happen as one
// step; no intermediate state is observable.
func (b *Book) CancelOrder(id uint64) {
	o, ok := b.index[id]
	if !ok {
		return
	}
	b.remove(o)
}

// ModifyOrder cancels the existing order and resubmits it with the
// requested side/price/quantity and the preserved original type. The
// order loses its time priority and is matched as a fresh submission.
func (b *Book) ModifyOrder(m OrderModify) (Trades, error) {
	o, ok := b.index[m.ID]
	if !ok {
		return nil, nil
	}
	otype := o.Type
	b.remove(o)
	return b.AddOrder(m.ToOrder(otype))
}

// Levels aggregates remaining quantity per occupied price level,
// best-to-worst on each side.
func (b *Book) Levels() LevelBook {
	lb := LevelBook{
		Bids: make([]LevelInfo, 0, b.bids.Len()),
		Asks: make([]LevelInfo, 0, b.asks.Len()),
	}
	b.bids.Reverse(func(price int64, lvl *level) bool {
		lb.Bids = append(lb.Bids, LevelInfo{Price: price, Qty: lvl.totalQty})
		return true
	})
	b.asks.Scan(func(price int64, lvl *level) bool {
		lb.Asks = append(lb.Asks, LevelInfo{Price: price, Qty: lvl.totalQty})
		return true
	})
	return lb
}

// BidsWalk visits resting bids best price first, arrival order within a
// level. Orders must be treated as read-only.
func (b *Book) BidsWalk(visit func(*Order)) {
	b.bids.Reverse(func(_ int64, lvl *level) bool {
		for o := lvl.head; o != nil; o = o.next {
			visit(o)
		}
		return true
	})
}

// AsksWalk visits resting asks best price first.
func (b *Book) AsksWalk(visit func(*Order)) {
	b.asks.Scan(func(_ int64, lvl *level) bool {
		for o := lvl.head; o != nil; o = o.next {
			visit(o)
		}
		return true
	})
}

// match drains crossed liquidity. Invoked after every insertion; on
// return either one ladder is empty or bestBid < bestAsk.
func (b *Book) match() (Trades, error) {
	var trades Trades
	for {
		bidPrice, bidLvl, ok := b.bids.Max()
		if !ok {
			break
		}
		askPrice, askLvl, ok := b.asks.Min()
		if !ok {
			break
		}
		if bidPrice < askPrice {
			break
		}

		for !bidLvl.empty() && !askLvl.empty() {
			bid, ask := bidLvl.head, askLvl.head
			qty := min(bid.Remaining, ask.Remaining)

			if err := bid.Fill(qty); err != nil {
				return trades, err
			}
			if err := ask.Fill(qty); err != nil {
				return trades, err
			}
			bidLvl.totalQty -= qty
			askLvl.totalQty -= qty

			trades = append(trades, Trade{
				Bid: TradeInfo{OrderID: bid.ID, Price: bid.Price, Qty: qty},
				Ask: TradeInfo{OrderID: ask.ID, Price: ask.Price, Qty: qty},
			})

			if bid.IsFilled() {
				b.remove(bid)
			}
			if ask.IsFilled() {
				b.remove(ask)
			}
		}
	}

	// A FillAndKill order never rests once its triggering call returns.
	if _, lvl, ok := b.bids.Max(); ok {
		if o := lvl.head; o.Type == FillAndKill {
			b.CancelOrder(o.ID)
		}
	}
	if _, lvl, ok := b.asks.Min(); ok {
		if o := lvl.head; o.Type == FillAndKill {
			b.CancelOrder(o.ID)
		}
	}
	return trades, nil
}

// remove takes o out of its level, its ladder if the level empties, and
// the index, then retires it.
func (b *Book) remove(o *Order) {
	lvl := o.level
	side := o.Side
	lvl.unlink(o)
	if lvl.empty() {
		if side == Buy {
			b.bids.Delete(lvl.price)
		} else {
			b.asks.Delete(lvl.price)
		}
	}
	delete(b.index, o.ID)
	b.drop(o)
}

func (b *Book) drop(o *Order) {
	if b.retire != nil {
		b.retire(o)
	}
}
