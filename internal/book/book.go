package book

import (
	"sort"

	"github.com/tidwall/btree"
)

// level is one price bucket: the resting order ids at that price, kept
// in ascending id order so iteration is deterministic.
type level struct {
	price float64
	ids   []uint64
}

// Book is the order book for a single symbol. The owning map of Order
// records is keyed by id; the side trees hold only ids grouped by
// price, avoiding any aliasing between the two (see DESIGN.md).
//
// Price is a float64 and price levels are looked up by direct
// equality, matching the source this book is ported from. This is a
// known hazard for NaN, signed zero, and accumulated rounding error —
// accepted here rather than silently introduced as a fixed-point type,
// per this engine's design notes.
type Book struct {
	symbol string
	orders map[uint64]Order
	bids   *btree.BTreeG[*level]
	asks   *btree.BTreeG[*level]
}

// NewBook creates an empty order book for symbol.
func NewBook(symbol string) *Book {
	return &Book{
		symbol: symbol,
		orders: make(map[uint64]Order),
		bids:   btree.NewBTreeG(func(a, b *level) bool { return a.price > b.price }),
		asks:   btree.NewBTreeG(func(a, b *level) bool { return a.price < b.price }),
	}
}

// Symbol returns the symbol this book was created for.
func (b *Book) Symbol() string {
	return b.symbol
}

// Add inserts a new order. It fails if id is already present.
func (b *Book) Add(id uint64, side Side, quantity uint64, price float64) error {
	if _, exists := b.orders[id]; exists {
		return &OrderError{Op: "add", ID: id}
	}
	b.orders[id] = Order{ID: id, Side: side, Quantity: quantity, Price: price}
	b.insert(side, price, id)
	return nil
}

// Modify updates the quantity and price of an existing order. The
// side is preserved. This is cancel-and-reinsert on the same side:
// queue position relative to other orders at the new price is not
// preserved.
func (b *Book) Modify(id uint64, quantity uint64, price float64) error {
	o, ok := b.orders[id]
	if !ok {
		return &OrderError{Op: "modify", ID: id}
	}
	b.remove(o.Side, o.Price, id)
	o.Quantity = quantity
	o.Price = price
	b.orders[id] = o
	b.insert(o.Side, price, id)
	return nil
}

// Cancel removes an existing order.
func (b *Book) Cancel(id uint64) error {
	o, ok := b.orders[id]
	if !ok {
		return &OrderError{Op: "cancel", ID: id}
	}
	b.remove(o.Side, o.Price, id)
	delete(b.orders, id)
	return nil
}

// Get looks up an order by id. It never fails; absence is reported via
// the second return value.
func (b *Book) Get(id uint64) (Order, bool) {
	o, ok := b.orders[id]
	return o, ok
}

// BBO reports the best bid and best offer. A side with no resting
// orders reports Valid false for that side.
func (b *Book) BBO() BBO {
	var out BBO
	if lvl, ok := b.bids.Min(); ok {
		out.Buy = b.volumePrice(lvl)
		out.BuyValid = true
	}
	if lvl, ok := b.asks.Min(); ok {
		out.Sell = b.volumePrice(lvl)
		out.SellValid = true
	}
	return out
}

// PriceLevels visits paired price levels, best-first on each side
// simultaneously: while both sides have levels remaining it emits
// (bid, ask) pairs, then drains whichever side is longer.
func (b *Book) PriceLevels(visit func(PriceLevel)) {
	bids := b.orderedLevels(Buy)
	asks := b.orderedLevels(Sell)
	i, j := 0, 0
	for i < len(bids) && j < len(asks) {
		visit(PriceLevel{
			Bid: b.volumePrice(bids[i]), BidValid: true,
			Ask: b.volumePrice(asks[j]), AskValid: true,
		})
		i++
		j++
	}
	for i < len(bids) {
		visit(PriceLevel{Bid: b.volumePrice(bids[i]), BidValid: true})
		i++
	}
	for j < len(asks) {
		visit(PriceLevel{Ask: b.volumePrice(asks[j]), AskValid: true})
		j++
	}
}

// Levels is a pull-based convenience wrapper around PriceLevels for
// callers that want a materialized slice instead of a visitor.
func (b *Book) Levels() []PriceLevel {
	var out []PriceLevel
	b.PriceLevels(func(pl PriceLevel) { out = append(out, pl) })
	return out
}

// FullDepth visits paired price levels exactly like PriceLevels, but
// each entry additionally reports the order count at that price.
func (b *Book) FullDepth(visit func(FullDepthLevel)) {
	bids := b.orderedLevels(Buy)
	asks := b.orderedLevels(Sell)
	i, j := 0, 0
	for i < len(bids) && j < len(asks) {
		visit(b.fullLine(bids[i], asks[j]))
		i++
		j++
	}
	for i < len(bids) {
		visit(b.fullLine(bids[i], nil))
		i++
	}
	for j < len(asks) {
		visit(b.fullLine(nil, asks[j]))
		j++
	}
}

// VWAP returns the volume-weighted average price of the cheapest qty
// units on the ask side and the most-expensive qty units on the bid
// side. A side that never accumulates qty units reports Valid false
// for that side.
func (b *Book) VWAP(qty uint64) VWAP {
	var out VWAP
	out.BuyValid, out.BuyPrice = b.vwapSide(Buy, qty)
	out.SellValid, out.SellPrice = b.vwapSide(Sell, qty)
	return out
}

func (b *Book) vwapSide(side Side, qty uint64) (bool, float64) {
	if qty == 0 {
		return false, 0
	}
	var found uint64
	var cost float64
	for _, lvl := range b.orderedLevels(side) {
		for _, id := range lvl.ids {
			o := b.orders[id]
			remaining := qty - found
			if o.Quantity >= remaining {
				cost += float64(remaining) * o.Price
				found = qty
				break
			}
			found += o.Quantity
			cost += float64(o.Quantity) * o.Price
		}
		if found >= qty {
			break
		}
	}
	if found >= qty {
		return true, cost / float64(qty)
	}
	return false, 0
}

func (b *Book) orderedLevels(side Side) []*level {
	var out []*level
	b.treeFor(side).Scan(func(item *level) bool {
		out = append(out, item)
		return true
	})
	return out
}

func (b *Book) volumePrice(l *level) VolumePrice {
	var total uint64
	for _, id := range l.ids {
		total += b.orders[id].Quantity
	}
	return VolumePrice{Volume: total, Price: l.price}
}

func (b *Book) fullLine(bid, ask *level) FullDepthLevel {
	var out FullDepthLevel
	if bid != nil {
		vp := b.volumePrice(bid)
		out.BidValid = true
		out.BidOrders = uint64(len(bid.ids))
		out.BidVolume = vp.Volume
		out.BidPrice = vp.Price
	}
	if ask != nil {
		vp := b.volumePrice(ask)
		out.AskValid = true
		out.AskOrders = uint64(len(ask.ids))
		out.AskVolume = vp.Volume
		out.AskPrice = vp.Price
	}
	return out
}

func (b *Book) treeFor(side Side) *btree.BTreeG[*level] {
	if side == Buy {
		return b.bids
	}
	return b.asks
}

func (b *Book) insert(side Side, price float64, id uint64) {
	tree := b.treeFor(side)
	lvl, ok := tree.Get(&level{price: price})
	if !ok {
		lvl = &level{price: price}
		tree.Set(lvl)
	}
	lvl.ids = insertSorted(lvl.ids, id)
}

func (b *Book) remove(side Side, price float64, id uint64) {
	tree := b.treeFor(side)
	lvl, ok := tree.Get(&level{price: price})
	if !ok {
		return
	}
	i := sort.Search(len(lvl.ids), func(i int) bool { return lvl.ids[i] >= id })
	if i < len(lvl.ids) && lvl.ids[i] == id {
		lvl.ids = append(lvl.ids[:i], lvl.ids[i+1:]...)
	}
	if len(lvl.ids) == 0 {
		tree.Delete(&level{price: price})
	}
}

func insertSorted(ids []uint64, id uint64) []uint64 {
	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}
