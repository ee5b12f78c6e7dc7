// Package book implements a per-symbol limit order book: an indexed
// store of individual orders plus two ordered price indices (bids
// descending, asks ascending) that support best-price, price-level,
// full-depth, and VWAP queries.
package book

import "fmt"

// Side is the direction of a resting order.
type Side int

const (
	// Buy is a bid — an order to purchase.
	Buy Side = iota
	// Sell is an ask/offer — an order to sell.
	Sell
)

// String renders the side the way commands spell it: "Buy" or "Sell".
func (s Side) String() string {
	if s == Buy {
		return "Buy"
	}
	return "Sell"
}

// Order is a single resting intent to buy or sell a quantity of a
// symbol at a given price. Orders are identified globally by ID; a
// given ID lives in at most one book at a time.
type Order struct {
	ID       uint64
	Side     Side
	Quantity uint64
	Price    float64
}

// VolumePrice is an aggregated view of one price level: the summed
// quantity of every order resting at Price.
type VolumePrice struct {
	Volume uint64
	Price  float64
}

// PriceLevel pairs the bid-side and ask-side view of one traversal
// step of PriceLevels. Valid is false when that side has no more
// levels to contribute at this step.
type PriceLevel struct {
	Bid      VolumePrice
	BidValid bool
	Ask      VolumePrice
	AskValid bool
}

// FullDepthLevel is PriceLevel plus the order count backing each side,
// as reported by FullDepth.
type FullDepthLevel struct {
	BidOrders uint64
	BidVolume uint64
	BidPrice  float64
	BidValid  bool
	AskOrders uint64
	AskVolume uint64
	AskPrice  float64
	AskValid  bool
}

// BBO is the best bid and best offer of a book. A side with BuyValid
// (or SellValid) false has no resting orders.
type BBO struct {
	Buy      VolumePrice
	BuyValid bool
	Sell     VolumePrice
	SellValid bool
}

// VWAP is the volume-weighted average price of the best requested
// quantity on each side: the cheapest units on the ask side and the
// most expensive units on the bid side. A side that cannot accumulate the requested
// quantity reports Valid false for that side.
type VWAP struct {
	BuyPrice   float64
	BuyValid   bool
	SellPrice  float64
	SellValid  bool
}

// OrderError reports a failed Add, Modify, or Cancel. It always names
// the offending order id, matching the source's error messages.
type OrderError struct {
	Op string
	ID uint64
}

func (e *OrderError) Error() string {
	switch e.Op {
	case "add":
		return fmt.Sprintf("This order already exist: %d", e.ID)
	default:
		return fmt.Sprintf("This order does not exist: %d", e.ID)
	}
}
