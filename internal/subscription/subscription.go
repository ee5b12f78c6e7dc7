// Package subscription tracks BBO and VWAP subscription counts and
// drives the deterministic post-command emission of subscribed
// output lines.
package subscription

import (
	"sort"

	"github.com/mkhoshkam/feedreplay/internal/book"
	"github.com/mkhoshkam/feedreplay/internal/format"
	"github.com/mkhoshkam/feedreplay/internal/sink"
)

// VWAPKey identifies a VWAP subscription: a symbol at a requested
// quantity. Two subscriptions to the same symbol at different
// quantities are independent.
type VWAPKey struct {
	Symbol   string
	Quantity uint64
}

// Engine holds the live subscription counts. Multiple subscribes to
// the same key accumulate; a count reaching zero erases the key so it
// no longer appears in iteration.
type Engine struct {
	bbo  map[string]int
	vwap map[VWAPKey]int
}

// New creates an empty subscription engine.
func New() *Engine {
	return &Engine{
		bbo:  make(map[string]int),
		vwap: make(map[VWAPKey]int),
	}
}

// SubscribeBBO increments the BBO subscription count for symbol.
func (e *Engine) SubscribeBBO(symbol string) {
	e.bbo[symbol]++
}

// UnsubscribeBBO decrements the BBO subscription count for symbol,
// erasing it once it reaches zero. Unsubscribing a symbol with no
// active subscription is a no-op.
func (e *Engine) UnsubscribeBBO(symbol string) {
	if e.bbo[symbol] <= 1 {
		delete(e.bbo, symbol)
		return
	}
	e.bbo[symbol]--
}

// SubscribeVWAP increments the VWAP subscription count for the given
// symbol/quantity pair.
func (e *Engine) SubscribeVWAP(symbol string, quantity uint64) {
	e.vwap[VWAPKey{symbol, quantity}]++
}

// UnsubscribeVWAP decrements the VWAP subscription count for the
// given symbol/quantity pair, erasing it once it reaches zero.
func (e *Engine) UnsubscribeVWAP(symbol string, quantity uint64) {
	k := VWAPKey{symbol, quantity}
	if e.vwap[k] <= 1 {
		delete(e.vwap, k)
		return
	}
	e.vwap[k]--
}

// HasBBO reports whether symbol has an active BBO subscription.
func (e *Engine) HasBBO(symbol string) bool {
	return e.bbo[symbol] > 0
}

// HasVWAP reports whether the symbol/quantity pair has an active VWAP
// subscription.
func (e *Engine) HasVWAP(symbol string, quantity uint64) bool {
	return e.vwap[VWAPKey{symbol, quantity}] > 0
}

// BBOSubsNumber reports how many times symbol has been subscribed for
// BBO (net of unsubscribes).
func (e *Engine) BBOSubsNumber(symbol string) int {
	return e.bbo[symbol]
}

// VWAPSubsNumber reports how many times the symbol/quantity pair has
// been subscribed for VWAP (net of unsubscribes).
func (e *Engine) VWAPSubsNumber(symbol string, quantity uint64) int {
	return e.vwap[VWAPKey{symbol, quantity}]
}

// TotalBBOSubs reports the number of distinct symbols with an active
// BBO subscription.
func (e *Engine) TotalBBOSubs() int {
	return len(e.bbo)
}

// TotalVWAPSubs reports the number of distinct symbol/quantity pairs
// with an active VWAP subscription.
func (e *Engine) TotalVWAPSubs() int {
	return len(e.vwap)
}

// EmitBBO renders one BBO line per subscribed symbol, in ascending
// symbol order. A symbol with no book yet is silently skipped.
func (e *Engine) EmitBBO(lookup func(symbol string) (*book.Book, bool), out sink.OutputFunc) {
	symbols := make([]string, 0, len(e.bbo))
	for s := range e.bbo {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	for _, s := range symbols {
		b, ok := lookup(s)
		if !ok {
			continue
		}
		out(format.BBOLine(s, b.BBO()))
	}
}

// EmitVWAP renders one VWAP line per subscribed symbol/quantity pair,
// in ascending (symbol, quantity) order. A pair with no book yet still
// emits a line with both sides NIL.
func (e *Engine) EmitVWAP(lookup func(symbol string) (*book.Book, bool), out sink.OutputFunc) {
	keys := make([]VWAPKey, 0, len(e.vwap))
	for k := range e.vwap {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Symbol != keys[j].Symbol {
			return keys[i].Symbol < keys[j].Symbol
		}
		return keys[i].Quantity < keys[j].Quantity
	})
	for _, k := range keys {
		b, ok := lookup(k.Symbol)
		if !ok {
			out(format.VWAPLineNoBook(k.Symbol))
			continue
		}
		out(format.VWAPLine(k.Symbol, b.VWAP(k.Quantity)))
	}
}
