// Package dispatcher parses feed command lines, routes them to the
// right per-symbol book, maintains the order-id to symbol registry,
// and drives subscription emission after every command.
package dispatcher

import (
	"fmt"

	"github.com/mkhoshkam/feedreplay/internal/book"
	"github.com/mkhoshkam/feedreplay/internal/format"
	"github.com/mkhoshkam/feedreplay/internal/sink"
	"github.com/mkhoshkam/feedreplay/internal/subscription"
)

// Dispatcher owns every book, the order-id to symbol registry, and
// subscription state for one replay run.
type Dispatcher struct {
	selectedSymbol string
	hasSelected    bool

	books        map[string]*book.Book
	orderSymbols map[uint64]string
	subs         *subscription.Engine

	output sink.OutputFunc
	errOut sink.ErrorFunc
}

// New creates a dispatcher. An empty selectedSymbol means no filter:
// every command is handled regardless of symbol.
func New(selectedSymbol string, output sink.OutputFunc, errOut sink.ErrorFunc) *Dispatcher {
	return &Dispatcher{
		selectedSymbol: selectedSymbol,
		hasSelected:    selectedSymbol != "",
		books:          make(map[string]*book.Book),
		orderSymbols:   make(map[uint64]string),
		subs:           subscription.New(),
		output:         output,
		errOut:         errOut,
	}
}

// ProcessCommand parses and dispatches one input line. Errors never
// propagate to the caller: they are reported once via the error sink
// and the command is abandoned without mutating state. Subscription
// output is emitted after every call, including ones that errored or
// were filtered out.
func (d *Dispatcher) ProcessCommand(line string) {
	defer d.emitSubscriptions()

	token, args := splitCommand(line)
	arity, known := commandArity[token]
	if !known {
		d.fail(line, UnknownCommandError{})
		return
	}
	if len(args) != arity {
		d.fail(line, ArityMismatchError{})
		return
	}

	switch token {
	case "ORDER ADD":
		d.processOrderAdd(line, args)
	case "ORDER MODIFY":
		d.processOrderModify(line, args)
	case "ORDER CANCEL":
		d.processOrderCancel(line, args)
	case "SUBSCRIBE BBO":
		d.processSubscribeBBO(line, args)
	case "UNSUBSCRIBE BBO":
		d.processUnsubscribeBBO(line, args)
	case "SUBSCRIBE VWAP":
		d.processSubscribeVWAP(line, args)
	case "UNSUBSCRIBE VWAP":
		d.processUnsubscribeVWAP(line, args)
	case "PRINT":
		d.processPrint(line, args)
	case "PRINT_FULL":
		d.processPrintFull(line, args)
	}
}

func (d *Dispatcher) processOrderAdd(line string, args []string) {
	id, err := parseOrderID(args[0])
	if err != nil {
		d.fail(line, err)
		return
	}
	symbol, err := parseSymbol(args[1])
	if err != nil {
		d.fail(line, err)
		return
	}
	if d.filtered(symbol) {
		return
	}
	side, err := parseSide(args[2])
	if err != nil {
		d.fail(line, err)
		return
	}
	qty, err := parseQuantity(args[3])
	if err != nil {
		d.fail(line, err)
		return
	}
	price, err := parsePrice(args[4])
	if err != nil {
		d.fail(line, err)
		return
	}

	if _, exists := d.orderSymbols[id]; exists {
		d.fail(line, &BookOpFailedError{msg: fmt.Sprintf("This order already exist: %d", id)})
		return
	}
	b, ok := d.books[symbol]
	if !ok {
		b = book.NewBook(symbol)
		d.books[symbol] = b
	}
	if err := b.Add(id, side, qty, price); err != nil {
		d.fail(line, &BookOpFailedError{msg: err.Error()})
		return
	}
	d.orderSymbols[id] = symbol
}

func (d *Dispatcher) processOrderModify(line string, args []string) {
	id, err := parseOrderID(args[0])
	if err != nil {
		d.fail(line, err)
		return
	}
	qty, err := parseQuantity(args[1])
	if err != nil {
		d.fail(line, err)
		return
	}
	price, err := parsePrice(args[2])
	if err != nil {
		d.fail(line, err)
		return
	}

	symbol, ok := d.orderSymbols[id]
	if !ok {
		d.fail(line, &BookOpFailedError{msg: fmt.Sprintf("This order does not exist: %d", id)})
		return
	}
	if d.filtered(symbol) {
		return
	}
	if err := d.books[symbol].Modify(id, qty, price); err != nil {
		d.fail(line, &BookOpFailedError{msg: err.Error()})
	}
}

func (d *Dispatcher) processOrderCancel(line string, args []string) {
	id, err := parseOrderID(args[0])
	if err != nil {
		d.fail(line, err)
		return
	}

	symbol, ok := d.orderSymbols[id]
	if !ok {
		d.fail(line, &BookOpFailedError{msg: fmt.Sprintf("This order does not exist: %d", id)})
		return
	}
	if d.filtered(symbol) {
		return
	}
	if err := d.books[symbol].Cancel(id); err != nil {
		d.fail(line, &BookOpFailedError{msg: err.Error()})
		return
	}
	delete(d.orderSymbols, id)
}

func (d *Dispatcher) processSubscribeBBO(line string, args []string) {
	symbol, err := parseSymbol(args[0])
	if err != nil {
		d.fail(line, err)
		return
	}
	if d.filtered(symbol) {
		return
	}
	d.subs.SubscribeBBO(symbol)
}

// processUnsubscribeBBO deliberately never checks the symbol filter,
// preserving the asymmetry with processSubscribeBBO: decrementing a
// counter that could never have been incremented is already a safe
// no-op.
func (d *Dispatcher) processUnsubscribeBBO(line string, args []string) {
	symbol, err := parseSymbol(args[0])
	if err != nil {
		d.fail(line, err)
		return
	}
	d.subs.UnsubscribeBBO(symbol)
}

func (d *Dispatcher) processSubscribeVWAP(line string, args []string) {
	symbol, err := parseSymbol(args[0])
	if err != nil {
		d.fail(line, err)
		return
	}
	qty, err := parseQuantity(args[1])
	if err != nil {
		d.fail(line, err)
		return
	}
	if d.filtered(symbol) {
		return
	}
	d.subs.SubscribeVWAP(symbol, qty)
}

func (d *Dispatcher) processUnsubscribeVWAP(line string, args []string) {
	symbol, err := parseSymbol(args[0])
	if err != nil {
		d.fail(line, err)
		return
	}
	qty, err := parseQuantity(args[1])
	if err != nil {
		d.fail(line, err)
		return
	}
	if d.filtered(symbol) {
		return
	}
	d.subs.UnsubscribeVWAP(symbol, qty)
}

func (d *Dispatcher) processPrint(line string, args []string) {
	symbol, err := parseSymbol(args[0])
	if err != nil {
		d.fail(line, err)
		return
	}
	if d.filtered(symbol) {
		return
	}
	b, ok := d.books[symbol]
	if !ok {
		return
	}
	b.PriceLevels(func(lvl book.PriceLevel) {
		d.output(format.PriceLevelLine(lvl))
	})
}

func (d *Dispatcher) processPrintFull(line string, args []string) {
	symbol, err := parseSymbol(args[0])
	if err != nil {
		d.fail(line, err)
		return
	}
	if d.filtered(symbol) {
		return
	}
	b, ok := d.books[symbol]
	if !ok {
		return
	}
	for _, h := range format.FullDepthHeaderLines() {
		d.output(h)
	}
	b.FullDepth(func(l book.FullDepthLevel) {
		d.output(format.FullDepthDataLine(l))
	})
	d.output(format.FullDepthFooterLine())
}

func (d *Dispatcher) emitSubscriptions() {
	if d.subs.TotalBBOSubs() > 0 {
		d.subs.EmitBBO(d.Book, d.output)
	}
	if d.subs.TotalVWAPSubs() > 0 {
		d.subs.EmitVWAP(d.Book, d.output)
	}
}

func (d *Dispatcher) filtered(symbol string) bool {
	return d.hasSelected && symbol != d.selectedSymbol
}

func (d *Dispatcher) fail(line string, err error) {
	if d.errOut != nil {
		d.errOut(line, err)
	}
}

// Book looks up the book for symbol, if one has been created.
func (d *Dispatcher) Book(symbol string) (*book.Book, bool) {
	b, ok := d.books[symbol]
	return b, ok
}

// HasSelectedSymbol reports whether this dispatcher was configured
// with a symbol filter.
func (d *Dispatcher) HasSelectedSymbol() bool { return d.hasSelected }

// SelectedSymbol returns the configured symbol filter, or the empty
// string if none is set.
func (d *Dispatcher) SelectedSymbol() string { return d.selectedSymbol }

// NumberOrderBooks reports how many distinct symbols have a book.
func (d *Dispatcher) NumberOrderBooks() int { return len(d.books) }

// HasSymbolForOrder reports whether id currently lives in some book.
func (d *Dispatcher) HasSymbolForOrder(id uint64) bool {
	_, ok := d.orderSymbols[id]
	return ok
}

// SymbolForOrder returns the symbol id currently lives in, or the
// empty string if id is unknown.
func (d *Dispatcher) SymbolForOrder(id uint64) string { return d.orderSymbols[id] }

// TotalBBOSubs reports the number of distinct symbols with an active
// BBO subscription.
func (d *Dispatcher) TotalBBOSubs() int { return d.subs.TotalBBOSubs() }

// BBOSubsNumber reports the live BBO subscription count for symbol.
func (d *Dispatcher) BBOSubsNumber(symbol string) int { return d.subs.BBOSubsNumber(symbol) }

// TotalVWAPSubs reports the number of distinct (symbol, quantity)
// pairs with an active VWAP subscription.
func (d *Dispatcher) TotalVWAPSubs() int { return d.subs.TotalVWAPSubs() }

// VWAPSubsNumber reports the live VWAP subscription count for the
// given (symbol, quantity) pair.
func (d *Dispatcher) VWAPSubsNumber(symbol string, quantity uint64) int {
	return d.subs.VWAPSubsNumber(symbol, quantity)
}
