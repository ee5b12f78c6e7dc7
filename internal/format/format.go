// Package format renders the deterministic, fixed-width text output
// lines the feed replayer emits: BBO, price-level (PRINT), full-depth
// (PRINT_FULL), and VWAP lines.
package format

import (
	"fmt"
	"strings"

	"github.com/mkhoshkam/feedreplay/internal/book"
)

const (
	depthRuleWidth = 60
	depthColWidth  = 10
)

func levelField(valid bool, volume uint64, price float64) string {
	if !valid {
		return " "
	}
	return fmt.Sprintf("%d@%v", volume, price)
}

// BBOLine renders: "BBO: <sym:10><field1:20> | <field2:20>".
func BBOLine(symbol string, bbo book.BBO) string {
	buy := levelField(bbo.BuyValid, bbo.Buy.Volume, bbo.Buy.Price)
	sell := levelField(bbo.SellValid, bbo.Sell.Volume, bbo.Sell.Price)
	return fmt.Sprintf("BBO: %-10s%-20s | %-20s", symbol, buy, sell)
}

// PriceLevelLine renders one PRINT line: "<field1:20> | <field2:20>".
func PriceLevelLine(pl book.PriceLevel) string {
	bid := levelField(pl.BidValid, pl.Bid.Volume, pl.Bid.Price)
	ask := levelField(pl.AskValid, pl.Ask.Volume, pl.Ask.Price)
	return fmt.Sprintf("%-20s | %-20s", bid, ask)
}

// VWAPLine renders: "VWAP: <sym:10> <<buy>,<sell>>", NIL for an
// invalid side.
func VWAPLine(symbol string, v book.VWAP) string {
	buy := "NIL"
	if v.BuyValid {
		buy = fmt.Sprintf("%v", v.BuyPrice)
	}
	sell := "NIL"
	if v.SellValid {
		sell = fmt.Sprintf("%v", v.SellPrice)
	}
	return fmt.Sprintf("VWAP: %-10s <%s,%s>", symbol, buy, sell)
}

// VWAPLineNoBook renders the line emitted for a VWAP subscription
// whose symbol has no book yet: both sides NIL.
func VWAPLineNoBook(symbol string) string {
	return fmt.Sprintf("VWAP: %-10s <NIL,NIL>", symbol)
}

// FullDepthHeaderLines returns the three header lines PRINT_FULL
// emits before any data line: a dash rule, the column header, and
// another dash rule.
func FullDepthHeaderLines() []string {
	rule := strings.Repeat("-", depthRuleWidth)
	header := fmt.Sprintf("%-10s%-10s%-10s%-10s%-10s%-10s",
		"orders", "volume", "bid", "ask", "volume", "orders")
	return []string{rule, header, rule}
}

// FullDepthFooterLine is the trailing dash rule PRINT_FULL emits
// after the last data line.
func FullDepthFooterLine() string {
	return strings.Repeat("-", depthRuleWidth)
}

// FullDepthDataLine renders one PRINT_FULL data line: six width-10
// columns, bid side first (orders, volume, price) then ask side
// (orders, volume, price). An invalid side renders as three blank
// columns.
func FullDepthDataLine(l book.FullDepthLevel) string {
	return depthSide(l.BidValid, l.BidOrders, l.BidVolume, l.BidPrice) +
		depthSide(l.AskValid, l.AskOrders, l.AskVolume, l.AskPrice)
}

func depthSide(valid bool, orders, volume uint64, price float64) string {
	if !valid {
		blank := fmt.Sprintf("%-*s", depthColWidth, " ")
		return blank + blank + blank
	}
	return fmt.Sprintf("%-*d%-*d%-*v", depthColWidth, orders, depthColWidth, volume, depthColWidth, price)
}
