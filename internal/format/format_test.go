package format

import (
	"strings"
	"testing"

	"github.com/mkhoshkam/feedreplay/internal/book"
)

func TestBBOLineBothSides(t *testing.T) {
	line := BBOLine("S1", book.BBO{
		Buy: book.VolumePrice{Volume: 20, Price: 10.1}, BuyValid: true,
		Sell: book.VolumePrice{Volume: 5, Price: 11.0}, SellValid: true,
	})
	if !strings.HasPrefix(line, "BBO: S1") {
		t.Errorf("expected line to start with symbol, got %q", line)
	}
	if !strings.Contains(line, "20@10.1") || !strings.Contains(line, "5@11") {
		t.Errorf("expected both fields rendered, got %q", line)
	}
}

func TestBBOLineMissingSide(t *testing.T) {
	line := BBOLine("S1", book.BBO{Buy: book.VolumePrice{Volume: 20, Price: 10.1}, BuyValid: true})
	if strings.Contains(line, "@") == false {
		t.Fatalf("expected a rendered buy field, got %q", line)
	}
	if !strings.Contains(line, "|") {
		t.Errorf("expected column separator, got %q", line)
	}
}

func TestPriceLevelLineBlankSide(t *testing.T) {
	line := PriceLevelLine(book.PriceLevel{Ask: book.VolumePrice{Volume: 5, Price: 11.0}, AskValid: true})
	if !strings.Contains(line, "5@11") {
		t.Errorf("expected ask field rendered, got %q", line)
	}
}

func TestVWAPLineBothValid(t *testing.T) {
	line := VWAPLine("S1", book.VWAP{BuyValid: true, BuyPrice: 72.82, SellValid: true, SellPrice: 73.1})
	if line != "VWAP: S1         <72.82,73.1>" {
		t.Errorf("unexpected vwap line: %q", line)
	}
}

func TestVWAPLineInvalidSide(t *testing.T) {
	line := VWAPLine("S1", book.VWAP{BuyValid: true, BuyPrice: 72.82})
	if !strings.Contains(line, "<72.82,NIL>") {
		t.Errorf("expected NIL sell side, got %q", line)
	}
}

func TestVWAPLineNoBook(t *testing.T) {
	line := VWAPLineNoBook("S1")
	if !strings.Contains(line, "<NIL,NIL>") {
		t.Errorf("expected both sides NIL, got %q", line)
	}
}

func TestFullDepthHeaderAndFooter(t *testing.T) {
	hdr := FullDepthHeaderLines()
	if len(hdr) != 3 {
		t.Fatalf("expected 3 header lines, got %d", len(hdr))
	}
	if hdr[0] != hdr[2] {
		t.Errorf("expected matching top/bottom rules, got %q / %q", hdr[0], hdr[2])
	}
	if FullDepthFooterLine() != hdr[0] {
		t.Errorf("expected footer to match header rule")
	}
}

func TestFullDepthDataLineBlankSide(t *testing.T) {
	l := book.FullDepthLevel{BidValid: true, BidOrders: 2, BidVolume: 50, BidPrice: 10.0}
	line := FullDepthDataLine(l)
	if !strings.Contains(line, "2") || !strings.Contains(line, "50") || !strings.Contains(line, "10") {
		t.Errorf("expected bid fields present, got %q", line)
	}
}
