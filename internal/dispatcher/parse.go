package dispatcher

import (
	"strconv"
	"strings"

	"github.com/mkhoshkam/feedreplay/internal/book"
)

// commandArity lists the nine recognized commands and the exact
// number of comma-separated arguments each requires.
var commandArity = map[string]int{
	"ORDER ADD":        5,
	"ORDER MODIFY":     3,
	"ORDER CANCEL":     1,
	"SUBSCRIBE BBO":    1,
	"UNSUBSCRIBE BBO":  1,
	"SUBSCRIBE VWAP":   2,
	"UNSUBSCRIBE VWAP": 2,
	"PRINT":            1,
	"PRINT_FULL":       1,
}

// splitCommand separates the command token (the substring up to the
// first comma, or the whole line if there is none) from its
// comma-separated arguments.
func splitCommand(line string) (token string, args []string) {
	idx := strings.IndexByte(line, ',')
	if idx < 0 {
		return line, nil
	}
	return line[:idx], strings.Split(line[idx+1:], ",")
}

func parseOrderID(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, &FieldParseError{Field: "order id", Value: s}
	}
	return v, nil
}

func parseSymbol(s string) (string, error) {
	if s == "" {
		return "", &FieldParseError{Field: "symbol", Value: s}
	}
	return s, nil
}

func parseSide(s string) (book.Side, error) {
	switch s {
	case "Buy":
		return book.Buy, nil
	case "Sell":
		return book.Sell, nil
	default:
		return 0, &FieldParseError{Field: "side", Value: s}
	}
}

func parseQuantity(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, &FieldParseError{Field: "quantity", Value: s}
	}
	return v, nil
}

func parsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &FieldParseError{Field: "price", Value: s}
	}
	return v, nil
}
