package http

import (
	"errors"
	"regexp"
	"strings"
)

var symbolPattern = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,9}$`)

var errInvalidSymbol = errors.New("invalid stock symbol")

// parseSymbol upper-cases raw and checks it looks like a ticker.
func parseSymbol(raw string) (string, error) {
	symbol := strings.ToUpper(strings.TrimSpace(raw))
	if !symbolPattern.MatchString(symbol) {
		return "", errInvalidSymbol
	}
	return symbol, nil
}
