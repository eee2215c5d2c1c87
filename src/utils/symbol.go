package utils

import "strings"

// -----------------------------------------------------------------------------

// NormalizeSymbol canonicalizes user input: trim, uppercase, and default
// bare tickers to the NSE suffix. Symbols already carrying an exchange
// suffix, a dash, or a crypto token pass through unchanged.
func NormalizeSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return s
	}
	if strings.Contains(s, ".") || strings.Contains(s, "-") {
		return s
	}
	if IsCryptoPair(s) {
		return s
	}
	return s + ".NS"
}
