// Package usecases - ticker.go extracts a market symbol from a price query.
package usecases

import "strings"

// tickerMappings covers common company names whose listed symbol differs
// from the spoken name, including NSE-listed Indian companies.
var tickerMappings = map[string]string{
	"TATA MOTORS": "TATAMOTORS.NS",
	"TATAMOTORS":  "TATAMOTORS.NS",
	"RELIANCE":    "RELIANCE.NS",
	"INFOSYS":     "INFY",
	"WIPRO":       "WIPRO.NS",
	"HDFC BANK":   "HDFCBANK.NS",
	"HDFC":        "HDFCBANK.NS",
	"ICICI BANK":  "ICICIBANK.NS",
	"ICICI":       "ICICIBANK.NS",
	"SBI":         "SBIN.NS",
	"AXIS BANK":   "AXISBANK.NS",
}

// tickerBlacklist holds filler words that can never be a symbol.
var tickerBlacklist = map[string]struct{}{
	"WHAT": {}, "IS": {}, "THE": {}, "PRICE": {}, "STOCK": {}, "OF": {},
	"PLEASE": {}, "CURRENT": {}, "FOR": {}, "TELL": {}, "ME": {}, "A": {},
	"QUOTE": {}, "TICKER": {}, "TODAY": {},
}

// extractTicker pulls a market symbol out of a price query. Known company
// names are mapped first; otherwise the first non-filler word is taken as
// the symbol. Returns "" when nothing plausible is found.
func extractTicker(query string) string {
	cleaned := strings.ToUpper(query)
	for _, phrase := range []string{"STOCK PRICE OF", "WHAT IS THE PRICE OF", "PRICE OF"} {
		cleaned = strings.ReplaceAll(cleaned, phrase, " ")
	}
	cleaned = strings.TrimSpace(cleaned)

	for company, symbol := range tickerMappings {
		if strings.Contains(cleaned, company) {
			return symbol
		}
	}

	for _, word := range strings.Fields(cleaned) {
		word = strings.Trim(word, "?.,!$")
		if word == "" {
			continue
		}
		if _, skip := tickerBlacklist[word]; skip {
			continue
		}
		if !isSymbolWord(word) {
			continue
		}
		return word
	}
	return ""
}

func isSymbolWord(word string) bool {
	for _, r := range word {
		if (r < 'A' || r > 'Z') && r != '.' && r != '-' {
			return false
		}
	}
	return len(word) > 0
}
