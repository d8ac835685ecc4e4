// Package format holds the pure display-formatting helpers shared by the
// CLI output and the TUI views.
package format

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Duration renders an accumulated duration in milliseconds as HH:MM:SS with
// each field zero-padded to two digits. Hours are not wrapped at 24.
func Duration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalSeconds := ms / 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// symbols covers the currencies the backend is known to bill in. Codes
// outside the map fall back to "<CODE> " as a prefix.
var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"JPY": "¥",
	"AUD": "A$",
	"CAD": "CA$",
}

// Currency renders an amount with the currency's symbol and two-decimal
// locale grouping, e.g. Currency(1234.5, "USD") == "$1,234.50". INR uses the
// Indian grouping convention.
func Currency(amount float64, code string) string {
	tag := language.English
	if code == "INR" {
		tag = language.MustParse("en-IN")
	}
	sym, ok := symbols[code]
	if !ok {
		if unit, err := currency.ParseISO(code); err == nil {
			sym = unit.String() + " "
		} else {
			sym = code + " "
		}
	}
	p := message.NewPrinter(tag)
	return sym + p.Sprint(number.Decimal(amount, number.Scale(2)))
}
