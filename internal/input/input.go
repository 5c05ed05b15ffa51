// Package input coerces raw form and flag strings into engine values. Blank
// or unparseable input becomes zero instead of an error; range checks are
// left to the engine.
package input

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var stripper = strings.NewReplacer("£", "", ",", "", "_", "", " ", "", "\u00a0", "")

func clean(s string) string {
	return stripper.Replace(strings.TrimSpace(s))
}

// Amount parses a money string such as "£45,000.50". Empty or non-numeric
// input yields zero.
func Amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(clean(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Percent parses "5", "5%" or "5.5 %" into the number of percent (5.5)
func Percent(s string) decimal.Decimal {
	return Amount(strings.TrimSuffix(clean(s), "%"))
}

// Int parses a whole number; decimals are truncated and junk yields zero
func Int(s string) int {
	c := clean(s)
	if n, err := strconv.Atoi(c); err == nil {
		return n
	}
	return int(Amount(c).IntPart())
}

// Bool treats "true", "yes", "on", "1" and "y" as true
func Bool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1", "y":
		return true
	}
	return false
}
