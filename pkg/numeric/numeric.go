// Package numeric is the precision boundary of the stats service. Token
// amounts arrive as wei-scale fixed-point integers (up to ~1e27) and
// leaderboard counters arrive as human-formatted text ("1,234,567");
// everything here is lenient on input and exact on output.
package numeric

import (
	"math/big"
	"strconv"
	"strings"
)

// DefaultDecimals is the implied fractional precision of raw on-chain amounts.
const DefaultDecimals = 18

// ParseLenientInt extracts an integer from human-formatted numeric text.
// Thousands separators and stray decoration are stripped, a fractional tail
// is truncated, and anything unparsable yields 0. Never returns an error:
// the inputs are untrusted snapshot exports and a bad cell must not abort a
// whole aggregation.
func ParseLenientInt(text string) int64 {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '-' || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0
	}
	if i := strings.IndexByte(cleaned, '.'); i >= 0 {
		cleaned = cleaned[:i]
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ToDecimalUnits renders a raw fixed-point integer string as a decimal
// token-unit string, e.g. ("1500000000000000000", 18) -> "1.5". The input is
// treated as an arbitrary-precision integer; float conversion is never
// involved. Empty or unparsable input yields "0".
func ToDecimalUnits(raw string, decimals int) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || decimals < 0 {
		return "0"
	}

	n, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return "0"
	}

	sign := ""
	if n.Sign() < 0 {
		sign = "-"
		n.Neg(n)
	}

	digits := n.String()
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}

	intPart := digits[:len(digits)-decimals]
	fracPart := strings.TrimRight(digits[len(digits)-decimals:], "0")
	if fracPart == "" {
		if intPart == "0" {
			return "0"
		}
		return sign + intPart
	}
	return sign + intPart + "." + fracPart
}

// ParseAmount parses a raw fixed-point integer string into a big.Int.
// Unparsable input becomes zero, by the same lenient-ingestion policy as
// ParseLenientInt.
func ParseAmount(raw string) *big.Int {
	n, ok := new(big.Int).SetString(strings.TrimSpace(raw), 10)
	if !ok {
		return new(big.Int)
	}
	return n
}
