package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLenientInt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"plain", "42", 42},
		{"thousands separators", "1,234,567", 1234567},
		{"decorated rank", "#12", 12},
		{"fractional tail truncated", "12.9", 12},
		{"negative", "-37", -37},
		{"empty", "", 0},
		{"garbage", "n/a", 0},
		{"only separators", ",,", 0},
		{"whitespace padded", " 1,000 ", 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLenientInt(tt.in))
		})
	}
}

func TestToDecimalUnits(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		decimals int
		want     string
	}{
		{"one token", "1000000000000000000", 18, "1"},
		{"fraction trimmed", "1500000000000000000", 18, "1.5"},
		{"sub-unit", "1", 18, "0.000000000000000001"},
		{"zero", "0", 18, "0"},
		{"empty", "", 18, "0"},
		{"garbage", "abc", 18, "0"},
		{"custom decimals", "12345", 2, "123.45"},
		{"negative", "-2500000000000000000", 18, "-2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToDecimalUnits(tt.raw, tt.decimals))
		})
	}
}

// Amounts well past float64 precision must round-trip digit-for-digit.
func TestToDecimalUnitsLargeMagnitude(t *testing.T) {
	got := ToDecimalUnits("1234567890123456789012345678", 18)
	assert.Equal(t, "1234567890.123456789012345678", got)
}

func TestParseAmount(t *testing.T) {
	assert.Equal(t, "123", ParseAmount("123").String())
	assert.Equal(t, "0", ParseAmount("bogus").String())
	assert.Equal(t, "0", ParseAmount("").String())
}
