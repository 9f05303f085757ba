package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

var hundred = decimal.NewFromInt(100)

// FormatCents renders minor units with exactly two fractional digits and a
// fixed decimal point, independent of locale.
func FormatCents(cents int64) string {
	magnitude := uint64(cents)
	sign := ""
	if cents < 0 {
		// two's complement negation stays exact for math.MinInt64
		magnitude = -magnitude
		sign = "-"
	}
	return fmt.Sprintf("%s%d.%02d", sign, magnitude/100, magnitude%100)
}

// ParseMajor converts a decimal amount in major units ("100", "7.5") into
// cents, rounding half away from zero.
func ParseMajor(input string) (int64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, ErrInvalidAmount
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	cents := value.Mul(hundred).Round(0)
	if !cents.IsInteger() || cents.Abs().GreaterThan(decimal.NewFromInt(1<<53)) {
		return 0, ErrInvalidAmount
	}
	return cents.IntPart(), nil
}
