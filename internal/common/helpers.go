package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	USDCDecimals = 6 // USDC has 6 decimals (micro)
	NGNDecimals  = 2 // naira has 2 decimals (kobo)
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses a user-entered amount without float precision loss.
// Amounts must be strictly positive.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	s = strings.TrimSuffix(s, ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: must be greater than zero", ErrInvalidAmount)
	}
	return d, nil
}

// AssetDecimals returns the display precision of an asset or currency code.
func AssetDecimals(code string) int32 {
	switch strings.ToUpper(code) {
	case "NGN", "USD":
		return NGNDecimals
	default:
		return USDCDecimals
	}
}

// FormatAmount renders d with the fixed precision of code.
// Example: FormatAmount(decimal.New(25, -1), "USDC") = "2.500000"
func FormatAmount(d decimal.Decimal, code string) string {
	return d.StringFixed(AssetDecimals(code))
}

// ToFiat converts an amount of USDC to naira at rate, rounded to kobo.
func ToFiat(usdc, rate decimal.Decimal) decimal.Decimal {
	return usdc.Mul(rate).Round(NGNDecimals)
}

// CompareAmounts compares two decimal string amounts without float precision loss.
// Returns: -1 if a < b, 0 if a == b, 1 if a > b, and error if parsing fails
func CompareAmounts(a, b string) (int, error) {
	aVal, err := decimal.NewFromString(strings.TrimSpace(a))
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", a, err)
	}

	bVal, err := decimal.NewFromString(strings.TrimSpace(b))
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", b, err)
	}

	return aVal.Cmp(bVal), nil
}
