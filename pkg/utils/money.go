package utils

import "github.com/shopspring/decimal"

// Amounts are stored as int64 paise. These helpers are the only place the
// API's decimal rupee values cross into storage units.

// ToPaise converts a decimal rupee amount into paise, rounding half away from zero
func ToPaise(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FromPaise converts paise to a rupee amount for display
func FromPaise(paise int64) float64 {
	f, _ := decimal.New(paise, -2).Float64()
	return f
}

// FormatPaise renders paise as a fixed two-decimal string
func FormatPaise(paise int64) string {
	return decimal.New(paise, -2).StringFixed(2)
}

// LineTotal multiplies a unit price by a quantity
func LineTotal(unitPrice int64, quantity int) int64 {
	return decimal.NewFromInt(unitPrice).Mul(decimal.NewFromInt(int64(quantity))).IntPart()
}
