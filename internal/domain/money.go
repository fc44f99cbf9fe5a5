package domain

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

const (
	// MaxPrice is the highest unit price a cart line can carry
	MaxPrice = 1e9
	// MaxQuantity is the most units a single cart line can hold
	MaxQuantity = 10000
)

// clampPrice bounds a unit price to [0, MaxPrice]. NaN becomes 0.
func clampPrice(price float64) float64 {
	if !(price > 0) {
		return 0
	}
	return math.Min(price, MaxPrice)
}

// clampQuantity bounds a decoded quantity to [1, MaxQuantity] before it is
// converted to an int
func clampQuantity(quantity float64) int {
	if !(quantity >= 1) {
		return 1
	}
	return int(math.Min(quantity, MaxQuantity))
}

// FormatMoney renders an amount the way the storefront prints prices:
// whole amounts without decimals, fractional amounts in their shortest form.
// Non-finite values render as "0".
func FormatMoney(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "0"
	}
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// ParsePrice extracts a price from display text such as "1,500 جنيه" by
// keeping only its ASCII digits. Text without digits parses as 0.
func ParsePrice(text string) float64 {
	digits := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, text)
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0
	}
	return n
}

// toNumber coerces a decoded JSON value into a finite number, returning 0
// for anything that is not numeric.
func toNumber(v any) float64 {
	var n float64
	switch val := v.(type) {
	case float64:
		n = val
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		n = parsed
	case bool:
		if val {
			n = 1
		}
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// PriceFromValue converts a client supplied price, either a number or
// display text, into an amount between 0 and MaxPrice.
func PriceFromValue(v any) float64 {
	if text, ok := v.(string); ok {
		if n, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
			return clampPrice(n)
		}
		return clampPrice(ParsePrice(text))
	}
	return clampPrice(toNumber(v))
}
