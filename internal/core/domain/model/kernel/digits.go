package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"atelier/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var digitReplacer = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"\u066c", ",",
	"\u200f", "", "\u200e", "",
)

var firstNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)

// NormalizeDigits rewrites Arabic-Indic and Extended Arabic-Indic digits to
// ASCII, turns the Arabic thousands separator into a comma and strips
// directional marks. Every other rune is kept as is.
func NormalizeDigits(s string) string {
	return digitReplacer.Replace(s)
}

// ParseAmount reads a money amount written by a person or extracted from a
// document: digits are normalized, thousands separators and spaces are dropped
// and the first number in the string is used.
//
// Example:
//
//	amount, _ := kernel.ParseAmount("٢٥,٠٠٠ IQD") // 25000
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := NormalizeDigits(s)
	cleaned = strings.NewReplacer(",", "", " ", "").Replace(cleaned)

	match := firstNumber.FindString(cleaned)
	if match == "" {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q contains no digits", s))
	}

	return decimal.NewFromString(match)
}
