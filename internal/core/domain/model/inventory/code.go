package inventory

import (
	"fmt"
	"strconv"
	"strings"
)

// CodePrefix starts every generated SKU code.
const CodePrefix = "INV"

// NextCode returns CodePrefix followed by one more than the largest numeric
// suffix among existing generated codes, zero-padded to four digits.
// Codes with another prefix or a non-numeric suffix are ignored.
//
// Example:
//
//	inventory.NextCode([]string{"INV0001", "INV0007", "CUSTOM-1"}) // "INV0008"
func NextCode(existing []string) string {
	highest := 0
	for _, code := range existing {
		suffix, ok := strings.CutPrefix(code, CodePrefix)
		if !ok || suffix == "" {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil || n < 0 {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%04d", CodePrefix, highest+1)
}
