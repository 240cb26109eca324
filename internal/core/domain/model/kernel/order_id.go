package kernel

import (
	"strings"
	"unicode"

	"atelier/internal/pkg/errs"
)

// MinOrderIDDigits is the shortest order id the carrier ever issues.
const MinOrderIDDigits = 6

// ErrOrderIDIsNotConstructed is returned when validating a zero-value OrderID.
var ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError("OrderID must be created via NewOrderID")

// OrderID is the carrier-issued tracking number that identifies an order.
// It is a string of at least MinOrderIDDigits ASCII digits; leading zeros are
// significant so the value is never converted to an integer.
type OrderID struct {
	value string
}

// NewOrderID normalizes raw (trimming spaces and converting Arabic-Indic
// digits) and returns an InvalidIDError when the result is not a numeric
// string of at least MinOrderIDDigits digits.
//
// Example:
//
//	id, err := kernel.NewOrderID("١٠٠٠٠٠٠٠١٢٣٤")
//	// id.String() == "100000001234"
func NewOrderID(raw string) (OrderID, error) {
	normalized := strings.TrimSpace(NormalizeDigits(raw))

	if len(normalized) < MinOrderIDDigits {
		return OrderID{}, errs.NewInvalidIDError("orderId", raw)
	}

	for _, r := range normalized {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return OrderID{}, errs.NewInvalidIDError("orderId", raw)
		}
	}

	return OrderID{value: normalized}, nil
}

// MustNewOrderID is NewOrderID for literals known to be valid; it panics otherwise.
func MustNewOrderID(raw string) OrderID {
	id, err := NewOrderID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

func (id OrderID) String() string {
	return id.value
}

func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}

func (id OrderID) Validate() error {
	if id.value == "" {
		return ErrOrderIDIsNotConstructed
	}
	return nil
}

func (id OrderID) MarshalText() ([]byte, error) {
	return []byte(id.value), nil
}

func (id *OrderID) UnmarshalText(b []byte) error {
	parsed, err := NewOrderID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
