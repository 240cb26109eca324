package order

import (
	"fmt"
	"strings"

	"atelier/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// Recommended transitions (enforced under StrictTransitions):
//
//	Processing ──┐
//	             ├──> Shipping ──┬──> Delivered
//	Ready ───────┘      ^        └──> Returned
//	                    └──────────────────┘  (re-dispatch)
//
//	any ──> Ready     (admin reset)
//	any ──> Returned  (admin, with reason)
type Status int

const (
	// Unknown is the zero value. Restored records carrying it default to Ready.
	Unknown Status = iota

	// Processing orders are still being prepared by the workshop.
	Processing

	// Ready orders are packed and waiting for the carrier.
	Ready

	// Shipping orders have left the workshop; their items are withdrawn from stock.
	Shipping

	// Delivered orders were paid by the customer. This is the revenue state.
	Delivered

	// Returned orders came back from the carrier; their items are back in stock.
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Processing: "Processing",
		Ready:      "Ready",
		Shipping:   "Shipping",
		Delivered:  "Delivered",
		Returned:   "Returned",
	}
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Processing, Ready, Shipping, Delivered, Returned}
}

// ParseStatus accepts the status name in any letter case.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(strings.TrimSpace(s), name) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Returned {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsInitial reports whether an order may be created in this status.
func (s Status) IsInitial() bool {
	return s == Processing || s == Ready
}

func (s Status) MarshalText() ([]byte, error) {
	if s == Unknown {
		return []byte{}, nil
	}
	return []byte(s.String()), nil
}

// UnmarshalText maps an empty string to Unknown so legacy records can be
// default-filled by RestoreOrder.
func (s *Status) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*s = Unknown
		return nil
	}
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// TransitionPolicy decides which status changes are accepted.
type TransitionPolicy int

const (
	// StrictTransitions accepts only the recommended transition table.
	StrictTransitions TransitionPolicy = iota

	// PermissiveTransitions accepts any change to a different valid status.
	PermissiveTransitions
)

// ParseTransitionPolicy reads "strict" or "permissive"; an empty string is strict.
func ParseTransitionPolicy(s string) (TransitionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return StrictTransitions, nil
	case "permissive":
		return PermissiveTransitions, nil
	default:
		return StrictTransitions, errs.NewValueIsInvalidErrorWithCause(
			"transition policy",
			fmt.Errorf("%q is neither strict nor permissive", s),
		)
	}
}

func (p TransitionPolicy) String() string {
	if p == PermissiveTransitions {
		return "permissive"
	}
	return "strict"
}

// Check returns an InvalidTransitionError when the policy refuses from -> to.
// A transition to the current status is refused under both policies.
func (p TransitionPolicy) Check(from, to Status) error {
	if err := to.Validate(); err != nil {
		return errs.NewInvalidTransitionErrorWithCause(from.String(), to.String(), err)
	}

	if from == to {
		return errs.NewInvalidTransitionErrorWithCause(
			from.String(), to.String(), fmt.Errorf("order is already %s", to),
		)
	}

	if p == PermissiveTransitions || isRecommended(from, to) {
		return nil
	}

	return errs.NewInvalidTransitionError(from.String(), to.String())
}

func isRecommended(from, to Status) bool {
	switch to {
	case Ready, Returned:
		return true
	case Shipping:
		return from == Processing || from == Ready || from == Returned
	case Delivered:
		return from == Shipping
	default:
		return false
	}
}
