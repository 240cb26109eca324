package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"atelier/internal/pkg/errs"
)

// MovementType classifies a ledger entry.
type MovementType int

const (
	UnknownMovement MovementType = iota

	// Production adds pieces delivered by the sewing workshop.
	Production

	// Withdraw removes pieces that left with an order.
	Withdraw

	// Return puts back pieces of a returned order.
	Return

	// Manual is an operator correction or opening balance, in either direction.
	Manual
)

func getMovementTypeStrings() map[MovementType]string {
	return map[MovementType]string{
		UnknownMovement: "Unknown",
		Production:      "Production",
		Withdraw:        "Withdraw",
		Return:          "Return",
		Manual:          "Manual",
	}
}

func (t MovementType) String() string {
	if s, ok := getMovementTypeStrings()[t]; ok {
		return s
	}
	return "Unknown"
}

func (t MovementType) Validate() error {
	if t <= UnknownMovement || t > Manual {
		return errs.NewValueIsInvalidErrorWithCause("movement type", fmt.Errorf("%d is not a valid movement type", t))
	}
	return nil
}

// ParseMovementType accepts the type name in any letter case.
func ParseMovementType(s string) (MovementType, error) {
	for t, name := range getMovementTypeStrings() {
		if t != UnknownMovement && strings.EqualFold(strings.TrimSpace(s), name) {
			return t, nil
		}
	}
	return UnknownMovement, errs.NewValueIsInvalidErrorWithCause("movement type", fmt.Errorf("%q is not a valid movement type", s))
}

func (t MovementType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *MovementType) UnmarshalText(b []byte) error {
	parsed, err := ParseMovementType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// checkSign enforces the direction implied by the type. Manual goes either way.
func (t MovementType) checkSign(delta int) error {
	switch t {
	case Production, Return:
		if delta < 0 {
			return fmt.Errorf("%s movement must add stock, got %d", t, delta)
		}
	case Withdraw:
		if delta > 0 {
			return fmt.Errorf("%s movement must remove stock, got %d", t, delta)
		}
	case UnknownMovement, Manual:
	}
	return nil
}

// Movement is one immutable ledger entry: a signed quantity delta for a SKU.
// The id is zero until the ledger appends the movement.
type Movement struct {
	id           int64
	at           time.Time
	code         string
	nameSnapshot string
	delta        int
	kind         MovementType
	ref          string
	notes        string
}

// NewMovement validates a movement before it is appended. A zero delta is
// rejected: the ledger never holds entries that change nothing.
func NewMovement(code, nameSnapshot string, delta int, kind MovementType, ref, notes string, at time.Time) (Movement, error) {
	var codeErr, deltaErr, signErr error
	if strings.TrimSpace(code) == "" {
		codeErr = errs.NewValueIsRequiredError("movement sku code")
	}
	if delta == 0 {
		deltaErr = errs.NewValueIsInvalidErrorWithCause("delta", errors.New("delta must not be zero"))
	}
	typeErr := kind.Validate()
	if typeErr == nil {
		if err := kind.checkSign(delta); err != nil {
			signErr = errs.NewValueIsInvalidErrorWithCause("delta", err)
		}
	}

	if err := errors.Join(codeErr, deltaErr, typeErr, signErr); err != nil {
		return Movement{}, err
	}

	return Movement{
		at:           at,
		code:         strings.TrimSpace(code),
		nameSnapshot: nameSnapshot,
		delta:        delta,
		kind:         kind,
		ref:          ref,
		notes:        notes,
	}, nil
}

// WithID returns a copy carrying the id assigned by the ledger.
func (m Movement) WithID(id int64) Movement {
	m.id = id
	return m
}

func (m Movement) ID() int64            { return m.id }
func (m Movement) At() time.Time        { return m.at }
func (m Movement) Code() string         { return m.code }
func (m Movement) NameSnapshot() string { return m.nameSnapshot }
func (m Movement) Delta() int           { return m.delta }
func (m Movement) Type() MovementType   { return m.kind }
func (m Movement) Ref() string          { return m.ref }
func (m Movement) Notes() string        { return m.notes }

// MovementRecord is the flat, persisted form of a Movement.
type MovementRecord struct {
	ID           int64        `json:"id"`
	At           time.Time    `json:"at"`
	Code         string       `json:"code"`
	NameSnapshot string       `json:"name"`
	Delta        int          `json:"delta"`
	Type         MovementType `json:"type"`
	Ref          string       `json:"ref,omitempty"`
	Notes        string       `json:"notes,omitempty"`
}

func (m Movement) Record() MovementRecord {
	return MovementRecord{
		ID:           m.id,
		At:           m.at,
		Code:         m.code,
		NameSnapshot: m.nameSnapshot,
		Delta:        m.delta,
		Type:         m.kind,
		Ref:          m.ref,
		Notes:        m.notes,
	}
}

// RestoreMovement rebuilds an appended movement.
func RestoreMovement(r MovementRecord) (Movement, error) {
	if r.ID <= 0 {
		return Movement{}, errs.NewValueIsOutOfRangeError("movement id", r.ID, 1, "unbounded")
	}
	m, err := NewMovement(r.Code, r.NameSnapshot, r.Delta, r.Type, r.Ref, r.Notes, r.At)
	if err != nil {
		return Movement{}, err
	}
	return m.WithID(r.ID), nil
}

// Balance sums the deltas recorded for code up to and including at.
// A nil at sums the whole history.
func Balance(movements []Movement, code string, at *time.Time) int {
	total := 0
	for _, m := range movements {
		if m.code != code {
			continue
		}
		if at != nil && m.at.After(*at) {
			continue
		}
		total += m.delta
	}
	return total
}
