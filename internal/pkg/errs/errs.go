package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsOutOfRange  = errors.New("value is out of range")
	ErrValueIsRequired    = errors.New("value is required")
	ErrInvalidID          = errors.New("id is invalid")
	ErrAmbiguousReference = errors.New("reference is ambiguous")
	ErrInvalidTransition  = errors.New("transition is invalid")
	ErrNegativeStock      = errors.New("stock is negative")
	ErrAlreadyExists      = errors.New("object already exists")
)

// sanitize flattens multi-line values so a single error stays on one log line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

// ObjectNotFoundError reports a lookup that matched nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidIDError reports a malformed identifier.
type InvalidIDError struct {
	ParamName string
	Value     string
	Cause     error
}

func NewInvalidIDError(paramName string, value string) *InvalidIDError {
	return &InvalidIDError{ParamName: paramName, Value: value}
}

func NewInvalidIDErrorWithCause(paramName string, value string, cause error) *InvalidIDError {
	return &InvalidIDError{ParamName: paramName, Value: value, Cause: cause}
}

func (e *InvalidIDError) Error() string {
	msg := fmt.Sprintf("%s: %s %q", ErrInvalidID, e.ParamName, sanitize(e.Value))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *InvalidIDError) Unwrap() error {
	return ErrInvalidID
}

// AmbiguousReferenceError reports a name that matches more than one object.
// Candidates lists the identifiers of every match.
type AmbiguousReferenceError struct {
	Reference  string
	Candidates []string
}

func NewAmbiguousReferenceError(reference string, candidates []string) *AmbiguousReferenceError {
	return &AmbiguousReferenceError{Reference: reference, Candidates: candidates}
}

func (e *AmbiguousReferenceError) Error() string {
	return fmt.Sprintf("%s: %q matches %s", ErrAmbiguousReference, sanitize(e.Reference), strings.Join(e.Candidates, ", "))
}

func (e *AmbiguousReferenceError) Unwrap() error {
	return ErrAmbiguousReference
}

// InvalidTransitionError reports a state change the state machine refuses.
type InvalidTransitionError struct {
	From  string
	To    string
	Cause error
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func NewInvalidTransitionErrorWithCause(from, to string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// NegativeStockWarning is non-fatal: the adjustment that produced it is committed.
type NegativeStockWarning struct {
	Code     string
	Quantity int
}

func NewNegativeStockWarning(code string, quantity int) *NegativeStockWarning {
	return &NegativeStockWarning{Code: code, Quantity: quantity}
}

func (e *NegativeStockWarning) Error() string {
	return fmt.Sprintf("%s: %s has %d on hand", ErrNegativeStock, e.Code, e.Quantity)
}

func (e *NegativeStockWarning) Unwrap() error {
	return ErrNegativeStock
}

// AlreadyExistsError reports an insert that collides with an existing id or code.
type AlreadyExistsError struct {
	ParamName string
	ID        any
}

func NewAlreadyExistsError(paramName string, id any) *AlreadyExistsError {
	return &AlreadyExistsError{ParamName: paramName, ID: id}
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrAlreadyExists, e.ParamName, sanitize(e.ID))
}

func (e *AlreadyExistsError) Unwrap() error {
	return ErrAlreadyExists
}
