// Package guard holds the constructor guard used by domain values, commands and
// queries to tell a properly constructed value from its zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types whose zero value is not usable.
// Only NewConstructorGuard produces a guard that validates.
//
// Example:
//
//	var ErrSKUIsNotConstructed = errors.New("SKU must be created via NewSKU")
//
//	type SKU struct {
//	    code  string
//	    guard guard.ConstructorGuard
//	}
//
//	func (s SKU) Validate() error {
//	    return s.guard.Validate(ErrSKUIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
