// Package errs provides standardized error types for the atelier application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ObjectNotFoundError: an order, SKU or production entry cannot be found
//   - InvalidIDError: an identifier is malformed (e.g. a non-numeric order id)
//   - AmbiguousReferenceError: a name resolves to more than one SKU
//   - InvalidTransitionError: the order state machine refuses a status change
//   - AlreadyExistsError: an order id or SKU code is already taken
//   - NegativeStockWarning: a non-fatal alert raised when stock drops below zero
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: input validation
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for errors.Is support against the sentinel
package errs
