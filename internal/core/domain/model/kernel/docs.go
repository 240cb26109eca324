// Package kernel holds the value objects shared by every aggregate of the
// atelier domain.
//
// The package includes:
//   - OrderID: the carrier tracking number (numeric, at least six digits)
//   - UUID: identifiers for records with no natural key (production log entries)
//   - NormalizeDigits and ParseAmount: input normalization for ids and money
//     typed with Arabic-Indic digits
//
// All values are immutable and their zero values fail Validate.
package kernel
