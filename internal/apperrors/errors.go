package apperrors

import "errors"

// Sentinel errors for the failure kinds the API distinguishes. Services
// wrap these with fmt.Errorf("...: %w", ...) to attach detail; handlers
// match them with errors.Is to pick the HTTP status.
var (
	// ErrNotFound indicates a referenced item, variant, or SKU does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateResource indicates a name, SKU, or attribute-combination
	// collision on create or rename.
	ErrDuplicateResource = errors.New("duplicate resource")

	// ErrInvalidArgument indicates a missing or non-positive quantity where
	// one is required.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientStock indicates a removal or reservation exceeding the
	// available quantity.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidStockState indicates an adjustment that would drive the
	// stock quantity negative.
	ErrInvalidStockState = errors.New("invalid stock state")
)
