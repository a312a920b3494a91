package stock

import "errors"

// Domain error taxonomy for the stock ledger. Repositories translate storage
// failures into these; handlers translate these into HTTP statuses. Anything
// not listed here reaches the caller wrapped as an opaque storage error.
var (
	// ErrCountMustBePositive rejects a requested count or delta <= 0 before
	// any write happens.
	ErrCountMustBePositive = errors.New("stock: count must be positive")

	// ErrSourceMustBePositive / ErrTargetMustBePositive reject a convert call
	// with an empty operand list.
	ErrSourceMustBePositive = errors.New("stock: convert source must not be empty")
	ErrTargetMustBePositive = errors.New("stock: convert target must not be empty")

	// ErrInsufficientStock means a withdrawal leg would not leave a strictly
	// positive balance on the shelf.
	ErrInsufficientStock = errors.New("stock: insufficient stock")

	// ErrItemNotFound / ErrShelfNotFound surface unknown identities, detected
	// via foreign keys on the stock tables.
	ErrItemNotFound  = errors.New("stock: item not found")
	ErrShelfNotFound = errors.New("stock: shelf not found")
)
