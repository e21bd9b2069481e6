package core

import (
	"errors"
	"fmt"
)

// Domain error taxonomy of the sale workflow. All of these are returned
// before or during the atomic transaction; none leave partial state behind.
var (
	// ErrEmptyCart signals a candidate with no line items.
	ErrEmptyCart = errors.New("sale has no line items")

	// ErrCreditRequiresCustomer signals a positive balance with no customer
	// reference. Walk-in sales must be paid in full.
	ErrCreditRequiresCustomer = errors.New("credit sale requires a customer")

	// ErrDuplicateSale signals that a candidate's idempotency key was already
	// committed. The original sale stands; nothing was applied twice.
	ErrDuplicateSale = errors.New("sale with this idempotency key already exists")

	// ErrNotFound is the base sentinel for missing customers, suppliers, and
	// purchases. Products and sales carry their own typed errors above.
	ErrNotFound = errors.New("not found")
)

// InvalidItemError signals a cart line that fails structural validation:
// missing product reference, non-positive quantity, or negative price.
type InvalidItemError struct {
	Line   int // 1-based position in the cart
	Reason string
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("invalid item at line %d: %s", e.Line, e.Reason)
}

// ProductNotFoundError signals a cart line referencing a product that does
// not exist (or is no longer active) in the catalog.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InsufficientStockError signals that the authoritative in-transaction stock
// re-check failed. It can occur even when an earlier advisory check passed,
// because a concurrent sale may have consumed the stock in between.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: available %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

// SaleNotFoundError signals a reversal or lookup target that does not resolve.
type SaleNotFoundError struct {
	SaleID string
}

func (e *SaleNotFoundError) Error() string {
	return fmt.Sprintf("sale %s not found", e.SaleID)
}

// PersistenceError wraps a storage failure outside domain logic (connectivity,
// constraint violation). The transaction was rolled back, so retrying with the
// same candidate is safe.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsDomainError reports whether err is a caller-correctable domain error, as
// opposed to a persistence failure worth retrying with backoff.
func IsDomainError(err error) bool {
	var (
		invalidItem  *InvalidItemError
		notFound     *ProductNotFoundError
		insufficient *InsufficientStockError
		saleNotFound *SaleNotFoundError
	)
	return errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrCreditRequiresCustomer) ||
		errors.Is(err, ErrDuplicateSale) ||
		errors.Is(err, ErrNotFound) ||
		errors.As(err, &invalidItem) ||
		errors.As(err, &notFound) ||
		errors.As(err, &insufficient) ||
		errors.As(err, &saleNotFound)
}
