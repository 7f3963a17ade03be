// Package ledgererror defines the typed failures returned by the ledger.
// Every failure is recoverable; callers tell them apart with errors.As.
package ledgererror

import "fmt"

// Field names reported by ValidationError.
const (
	FieldName         = "name"
	FieldTotalValue   = "totalValue"
	FieldInstallments = "installments"
	FieldAmount       = "amount"
)

// Entity names used in error messages.
const (
	EntityPurchase     = "purchase"
	EntityAmortization = "amortization"
)

// ValidationError is a caller-correctable input defect. It is raised before
// any state is touched.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s %s", e.Entity, e.Field, e.Reason)
}

// NotFoundError reports a reference to an id that is not in the collection.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Entity, e.ID)
}

// CorruptStateError means the persisted collection could not be decoded.
type CorruptStateError struct {
	Key string
	Err error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt data under key '%s': %v", e.Key, e.Err)
}

func (e *CorruptStateError) Unwrap() error {
	return e.Err
}

// ImportError means imported bytes are not a list of purchases. The current
// collection is left untouched when it is returned.
type ImportError struct {
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("import failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("import failed: %s", e.Reason)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
