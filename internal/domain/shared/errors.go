package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes for the error kinds the ledger core can surface.
// All of them are recoverable by the caller; the enclosing transaction
// must have been rolled back before one of these is returned.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeInvalidState  = "INVALID_STATE"
	CodeNotFound      = "NOT_FOUND"
	CodeLockedPeriod  = "LOCKED_PERIOD"
	CodeAlreadyClosed = "ALREADY_CLOSED"
)

// NewValidationError creates a DomainError for malformed or missing input
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewStateError creates a DomainError for operations illegal in the current state
func NewStateError(message string) *DomainError {
	return NewDomainError(CodeInvalidState, message)
}

// NewNotFoundError creates a DomainError for an absent referenced resource
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// NewLockedPeriodError creates a DomainError for writes into a closed cash day
func NewLockedPeriodError(message string) *DomainError {
	return NewDomainError(CodeLockedPeriod, message)
}

// NewAlreadyClosedError creates a DomainError for double-closing a cash day
func NewAlreadyClosedError(message string) *DomainError {
	return NewDomainError(CodeAlreadyClosed, message)
}

// IsDomainErrorWithCode reports whether err is a DomainError carrying code
func IsDomainErrorWithCode(err error, code string) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == code
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrInvalidInput        = NewDomainError(CodeValidation, "Invalid input provided")
	ErrInvalidState        = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
)
