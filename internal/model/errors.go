package model

import "errors"

// Standard error codes for client-side failures
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeInvalidToken  = "INVALID_TOKEN"
	ErrCodeRequestFailed = "REQUEST_FAILED"
	ErrCodeNotFound      = "NOT_FOUND"
)

// DomainError is the single error type surfaced across the client. Op
// carries the gateway operation name for transport failures.
type DomainError struct {
	Code    string
	Op      string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Op != "" {
		return e.Op + ": " + e.Message
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a locally detected, pre-network validation
// failure. It never reaches the gateway.
func NewValidationError(message string) *DomainError {
	return &DomainError{Code: ErrCodeValidation, Message: message}
}

// NewInvalidTokenError creates the terminal authentication-token failure.
func NewInvalidTokenError(message string) *DomainError {
	return &DomainError{Code: ErrCodeInvalidToken, Message: message}
}

// NewRequestFailed wraps any network, transport or non-2xx outcome from the
// gateway, tagged with the operation that issued the call.
func NewRequestFailed(op string, err error) *DomainError {
	msg := "request failed"
	if err != nil {
		msg = err.Error()
	}
	return &DomainError{Code: ErrCodeRequestFailed, Op: op, Message: msg, Err: err}
}

// NewNotFound creates a semantic not-found outcome, distinct from transport
// failure.
func NewNotFound(op, message string) *DomainError {
	return &DomainError{Code: ErrCodeNotFound, Op: op, Message: message}
}

func hasCode(err error, code string) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool { return hasCode(err, ErrCodeValidation) }

// IsInvalidToken reports whether err is an authentication-token failure.
func IsInvalidToken(err error) bool { return hasCode(err, ErrCodeInvalidToken) }

// IsRequestFailed reports whether err is a transport-level failure.
func IsRequestFailed(err error) bool { return hasCode(err, ErrCodeRequestFailed) }

// IsNotFound reports whether err is a semantic not-found outcome.
func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }
