package services

import (
	"errors"
	"fmt"
)

// ErrEmptyURL rejects a submission before any work is done.
var ErrEmptyURL = errors.New("url must not be empty")

// ExtractionError means no feature vector could be built for the URL.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract features for %q: %v", e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ContractViolation means the classifier was handed a malformed vector. It is
// a bug, not bad input.
type ContractViolation struct {
	Err error
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("classifier contract violated: %v", e.Err)
}

func (e *ContractViolation) Unwrap() error { return e.Err }

// PersistenceError means the prediction row could not be written.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist prediction: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// AuditWriteError means the phishing audit file append failed after the row
// was already stored.
type AuditWriteError struct {
	URL string
	Err error
}

func (e *AuditWriteError) Error() string {
	return fmt.Sprintf("append %q to audit file: %v", e.URL, e.Err)
}

func (e *AuditWriteError) Unwrap() error { return e.Err }

// ErrorKind names the failure class of err for logs, metrics and API bodies.
func ErrorKind(err error) string {
	var (
		extractErr  *ExtractionError
		contractErr *ContractViolation
		persistErr  *PersistenceError
		auditErr    *AuditWriteError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyURL):
		return "invalid_input"
	case errors.As(err, &extractErr):
		return "extraction"
	case errors.As(err, &contractErr):
		return "contract_violation"
	case errors.As(err, &persistErr):
		return "persistence"
	case errors.As(err, &auditErr):
		return "audit_write"
	default:
		return "internal"
	}
}
