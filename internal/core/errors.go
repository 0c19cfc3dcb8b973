package core

import "errors"

// Sentinel errors for common error conditions.
// These can be used with errors.Is() for error type checking.
var (
	// ErrValidation indicates a required-field check failed on control or
	// client input. The operation is aborted and state is unchanged.
	ErrValidation = errors.New("required fields missing")

	// ErrControlNotFound indicates an edit targeted a control id that is not
	// in the audit
	ErrControlNotFound = errors.New("control not found")

	// ErrNoClient indicates no client record is stored; the caller must run
	// the client setup flow before any audit work
	ErrNoClient = errors.New("no client configured. Run 'auditdesk setup' first")

	// ErrNotReady indicates the session has no loaded client or audit
	ErrNotReady = errors.New("session not initialized")

	// ErrExport indicates report generation could not proceed
	ErrExport = errors.New("report export failed")
)

// Error message templates for formatted errors.
// Use with fmt.Errorf() to create errors with context.
const (
	// ErrFilterMsg is the message for an unknown filter value
	ErrFilterMsg = "unknown filter '%s': use 'all' or one of compliant, notCompliant, partial, notApplicable"

	// ErrCategoryExistsMsg is the message for duplicate category labels
	ErrCategoryExistsMsg = "category '%s' already exists"
)
