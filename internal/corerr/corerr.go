// Package corerr defines the error taxonomy shared across the simulation
// core (spec.md section 7): validation, auth, conflict, domain, and
// persistence errors each carry distinct handling semantics for callers, so
// they are modeled as distinct sentinel-wrapped types rather than bare
// strings, following the teacher's wrapped-sentinel idiom in
// internal/api/server.go's error responses.
package corerr

import (
	"errors"
	"fmt"
)

// Sentinel classes. Callers branch on these with errors.Is.
var (
	// ErrValidation marks invalid inputs: missing parameters, bad ranges,
	// empty/oversized strings. The action is rejected and never retried.
	ErrValidation = errors.New("validation error")

	// ErrAuth marks unknown user, bad password, duplicate registration, or
	// an invalid/expired token.
	ErrAuth = errors.New("auth error")

	// ErrConflict marks lock contention. Not a failure for the caller: the
	// action is queued and re-dispatched once the lock is free.
	ErrConflict = errors.New("conflict error")

	// ErrDomain marks a rule violation intrinsic to the action's domain
	// (insufficient proficiency, insufficient materials, missing tool,
	// repairing a destroyed structure, unmet alliance requirements).
	// Surfaced as a structured failure outcome; materials are never
	// consumed when a DomainError is returned.
	ErrDomain = errors.New("domain error")

	// ErrPersistence marks I/O failure, checksum mismatch, or an
	// unknown/future schema version during load/save.
	ErrPersistence = errors.New("persistence error")

	// ErrChecksumMismatch is a distinguishable ErrPersistence case that
	// triggers load_with_backup_fallback.
	ErrChecksumMismatch = fmt.Errorf("%w: checksum mismatch", ErrPersistence)

	// ErrSchemaVersion marks an unknown module or a future schema version
	// with no migration path; hard failure, never attempted.
	ErrSchemaVersion = fmt.Errorf("%w: unknown or future schema version", ErrPersistence)

	// ErrInvariant marks an internal invariant violation. In debug builds
	// callers are expected to panic on it; release callers perform a
	// structured fatal stop of the affected tick instead.
	ErrInvariant = errors.New("internal invariant violation")
)

// Validation wraps err (or a new error from msg) as an ErrValidation.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// Auth wraps a message as an ErrAuth.
func Auth(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrAuth}, args...)...)
}

// Conflict wraps a message as an ErrConflict.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}

// Domain wraps a message as an ErrDomain.
func Domain(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrDomain}, args...)...)
}

// Persistence wraps a message as an ErrPersistence.
func Persistence(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrPersistence}, args...)...)
}

// Invariant wraps a message as an ErrInvariant.
func Invariant(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvariant}, args...)...)
}
