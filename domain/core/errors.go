package core

import (
	"errors"
	"fmt"
)

// Sentinel errors per the taxonomy: ConfigError, DataError, InternalError, Cancelled.
var (
	// ErrConfig wraps every configuration-time validation failure: raised
	// synchronously, before any task is scheduled.
	ErrConfig = errors.New("config error")

	// ErrData wraps fatal computation failures: non-finite distances, a GMM
	// returning a non-finite mean/sigma, or a source that should have been
	// filtered but wasn't.
	ErrData = errors.New("data error")

	// ErrInternal wraps builder contract violations: double-finalize,
	// incomplete fill.
	ErrInternal = errors.New("internal error")

	// ErrCancelled signals cooperative cancellation requested by the caller.
	ErrCancelled = errors.New("cancelled")
)

// NewConfigError reports a ConfigError for the named field.
func NewConfigError(field, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrConfig, field, reason)
}

// NewDataError reports a DataError originating from the named source/rupture.
func NewDataError(where, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrData, where, reason)
}

// NewInternalError reports a builder contract violation.
func NewInternalError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInternal, reason)
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool { return errors.Is(err, ErrConfig) }

// IsDataError reports whether err is (or wraps) a DataError.
func IsDataError(err error) bool { return errors.Is(err, ErrData) }

// IsInternalError reports whether err is (or wraps) an InternalError.
func IsInternalError(err error) bool { return errors.Is(err, ErrInternal) }

// IsCancelled reports whether err is (or wraps) cooperative cancellation.
func IsCancelled(err error) bool { return errors.Is(err, ErrCancelled) }
