// Package errors provides error handling for confgen.
//
// It re-exports github.com/cockroachdb/errors so every call site gets
// stack traces, wrapping with context, and user-facing hints without
// importing the upstream module directly.
//
// Usage:
//
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	if errors.Is(err, errors.ErrTargetNotFound) {
//	    // the named type does not exist in the target package
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is     = crdb.Is
	IsAny  = crdb.IsAny
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// Sentinel errors for the two fatal failure classes. Everything else the
// generator encounters degrades locally and never surfaces as an error.
var (
	// ErrTargetNotFound indicates a named target type or its package
	// could not be located; generation for that module aborts.
	ErrTargetNotFound = New("target not found")

	// ErrOutputExists indicates the scaffolding step found an existing
	// file where it expected to create a fresh one.
	ErrOutputExists = New("output already exists")
)

// IsTargetNotFound checks if an error is or wraps ErrTargetNotFound.
func IsTargetNotFound(err error) bool {
	return err != nil && Is(err, ErrTargetNotFound)
}

// IsOutputExists checks if an error is or wraps ErrOutputExists.
func IsOutputExists(err error) bool {
	return err != nil && Is(err, ErrOutputExists)
}
