// Package errors provides error handling for scaffold.
//
// It re-exports github.com/cockroachdb/errors so callers get stack traces,
// wrapping and hints from one import, and declares the sentinel errors the
// rendering and generation engines mark their failures with.
//
//	if err := g.Render(ctx, node, scope); err != nil {
//	    if errors.Is(err, errors.ErrNoStrategy) {
//	        // register a strategy for the node kind
//	    }
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
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	GetAllHints   = crdb.GetAllHints
	FlattenHints  = crdb.FlattenHints
	CombineErrors = crdb.CombineErrors
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinel errors. Failures are marked with one of these (see Markf) so that
// errors.Is keeps working while the message names the offending node.
var (
	// ErrNoStrategy means no registered strategy accepted a node.
	ErrNoStrategy = New("no strategy registered")

	// ErrAmbiguousStrategy means two strategies share a kind and a priority.
	ErrAmbiguousStrategy = New("ambiguous strategy registration")

	// ErrDuplicateStrategy means a strategy name is already registered.
	ErrDuplicateStrategy = New("duplicate strategy name")

	// ErrNilNode is returned when a nil node is dispatched.
	ErrNilNode = New("nil node")

	// ErrDependencyCycle means the depends-on graph of a solution has a cycle.
	ErrDependencyCycle = New("dependency cycle")

	// ErrPathConflict means two sibling artifacts resolve to the same path.
	ErrPathConflict = New("path conflict")

	// ErrUnknownProject means a depends-on edge names a project the solution does not contain.
	ErrUnknownProject = New("unknown project")

	// ErrInvalidVersion means a project version is not a semantic version.
	ErrInvalidVersion = New("invalid version")

	// ErrInvalidProjectType means a project type has no descriptor template.
	ErrInvalidProjectType = New("invalid project type")

	// ErrProcessFailed means an external process exited with a non-zero status.
	ErrProcessFailed = New("process failed")

	// ErrInvalidManifest means a generation request could not be mapped to artifacts.
	ErrInvalidManifest = New("invalid manifest")
)

// Markf builds a formatted error marked with the given sentinel.
func Markf(sentinel error, format string, args ...interface{}) error {
	return Mark(Newf(format, args...), sentinel)
}
