// Package errors provides structured error types for the grid splitter.
//
// Every failure surfaced by the tile pipeline carries a Kind that tells the
// caller which class of problem occurred, the pipeline stage that failed and,
// when a specific tile was being processed, its 1-based emission index.
//
// # Kinds
//
//   - DECODE: the source image could not be read or decoded
//   - VALIDATION: rows/cols (or platform dimensions) are not positive
//   - GEOMETRY: normalization could not produce the exact grid dimensions
//   - INVALID_MODE: an unrecognized edge, resize or anchor token
//   - ENCODE: the output sink failed to persist a tile
//
// # Usage
//
//	err := errors.New(errors.KindValidation, "rows must be positive, got %d", rows)
//	if errors.Is(err, errors.KindValidation) {
//	    // reject input
//	}
//
//	err = errors.Wrap(errors.KindEncode, cause, "write tile").AtTile(3)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error.
type Kind string

const (
	KindDecode      Kind = "DECODE"
	KindValidation  Kind = "VALIDATION"
	KindGeometry    Kind = "GEOMETRY"
	KindInvalidMode Kind = "INVALID_MODE"
	KindEncode      Kind = "ENCODE"
)

// Stage names the pipeline step an error was raised in.
type Stage string

const (
	StageLoad      Stage = "load"
	StageValidate  Stage = "validate"
	StageNormalize Stage = "normalize"
	StageExtract   Stage = "extract"
	StageEdge      Stage = "edge"
	StageSink      Stage = "sink"
)

// Error is a structured error with a kind, context and optional cause.
type Error struct {
	Kind    Kind   // Error class
	Stage   Stage  // Pipeline stage (optional)
	Tile    int    // 1-based emission index, 0 when not tile specific
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Stage != "" {
		fmt.Fprintf(&b, " [%s", e.Stage)
		if e.Tile > 0 {
			fmt.Fprintf(&b, " tile %d", e.Tile)
		}
		b.WriteString("]")
	} else if e.Tile > 0 {
		fmt.Fprintf(&b, " [tile %d]", e.Tile)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// AtStage records the pipeline stage on e and returns it.
func (e *Error) AtStage(s Stage) *Error {
	e.Stage = s
	return e
}

// AtTile records the emission index on e and returns it.
func (e *Error) AtTile(index int) *Error {
	e.Tile = index
	return e
}

// New creates a new Error with the given kind and formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given kind.
// It unwraps the error chain looking for an *Error with a matching kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf extracts the kind from an error, if available.
// Returns an empty Kind if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Ensure attaches stage to err. An *Error that already records a stage is
// left as it is; any other error is wrapped with fallback as its kind.
func Ensure(err error, fallback Kind, stage Stage) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Stage == "" {
			e.Stage = stage
		}
		return err
	}
	return Wrap(fallback, err, "%s failed", stage).AtStage(stage)
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message and cause without the kind prefix.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		msg := e.Message
		if e.Tile > 0 {
			msg = fmt.Sprintf("tile %d: %s", e.Tile, msg)
		}
		if e.Cause != nil {
			msg += ": " + e.Cause.Error()
		}
		return msg
	}
	return err.Error()
}

// As is errors.As from the standard library, re-exported so callers importing
// this package under its default name need not alias either one.
func As(err error, target any) bool {
	return errors.As(err, target)
}
