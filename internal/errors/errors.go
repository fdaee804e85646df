// Package errors provides structured error types for session-resume.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindNoActiveSession
	KindStoreUnavailable
	KindInvalid
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindNoActiveSession:
		return "no active session"
	case KindStoreUnavailable:
		return "session store unavailable"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for session-resume.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// NotFound reports that resolution produced no candidate session.
func NotFound(context string) error {
	return E(KindNotFound, context)
}

// NoActiveSession reports that no session is currently open.
func NoActiveSession() error {
	return E(KindNoActiveSession, "no session is currently open; specify a session name")
}

// StoreUnavailable reports that the backing directory cannot be enumerated.
func StoreUnavailable(dir string, err error) error {
	return E(Op("store.List"), KindStoreUnavailable, fmt.Sprintf("cannot read sessions directory %s", dir), err)
}

// SessionNotFound reports that a named session does not exist in the store.
func SessionNotFound(name string) error {
	return E(KindNotFound, fmt.Sprintf("session %q not found", name))
}
