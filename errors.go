package tahti

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes the command errors of the core. Every error is
// synchronous and local to the command that raised it; a failed command
// never leaves the project partially mutated.
type ErrorKind string

const (
	// ErrNotFound means a track, clip or send id did not resolve.
	ErrNotFound ErrorKind = "NOT_FOUND"

	// ErrWrongPayload means the operation requires a different clip
	// payload variant than the target has.
	ErrWrongPayload ErrorKind = "WRONG_PAYLOAD"

	// ErrInvalidArgument means a parameter was outside its valid range,
	// e.g. a zero quantize grid or malformed trim bounds.
	ErrInvalidArgument ErrorKind = "INVALID_ARGUMENT"

	// ErrIndexOutOfRange means a note or row deletion index was invalid.
	ErrIndexOutOfRange ErrorKind = "INDEX_OUT_OF_RANGE"

	// ErrInvalidRouting means a self-route, a routing cycle or a non-bus
	// routing target.
	ErrInvalidRouting ErrorKind = "INVALID_ROUTING"

	// ErrUnsupportedOperation means a structurally disallowed action,
	// e.g. adding a clip to a bus track.
	ErrUnsupportedOperation ErrorKind = "UNSUPPORTED_OPERATION"
)

// Error is the typed error returned by every command of the core.
type Error struct {
	Kind    ErrorKind
	Entity  string // "track", "clip", "send", "note" when an id is involved
	ID      string
	Message string
}

func (e *Error) Error() string {
	if e.Entity != "" && e.ID != "" {
		return fmt.Sprintf("%s: %s %s: %s", e.Kind, e.Entity, e.ID, e.Message)
	}
	if e.Entity != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Entity, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// KindOf returns the kind of a (possibly wrapped) core error, or "" for
// any other error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsNotFound(err error) bool       { return KindOf(err) == ErrNotFound }
func IsWrongPayload(err error) bool   { return KindOf(err) == ErrWrongPayload }
func IsInvalidRouting(err error) bool { return KindOf(err) == ErrInvalidRouting }

func NewNotFound(entity, id string) *Error {
	return &Error{Kind: ErrNotFound, Entity: entity, ID: id, Message: "does not resolve"}
}

func NewWrongPayload(clipID, want string) *Error {
	return &Error{Kind: ErrWrongPayload, Entity: "clip", ID: clipID, Message: "operation requires a " + want + " payload"}
}

func NewInvalidArgument(msg string) *Error {
	return &Error{Kind: ErrInvalidArgument, Message: msg}
}

func NewIndexOutOfRange(entity string, index, length int) *Error {
	return &Error{Kind: ErrIndexOutOfRange, Entity: entity, Message: fmt.Sprintf("index %d outside [0, %d)", index, length)}
}

func NewInvalidRouting(trackID, msg string) *Error {
	return &Error{Kind: ErrInvalidRouting, Entity: "track", ID: trackID, Message: msg}
}

func NewUnsupportedOperation(msg string) *Error {
	return &Error{Kind: ErrUnsupportedOperation, Message: msg}
}
