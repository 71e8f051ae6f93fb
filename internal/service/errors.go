package service

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is against the typed note errors below.
var (
	ErrNoteNotFound     = errors.New("note not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidation       = errors.New("validation failed")
	ErrUpstream         = errors.New("upstream call failed")

	// ErrUnauthenticated is the cause of a PermissionError raised when an
	// operation needs a signed-in principal.
	ErrUnauthenticated = errors.New("authentication required")
)

// Auth and server-side errors.
var (
	ErrInvalidDataProvided     = errors.New("invalid data provided")
	ErrWrongPassword           = errors.New("wrong password")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrRegisterOnServer        = errors.New("registration on server failed")
	ErrLoginOnServer           = errors.New("login on server failed")
	ErrVersionIsNotSpecified   = errors.New("version is not specified")
	ErrNotSignedIn             = errors.New("not signed in")
)

// Causes carried by ValidationError.
var (
	ErrShareWithOwner = errors.New("a note cannot be shared with its owner")
	ErrEmptyEmail     = errors.New("email is empty")
	ErrEmptyFile      = errors.New("file is empty")
	ErrEmptyFilename  = errors.New("file name is empty")
	ErrEmptyText      = errors.New("text is empty")
	ErrUnknownLength  = errors.New("unknown summary length")
	ErrEmptyLanguage  = errors.New("target language is empty")
)

// NotFoundError reports that the referenced note does not exist.
type NotFoundError struct {
	NoteID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("note %q not found", e.NoteID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNoteNotFound
}

// PermissionError reports that the principal lacks the capability needed
// for Op on the note.
type PermissionError struct {
	Op     string
	NoteID string
	Err    error
}

func (e *PermissionError) Error() string {
	msg := "permission denied: " + e.Op
	if e.NoteID != "" {
		msg += " on note " + e.NoteID
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PermissionError) Is(target error) bool {
	return target == ErrPermissionDenied
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

// ValidationError reports malformed input such as an empty share email.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// UpstreamError wraps a failure of the document store, identity provider,
// object store or text generator.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func denied(op, noteID string) error {
	return &PermissionError{Op: op, NoteID: noteID}
}

func unauthenticated(op string) error {
	return &PermissionError{Op: op, Err: ErrUnauthenticated}
}

func upstream(op string, err error) error {
	return &UpstreamError{Op: op, Err: mapAdapterError(err)}
}
