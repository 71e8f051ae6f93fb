package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same email already exists.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a lookup matches no user.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNoteNotFound is returned when an operation targets a note id that
	// does not exist.
	ErrNoteNotFound = errors.New("note was not found")

	// ErrInvalidQuery is returned when a note query names an unknown field.
	ErrInvalidQuery = errors.New("invalid note query")

	// ErrSessionNotFound is returned when the client has no saved session.
	ErrSessionNotFound = errors.New("local session not found")

	// ErrObjectNotFound is returned when an object path does not exist.
	ErrObjectNotFound = errors.New("object not found")

	// ErrInvalidObjectPath is returned for empty or escaping object paths.
	ErrInvalidObjectPath = errors.New("invalid object path")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT, UPDATE or
	// DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan note row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan note rows")
)
