package store

import (
	"context"
	"io"

	"github.com/MKhiriev/go-note-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// NoteStore is the generic document store holding notes.
//
// It enforces no note-level permissions; callers are expected to check
// access before writing.
type NoteStore interface {
	// Create writes a new note and returns the id assigned to it.
	Create(ctx context.Context, note models.Note) (string, error)
	// Get returns the note with id or [ErrNoteNotFound].
	Get(ctx context.Context, id string) (models.Note, error)
	// Update writes the non-nil fields of patch. Returns [ErrNoteNotFound]
	// when no note has id.
	Update(ctx context.Context, id string, patch models.NotePatch) error
	// Delete removes the note permanently. Returns [ErrNoteNotFound] when
	// no note has id.
	Delete(ctx context.Context, id string) error
	// Query lists the notes matching q.
	Query(ctx context.Context, q models.NoteQuery) ([]models.Note, error)
}

// ObjectStore holds note images and other binary attachments.
type ObjectStore interface {
	// Put stores data under path and returns the URL it can be fetched from.
	Put(ctx context.Context, path string, data []byte) (string, error)
	// Open returns a reader for the object at path or [ErrObjectNotFound].
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// UserRepository persists the accounts of the identity provider.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID string) (models.User, error)
}

// SessionRepository persists the client's sign-in state between runs.
type SessionRepository interface {
	SaveSession(ctx context.Context, session models.Session) error
	// LoadSession returns the saved session or [ErrSessionNotFound].
	LoadSession(ctx context.Context) (models.Session, error)
	ClearSession(ctx context.Context) error
}
