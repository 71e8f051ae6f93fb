package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-note-keeper/models"
)

// NoteService is the server's generic document API over the note store.
// It authenticates nothing itself and enforces no note-level permissions.
type NoteService interface {
	Create(ctx context.Context, note models.Note) (string, error)
	Get(ctx context.Context, id string) (models.Note, error)
	Update(ctx context.Context, id string, patch models.NotePatch) error
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, q models.NoteQuery) ([]models.Note, error)
}

// FileService stores and serves note images.
type FileService interface {
	Upload(ctx context.Context, path string, data []byte) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// AuthService registers accounts and issues and verifies session tokens.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, userID string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService reports build information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// NoteServiceWrapper defines middleware composition for NoteService.
// Implementations wrap an existing NoteService to add behavior such as
// logging or validating.
type NoteServiceWrapper interface {
	Wrap(NoteService) NoteService
}
