package service

import (
	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
)

type ClientServices struct {
	Auth  *AuthSession
	Notes *NoteRepository
	AI    *AIService
}

// NewClientServices wires the session, note repository and AI helpers. The
// repository reloads its result sets on every principal transition of the
// session.
func NewClientServices(
	identity adapter.IdentityProvider,
	notes store.NoteStore,
	objects store.ObjectStore,
	sessions store.SessionRepository,
	generator adapter.TextGenerator,
	logger *logger.Logger,
) *ClientServices {
	auth := NewAuthSession(identity, sessions, logger)
	repo := NewNoteRepository(notes, objects, generator, auth, logger)
	auth.Subscribe(repo.OnPrincipalChange)

	return &ClientServices{
		Auth:  auth,
		Notes: repo,
		AI:    NewAIService(generator, logger),
	}
}
