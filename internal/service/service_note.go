package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

type noteService struct {
	noteStore store.NoteStore

	logger *logger.Logger
}

// NewNoteService returns the server's NoteService, optionally decorated by
// wrappers applied in order.
func NewNoteService(noteStore store.NoteStore, logger *logger.Logger, wrappers ...NoteServiceWrapper) NoteService {
	var svc NoteService = &noteService{
		noteStore: noteStore,
		logger:    logger,
	}
	for _, w := range wrappers {
		svc = w.Wrap(svc)
	}
	return svc
}

// Create stamps the authenticated caller as owner, replacing any owner named
// in the document.
func (n *noteService) Create(ctx context.Context, note models.Note) (string, error) {
	if principal, ok := utils.GetPrincipalFromContext(ctx); ok {
		note.OwnerID = principal.ID
		note.OwnerEmail = principal.Email
		note.OwnerName = principal.Name()
	}
	return n.noteStore.Create(ctx, note)
}

func (n *noteService) Get(ctx context.Context, id string) (models.Note, error) {
	return n.noteStore.Get(ctx, id)
}

func (n *noteService) Update(ctx context.Context, id string, patch models.NotePatch) error {
	return n.noteStore.Update(ctx, id, patch)
}

func (n *noteService) Delete(ctx context.Context, id string) error {
	return n.noteStore.Delete(ctx, id)
}

func (n *noteService) Query(ctx context.Context, q models.NoteQuery) ([]models.Note, error) {
	return n.noteStore.Query(ctx, q)
}

type fileService struct {
	objectStore store.ObjectStore

	logger *logger.Logger
}

// NewFileService returns a FileService backed by objectStore.
func NewFileService(objectStore store.ObjectStore, logger *logger.Logger) FileService {
	return &fileService{objectStore: objectStore, logger: logger}
}

func (f *fileService) Upload(ctx context.Context, path string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrInvalidDataProvided
	}
	return f.objectStore.Put(ctx, path, data)
}

func (f *fileService) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return f.objectStore.Open(ctx, path)
}
