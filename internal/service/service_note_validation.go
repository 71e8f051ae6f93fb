package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/validators"
	"github.com/MKhiriev/go-note-keeper/models"
)

// NoteValidationService rejects malformed documents before they reach the
// store.
type NoteValidationService struct {
	inner     NoteService
	validator validators.Validator
}

func NewNoteValidationService() NoteServiceWrapper {
	return &NoteValidationService{
		validator: validators.NewNoteValidator(),
	}
}

func (v *NoteValidationService) Create(ctx context.Context, note models.Note) (string, error) {
	patch := models.NotePatch{SharedWith: &note.SharedWith, Permissions: &note.Permissions}
	if err := v.validator.Validate(ctx, patch, validators.FieldSharedWith, validators.FieldPermissions); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Create(ctx, note)
}

func (v *NoteValidationService) Get(ctx context.Context, id string) (models.Note, error) {
	if strings.TrimSpace(id) == "" {
		return models.Note{}, ErrInvalidDataProvided
	}
	return v.inner.Get(ctx, id)
}

func (v *NoteValidationService) Update(ctx context.Context, id string, patch models.NotePatch) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidDataProvided
	}
	if err := v.validator.Validate(ctx, patch); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Update(ctx, id, patch)
}

func (v *NoteValidationService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidDataProvided
	}
	return v.inner.Delete(ctx, id)
}

func (v *NoteValidationService) Query(ctx context.Context, q models.NoteQuery) ([]models.Note, error) {
	return v.inner.Query(ctx, q)
}

func (v *NoteValidationService) Wrap(inner NoteService) NoteService {
	v.inner = inner
	return v
}
