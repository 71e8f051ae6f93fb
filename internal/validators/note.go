package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-note-keeper/models"
)

// Field names accepted by [NoteValidator.Validate].
const (
	FieldEmail       = "email"
	FieldPermission  = "permission"
	FieldPassword    = "password"
	FieldPatch       = "patch"
	FieldSharedWith  = "shared_with"
	FieldPermissions = "shared_with_permissions"
)

// MinPasswordLength is the shortest password accepted on registration.
const MinPasswordLength = 6

// NoteValidator validates share grants, credentials and note patches with
// go-playground/validator.
type NoteValidator struct {
	validate *validator.Validate
}

// NewNoteValidator constructs a [NoteValidator].
func NewNoteValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("permission", func(fl validator.FieldLevel) bool {
		return models.Permission(fl.Field().String()).IsValid()
	})

	return &NoteValidator{validate: v}
}

// Validate accepts [models.Share], [models.User] and [models.NotePatch],
// by value or pointer.
func (v *NoteValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Share:
		return v.validateShare(ctx, value, fields...)
	case *models.Share:
		return v.validateShare(ctx, *value, fields...)

	case models.User:
		return v.validateCredentials(ctx, value, fields...)
	case *models.User:
		return v.validateCredentials(ctx, *value, fields...)

	case models.NotePatch:
		return v.validatePatch(ctx, value, fields...)
	case *models.NotePatch:
		return v.validatePatch(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *NoteValidator) validateShare(_ context.Context, share models.Share, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPermission}
	}

	for _, field := range fields {
		switch field {
		case FieldEmail:
			if err := v.email(share.Email); err != nil {
				return err
			}
		case FieldPermission:
			if err := v.validate.Var(string(share.Permission), "required,permission"); err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidPermission, share.Permission)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *NoteValidator) validateCredentials(_ context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, field := range fields {
		switch field {
		case FieldEmail:
			if err := v.email(user.Email); err != nil {
				return err
			}
		case FieldPassword:
			if user.Password == "" {
				return ErrEmptyPassword
			}
			if err := v.validate.Var(user.Password, fmt.Sprintf("min=%d", MinPasswordLength)); err != nil {
				return ErrShortPassword
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *NoteValidator) validatePatch(_ context.Context, patch models.NotePatch, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPatch, FieldSharedWith, FieldPermissions}
	}

	for _, field := range fields {
		switch field {
		case FieldPatch:
			if patch.IsEmpty() {
				return ErrEmptyPatch
			}
		case FieldSharedWith:
			if patch.SharedWith == nil {
				continue
			}
			for _, email := range *patch.SharedWith {
				if err := v.email(email); err != nil {
					return err
				}
			}
			if dup := patch.SharedWith.Duplicate(); dup != "" {
				return fmt.Errorf("%w: %s", ErrDuplicateEmail, dup)
			}
		case FieldPermissions:
			if patch.Permissions == nil {
				continue
			}
			keys := make(models.EmailList, 0, len(*patch.Permissions))
			for email, p := range *patch.Permissions {
				keys = append(keys, email)
				if !p.IsValid() {
					return fmt.Errorf("%w: %q for %s", ErrInvalidPermission, p, email)
				}
				if patch.SharedWith != nil && !patch.SharedWith.Contains(email) {
					return fmt.Errorf("%w: %s", ErrPermissionOrphan, email)
				}
			}
			if dup := keys.Duplicate(); dup != "" {
				return fmt.Errorf("%w: %s", ErrDuplicateEmail, dup)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *NoteValidator) email(email string) error {
	if err := v.validate.Var(strings.TrimSpace(email), "required,email"); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return nil
}
