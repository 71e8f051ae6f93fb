package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/app"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestTypedErrors_MatchSentinels(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", &NotFoundError{NoteID: "n1"}, ErrNoteNotFound},
		{"permission", denied("edit", "n1"), ErrPermissionDenied},
		{"unauthenticated is permission", unauthenticated("create note"), ErrPermissionDenied},
		{"unauthenticated cause", unauthenticated("create note"), ErrUnauthenticated},
		{"validation", &ValidationError{Field: "email", Err: ErrEmptyEmail}, ErrValidation},
		{"validation cause", &ValidationError{Field: "email", Err: ErrEmptyEmail}, ErrEmptyEmail},
		{"upstream", upstream("create note", cause), ErrUpstream},
		{"upstream cause", upstream("create note", cause), cause},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
		})
	}
}

func TestTypedErrors_As(t *testing.T) {
	var perr *PermissionError
	assert.True(t, errors.As(fmt.Errorf("x: %w", denied("share", "n9")), &perr))
	assert.Equal(t, "share", perr.Op)
	assert.Equal(t, "n9", perr.NoteID)

	var nf *NotFoundError
	assert.False(t, errors.As(denied("share", "n9"), &nf))
}

func TestTypedErrors_Messages(t *testing.T) {
	assert.Equal(t, `note "n1" not found`, (&NotFoundError{NoteID: "n1"}).Error())
	assert.Equal(t, "permission denied: delete on note n1", denied("delete", "n1").Error())
	assert.Equal(t, "permission denied: create note: authentication required", unauthenticated("create note").Error())
}

func TestMapAdapterError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"wrong password", fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgInvalidLoginPassword), ErrWrongPassword},
		{"bad token", fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgTokenIsExpiredOrInvalid), ErrTokenIsExpiredOrInvalid},
		{"no token", fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgAuthenticationRequired), ErrNotSignedIn},
		{"duplicate email", fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgEmailAlreadyExists), store.ErrLoginAlreadyExists},
		{"registration failed", fmt.Errorf("%w: %s", adapter.ErrBadGateway, app.MsgRegistrationFailed), ErrRegisterOnServer},
		{"invalid data", fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgInvalidDataProvided), ErrInvalidDataProvided},
		{"empty patch", fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgEmptyPatch), ErrInvalidDataProvided},
		{"token signing", fmt.Errorf("%w: %s", adapter.ErrInternalServerError, app.MsgLoginFailed), ErrTokenCreationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapAdapterError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapAdapterError_UnknownBodyPassesThrough(t *testing.T) {
	in := fmt.Errorf("%w: %s", adapter.ErrConflict, "something else")
	assert.Same(t, in, mapAdapterError(in))
}
