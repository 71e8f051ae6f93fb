// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/app"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registerBody = `{"email":"alice@x.com","password":"secret1","display_name":"Alice"}`

func TestRegister_Success(t *testing.T) {
	h := newTestHandler(&service.Services{AuthService: &fakeAuthService{
		registerUserFn: func(_ context.Context, user models.User) (models.User, error) {
			assert.Equal(t, "secret1", user.Password)
			return models.User{UserID: "u1", Email: user.Email, DisplayName: user.DisplayName}, nil
		},
	}})

	rr := serve(t, h, http.MethodPost, "/api/user/register", registerBody, "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bearer signed-u1", rr.Header().Get("Authorization"))

	var got models.Principal
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, alice, got)
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "invalid json",
			body:       "{",
			wantStatus: http.StatusBadRequest,
			wantBody:   app.MsgInvalidDataProvided,
		},
		{
			name:       "validation failure",
			body:       registerBody,
			err:        fmt.Errorf("%w: bad email", service.ErrInvalidDataProvided),
			wantStatus: http.StatusBadRequest,
			wantBody:   app.MsgInvalidDataProvided,
		},
		{
			name:       "duplicate email",
			body:       registerBody,
			err:        store.ErrLoginAlreadyExists,
			wantStatus: http.StatusConflict,
			wantBody:   app.MsgEmailAlreadyExists,
		},
		{
			name:       "storage failure",
			body:       registerBody,
			err:        errUnexpected,
			wantStatus: http.StatusBadGateway,
			wantBody:   app.MsgRegistrationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&service.Services{AuthService: &fakeAuthService{
				registerUserFn: func(context.Context, models.User) (models.User, error) {
					return models.User{}, tt.err
				},
			}})

			rr := serve(t, h, http.MethodPost, "/api/user/register", tt.body, "")

			requireBody(t, rr, tt.wantStatus, tt.wantBody)
			assert.Empty(t, rr.Header().Get("Authorization"))
		})
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		loginErr   error
		tokenErr   error
		wantStatus int
		wantBody   string
	}{
		{name: "wrong password", loginErr: service.ErrWrongPassword, wantStatus: http.StatusUnauthorized, wantBody: app.MsgInvalidLoginPassword},
		{name: "unknown email", loginErr: store.ErrNoUserWasFound, wantStatus: http.StatusUnauthorized, wantBody: app.MsgInvalidLoginPassword},
		{name: "empty credentials", loginErr: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest, wantBody: app.MsgInvalidDataProvided},
		{name: "token failure", tokenErr: service.ErrTokenCreationFailed, wantStatus: http.StatusInternalServerError, wantBody: app.MsgLoginFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&service.Services{AuthService: &fakeAuthService{
				loginFn: func(context.Context, models.User) (models.User, error) {
					return models.User{UserID: "u1", Email: "alice@x.com"}, tt.loginErr
				},
				createTokenFn: func(context.Context, models.User) (models.Token, error) {
					return models.Token{}, tt.tokenErr
				},
			}})

			rr := serve(t, h, http.MethodPost, "/api/user/login", `{"email":"alice@x.com","password":"x"}`, "")

			requireBody(t, rr, tt.wantStatus, tt.wantBody)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	h := newTestHandler(&service.Services{AuthService: &fakeAuthService{
		loginFn: func(_ context.Context, user models.User) (models.User, error) {
			return models.User{UserID: "u1", Email: user.Email, DisplayName: "Alice"}, nil
		},
	}})

	rr := serve(t, h, http.MethodPost, "/api/user/login", `{"email":"alice@x.com","password":"secret1"}`, "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bearer signed-u1", rr.Header().Get("Authorization"))
	assert.Contains(t, rr.Body.String(), `"email":"alice@x.com"`)
}

func TestMe(t *testing.T) {
	auth := &fakeAuthService{
		getUserFn: func(_ context.Context, userID string) (models.User, error) {
			if userID != alice.ID {
				return models.User{}, store.ErrNoUserWasFound
			}
			return models.User{UserID: alice.ID, Email: alice.Email, DisplayName: alice.DisplayName}, nil
		},
	}
	h := newTestHandler(&service.Services{AuthService: auth})

	rr := serve(t, h, http.MethodGet, "/api/user/me", "", "valid-token")
	require.Equal(t, http.StatusOK, rr.Code)
	var got models.Principal
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, alice, got)

	requireBody(t, serve(t, h, http.MethodGet, "/api/user/me", "", ""), http.StatusUnauthorized, app.MsgAuthenticationRequired)
	requireBody(t, serve(t, h, http.MethodGet, "/api/user/me", "", "forged"), http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid)

	auth.parseTokenFn = func(context.Context, string) (models.Token, error) {
		return models.Token{UserID: "deleted"}, nil
	}
	requireBody(t, serve(t, h, http.MethodGet, "/api/user/me", "", "valid-token"), http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid)
}
