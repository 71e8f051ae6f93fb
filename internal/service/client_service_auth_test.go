package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/app"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/mock"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestAuthSession(t *testing.T) (*AuthSession, *mock.MockIdentityProvider, *mock.MockSessionRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	provider := mock.NewMockIdentityProvider(ctrl)
	sessions := mock.NewMockSessionRepository(ctrl)

	a := NewAuthSession(provider, sessions, logger.Nop())
	a.now = func() time.Time { return baseTime }
	return a, provider, sessions
}

func TestAuthSession_LoginPersistsAndNotifies(t *testing.T) {
	a, provider, sessions := newTestAuthSession(t)
	ctx := context.Background()

	var seen []*models.Principal
	a.Subscribe(func(_ context.Context, p *models.Principal) { seen = append(seen, p) })

	issued := models.Session{Token: "jwt", Principal: *u1}
	gomock.InOrder(
		provider.EXPECT().Login(ctx, "u1@x.com", "secret1").Return(issued, nil),
		sessions.EXPECT().SaveSession(ctx, models.Session{Token: "jwt", Principal: *u1, UpdatedAt: baseTime}).Return(nil),
	)

	p, err := a.Login(ctx, " u1@x.com ", "secret1")

	require.NoError(t, err)
	assert.Equal(t, u1, p)
	assert.Equal(t, u1, a.Principal())
	require.Len(t, seen, 1)
	assert.Equal(t, u1, seen[0])
	assert.False(t, a.Loading())
}

func TestAuthSession_LoginWrongPassword(t *testing.T) {
	a, provider, _ := newTestAuthSession(t)
	ctx := context.Background()

	provider.EXPECT().Login(ctx, "u1@x.com", "bad").
		Return(models.Session{}, fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgInvalidLoginPassword))

	_, err := a.Login(ctx, "u1@x.com", "bad")

	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Nil(t, a.Principal())
}

func TestAuthSession_LoginEmptyCredentials(t *testing.T) {
	a, _, _ := newTestAuthSession(t)

	_, err := a.Login(context.Background(), "", "x")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthSession_RegisterValidates(t *testing.T) {
	a, _, _ := newTestAuthSession(t)

	_, err := a.Register(context.Background(), "not-an-email", "secret1", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = a.Register(context.Background(), "u1@x.com", "123", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthSession_RegisterSaveFailureStillSignsIn(t *testing.T) {
	a, provider, sessions := newTestAuthSession(t)
	ctx := context.Background()

	provider.EXPECT().Register(ctx, "u1@x.com", "secret1", "User One").
		Return(models.Session{Token: "jwt", Principal: *u1}, nil)
	sessions.EXPECT().SaveSession(ctx, gomock.Any()).Return(errors.New("disk full"))

	p, err := a.Register(ctx, "u1@x.com", "secret1", " User One ")

	require.NoError(t, err)
	assert.Equal(t, u1, p)
}

func TestAuthSession_Restore(t *testing.T) {
	a, provider, sessions := newTestAuthSession(t)
	ctx := context.Background()

	sessions.EXPECT().LoadSession(ctx).Return(models.Session{Token: "jwt", Principal: *u2}, nil)
	provider.EXPECT().SetToken("jwt")

	require.NoError(t, a.Restore(ctx))
	assert.Equal(t, u2, a.Principal())
}

func TestAuthSession_RestoreWithoutSavedSession(t *testing.T) {
	a, _, sessions := newTestAuthSession(t)
	ctx := context.Background()

	notified := false
	a.Subscribe(func(_ context.Context, p *models.Principal) {
		notified = true
		assert.Nil(t, p)
	})
	sessions.EXPECT().LoadSession(ctx).Return(models.Session{}, store.ErrSessionNotFound)

	require.NoError(t, a.Restore(ctx))
	assert.Nil(t, a.Principal())
	assert.True(t, notified)
}

func TestAuthSession_Logout(t *testing.T) {
	a, provider, sessions := newTestAuthSession(t)
	ctx := context.Background()

	sessions.EXPECT().LoadSession(ctx).Return(models.Session{Token: "jwt", Principal: *u1}, nil)
	provider.EXPECT().SetToken("jwt")
	require.NoError(t, a.Restore(ctx))

	provider.EXPECT().Logout(ctx).Return(nil)
	sessions.EXPECT().ClearSession(ctx).Return(nil)

	require.NoError(t, a.Logout(ctx))
	assert.Nil(t, a.Principal())
}

func TestAuthSession_PrincipalIsCopy(t *testing.T) {
	a, provider, sessions := newTestAuthSession(t)
	ctx := context.Background()

	sessions.EXPECT().LoadSession(ctx).Return(models.Session{Principal: *u1}, nil)
	provider.EXPECT().SetToken("")
	require.NoError(t, a.Restore(ctx))

	p := a.Principal()
	p.Email = "changed@x.com"

	assert.Equal(t, u1.Email, a.Principal().Email)
}

func TestClientServices_ReloadOnSignIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock.NewMockSessionRepository(ctrl)
	notes := newMemNoteStore()
	ctx := context.Background()

	_, err := notes.Create(ctx, models.Note{Title: "mine", OwnerID: LocalPrincipalID("u1@x.com")})
	require.NoError(t, err)

	svcs := NewClientServices(NewOfflineIdentityProvider(), notes, nil, sessions, nil, logger.Nop())
	sessions.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)

	_, err = svcs.Auth.Login(ctx, "u1@x.com", "whatever")
	require.NoError(t, err)

	require.Len(t, svcs.Notes.Owned(), 1)
	assert.Equal(t, "mine", svcs.Notes.Owned()[0].Title)
}

func TestOfflineIdentityProvider(t *testing.T) {
	provider := NewOfflineIdentityProvider()
	ctx := context.Background()

	registered, err := provider.Register(ctx, "U1@x.com", "", "One")
	require.NoError(t, err)
	logged, err := provider.Login(ctx, " u1@x.com", "")
	require.NoError(t, err)

	assert.Equal(t, registered.Principal.ID, logged.Principal.ID)
	assert.Empty(t, logged.Token)
	assert.NotEqual(t, LocalPrincipalID("u2@x.com"), logged.Principal.ID)

	current, err := provider.Current(ctx)
	assert.NoError(t, err)
	assert.Nil(t, current)
}
