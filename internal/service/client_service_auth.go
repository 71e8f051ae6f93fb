package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/validators"
	"github.com/MKhiriev/go-note-keeper/models"
)

// AuthSession tracks the signed-in principal of one client session.
//
// It signs in through an [adapter.IdentityProvider], persists the issued
// session with a [store.SessionRepository] so the next run can restore it,
// and notifies subscribers on every principal transition.
type AuthSession struct {
	provider  adapter.IdentityProvider
	sessions  store.SessionRepository
	validator validators.Validator
	now       func() time.Time

	mu          sync.RWMutex
	principal   *models.Principal
	loading     bool
	subscribers []PrincipalListener

	logger *logger.Logger
}

// NewAuthSession constructs a signed-out session.
func NewAuthSession(provider adapter.IdentityProvider, sessions store.SessionRepository, logger *logger.Logger) *AuthSession {
	return &AuthSession{
		provider:  provider,
		sessions:  sessions,
		validator: validators.NewNoteValidator(),
		now:       time.Now,
		logger:    logger,
	}
}

// Subscribe registers fn for principal transitions.
func (a *AuthSession) Subscribe(fn PrincipalListener) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.subscribers = append(a.subscribers, fn)
}

// Principal returns a copy of the signed-in principal, or nil.
func (a *AuthSession) Principal() *models.Principal {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.principal == nil {
		return nil
	}
	p := *a.principal
	return &p
}

// Loading reports whether a sign-in or restore is in flight.
func (a *AuthSession) Loading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.loading
}

// Restore signs in with the session saved by a previous run. A missing
// session leaves the client signed out without error.
func (a *AuthSession) Restore(ctx context.Context) error {
	a.setLoading(true)
	defer a.setLoading(false)

	saved, err := a.sessions.LoadSession(ctx)
	if errors.Is(err, store.ErrSessionNotFound) {
		a.transition(ctx, nil)
		return nil
	}
	if err != nil {
		a.logger.Err(err).Str("func", "*AuthSession.Restore").Msg("error loading saved session")
		return &UpstreamError{Op: "restore session", Err: err}
	}

	a.provider.SetToken(saved.Token)
	a.transition(ctx, &saved.Principal)
	return nil
}

// Register creates an account and signs in with it.
func (a *AuthSession) Register(ctx context.Context, email, password, displayName string) (*models.Principal, error) {
	email = strings.TrimSpace(email)
	user := models.User{Email: email, Password: password, DisplayName: strings.TrimSpace(displayName)}
	if err := a.validator.Validate(ctx, user); err != nil {
		return nil, &ValidationError{Field: "credentials", Err: err}
	}

	a.setLoading(true)
	defer a.setLoading(false)

	session, err := a.provider.Register(ctx, user.Email, user.Password, user.DisplayName)
	if err != nil {
		a.logger.Err(err).Str("func", "*AuthSession.Register").Str("email", email).Msg("registration failed")
		return nil, upstream("register", err)
	}

	return a.signedIn(ctx, session), nil
}

// Login signs in with email and password.
func (a *AuthSession) Login(ctx context.Context, email, password string) (*models.Principal, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, &ValidationError{Field: "credentials", Err: ErrInvalidDataProvided}
	}

	a.setLoading(true)
	defer a.setLoading(false)

	session, err := a.provider.Login(ctx, email, password)
	if err != nil {
		a.logger.Err(err).Str("func", "*AuthSession.Login").Str("email", email).Msg("login failed")
		return nil, upstream("login", err)
	}

	return a.signedIn(ctx, session), nil
}

// Logout drops the token and the saved session.
func (a *AuthSession) Logout(ctx context.Context) error {
	if err := a.provider.Logout(ctx); err != nil {
		return upstream("logout", err)
	}
	if err := a.sessions.ClearSession(ctx); err != nil {
		a.logger.Err(err).Str("func", "*AuthSession.Logout").Msg("error clearing saved session")
		return &UpstreamError{Op: "clear session", Err: err}
	}

	a.transition(ctx, nil)
	return nil
}

// signedIn persists the session and announces the principal. A failed save
// only costs the next run its automatic restore.
func (a *AuthSession) signedIn(ctx context.Context, session models.Session) *models.Principal {
	session.UpdatedAt = a.now().UTC()
	if err := a.sessions.SaveSession(ctx, session); err != nil {
		a.logger.Warn().Err(err).Str("func", "*AuthSession.signedIn").Msg("session was not saved")
	}

	p := session.Principal
	a.transition(ctx, &p)
	return a.Principal()
}

func (a *AuthSession) transition(ctx context.Context, principal *models.Principal) {
	a.mu.Lock()
	a.principal = principal
	subscribers := make([]PrincipalListener, len(a.subscribers))
	copy(subscribers, a.subscribers)
	a.mu.Unlock()

	for _, fn := range subscribers {
		fn(ctx, a.Principal())
	}
}

func (a *AuthSession) setLoading(loading bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.loading = loading
}
