package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/models"
)

// offlineIdentityProvider signs principals in without a server. The
// principal id is derived from the email, so the same email always owns
// the same local notes. Passwords are not checked.
type offlineIdentityProvider struct{}

// NewOfflineIdentityProvider returns the identity provider used with the
// local SQLite note store.
func NewOfflineIdentityProvider() adapter.IdentityProvider {
	return offlineIdentityProvider{}
}

func (o offlineIdentityProvider) Register(_ context.Context, email, _, displayName string) (models.Session, error) {
	return offlineSession(email, displayName), nil
}

func (o offlineIdentityProvider) Login(_ context.Context, email, _ string) (models.Session, error) {
	return offlineSession(email, ""), nil
}

func (o offlineIdentityProvider) Logout(context.Context) error {
	return nil
}

// Current returns nil: an offline principal only lives in the saved session.
func (o offlineIdentityProvider) Current(context.Context) (*models.Principal, error) {
	return nil, nil
}

func (o offlineIdentityProvider) SetToken(string) {}

func (o offlineIdentityProvider) Token() string {
	return ""
}

// LocalPrincipalID returns the stable offline principal id for email.
func LocalPrincipalID(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+normalized)).String()
}

func offlineSession(email, displayName string) models.Session {
	email = strings.TrimSpace(email)
	return models.Session{
		Principal: models.Principal{
			ID:          LocalPrincipalID(email),
			Email:       email,
			DisplayName: displayName,
		},
		UpdatedAt: time.Now().UTC(),
	}
}
