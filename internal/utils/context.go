// Package utils provides small helpers shared across the application:
// typed context keys, JWT issuing and parsing, JSON response writing,
// the resty client constructor and id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

// contextKey is a private type for context keys, so they never collide with
// keys of other packages.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// PrincipalCtxKey is the key the authentication middleware stores the
// request's [models.Principal] under.
var PrincipalCtxKey = contextKey("principal")

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, PrincipalCtxKey, p)
}

// GetPrincipalFromContext returns the principal stored by [WithPrincipal].
// The ok flag is false when no principal, or a nil one, is present.
func GetPrincipalFromContext(ctx context.Context) (*models.Principal, bool) {
	p, ok := ctx.Value(PrincipalCtxKey).(*models.Principal)
	return p, ok && p != nil
}
