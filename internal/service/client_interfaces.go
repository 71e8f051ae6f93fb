package service

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

// PrincipalSource exposes the signed-in principal to the note repository.
// A nil principal means nobody is signed in.
type PrincipalSource interface {
	Principal() *models.Principal
}

// ResultSetLoader re-populates the cached result sets from the document
// store. The refresh worker drives it on a ticker.
type ResultSetLoader interface {
	Load(ctx context.Context) error
}

// PrincipalListener is called after every sign-in, sign-out or session
// restore with the new principal, which is nil after sign-out.
type PrincipalListener func(ctx context.Context, principal *models.Principal)
