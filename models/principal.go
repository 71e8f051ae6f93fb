package models

// Principal is the authenticated user on whose behalf an operation runs.
// An absent principal is represented by a nil *Principal.
type Principal struct {
	// ID is the opaque identifier assigned by the identity provider.
	ID string `json:"id"`

	// Email is the address used to match share grants.
	Email string `json:"email"`

	// DisplayName is optional; see [Principal.Name].
	DisplayName string `json:"display_name,omitempty"`
}

// Name returns the display name or [AnonymousOwnerName] when it is empty.
func (p *Principal) Name() string {
	if p == nil || p.DisplayName == "" {
		return AnonymousOwnerName
	}
	return p.DisplayName
}
