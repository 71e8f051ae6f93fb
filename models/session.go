package models

import "time"

// Session is the client's persisted sign-in state.
type Session struct {
	// Token is the compact JWT returned by the identity provider. Empty for
	// an offline session.
	Token string `json:"token"`

	// Principal is the identity the token was issued for.
	Principal Principal `json:"principal"`

	// UpdatedAt records when the session was last written.
	UpdatedAt time.Time `json:"updated_at"`
}
