package models

import "time"

// User represents an account entity stored by the identity provider.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the unique identifier of the user (UUIDv7).
	UserID string `json:"id"`

	// Email is the unique login of the user.
	Email string `json:"email"`

	// DisplayName is the non-sensitive name shown to other users.
	DisplayName string `json:"display_name"`

	// Password carries the plaintext password on register and login
	// requests only. It is never persisted.
	Password string `json:"password,omitempty"`

	// PasswordHash is the argon2id derived value stored in the database.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Principal projects the user onto the identity carried by requests.
func (u User) Principal() *Principal {
	return &Principal{
		ID:          u.UserID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	}
}
