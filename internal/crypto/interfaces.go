// Package crypto holds the server's password hashing.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher derives and checks password hashes. Plaintext passwords
// never leave the auth service.
type PasswordHasher interface {
	// Hash returns a self-describing encoded hash of password with a fresh
	// random salt.
	Hash(password string) (string, error)

	// Verify reports whether password matches encoded. A malformed encoded
	// value is an error, a mismatch is not.
	Verify(password, encoded string) (bool, error)
}
