// Package service provides technical services for identity operations.
package service

// PasswordService defines operations for password hashing and verification.
// Implementations must use an industry-standard hashing algorithm (e.g., argon2).
type PasswordService interface {
	// HashPassword hashes a plain text password for storage.
	HashPassword(plainPassword string) (hashedPassword string, err error)

	// ComparePassword compares a plain text password against a stored hash.
	// This is constant-time to prevent timing attacks.
	ComparePassword(plainPassword string, hashedPassword string) bool
}

// SessionTokenService defines operations for session token generation and hashing.
// Tokens are opaque random values; only their hashes are persisted.
type SessionTokenService interface {
	// GenerateToken creates a new cryptographically secure random token.
	// Returns both the plain text token (returned once at login) and the
	// hashed version (stored in the database).
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken hashes a plain text token using SHA-256.
	// Used to look up sessions by token on each request.
	HashToken(plainToken string) string
}
