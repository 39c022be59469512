package ports

// PasswordHasher is a one-way salted hash of passwords. Two hashes of the
// same plaintext differ but both verify.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether plaintext matches digest. A malformed digest
	// verifies false, never panics.
	Verify(password, digest string) bool
}
