package ports

import (
	"time"

	"github.com/jaidev3/notebook-llm/internal/core/domain"
)

// TokenService issues and validates signed, time-limited bearer tokens.
// Tokens are stateless: validation needs no store lookup, at the cost of no
// server-side revocation (exposure is bounded by the configured TTL).
type TokenService interface {
	// Issue signs a token for the given subject and role with an absolute
	// expiry of now + the configured TTL.
	Issue(username, role string) (token string, expiresAt time.Time, err error)

	// Validate verifies the signature and expiry and returns the claims.
	// It fails closed with domain.ErrInvalidToken on signature mismatch,
	// malformed structure, missing subject, or expiry in the past. No claim
	// is trusted before signature verification succeeds.
	Validate(token string) (*domain.TokenClaims, error)
}
