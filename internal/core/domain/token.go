package domain

import "time"

// TokenClaims is the validated content of a bearer token. Tokens are not
// persisted; validity is determined by signature and expiry alone.
type TokenClaims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}
