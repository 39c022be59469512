package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jaidev3/notebook-llm/internal/core/domain"
)

const defaultTokenTTL = 30 * time.Minute

// tokenClaims is the wire shape of a bearer token: subject and expiry from
// the registered claim set plus a custom role claim.
type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTTokenService signs and validates HS256 bearer tokens with a symmetric
// secret known only to the service.
type JWTTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *JWTTokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTTokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for username carrying role, expiring at now + TTL.
// Expiry is stored as an absolute timestamp.
func (s *JWTTokenService) Issue(username, role string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := &tokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Validate verifies signature and expiry and returns the claims. Any failure
// collapses to domain.ErrInvalidToken; no claim is read before the signature
// checks out.
func (s *JWTTokenService) Validate(token string) (*domain.TokenClaims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	return &domain.TokenClaims{
		Subject:   claims.Subject,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
