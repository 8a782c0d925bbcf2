package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer signs access tokens. Issuing is stateless: every call signs a
// fresh token rather than reusing a process-global cache, so rotation of the
// secret or TTL never serves stale credentials. Callers that want caching
// must layer it on explicitly.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer constructs a TokenIssuer.
func NewTokenIssuer(secret []byte, ttl time.Duration) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: empty secret")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenIssuer{secret: secret, ttl: ttl}, nil
}

// Issue signs an HS256 token for the subject and role.
func (i *TokenIssuer) Issue(subject string, role Role) (string, error) {
	if i == nil {
		return "", errors.New("auth: nil issuer")
	}
	if subject == "" {
		return "", errors.New("auth: empty subject")
	}
	if _, ok := NormalizeRole(string(role)); !ok {
		return "", errors.New("auth: invalid role")
	}

	now := time.Now()
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}
