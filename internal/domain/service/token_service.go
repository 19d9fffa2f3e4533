package service

import "github.com/golang-jwt/jwt/v5"

// Claims defines the custom claims carried by a session token. The
// subject is the principal's document id; which collection it refers to
// is decided by the middleware variant that resolves it.
type Claims struct {
	SubjectID string
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying signed,
// time-limited session tokens. Tokens are stateless and self-contained:
// expiry is the only invalidation mechanism.
type TokenService interface {
	// Issue creates a signed token bound to the given subject id.
	Issue(subjectID string) (string, error)

	// Validate checks the signature and expiry of a token string and
	// returns its claims. It returns an error for any malformed, expired
	// or tampered token; it never panics.
	Validate(tokenString string) (*Claims, error)
}
