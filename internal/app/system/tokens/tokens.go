// Package tokens issues and verifies the signed confirmation tokens that
// travel inside invitation links.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is how long a confirmation link stays valid.
const DefaultTTL = 72 * time.Hour

// ErrInvalidToken covers every verification failure: bad signature, wrong
// algorithm, expiry, malformed input or a missing subject.
var ErrInvalidToken = errors.New("invalid confirmation token")

// Claims binds a confirmation token to one user.
type Claims struct {
	User string `json:"user"`
	Team string `json:"team,omitempty"`
	jwt.RegisteredClaims
}

// Service signs and verifies confirmation tokens with a shared HMAC secret.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New creates a Service. A non-positive ttl falls back to DefaultTTL.
func New(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL returns the validity window of issued tokens.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for userID (and the team it was invited to).
func (s *Service) Issue(userID, teamID string) (string, error) {
	now := s.now()
	claims := Claims{
		User: userID,
		Team: teamID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the user id the
// token was issued for.
func (s *Service) Verify(token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.User == "" {
		return "", ErrInvalidToken
	}
	return claims.User, nil
}
