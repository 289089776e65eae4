// Package sessions issues and decodes the signed session tokens handed to
// clients after a successful Google sign-in.
package sessions

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/keerthiramGR/college-event/models"
)

// ErrInvalidToken is returned for any token that fails decoding, whether it
// is malformed, carries a bad signature or has expired. Callers get a single
// uniform failure so responses do not leak why a token was rejected.
var ErrInvalidToken = errors.New("invalid session token")

// Claims carries the identity embedded in a session token
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the token subject as the user's UUID
func (c *Claims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

// Codec signs and verifies session tokens with a shared HMAC secret
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a codec with the given signing secret and token lifetime
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the lifetime stamped on issued tokens
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue creates a signed session token for the user. A user without an
// assigned role is stamped as a student.
func (c *Codec) Issue(user *models.User) (string, error) {
	role := string(user.Role)
	if role == "" {
		role = string(models.RoleStudent)
	}

	now := time.Now().UTC()
	claims := Claims{
		Email: user.Email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Decode verifies a session token and returns its claims
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
