package security

import (
	"comply/media-api/internal/errs"
	"comply/media-api/internal/model"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the verified payload of a bearer token
type Claims struct {
	jwt.RegisteredClaims
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

func (c *Claims) UserID() string {
	return c.Subject
}

type TokenIssuer struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, expiry time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("token secret can't be empty")
	}

	if expiry <= 0 {
		return nil, errors.New("token expiry must be bigger than 0")
	}

	return &TokenIssuer{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}, nil
}

// WithClock replaces the wall clock, used by tests
func (t *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	t.now = now
	return t
}

// Issue signs a new token for the given identity
func (t *TokenIssuer) Issue(userID, email string, role model.Role) (string, *Claims, error) {
	now := t.now()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
		},
		Email: email,
		Role:  role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token, %w", err)
	}

	return token, claims, nil
}

// Verify checks the signature and expiry of a token. Every failure looks the
// same to the caller.
func (t *TokenIssuer) Verify(token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return nil, errs.ErrUnauthenticated
	}

	if claims.Subject == "" {
		return nil, errs.ErrUnauthenticated
	}

	return claims, nil
}
