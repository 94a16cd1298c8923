package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/junaidrashid-git/storefront-backend/apperrors"
	"github.com/junaidrashid-git/storefront-backend/models"
)

const opVerify = "auth.verify_token"

// Claims is the signed payload of a bearer token: the user snapshot at
// issuance time plus the registered claims.
type Claims struct {
	User models.IdentityClaim `json:"user"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 bearer tokens with a shared secret.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens returns a token service. A zero ttl issues tokens without expiry.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock overrides the time source; used by tests.
func (t *Tokens) WithClock(now func() time.Time) *Tokens {
	t.now = now
	return t
}

// Issue signs a token carrying the user's identity claim.
func (t *Tokens) Issue(user models.User) (string, error) {
	now := t.now()
	claims := Claims{
		User: user.Claim(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if t.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindStore, "auth.issue_token", "sign token", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of raw and returns its claims.
// Every failure is Unauthenticated.
func (t *Tokens) Verify(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, apperrors.Unauthenticated(opVerify, "token is required")
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnauthenticated, opVerify, mapJWTError(err), err)
	}
	if claims.User.ID == 0 {
		return nil, apperrors.Unauthenticated(opVerify, "token carries no user")
	}
	return &claims, nil
}

func mapJWTError(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return "token signature invalid"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "token malformed"
	default:
		return "token invalid"
	}
}
