package auth

import (
	"errors"

	"github.com/junaidrashid-git/storefront-backend/apperrors"
	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes passwords with bcrypt after appending a server-side pepper.
type Hasher struct {
	pepper string
	cost   int
}

func NewHasher(pepper string, cost int) *Hasher {
	return &Hasher{pepper: pepper, cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", apperrors.Validation("auth.hash_password", "password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password+h.pepper), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperrors.Validation("auth.hash_password", "password is too long")
		}
		return "", apperrors.Wrap(apperrors.KindStore, "auth.hash_password", "hash password", err)
	}
	return string(hash), nil
}

// Compare reports whether password matches hash.
func (h *Hasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password+h.pepper)) == nil
}
