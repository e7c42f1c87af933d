package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher defines behavior for hashing and comparing passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// BcryptPasswordHasher is a PasswordHasher implementation using bcrypt.
type BcryptPasswordHasher struct {
	cost int
}

// NewBcryptPasswordHasherWithCost returns a hasher; costs outside bcrypt's range fall back to the default.
func NewBcryptPasswordHasherWithCost(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Compare returns nil when plain matches hash.
func (h *BcryptPasswordHasher) Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// AdminPasswordHash picks the configured hash, or hashes the plaintext secret
// when only that is set. A configured hash must be a valid bcrypt hash.
func AdminPasswordHash(hasher PasswordHasher, hash, plain string) (string, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return "", fmt.Errorf("admin password hash is not a bcrypt hash: %w", err)
		}
		return hash, nil
	}
	if plain == "" {
		return "", errors.New("no admin password configured")
	}

	hashed, err := hasher.Hash(plain)
	if err != nil {
		return "", fmt.Errorf("hash admin password: %w", err)
	}
	return hashed, nil
}
