// Package crypto adaptador de hashing de credenciales sobre bcrypt.
package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Account-api/internal/application/security"
)

var _ security.CredentialHasher = (*BcryptHasher)(nil)

// BcryptHasher implementa security.CredentialHasher.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher cost fuera de [bcrypt.MinCost, bcrypt.MaxCost] usa bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash genera el digest de plain.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Matches compara en tiempo constante; un digest corrupto cuenta como no coincidente.
func (h *BcryptHasher) Matches(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
