package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/IsaacLanzoni/projeto-belezza/pkg/errors"
)

// MinPasswordLen is the account password policy. Hash is the single
// enforcement point, so registration and any future password change
// share the same rule.
const MinPasswordLen = 8

// PasswordHasher hashes account passwords at registration and verifies
// login attempts against the stored hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) error
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt-backed hasher. A cost outside the
// bcrypt range falls back to the library default.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (b *bcryptHasher) Hash(password string) (string, error) {
	if len(password) < MinPasswordLen {
		return "", apperrors.Validation(
			fmt.Sprintf("password must be at least %d characters", MinPasswordLen), nil)
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

func (b *bcryptHasher) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
