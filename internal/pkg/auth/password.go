// internal/pkg/auth/password.go
package auth

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/your-org/fashion-store/internal/config"
	"golang.org/x/crypto/bcrypt"
)

var ErrWeakPassword = errors.New("weak password")

const (
	minPasswordLen = 8
	// bcrypt ignores input past 72 bytes
	maxPasswordLen = 72
)

var guessable = []string{"password", "12345678", "qwerty", "letmein", "welcome", "iloveyou"}

// PasswordManager applies the account password policy and bcrypt hashing
type PasswordManager struct {
	cost int
}

func NewPasswordManager(cfg *config.Config) *PasswordManager {
	cost := cfg.Security.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordManager{cost: cost}
}

// HashPassword enforces the policy before hashing
func (p *PasswordManager) HashPassword(plain string) (string, error) {
	if err := p.ValidatePassword(plain); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), p.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

func (p *PasswordManager) VerifyPassword(plain, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// ValidatePassword requires 8 to 72 bytes with at least one letter and one
// digit, and refuses passwords built around a well known one
func (p *PasswordManager) ValidatePassword(plain string) error {
	switch n := len(plain); {
	case n < minPasswordLen:
		return weak("must be at least %d characters long", minPasswordLen)
	case n > maxPasswordLen:
		return weak("must be no more than %d characters long", maxPasswordLen)
	}

	if strings.IndexFunc(plain, unicode.IsLetter) < 0 || strings.IndexFunc(plain, unicode.IsDigit) < 0 {
		return weak("must contain at least one letter and one number")
	}

	lower := strings.ToLower(plain)
	for _, g := range guessable {
		if strings.Contains(lower, g) {
			return weak("too easy to guess")
		}
	}
	return nil
}

func weak(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrWeakPassword}, args...)...)
}
