package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/AlexZinkM/keyvault/internal/model"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// PBKDF2 parameters of the store format.
	// They are part of the format: every store ever written was derived with
	// exactly these values, so changing any of them makes old stores unreadable.
	pbkdf2Iterations = 100000
	KeyLen           = 32 // AES-256
	SaltLen          = 16

	// MinPasswordLen is counted in characters, not bytes
	MinPasswordLen = 8
)

// ValidatePassword checks the password precondition of DeriveKey.
func ValidatePassword(password []byte) error {
	if len(password) == 0 {
		return model.ErrEmptyPassword
	}
	if utf8.RuneCount(password) < MinPasswordLen {
		return model.ErrWeakPassword
	}
	return nil
}

// DeriveKey turns a password and a 16-byte salt into the 32-byte session key.
// password must be []byte for security (caller should zero it after use)
func DeriveKey(password, salt []byte) ([]byte, error) {
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if len(salt) != SaltLen {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", model.ErrInvalidSalt, SaltLen, len(salt))
	}

	return pbkdf2.Key(password, salt, pbkdf2Iterations, KeyLen, sha256.New), nil
}

// NewSalt generates a fresh random salt for an encrypt run.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}
