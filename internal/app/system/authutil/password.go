// internal/app/system/authutil/password.go
package authutil

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const (
	// TempPasswordLength is the length of passwords issued with invitations.
	TempPasswordLength = 12
	// BcryptCost is the work factor for stored password hashes.
	BcryptCost = 12
	// MinPasswordLength is the minimum length for a user-chosen password.
	MinPasswordLength = 8
	// MaxPasswordBytes is bcrypt's input limit.
	MaxPasswordBytes = 72
)

// tempPasswordCharset excludes look-alike characters (0/O, 1/l/I) since the
// password is typed from an email.
const tempPasswordCharset = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

// Errors returned by ValidatePassword.
var (
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrPasswordTooLong  = fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)
)

// GenerateTempPassword returns a random password suitable for an invitation email.
// Panics if the system's cryptographic random number generator fails.
func GenerateTempPassword() string {
	b := make([]byte, TempPasswordLength)
	max := big.NewInt(int64(len(tempPasswordCharset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand.Int failed: " + err.Error())
		}
		b[i] = tempPasswordCharset[n.Int64()]
	}
	return string(b)
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword enforces the rules for a password chosen by the user.
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}
