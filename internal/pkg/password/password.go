package password

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12

	// MinLength is the minimum accepted password length
	MinLength = 8
)

var (
	cost = DefaultCost

	dummyOnce sync.Once
	dummyHash []byte
)

// SetCost changes the bcrypt cost used by Hash. Values outside bcrypt's range are ignored.
func SetCost(c int) {
	if c < bcrypt.MinCost || c > bcrypt.MaxCost {
		return
	}
	cost = c
}

// Hash hashes a password using bcrypt
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a password with a hash
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// VerifyMissing burns one bcrypt comparison so a lookup miss costs the same as a wrong password.
func VerifyMissing(password string) {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("missing-account"), cost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// HashToken hashes a token using SHA256 (for verification codes)
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// ValidatePassword checks if password meets requirements
func ValidatePassword(password string) bool {
	return len(password) >= MinLength
}

// GenerateCode generates a cryptographically secure numeric code
func GenerateCode(length int) (string, error) {
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		buf[i] = byte('0' + n.Int64())
	}
	return string(buf), nil
}
