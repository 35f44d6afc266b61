// Package keygen generates the opaque secret tokens used as room codes,
// creator keys, and participant keys.
package keygen

import (
	"crypto/rand"
	"fmt"

	"secretsanta/internal/domain"
)

// URL-safe, 64 symbols. 64 divides 256, so masking a random byte to 6 bits
// selects symbols uniformly.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

type generator struct{}

// New returns a KeyGenerator backed by crypto/rand. Each character carries
// 6 bits of entropy, so the shortest token role (8 characters) is already
// beyond practical enumeration for this system's population.
func New() domain.KeyGenerator {
	return &generator{}
}

func (g *generator) NewToken(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid token length %d", length)
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i := range b {
		b[i] = alphabet[b[i]&63]
	}
	return string(b), nil
}
