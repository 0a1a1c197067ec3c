package id

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Generator creates opaque, unguessable tokens such as OAuth state values.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct {
	size int
}

// NewRandomGenerator returns a generator of URL-safe tokens with 24 bytes of entropy.
func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{size: 24}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, g.size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Static always returns the same value.
type Static string

func (s Static) NewID() (string, error) {
	return string(s), nil
}
