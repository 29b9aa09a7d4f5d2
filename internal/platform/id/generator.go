// Package id provides opaque public identifiers for API-facing records.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const randomIDBytes = 16

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator produces 32-character hex IDs from crypto/rand.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, randomIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
