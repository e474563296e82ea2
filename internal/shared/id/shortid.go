// Package id generates cryptographically random, URL-safe identifiers.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12

	// SessionTokenLength is the length of session bearer tokens. At 24 base62
	// characters the collision probability across the whole user base is
	// negligible.
	SessionTokenLength = 24

	// TableEtagLength is the length of table version tags. They are compared
	// only for equality, so a shorter value suffices.
	TableEtagLength = 16
)

// Generate creates a random short ID with the specified length using Base62
// encoding. The generated ID is cryptographically random and URL-safe.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// MustGenerate creates a random short ID and panics on error.
// Use this only when you're certain the generation won't fail.
func MustGenerate(length int) string {
	id, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return id
}

// NewSessionToken generates a fresh opaque session bearer token.
func NewSessionToken() (string, error) {
	return Generate(SessionTokenLength)
}

// NewTableEtag generates a fresh opaque table version tag. The value is a
// pure "something changed" signal, never content-derived.
func NewTableEtag() (string, error) {
	return Generate(TableEtagLength)
}
