// Package dev contains the developer aggregate. A developer is the holder of
// an API capability (api key + signature), not a human end user.
package dev

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"time"
)

type Dev struct {
	ID        uint
	UserID    uint
	UUID      string
	APIKey    string
	SecretKey string
	CreatedAt time.Time
}

// FirstDevID is the id of the platform's first registered developer. A few
// elevated-trust operations are reserved for this developer only.
const FirstDevID uint = 1

// IsFirstDev reports whether this developer is the platform's first
// registered developer.
func (d *Dev) IsFirstDev() bool {
	return d.ID == FirstDevID
}

// VerifySignature recomputes the credential signature for this developer and
// compares it against the supplied one in constant time. The signature is the
// base64 encoding of the hex HMAC-SHA256 digest of the developer uuid keyed
// by the secret key.
func (d *Dev) VerifySignature(signature string) bool {
	mac := hmac.New(sha256.New, []byte(d.SecretKey))
	mac.Write([]byte(d.UUID))
	digest := hex.EncodeToString(mac.Sum(nil))
	expected := base64.StdEncoding.EncodeToString([]byte(digest))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SplitCredential splits an "apiKey,signature" credential string. ok is false
// when the string has no comma; callers must fail closed in that case.
func SplitCredential(credential string) (apiKey, signature string, ok bool) {
	parts := strings.SplitN(credential, ",", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

type Repository interface {
	GetByID(ctx context.Context, id uint) (*Dev, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*Dev, error)
}
