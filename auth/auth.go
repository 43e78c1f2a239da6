// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/one-ballot/models"
)

var ErrInvalidIdentityToken = errors.New("invalid identity token")

// GenerateIdentity creates a new random identity: 16 bytes, hex encoded.
func GenerateIdentity() (models.Identity, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate identity: %w", err)
	}
	return models.Identity(hex.EncodeToString(b)), nil
}

// IdentityToken creates the bearer token for an identity. The token is
// "<identity>.<HMAC-SHA256(identity, salt)>" so it is deterministic and
// verifiable without storing anything server-side.
func IdentityToken(id models.Identity, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(id))
	sum := h.Sum(nil)
	// URL-safe base64 without padding for cleaner tokens
	sig := strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
	return string(id) + "." + sig
}

// IssueIdentity generates a fresh identity and its token.
func IssueIdentity(salt string) (models.Identity, string, error) {
	id, err := GenerateIdentity()
	if err != nil {
		return "", "", err
	}
	return id, IdentityToken(id, salt), nil
}

// VerifyIdentityToken authenticates a bearer token and returns the
// identity it was issued for. This is the identity-verification
// primitive the core consumes: everything past this point trusts the
// returned Identity.
func VerifyIdentityToken(token, salt string) (models.Identity, error) {
	id, _, found := strings.Cut(token, ".")
	if !found || id == "" {
		return "", ErrInvalidIdentityToken
	}
	expected := IdentityToken(models.Identity(id), salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return "", ErrInvalidIdentityToken
	}
	return models.Identity(id), nil
}
