// Copyright (c) 2026 Creator Hub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidToken = errors.New("invalid identity token")

// Actor is the identity performing an operation. Operations take it
// explicitly; there is no ambient "current user".
type Actor struct {
	UserID string
}

// Anonymous is the actor for signed-out visitors. It can browse polls
// but every write operation rejects it.
var Anonymous = Actor{}

func (a Actor) IsAnonymous() bool {
	return a.UserID == ""
}

// TokenProvider issues and verifies HMAC-signed user tokens, standing
// in for the hosted auth service. Tokens are deterministic from the
// user id and salt, so verification needs no token storage.
type TokenProvider struct {
	salt []byte
}

func NewTokenProvider(salt string) *TokenProvider {
	return &TokenProvider{salt: []byte(salt)}
}

func (p *TokenProvider) sign(userID string) string {
	h := hmac.New(sha256.New, p.salt)
	h.Write([]byte(userID))
	sum := h.Sum(nil)
	// URL-safe base64 without padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// Issue creates a signed token for userID.
func (p *TokenProvider) Issue(userID string) string {
	return userID + "." + p.sign(userID)
}

// Verify checks a token and returns the actor it identifies.
// An empty token is not an error: it verifies to Anonymous, and the
// caller's operation decides whether anonymous access is allowed.
func (p *TokenProvider) Verify(token string) (Actor, error) {
	if token == "" {
		return Anonymous, nil
	}
	i := strings.LastIndexByte(token, '.')
	if i <= 0 {
		return Anonymous, ErrInvalidToken
	}
	userID, sig := token[:i], token[i+1:]
	if !hmac.Equal([]byte(sig), []byte(p.sign(userID))) {
		return Anonymous, ErrInvalidToken
	}
	return Actor{UserID: userID}, nil
}
