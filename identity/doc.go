// Copyright (c) 2026 Creator Hub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity supplies the actor identity that every lifecycle
operation takes explicitly.

# Actors

	actor := identity.Actor{UserID: "u-123"}
	identity.Anonymous // signed-out visitor

Operations never consult a global auth singleton; the caller resolves
an Actor and passes it in.

# Tokens

TokenProvider signs user ids with HMAC-SHA256:

	p := identity.NewTokenProvider(cfg.IdentitySalt)
	token := p.Issue("u-123")
	actor, err := p.Verify(token)

Tokens are URL-safe base64 without padding. They are deterministic from
the user id and salt, so verification needs no storage. An empty token
verifies to Anonymous; a malformed or tampered one returns
ErrInvalidToken.
*/
package identity
