package core

import "context"

// Scheme is a named token verification strategy.
// Implementations: HMAC Scheme (one per policy), OIDC Scheme.
type Scheme interface {
	// Name returns the identifier of this scheme (as used in endpoint bindings).
	Name() string

	// Verify takes a raw token string, validates it, and returns a Principal.
	// On failure the error is (or wraps) a *VerificationError.
	Verify(ctx context.Context, token string) (*Principal, error)
}

// CredentialSource looks up stored accounts for the issuer's password check.
// Implementations: Static Source (accounts from config).
//
// A lookup against a remote store may block, so it takes a context and must
// honor cancellation.
type CredentialSource interface {
	// Lookup returns the account for the given username,
	// or ErrAccountNotFound.
	Lookup(ctx context.Context, username string) (*Account, error)
}
