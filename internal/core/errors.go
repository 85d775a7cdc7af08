package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPolicy is returned when a login request names a policy that
	// has no configured credentials.
	ErrUnknownPolicy = errors.New("unknown login policy")

	// ErrInvalidCredentials is returned on a username/password mismatch.
	// It deliberately does not say which of the two was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrAccountNotFound is returned by a CredentialSource when no account
	// exists for the given username.
	ErrAccountNotFound = errors.New("account not found")
)

// Check identifies which validation step rejected a token.
type Check string

const (
	CheckMalformed Check = "malformed"
	CheckSignature Check = "signature"
	CheckExpiry    Check = "expiry"
	CheckIssuer    Check = "issuer"
	CheckAudience  Check = "audience"
	CheckClaims    Check = "claims"
)

// VerificationError describes why a token was rejected by a scheme.
// The failed check is kept for logs and audit entries only; handlers must
// collapse it to a generic unauthorized response.
type VerificationError struct {
	Scheme string
	Check  Check
	Err    error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("token rejected by scheme %q (%s check): %v", e.Scheme, e.Check, e.Err)
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

// FailedCheck extracts the failed check from a verification error chain.
// It returns CheckMalformed for errors that are not a *VerificationError.
func FailedCheck(err error) Check {
	var verr *VerificationError
	if errors.As(err, &verr) {
		return verr.Check
	}
	return CheckMalformed
}
