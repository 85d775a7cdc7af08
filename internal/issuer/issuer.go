package issuer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/KartikZCoding/campusgate/internal/core"
)

// IssuedToken is the result of a successful login.
type IssuedToken struct {
	// Token is the signed compact JWT.
	Token string `json:"token"`

	// ExpiresAt indicates when the token becomes invalid.
	ExpiresAt time.Time `json:"expires_at"`

	// Principal the token was minted for.
	Principal core.Principal `json:"-"`
}

// TokenIssuer mints policy-scoped bearer tokens after a password check.
// It is stateless; the credential map is read-only after construction.
type TokenIssuer struct {
	policies map[string]core.PolicyCredentials // policy name -> credentials
	source   core.CredentialSource
	ttl      time.Duration

	// now is swappable for tests.
	now func() time.Time
}

func New(policies []core.PolicyCredentials, source core.CredentialSource, ttl time.Duration) *TokenIssuer {
	byName := make(map[string]core.PolicyCredentials, len(policies))
	for _, p := range policies {
		byName[p.Name] = p
	}
	return &TokenIssuer{
		policies: byName,
		source:   source,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Issue validates the credentials against the account store and, on success,
// mints a token bound to the policy's key, issuer and audience.
//
// Errors: core.ErrUnknownPolicy if the policy is not configured,
// core.ErrInvalidCredentials on a username/password mismatch.
func (i *TokenIssuer) Issue(ctx context.Context, policy, username, password string) (*IssuedToken, error) {
	creds, ok := i.policies[policy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownPolicy, policy)
	}

	account, err := i.source.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, core.ErrAccountNotFound) {
			// same error as a wrong password, don't leak which one it was
			return nil, core.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("credential lookup: %w", err)
	}

	if !account.VerifyPassword(password) {
		return nil, core.ErrInvalidCredentials
	}

	now := i.now()
	exp := now.Add(i.ttl)

	claims := jwt.MapClaims{
		"name": account.Username,
		"role": account.Role,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}
	if creds.Issuer != "" {
		claims["iss"] = creds.Issuer
	}
	if creds.Audience != "" {
		claims["aud"] = creds.Audience
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(creds.SigningKey)
	if err != nil {
		return nil, fmt.Errorf("signing token for policy %q: %w", policy, err)
	}

	return &IssuedToken{
		Token:     signed,
		ExpiresAt: exp,
		Principal: core.Principal{
			Username: account.Username,
			Role:     account.Role,
			Scheme:   creds.Scheme,
		},
	}, nil
}
