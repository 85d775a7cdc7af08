package schemes

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/KartikZCoding/campusgate/internal/core"
)

// HMACScheme verifies tokens minted under a single policy's credentials.
// Signature (HMAC-SHA-512) and expiry are always checked; issuer and
// audience only when the policy enables them.
type HMACScheme struct {
	creds  core.PolicyCredentials
	parser *jwt.Parser
}

var _ core.Scheme = (*HMACScheme)(nil)

func NewHMAC(creds core.PolicyCredentials) *HMACScheme {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if creds.ValidateIssuer {
		opts = append(opts, jwt.WithIssuer(creds.Issuer))
	}
	if creds.ValidateAudience {
		opts = append(opts, jwt.WithAudience(creds.Audience))
	}
	return &HMACScheme{
		creds:  creds,
		parser: jwt.NewParser(opts...),
	}
}

func (s *HMACScheme) Name() string {
	return s.creds.Scheme
}

func (s *HMACScheme) Verify(_ context.Context, tokenStr string) (*core.Principal, error) {
	token, err := s.parser.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return s.creds.SigningKey, nil
	})
	if err != nil {
		return nil, &core.VerificationError{
			Scheme: s.Name(),
			Check:  classify(err),
			Err:    err,
		}
	}
	if !token.Valid {
		return nil, &core.VerificationError{
			Scheme: s.Name(),
			Check:  core.CheckSignature,
			Err:    errors.New("token not valid"),
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &core.VerificationError{
			Scheme: s.Name(),
			Check:  core.CheckClaims,
			Err:    errors.New("unexpected claims type"),
		}
	}

	principal, err := principalFromClaims(claims)
	if err != nil {
		return nil, &core.VerificationError{
			Scheme: s.Name(),
			Check:  core.CheckClaims,
			Err:    err,
		}
	}
	principal.Scheme = s.Name()
	return principal, nil
}

// classify maps golang-jwt parse errors to the validation step that failed.
func classify(err error) core.Check {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return core.CheckExpiry
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return core.CheckIssuer
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return core.CheckAudience
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrSignatureInvalid):
		return core.CheckSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return core.CheckMalformed
	default:
		return core.CheckSignature
	}
}

func principalFromClaims(claims jwt.MapClaims) (*core.Principal, error) {
	name, ok := claims["name"].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("missing or invalid 'name' claim")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'role' claim")
	}
	return &core.Principal{
		Username: name,
		Role:     role,
	}, nil
}
