package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/KartikZCoding/campusgate/internal/audit"
	"github.com/KartikZCoding/campusgate/internal/core"
	"github.com/KartikZCoding/campusgate/internal/issuer"
)

// AuthService wraps the token issuer with request-level concerns: input
// checks, error-to-status mapping and audit logging.
type AuthService struct {
	issuer  *issuer.TokenIssuer
	auditor core.Auditor
}

func NewAuthService(tokenIssuer *issuer.TokenIssuer, auditor core.Auditor) *AuthService {
	return &AuthService{
		issuer:  tokenIssuer,
		auditor: auditor,
	}
}

// Login validates the request and mints a token for the named policy.
//
// Status mapping: missing fields and unknown policies are client input
// errors (400); bad credentials are an authentication failure (401),
// deliberately not saying whether the username or the password was wrong.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	logger := log.Ctx(ctx)
	reqID := core.CorrelationID(ctx)

	auditEntry := core.AuditEntry{
		ID:       reqID,
		Time:     time.Now(),
		Action:   "token.issue",
		Policy:   req.Policy,
		Username: req.Username,
	}
	defer func() {
		if err := s.auditor.Log(auditEntry); err != nil {
			logger.Error().Err(err).Msg("failed to write audit log entry for login")
		}
	}()

	if req.Policy == "" || req.Username == "" || req.Password == "" {
		auditEntry.Error = "malformed request"
		return nil, httpErrorf(http.StatusBadRequest, "please provide policy, username & password")
	}

	issued, err := s.issuer.Issue(ctx, req.Policy, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrUnknownPolicy):
			auditEntry.Error = "unknown policy"
			return nil, httpError(http.StatusBadRequest, err)
		case errors.Is(err, core.ErrInvalidCredentials):
			auditEntry.Error = "invalid credentials"
			return nil, httpError(http.StatusUnauthorized, err)
		default:
			auditEntry.Error = "issuance failed"
			logger.Error().Err(err).Msg("token issuance failed")
			return nil, httpErrorf(http.StatusInternalServerError, "token issuance failed")
		}
	}

	auditEntry.Success = true
	auditEntry.Scheme = issued.Principal.Scheme
	auditEntry.TokenFingerprint = audit.Fingerprint(issued.Token)

	logger.Info().
		Str("policy", req.Policy).
		Str("scheme", issued.Principal.Scheme).
		Str("username", issued.Principal.Username).
		Msg("token issued successfully")

	return &LoginResponse{
		Username:  issued.Principal.Username,
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
	}, nil
}
