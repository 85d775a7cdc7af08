package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/KartikZCoding/campusgate/internal/api/presenter"
	"github.com/KartikZCoding/campusgate/internal/audit"
	"github.com/KartikZCoding/campusgate/internal/authz"
	"github.com/KartikZCoding/campusgate/internal/core"
	"github.com/KartikZCoding/campusgate/internal/schemes"
)

const principalKey = "principal"

// PrincipalCtx retrieves the verified principal from the request context.
func PrincipalCtx(ctx context.Context) *core.Principal {
	p, ok := ctx.Value(principalKey).(*core.Principal)
	if !ok {
		return nil
	}
	return p
}

// RequireAuth gates a protected endpoint with the given binding: the bearer
// token must verify under one of the binding's schemes and the principal's
// role must satisfy the binding.
//
// The specific failed check (signature, expiry, issuer, audience) is logged
// and audited but never returned to the caller.
func RequireAuth(registry *schemes.Registry, auditor core.Auditor, binding *authz.Binding) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger := log.Ctx(ctx)
			reqID := core.CorrelationID(ctx)

			// only bearer tokens are accepted here, anything else never
			// reaches verification
			const bearerPrefix = "Bearer "
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, bearerPrefix) {
				presenter.Error(w, r, "login required", http.StatusUnauthorized)
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, bearerPrefix))
			if tokenStr == "" {
				presenter.Error(w, r, "login required", http.StatusUnauthorized)
				return
			}

			auditEntry := core.AuditEntry{
				ID:               reqID,
				Time:             time.Now(),
				Action:           "token.verify",
				TokenFingerprint: audit.Fingerprint(tokenStr),
			}

			principal, err := registry.Verify(ctx, tokenStr, binding.Schemes)
			if err != nil {
				auditEntry.FailedCheck = core.FailedCheck(err)
				auditEntry.Error = err.Error()
				if logErr := auditor.Log(auditEntry); logErr != nil {
					logger.Error().Err(logErr).Msg("failed to write audit log entry")
				}

				logger.Warn().Err(err).
					Strs("schemes", binding.Schemes).
					Str("failed_check", string(core.FailedCheck(err))).
					Msg("token verification failed")

				// collapse to a generic response, the failed check stays internal
				presenter.Error(w, r, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			auditEntry.Success = true
			auditEntry.Scheme = principal.Scheme
			auditEntry.Username = principal.Username

			switch decision := authz.Authorize(binding, principal); decision {
			case authz.Admit:
				if logErr := auditor.Log(auditEntry); logErr != nil {
					logger.Error().Err(logErr).Msg("failed to write audit log entry")
				}
			case authz.DenyForbidden:
				auditEntry.Success = false
				auditEntry.Error = "insufficient role"
				if logErr := auditor.Log(auditEntry); logErr != nil {
					logger.Error().Err(logErr).Msg("failed to write audit log entry")
				}

				logger.Warn().
					Str("username", principal.Username).
					Str("role", principal.Role).
					Str("decision", decision.String()).
					Strs("required_roles", binding.Roles).
					Msg("authorization denied")
				presenter.Error(w, r, "insufficient privileges", http.StatusForbidden)
				return
			default:
				auditEntry.Success = false
				auditEntry.Error = "unauthenticated"
				if logErr := auditor.Log(auditEntry); logErr != nil {
					logger.Error().Err(logErr).Msg("failed to write audit log entry")
				}
				presenter.Error(w, r, "login required", http.StatusUnauthorized)
				return
			}

			ctx = context.WithValue(ctx, principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
