package middleware

import (
	"net/http"

	"github.com/rs/xid"

	"github.com/KartikZCoding/campusgate/internal/core"
)

const CorrelationIDHeader = "X-Correlation-ID"

// maxCorrelationIDLen caps client-supplied IDs so log lines and audit
// entries stay bounded.
const maxCorrelationIDLen = 64

// CorrelationIDMiddleware tags every request with a correlation ID. A
// client-supplied ID is kept (truncated if oversized) so callers can trace
// their own requests through the audit trail; otherwise a fresh one is
// generated.
func CorrelationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(CorrelationIDHeader)
		switch {
		case id == "":
			id = xid.New().String()
		case len(id) > maxCorrelationIDLen:
			id = id[:maxCorrelationIDLen]
		}
		w.Header().Set(CorrelationIDHeader, id)

		ctx := core.WithCorrelationID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
