package api

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/KartikZCoding/campusgate/internal/api/presenter"
	"github.com/KartikZCoding/campusgate/internal/core"
)

// handleListAudits processes requests to retrieve audit log entries.
func (s *Server) handleListAudits(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	reader, ok := s.auditor.(core.AuditReader)
	if !ok {
		presenter.Error(w, r, "configured auditor cannot be queried", http.StatusNotImplemented)
		return
	}

	// filters
	q := r.URL.Query()
	limitStr := q.Get("limit")

	filterCorrelationID := q.Get("correlation_id")
	filterUsername := q.Get("username")
	filterFingerprint := q.Get("fingerprint")

	limit := 50
	if limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v <= 0 {
			logger.Warn().Str("limit", limitStr).Msg("invalid limit parameter")
			presenter.Error(w, r, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = v
	}

	var entries []core.AuditEntry
	var err error

	if filterCorrelationID != "" || filterFingerprint != "" || filterUsername != "" {
		logger.Info().Msg("applying audit log filters")
		entries, err = reader.Find(func(entry core.AuditEntry) bool {
			if filterCorrelationID != "" && entry.ID != filterCorrelationID {
				return false
			}
			if filterFingerprint != "" && entry.TokenFingerprint != filterFingerprint {
				return false
			}
			if filterUsername != "" && entry.Username != filterUsername {
				return false
			}
			return true
		}, limit)
	} else {
		logger.Debug().Msg("retrieving recent audit log entries")
		entries, err = reader.GetRecent(limit)
	}

	if err != nil {
		logger.Error().Err(err).Msg("failed to retrieve audit logs")
		presenter.Error(w, r, "failed to retrieve audit logs", http.StatusInternalServerError)
		return
	}

	presenter.JSON(w, r, entries, http.StatusOK)
}
