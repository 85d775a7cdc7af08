package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/KartikZCoding/campusgate/internal/api/middleware"
	"github.com/KartikZCoding/campusgate/internal/api/presenter"
	"github.com/KartikZCoding/campusgate/internal/buildinfo"
	"github.com/KartikZCoding/campusgate/internal/service"
)

// handleHealth responds with a simple OK status to indicate the server is healthy.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleAbout responds with service information including version and commit hash.
func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	presenter.JSON(w, r, buildinfo.GetBuildInfo(), http.StatusOK)
}

func DecodePayload(r *http.Request, dest any, allowEmpty bool) error {
	switch r.Header.Get("Content-Type") {
	case "application/json", "":
		// strict encoding for JSON
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(dest); err != nil {
			if !errors.Is(err, io.EOF) || !allowEmpty {
				return err
			}
		}
		// ensure there's no extra data
		if dec.More() {
			return errors.New("extra data in request body")
		}
		return nil
	default:
		return errors.New("unsupported content type")
	}
}

// handleLogin processes login requests and mints a policy-scoped token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	var payload service.LoginRequest
	if err := DecodePayload(r, &payload, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode login request payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	resp, err := s.authService.Login(ctx, payload)
	if err != nil {
		presenter.Err(w, r, err)
		return
	}

	presenter.JSON(w, r, resp, http.StatusOK)
}

// handleMicrosoftHome is a demo endpoint only reachable with a token minted
// under the Microsoft policy.
func (s *Server) handleMicrosoftHome(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalCtx(r.Context())

	presenter.JSON(w, r, map[string]string{
		"message":  "Welcome from the Microsoft realm",
		"username": principal.Username,
		"role":     principal.Role,
	}, http.StatusOK)
}
