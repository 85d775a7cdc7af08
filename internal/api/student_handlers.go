package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/KartikZCoding/campusgate/internal/api/presenter"
	"github.com/KartikZCoding/campusgate/internal/core"
	"github.com/KartikZCoding/campusgate/internal/store"
)

// handleListStudents returns every student record.
func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := s.students.List(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to list students")
		presenter.Error(w, r, "failed to list students", http.StatusInternalServerError)
		return
	}
	presenter.JSON(w, r, students, http.StatusOK)
}

// handleGetStudent returns a single student by ID.
func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	student, err := s.students.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrStudentNotFound) {
			presenter.Error(w, r, "student not found", http.StatusNotFound)
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to get student")
		presenter.Error(w, r, "failed to get student", http.StatusInternalServerError)
		return
	}
	presenter.JSON(w, r, student, http.StatusOK)
}

// handleCreateStudent creates a new student record.
func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var payload core.Student
	if err := DecodePayload(r, &payload, false); err != nil {
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.Name == "" {
		presenter.Error(w, r, "student name is required", http.StatusBadRequest)
		return
	}

	student, err := s.students.Create(r.Context(), payload)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to create student")
		presenter.Error(w, r, "failed to create student", http.StatusInternalServerError)
		return
	}
	presenter.JSON(w, r, student, http.StatusCreated)
}

// handleUpdateStudent replaces a student record.
func (s *Server) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	var payload core.Student
	if err := DecodePayload(r, &payload, false); err != nil {
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}
	payload.ID = r.PathValue("id")

	student, err := s.students.Update(r.Context(), payload)
	if err != nil {
		if errors.Is(err, store.ErrStudentNotFound) {
			presenter.Error(w, r, "student not found", http.StatusNotFound)
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to update student")
		presenter.Error(w, r, "failed to update student", http.StatusInternalServerError)
		return
	}
	presenter.JSON(w, r, student, http.StatusOK)
}

// handleDeleteStudent removes a student record.
func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.students.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrStudentNotFound) {
			presenter.Error(w, r, "student not found", http.StatusNotFound)
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to delete student")
		presenter.Error(w, r, "failed to delete student", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
