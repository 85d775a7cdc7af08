package api

import (
	"net/http"

	"github.com/KartikZCoding/campusgate/internal/api/middleware"
	"github.com/KartikZCoding/campusgate/internal/audit"
	"github.com/KartikZCoding/campusgate/internal/authz"
	"github.com/KartikZCoding/campusgate/internal/core"
	"github.com/KartikZCoding/campusgate/internal/schemes"
	"github.com/KartikZCoding/campusgate/internal/service"
	"github.com/KartikZCoding/campusgate/internal/store"
)

type Server struct {
	registry    *schemes.Registry
	authService *service.AuthService
	students    *store.InMemoryStudentStore
	auditor     core.Auditor
	bindings    map[string]*authz.Binding
}

func NewServer(
	registry *schemes.Registry,
	authService *service.AuthService,
	students *store.InMemoryStudentStore,
	auditor core.Auditor,
) *Server {
	if auditor == nil {
		auditor = audit.NewNoopAuditor()
	}
	if students == nil {
		students = store.NewInMemoryStudentStore()
	}

	return &Server{
		registry:    registry,
		authService: authService,
		students:    students,
		auditor:     auditor,
		bindings:    Bindings(),
	}
}

// Bindings exposes the endpoint bindings for startup validation.
func (s *Server) Bindings() map[string]*authz.Binding {
	return s.bindings
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// public routes
	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+AboutRoute, s.handleAbout)

	// token issuer route
	mux.HandleFunc("POST "+LoginRoute, s.handleLogin)

	// protected resource routes
	students := s.protect(StudentsRoute)
	mux.Handle("GET "+StudentsRoute, students(http.HandlerFunc(s.handleListStudents)))
	mux.Handle("POST "+StudentsRoute, students(http.HandlerFunc(s.handleCreateStudent)))
	mux.Handle("GET "+StudentByIDRoute, students(http.HandlerFunc(s.handleGetStudent)))
	mux.Handle("PUT "+StudentByIDRoute, students(http.HandlerFunc(s.handleUpdateStudent)))
	mux.Handle("DELETE "+StudentByIDRoute, students(http.HandlerFunc(s.handleDeleteStudent)))

	microsoft := s.protect(MicrosoftHomeRoute)
	mux.Handle("GET "+MicrosoftHomeRoute, microsoft(http.HandlerFunc(s.handleMicrosoftHome)))

	// admin routes
	admin := s.protect(ListAuditsRoute)
	mux.Handle("GET "+ListAuditsRoute, admin(http.HandlerFunc(s.handleListAudits)))

	// middleware chain, applied outside-in
	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CorrelationIDMiddleware(handler)
	handler = middleware.RecoverMiddleware(handler)

	return handler
}

// protect returns the auth middleware for the binding declared on a route.
func (s *Server) protect(route string) func(http.Handler) http.Handler {
	binding, ok := s.bindings[route]
	if !ok {
		// routes are bound statically, a miss is a programming error
		panic("no binding declared for route " + route)
	}
	return middleware.RequireAuth(s.registry, s.auditor, binding)
}
