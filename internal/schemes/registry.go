package schemes

import (
	"context"
	"fmt"

	"github.com/KartikZCoding/campusgate/internal/config"
	"github.com/KartikZCoding/campusgate/internal/core"
)

// Registry holds every configured verification scheme, keyed by name.
// Built once at startup, read-only afterwards.
type Registry struct {
	schemes map[string]core.Scheme
}

// BuildRegistry constructs one HMAC scheme per policy plus any additional
// schemes (e.g. oidc) from the scheme list.
func BuildRegistry(ctx context.Context, policies []core.PolicyCredentials, extra []config.SchemeConfig) (*Registry, error) {
	registry := make(map[string]core.Scheme)

	for _, creds := range policies {
		s := NewHMAC(creds)
		if _, exists := registry[s.Name()]; exists {
			return nil, fmt.Errorf("duplicate scheme name %q", s.Name())
		}
		registry[s.Name()] = s
	}

	for _, cfg := range extra {
		var (
			s   core.Scheme
			err error
		)
		switch cfg.Type {
		case "oidc":
			s, err = NewOIDC(ctx, cfg)
		default:
			return nil, fmt.Errorf("unknown scheme type %q for scheme %q", cfg.Type, cfg.Name)
		}
		if err != nil {
			return nil, fmt.Errorf("building scheme %q: %w", cfg.Name, err)
		}
		if _, exists := registry[s.Name()]; exists {
			return nil, fmt.Errorf("duplicate scheme name %q", s.Name())
		}
		registry[s.Name()] = s
	}

	return &Registry{schemes: registry}, nil
}

// NewRegistry wraps an existing scheme map, used by tests.
func NewRegistry(schemes ...core.Scheme) *Registry {
	m := make(map[string]core.Scheme, len(schemes))
	for _, s := range schemes {
		m[s.Name()] = s
	}
	return &Registry{schemes: m}
}

func (r *Registry) Get(name string) (core.Scheme, bool) {
	s, ok := r.schemes[name]
	return s, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.schemes))
	for name := range r.schemes {
		names = append(names, name)
	}
	return names
}

// Verify runs the token through the named schemes in order and returns the
// principal from the first one that admits it. The returned error is the
// last scheme's verification error; callers must not expose it.
func (r *Registry) Verify(ctx context.Context, token string, schemeNames []string) (*core.Principal, error) {
	var lastErr error
	for _, name := range schemeNames {
		s, ok := r.Get(name)
		if !ok {
			// bindings are validated at startup, treat as fail-closed anyway
			lastErr = fmt.Errorf("scheme %q not configured", name)
			continue
		}
		principal, err := s.Verify(ctx, token)
		if err == nil {
			return principal, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no scheme accepted the token")
	}
	return nil, lastErr
}
