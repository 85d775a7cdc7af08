package validation

import (
	"fmt"

	"github.com/KartikZCoding/campusgate/internal/authz"
)

// ValidateBindings checks every endpoint binding against the set of
// configured scheme names and pre-compiles binding expressions.
// A binding that references an unknown scheme is a startup failure, not a
// per-request one.
func ValidateBindings(bindings map[string]*authz.Binding, knownSchemes map[string]struct{}) error {
	for route, binding := range bindings {
		if binding == nil {
			return fmt.Errorf("route %q has nil binding", route)
		}
		for _, scheme := range binding.Schemes {
			if scheme == "" {
				return fmt.Errorf("route %q references empty scheme name", route)
			}
			if _, known := knownSchemes[scheme]; !known {
				return fmt.Errorf("route %q references unknown scheme %q", route, scheme)
			}
		}
		if err := binding.Compile(); err != nil {
			return fmt.Errorf("route %q: %w", route, err)
		}
	}
	return nil
}
