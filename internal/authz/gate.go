package authz

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/KartikZCoding/campusgate/internal/core"
)

// Binding associates a protected endpoint with the verification schemes it
// accepts and the roles it requires. Declared statically in the routing
// code and validated at startup.
type Binding struct {
	// Schemes that may admit a token, tried in order.
	Schemes []string

	// Roles allowed to access the endpoint. Case-sensitive exact match.
	// An empty set admits any verified principal.
	Roles []string

	// Expr is an optional extra condition evaluated against the principal,
	// e.g. `principal.Username != "guest"`.
	Expr string

	// CompiledExpr holds the pre-compiled form of Expr.
	CompiledExpr *vm.Program
}

// Compile validates the binding and pre-compiles its expression.
func (b *Binding) Compile() error {
	if len(b.Schemes) == 0 {
		return fmt.Errorf("binding has no schemes")
	}
	if b.Expr != "" {
		prog, err := expr.Compile(b.Expr, expr.AsBool(), expr.Env(exprEnv(&core.Principal{})))
		if err != nil {
			return fmt.Errorf("compiling binding expr: %w", err)
		}
		b.CompiledExpr = prog
	}
	return nil
}

type Decision int

const (
	// DenyUnauthenticated means no accepted scheme admitted the token.
	DenyUnauthenticated Decision = iota

	// DenyForbidden means the token verified but the role requirement failed.
	DenyForbidden

	Admit
)

func (d Decision) String() string {
	switch d {
	case Admit:
		return "admit"
	case DenyForbidden:
		return "forbidden"
	default:
		return "unauthenticated"
	}
}

// Authorize decides whether a verified principal may access the endpoint.
// It is a pure function of the binding and the verification outcome; a nil
// principal means no scheme admitted the token.
func Authorize(binding *Binding, principal *core.Principal) Decision {
	if principal == nil {
		return DenyUnauthenticated
	}

	if len(binding.Roles) > 0 {
		matched := false
		for _, role := range binding.Roles {
			if principal.Role == role {
				matched = true
				break
			}
		}
		if !matched {
			return DenyForbidden
		}
	}

	if binding.CompiledExpr != nil {
		out, err := expr.Run(binding.CompiledExpr, exprEnv(principal))
		if err != nil {
			// fail closed on a broken expression
			return DenyForbidden
		}
		if admit, ok := out.(bool); !ok || !admit {
			return DenyForbidden
		}
	}

	return Admit
}

func exprEnv(principal *core.Principal) map[string]any {
	return map[string]any{
		"principal": principal,
	}
}
