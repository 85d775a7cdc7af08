package api

import "github.com/KartikZCoding/campusgate/internal/authz"

const (
	HealthCheckRoute = "/healthz"
	AboutRoute       = "/icanhazcampusgate"

	LoginRoute = "/api/login"

	StudentsRoute      = "/api/students"
	StudentByIDRoute   = "/api/students/{id}"
	MicrosoftHomeRoute = "/api/microsoft/home"

	AuditParent     = "/v1/audit/"
	ListAuditsRoute = AuditParent + "audits"
)

// scheme names as referenced by the endpoint bindings below.
// They must match the schemes derived from the configured policies;
// validation.ValidateBindings enforces that at startup.
const (
	LocalScheme     = "LoginForLocalUsers"
	MicrosoftScheme = "LoginForMicrosoftUsers"
	GoogleScheme    = "LoginForGoogleUsers"
)

// Bindings declares, per protected route, which schemes may admit a token
// and which roles are required. The equivalent of an authorize annotation
// on each endpoint.
func Bindings() map[string]*authz.Binding {
	return map[string]*authz.Binding{
		StudentsRoute: {
			Schemes: []string{LocalScheme, MicrosoftScheme, GoogleScheme},
			Roles:   []string{"Superadmin", "Admin"},
		},
		MicrosoftHomeRoute: {
			Schemes: []string{MicrosoftScheme},
			Roles:   []string{"Superadmin", "Admin"},
		},
		ListAuditsRoute: {
			Schemes: []string{LocalScheme},
			Roles:   []string{"Superadmin", "Admin"},
			// audit history is sensitive, keep guests out even if they
			// somehow end up with an admin role
			Expr: `principal.Username != "guest"`,
		},
	}
}
