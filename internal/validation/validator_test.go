package validation

import (
	"strings"
	"testing"

	"github.com/KartikZCoding/campusgate/internal/authz"
)

func TestValidateBindings(t *testing.T) {
	known := map[string]struct{}{
		"LoginForLocalUsers":     {},
		"LoginForMicrosoftUsers": {},
	}

	tests := []struct {
		name     string
		bindings map[string]*authz.Binding
		wantErr  string
	}{
		{
			name: "Valid",
			bindings: map[string]*authz.Binding{
				"GET /api/students": {
					Schemes: []string{"LoginForLocalUsers", "LoginForMicrosoftUsers"},
					Roles:   []string{"Admin"},
				},
			},
		},
		{
			name: "Valid With Expression",
			bindings: map[string]*authz.Binding{
				"GET /v1/audit/audits": {
					Schemes: []string{"LoginForLocalUsers"},
					Expr:    `principal.Username != "guest"`,
				},
			},
		},
		{
			name: "Unknown Scheme",
			bindings: map[string]*authz.Binding{
				"GET /api/students": {
					Schemes: []string{"LoginForGitHubUsers"},
				},
			},
			wantErr: "unknown scheme",
		},
		{
			name: "Empty Scheme Name",
			bindings: map[string]*authz.Binding{
				"GET /api/students": {
					Schemes: []string{""},
				},
			},
			wantErr: "empty scheme",
		},
		{
			name: "Nil Binding",
			bindings: map[string]*authz.Binding{
				"GET /api/students": nil,
			},
			wantErr: "nil binding",
		},
		{
			name: "Broken Expression",
			bindings: map[string]*authz.Binding{
				"GET /v1/audit/audits": {
					Schemes: []string{"LoginForLocalUsers"},
					Expr:    `principal.Username !=`,
				},
			},
			wantErr: "GET /v1/audit/audits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBindings(tt.bindings, known)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateBindings() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateBindings() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateBindings() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
