package authz

import (
	"testing"

	"github.com/KartikZCoding/campusgate/internal/core"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name      string
		binding   Binding
		principal *core.Principal
		want      Decision
	}{
		{
			name:      "Nil Principal Is Unauthenticated",
			binding:   Binding{Schemes: []string{"LoginForLocalUsers"}, Roles: []string{"Admin"}},
			principal: nil,
			want:      DenyUnauthenticated,
		},
		{
			name:      "Role Match Admits",
			binding:   Binding{Schemes: []string{"LoginForLocalUsers"}, Roles: []string{"Superadmin", "Admin"}},
			principal: &core.Principal{Username: "Kartik", Role: "Admin"},
			want:      Admit,
		},
		{
			name:      "Role Mismatch Is Forbidden",
			binding:   Binding{Schemes: []string{"LoginForLocalUsers"}, Roles: []string{"Superadmin"}},
			principal: &core.Principal{Username: "Kartik", Role: "Admin"},
			want:      DenyForbidden,
		},
		{
			name:      "Role Match Is Case Sensitive",
			binding:   Binding{Schemes: []string{"LoginForLocalUsers"}, Roles: []string{"admin"}},
			principal: &core.Principal{Username: "Kartik", Role: "Admin"},
			want:      DenyForbidden,
		},
		{
			name:      "Empty Role Set Admits Any Verified Principal",
			binding:   Binding{Schemes: []string{"LoginForLocalUsers"}},
			principal: &core.Principal{Username: "Kartik", Role: "Student"},
			want:      Admit,
		},
		{
			name: "Expr Condition Admits",
			binding: Binding{
				Schemes: []string{"LoginForLocalUsers"},
				Roles:   []string{"Admin"},
				Expr:    `principal.Username != "guest"`,
			},
			principal: &core.Principal{Username: "Kartik", Role: "Admin"},
			want:      Admit,
		},
		{
			name: "Expr Condition Denies",
			binding: Binding{
				Schemes: []string{"LoginForLocalUsers"},
				Roles:   []string{"Admin"},
				Expr:    `principal.Username != "guest"`,
			},
			principal: &core.Principal{Username: "guest", Role: "Admin"},
			want:      DenyForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.binding.Compile(); err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if got := Authorize(&tt.binding, tt.principal); got != tt.want {
				t.Errorf("Authorize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBinding_Compile(t *testing.T) {
	tests := []struct {
		name    string
		binding Binding
		wantErr bool
	}{
		{
			name:    "Valid Without Expr",
			binding: Binding{Schemes: []string{"LoginForLocalUsers"}},
		},
		{
			name:    "No Schemes",
			binding: Binding{Roles: []string{"Admin"}},
			wantErr: true,
		},
		{
			name:    "Broken Expr",
			binding: Binding{Schemes: []string{"LoginForLocalUsers"}, Expr: `principal.`},
			wantErr: true,
		},
		{
			name:    "Non-Boolean Expr",
			binding: Binding{Schemes: []string{"LoginForLocalUsers"}, Expr: `principal.Username`},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.binding.Compile()
			if (err != nil) != tt.wantErr {
				t.Errorf("Compile() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
