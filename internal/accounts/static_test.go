package accounts

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/KartikZCoding/campusgate/internal/config"
	"github.com/KartikZCoding/campusgate/internal/core"
)

func TestStaticSource_Lookup(t *testing.T) {
	src, err := NewStatic(config.AccountsConfig{
		Type: "static",
		Config: map[string]any{
			"users": []any{
				map[string]any{
					"username": "Kartik",
					"password": "Kartik@123",
					"role":     "Admin",
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("NewStatic() error = %v", err)
	}

	acc, err := src.Lookup(context.Background(), "Kartik")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if acc.Role != "Admin" {
		t.Errorf("Role = %q, want Admin", acc.Role)
	}
	if !acc.VerifyPassword("Kartik@123") {
		t.Error("VerifyPassword() = false for the correct password")
	}
	if acc.VerifyPassword("wrong") {
		t.Error("VerifyPassword() = true for a wrong password")
	}

	if _, err := src.Lookup(context.Background(), "nobody"); !errors.Is(err, core.ErrAccountNotFound) {
		t.Errorf("Lookup(nobody) error = %v, want ErrAccountNotFound", err)
	}
}

func TestStaticSource_PrehashedPassword(t *testing.T) {
	hash, salt, err := core.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	src, err := NewStatic(config.AccountsConfig{
		Config: map[string]any{
			"users": []any{
				map[string]any{
					"username":      "ops",
					"password_hash": hex.EncodeToString(hash),
					"salt":          hex.EncodeToString(salt),
					"role":          "Superadmin",
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("NewStatic() error = %v", err)
	}

	acc, err := src.Lookup(context.Background(), "ops")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if !acc.VerifyPassword("s3cret") {
		t.Error("VerifyPassword() = false for the correct password")
	}
}

func TestStaticSource_ConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		users []any
	}{
		{
			name: "Empty Username",
			users: []any{
				map[string]any{"password": "x", "role": "Admin"},
			},
		},
		{
			name: "No Password",
			users: []any{
				map[string]any{"username": "Kartik", "role": "Admin"},
			},
		},
		{
			name: "Duplicate Username",
			users: []any{
				map[string]any{"username": "Kartik", "password": "a"},
				map[string]any{"username": "Kartik", "password": "b"},
			},
		},
		{
			name: "Bad Hash Encoding",
			users: []any{
				map[string]any{"username": "Kartik", "password_hash": "zz", "salt": "zz"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStatic(config.AccountsConfig{
				Config: map[string]any{"users": tt.users},
			})
			if err == nil {
				t.Fatal("NewStatic() succeeded, want error")
			}
		})
	}
}
