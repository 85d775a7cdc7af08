package issuer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/KartikZCoding/campusgate/internal/core"
)

type fakeSource struct {
	accounts map[string]*core.Account
}

func (f *fakeSource) Lookup(_ context.Context, username string) (*core.Account, error) {
	acc, ok := f.accounts[username]
	if !ok {
		return nil, core.ErrAccountNotFound
	}
	return acc, nil
}

func testSource(t *testing.T) core.CredentialSource {
	t.Helper()

	hash, salt, err := core.HashPassword("Kartik@123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	return &fakeSource{accounts: map[string]*core.Account{
		"Kartik": {
			Username:     "Kartik",
			PasswordHash: hash,
			Salt:         salt,
			Role:         "Admin",
		},
	}}
}

func testPolicies() []core.PolicyCredentials {
	return []core.PolicyCredentials{
		{
			Name:       "Local",
			Scheme:     "LoginForLocalUsers",
			SigningKey: []byte("local-secret-local-secret-local-secret"),
			Issuer:     "https://localhost:44358",
			Audience:   "https://localhost:44358",
		},
		{
			Name:       "Microsoft",
			Scheme:     "LoginForMicrosoftUsers",
			SigningKey: []byte("microsoft-secret-microsoft-secret"),
		},
	}
}

func TestTokenIssuer_Issue(t *testing.T) {
	iss := New(testPolicies(), testSource(t), 4*time.Hour)

	now := time.Date(2026, 2, 4, 12, 0, 0, 0, time.UTC)
	iss.now = func() time.Time { return now }

	issued, err := iss.Issue(context.Background(), "Local", "Kartik", "Kartik@123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if issued.Token == "" {
		t.Fatal("Issue() returned empty token")
	}
	if got, want := issued.ExpiresAt, now.Add(4*time.Hour); !got.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", got, want)
	}
	if issued.Principal.Username != "Kartik" || issued.Principal.Role != "Admin" {
		t.Errorf("Principal = %+v, want Kartik/Admin", issued.Principal)
	}
	if issued.Principal.Scheme != "LoginForLocalUsers" {
		t.Errorf("Principal.Scheme = %q, want LoginForLocalUsers", issued.Principal.Scheme)
	}

	// decode without verification to check the claims and algorithm
	token, _, err := jwt.NewParser().ParseUnverified(issued.Token, jwt.MapClaims{})
	if err != nil {
		t.Fatalf("parsing issued token: %v", err)
	}
	if alg := token.Method.Alg(); alg != "HS512" {
		t.Errorf("token alg = %q, want HS512", alg)
	}

	claims := token.Claims.(jwt.MapClaims)
	if claims["name"] != "Kartik" {
		t.Errorf("name claim = %v, want Kartik", claims["name"])
	}
	if claims["role"] != "Admin" {
		t.Errorf("role claim = %v, want Admin", claims["role"])
	}
	if claims["iss"] != "https://localhost:44358" {
		t.Errorf("iss claim = %v, want https://localhost:44358", claims["iss"])
	}
	if exp, _ := claims["exp"].(float64); int64(exp) != now.Add(4*time.Hour).Unix() {
		t.Errorf("exp claim = %v, want %d", claims["exp"], now.Add(4*time.Hour).Unix())
	}
}

func TestTokenIssuer_Issue_OmitsIssuerAndAudienceWhenUnset(t *testing.T) {
	iss := New(testPolicies(), testSource(t), 4*time.Hour)

	issued, err := iss.Issue(context.Background(), "Microsoft", "Kartik", "Kartik@123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	token, _, err := jwt.NewParser().ParseUnverified(issued.Token, jwt.MapClaims{})
	if err != nil {
		t.Fatalf("parsing issued token: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if _, ok := claims["iss"]; ok {
		t.Error("iss claim present, want omitted")
	}
	if _, ok := claims["aud"]; ok {
		t.Error("aud claim present, want omitted")
	}
}

func TestTokenIssuer_Issue_Failures(t *testing.T) {
	iss := New(testPolicies(), testSource(t), 4*time.Hour)

	tests := []struct {
		name     string
		policy   string
		username string
		password string
		wantErr  error
	}{
		{
			name:     "Unknown Policy",
			policy:   "GitHub",
			username: "Kartik",
			password: "Kartik@123",
			wantErr:  core.ErrUnknownPolicy,
		},
		{
			name:     "Wrong Password",
			policy:   "Local",
			username: "Kartik",
			password: "wrong",
			wantErr:  core.ErrInvalidCredentials,
		},
		{
			name:     "Unknown User",
			policy:   "Local",
			username: "wrong",
			password: "wrong",
			wantErr:  core.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issued, err := iss.Issue(context.Background(), tt.policy, tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Issue() error = %v, want %v", err, tt.wantErr)
			}
			if issued != nil {
				t.Errorf("Issue() = %+v, want nil on failure", issued)
			}
		})
	}
}
