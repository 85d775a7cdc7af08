package schemes

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"

	"github.com/KartikZCoding/campusgate/internal/core"
)

var (
	localCreds = core.PolicyCredentials{
		Name:             "Local",
		Scheme:           "LoginForLocalUsers",
		SigningKey:       []byte("local-secret-local-secret-local-secret"),
		Issuer:           "https://localhost:44358",
		Audience:         "https://localhost:44358",
		ValidateIssuer:   true,
		ValidateAudience: true,
	}
	microsoftCreds = core.PolicyCredentials{
		Name:       "Microsoft",
		Scheme:     "LoginForMicrosoftUsers",
		SigningKey: []byte("microsoft-secret-microsoft-secret"),
	}
)

// mintToken builds a signed token the way the issuer does, with full control
// over the claims for failure scenarios.
func mintToken(t *testing.T, key []byte, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

func validClaims(creds core.PolicyCredentials) jwt.MapClaims {
	now := time.Now()
	claims := jwt.MapClaims{
		"name": "Kartik",
		"role": "Admin",
		"iat":  now.Unix(),
		"exp":  now.Add(4 * time.Hour).Unix(),
	}
	if creds.Issuer != "" {
		claims["iss"] = creds.Issuer
	}
	if creds.Audience != "" {
		claims["aud"] = creds.Audience
	}
	return claims
}

func TestHMACScheme_Verify_RoundTrip(t *testing.T) {
	scheme := NewHMAC(localCreds)
	token := mintToken(t, localCreds.SigningKey, validClaims(localCreds))

	principal, err := scheme.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	want := &core.Principal{
		Username: "Kartik",
		Role:     "Admin",
		Scheme:   "LoginForLocalUsers",
	}
	if diff := cmp.Diff(want, principal); diff != "" {
		t.Errorf("Verify() principal mismatch (-want +got):\n%s", diff)
	}
}

func TestHMACScheme_Verify_CrossPolicyIsolation(t *testing.T) {
	// a token minted under the Local policy must never verify under the
	// Microsoft scheme
	token := mintToken(t, localCreds.SigningKey, validClaims(localCreds))

	scheme := NewHMAC(microsoftCreds)
	principal, err := scheme.Verify(context.Background(), token)
	if err == nil {
		t.Fatalf("Verify() = %+v, want error", principal)
	}
	if got := core.FailedCheck(err); got != core.CheckSignature {
		t.Errorf("FailedCheck() = %q, want %q", got, core.CheckSignature)
	}
}

func TestHMACScheme_Verify_Expired(t *testing.T) {
	claims := validClaims(localCreds)
	claims["iat"] = time.Now().Add(-5 * time.Hour).Unix()
	claims["exp"] = time.Now().Add(-1 * time.Hour).Unix()
	token := mintToken(t, localCreds.SigningKey, claims)

	scheme := NewHMAC(localCreds)
	if _, err := scheme.Verify(context.Background(), token); err == nil {
		t.Fatal("Verify() accepted an expired token")
	} else if got := core.FailedCheck(err); got != core.CheckExpiry {
		t.Errorf("FailedCheck() = %q, want %q", got, core.CheckExpiry)
	}
}

func TestHMACScheme_Verify_Tampered(t *testing.T) {
	scheme := NewHMAC(localCreds)
	token := mintToken(t, localCreds.SigningKey, validClaims(localCreds))

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token format: %d parts", len(parts))
	}

	tests := []struct {
		name   string
		mutate func() string
	}{
		{
			name: "Tampered Payload",
			mutate: func() string {
				payload := []byte(parts[1])
				if payload[3] == 'A' {
					payload[3] = 'B'
				} else {
					payload[3] = 'A'
				}
				return parts[0] + "." + string(payload) + "." + parts[2]
			},
		},
		{
			name: "Tampered Signature",
			mutate: func() string {
				sig := []byte(parts[2])
				if sig[0] == 'A' {
					sig[0] = 'B'
				} else {
					sig[0] = 'A'
				}
				return parts[0] + "." + parts[1] + "." + string(sig)
			},
		},
		{
			name: "Truncated",
			mutate: func() string {
				return parts[0] + "." + parts[1]
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := scheme.Verify(context.Background(), tt.mutate())
			if err == nil {
				t.Fatalf("Verify() = %+v, want error", principal)
			}
		})
	}
}

func TestHMACScheme_Verify_IssuerAudienceToggles(t *testing.T) {
	keyOnly := localCreds
	keyOnly.ValidateIssuer = false
	keyOnly.ValidateAudience = false

	tests := []struct {
		name      string
		creds     core.PolicyCredentials
		claims    jwt.MapClaims
		wantErr   bool
		wantCheck core.Check
	}{
		{
			name:  "Wrong Issuer Rejected When Enabled",
			creds: localCreds,
			claims: jwt.MapClaims{
				"name": "Kartik", "role": "Admin",
				"iss": "https://evil.example",
				"aud": localCreds.Audience,
				"exp": time.Now().Add(time.Hour).Unix(),
			},
			wantErr:   true,
			wantCheck: core.CheckIssuer,
		},
		{
			name:  "Wrong Audience Rejected When Enabled",
			creds: localCreds,
			claims: jwt.MapClaims{
				"name": "Kartik", "role": "Admin",
				"iss": localCreds.Issuer,
				"aud": "https://evil.example",
				"exp": time.Now().Add(time.Hour).Unix(),
			},
			wantErr:   true,
			wantCheck: core.CheckAudience,
		},
		{
			name:  "Wrong Issuer Accepted When Disabled",
			creds: keyOnly,
			claims: jwt.MapClaims{
				"name": "Kartik", "role": "Admin",
				"iss": "https://evil.example",
				"exp": time.Now().Add(time.Hour).Unix(),
			},
		},
		{
			name:  "No Issuer Or Audience Accepted When Disabled",
			creds: keyOnly,
			claims: jwt.MapClaims{
				"name": "Kartik", "role": "Admin",
				"exp": time.Now().Add(time.Hour).Unix(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheme := NewHMAC(tt.creds)
			token := mintToken(t, tt.creds.SigningKey, tt.claims)

			_, err := scheme.Verify(context.Background(), token)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Verify() succeeded, want error")
				}
				if got := core.FailedCheck(err); got != tt.wantCheck {
					t.Errorf("FailedCheck() = %q, want %q", got, tt.wantCheck)
				}
				return
			}
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
		})
	}
}

func TestHMACScheme_Verify_MissingClaims(t *testing.T) {
	scheme := NewHMAC(microsoftCreds)
	token := mintToken(t, microsoftCreds.SigningKey, jwt.MapClaims{
		"role": "Admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	_, err := scheme.Verify(context.Background(), token)
	if err == nil {
		t.Fatal("Verify() accepted a token without a name claim")
	}
	if got := core.FailedCheck(err); got != core.CheckClaims {
		t.Errorf("FailedCheck() = %q, want %q", got, core.CheckClaims)
	}
}

func TestHMACScheme_Verify_WrongAlgorithm(t *testing.T) {
	// HS256-signed tokens must be rejected even with the right key
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims(microsoftCreds))
	signed, err := token.SignedString(microsoftCreds.SigningKey)
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}

	scheme := NewHMAC(microsoftCreds)
	if _, err := scheme.Verify(context.Background(), signed); err == nil {
		t.Fatal("Verify() accepted an HS256 token")
	}
}

func TestRegistry_Verify(t *testing.T) {
	registry := NewRegistry(NewHMAC(localCreds), NewHMAC(microsoftCreds))
	localToken := mintToken(t, localCreds.SigningKey, validClaims(localCreds))

	t.Run("First Matching Scheme Wins", func(t *testing.T) {
		principal, err := registry.Verify(context.Background(), localToken,
			[]string{"LoginForMicrosoftUsers", "LoginForLocalUsers"})
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if principal.Scheme != "LoginForLocalUsers" {
			t.Errorf("principal.Scheme = %q, want LoginForLocalUsers", principal.Scheme)
		}
	})

	t.Run("No Scheme Admits", func(t *testing.T) {
		if _, err := registry.Verify(context.Background(), localToken,
			[]string{"LoginForMicrosoftUsers"}); err == nil {
			t.Fatal("Verify() succeeded, want error")
		}
	})

	t.Run("Unknown Scheme Fails Closed", func(t *testing.T) {
		if _, err := registry.Verify(context.Background(), localToken,
			[]string{"DoesNotExist"}); err == nil {
			t.Fatal("Verify() succeeded, want error")
		}
	})
}
