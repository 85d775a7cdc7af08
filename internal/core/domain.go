package core

import "time"

// Principal represents the authenticated identity of the caller.
// It is built from the claims of a verified token and lives for one request.
type Principal struct {
	// Username is taken from the token's "name" claim.
	Username string `json:"username"`

	// Role is taken from the token's "role" claim.
	Role string `json:"role"`

	// Scheme is the name of the verification scheme that admitted the token.
	Scheme string `json:"scheme,omitempty"`
}

// PolicyCredentials holds the signing material for one login policy
// (e.g. Local, Microsoft, Google). It is loaded once at startup and
// shared read-only between the issuer and the verification scheme.
type PolicyCredentials struct {
	// Name of the policy as referenced by login requests (e.g. "Local").
	Name string

	// Scheme is the name of the verification scheme bound to this policy
	// (e.g. "LoginForLocalUsers"), as referenced by endpoint bindings.
	Scheme string

	// SigningKey is the shared HMAC secret.
	SigningKey []byte

	// Issuer and Audience are embedded into minted tokens and checked at
	// verification time, but only if the corresponding toggle is set.
	Issuer   string
	Audience string

	ValidateIssuer   bool
	ValidateAudience bool
}

// Account is a stored user record as returned by a CredentialSource.
type Account struct {
	Username string

	// PasswordHash is the PBKDF2-SHA256 hash of the password.
	PasswordHash []byte
	// Salt used to derive PasswordHash.
	Salt []byte

	// Role embedded into issued tokens (e.g. "Admin").
	Role string
}

// Student is a record in the student registry.
type Student struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Address string    `json:"address,omitempty"`
	DOB     time.Time `json:"dob,omitempty"`

	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}
