package service

import "time"

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	// Policy selects the credential triple used for signing
	// (e.g. "Local", "Microsoft", "Google").
	Policy string `json:"policy"`

	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
