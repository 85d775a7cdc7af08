package core

import "time"

type AuditEntry struct {
	// ID is the unique request ID (X-Correlation-ID)
	ID string `json:"id"`

	// Time is the timestamp of the event
	Time time.Time `json:"time"`

	// Action describing what happened (e.g. "token.issue", "token.verify")
	Action string `json:"action"`

	// Policy that was targeted by a login request
	Policy string `json:"policy,omitempty"`
	// Scheme that evaluated a presented token
	Scheme string `json:"scheme,omitempty"`

	// Username from the request or the token's claims
	Username string `json:"username,omitempty"`

	// TokenFingerprint is a hash of the token involved, never the token itself
	TokenFingerprint string `json:"token_fingerprint,omitempty"`

	// Decision details
	Success     bool   `json:"success"`
	FailedCheck Check  `json:"failed_check,omitempty"`
	Error       string `json:"error,omitempty"`
}

type Auditor interface {
	Log(entry AuditEntry) error
	Close() error
}

// AuditReader is implemented by auditors that can be queried back,
// used by the admin endpoints.
type AuditReader interface {
	GetRecent(limit int) ([]AuditEntry, error)
	Find(filter func(entry AuditEntry) bool, limit int) ([]AuditEntry, error)
}
