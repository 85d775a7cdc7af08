package audit

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/KartikZCoding/campusgate/internal/config"
	"github.com/KartikZCoding/campusgate/internal/core"
)

// Fingerprint returns a stable identifier for a token so audit entries can
// be correlated without ever storing the token itself.
func Fingerprint(token string) string {
	hash := sha256.Sum256([]byte(token))
	return base64.StdEncoding.EncodeToString(hash[:])
}

// Build constructs the auditor selected by the config.
func Build(cfg config.AuditConfig) (core.Auditor, error) {
	if !cfg.Enabled {
		return NewNoopAuditor(), nil
	}
	switch cfg.Type {
	case "memory", "":
		return NewInMemoryAuditor(), nil
	case "file":
		if cfg.Path == "" {
			return nil, fmt.Errorf("audit type 'file' requires a path")
		}
		auditor, err := NewFileAuditor(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("building file auditor: %w", err)
		}
		return auditor, nil
	default:
		return nil, fmt.Errorf("unknown audit type %q", cfg.Type)
	}
}
