package accounts

import (
	"fmt"

	"github.com/KartikZCoding/campusgate/internal/config"
	"github.com/KartikZCoding/campusgate/internal/core"
)

// BuildSource constructs the credential source selected by the config.
func BuildSource(cfg config.AccountsConfig) (core.CredentialSource, error) {
	switch cfg.Type {
	case "static", "":
		src, err := NewStatic(cfg)
		if err != nil {
			return nil, fmt.Errorf("building static account source: %w", err)
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown account source type %q", cfg.Type)
	}
}
