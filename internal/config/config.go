package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/KartikZCoding/campusgate/internal/core"
)

// DefaultTokenTTL is how long issued tokens stay valid unless overridden.
const DefaultTokenTTL = 4 * time.Hour

type Config struct {
	Server   ServerConfig    `yaml:"server"`
	Auth     AuthConfig      `yaml:"auth"`
	Policies []PolicyConfig  `yaml:"policies"`
	Schemes  []SchemeConfig  `yaml:"schemes"`
	Accounts AccountsConfig  `yaml:"accounts"`
	Audit    AuditConfig     `yaml:"audit"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type AuthConfig struct {
	// TokenTTL is the lifetime of issued tokens. Defaults to DefaultTokenTTL.
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// PolicyConfig holds the credential triple for one login policy.
// Each policy gets exactly one HMAC verification scheme.
type PolicyConfig struct {
	// Name of the policy (e.g. "Local", "Microsoft", "Google").
	Name string `yaml:"name"`

	// Scheme is the verification scheme name endpoints bind to.
	// Defaults to "LoginFor<Name>Users".
	Scheme string `yaml:"scheme"`

	// SigningKey is the shared HMAC secret for this policy.
	SigningKey string `yaml:"signing_key"`

	Issuer   string `yaml:"issuer"`
	Audience string `yaml:"audience"`

	// ValidateIssuer / ValidateAudience toggle the corresponding checks at
	// verification time. Key-only verification is a supported deployment
	// variant, so both default to false.
	ValidateIssuer   bool `yaml:"validate_issuer"`
	ValidateAudience bool `yaml:"validate_audience"`
}

// Credentials converts the raw config into the immutable credential value
// shared by the issuer and the verifier.
func (p PolicyConfig) Credentials() core.PolicyCredentials {
	scheme := p.Scheme
	if scheme == "" {
		scheme = "LoginFor" + p.Name + "Users"
	}
	return core.PolicyCredentials{
		Name:             p.Name,
		Scheme:           scheme,
		SigningKey:       []byte(p.SigningKey),
		Issuer:           p.Issuer,
		Audience:         p.Audience,
		ValidateIssuer:   p.ValidateIssuer,
		ValidateAudience: p.ValidateAudience,
	}
}

// SchemeConfig holds configuration for an additional verification scheme
// that is not backed by a login policy (e.g. an external OIDC provider).
type SchemeConfig struct {
	Name   string         `yaml:"name"`
	Type   string         `yaml:"type"`    // e.g. "oidc"
	Config map[string]any `yaml:",inline"` // Capture remaining fields
}

// AccountsConfig holds configuration for the credential source.
type AccountsConfig struct {
	Type   string         `yaml:"type"`    // e.g. "static"
	Config map[string]any `yaml:",inline"` // Capture remaining fields
}

// AuditConfig holds configuration for auditing.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Type    string `yaml:"type"` // e.g. "file", "memory"
}

// Load reads and parses the configuration file at the given path.
// It returns a Config struct or an error if loading/parsing/validation fails.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = DefaultTokenTTL
	}
	if c.Auth.TokenTTL < 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}

	if len(c.Policies) == 0 {
		return fmt.Errorf("at least one policy must be configured")
	}

	seenPolicies := make(map[string]struct{})
	seenSchemes := make(map[string]struct{})
	for idx, p := range c.Policies {
		if p.Name == "" {
			return fmt.Errorf("policy at index %d has empty name", idx)
		}
		if _, exists := seenPolicies[p.Name]; exists {
			return fmt.Errorf("policy name %q is not unique", p.Name)
		}
		seenPolicies[p.Name] = struct{}{}

		if p.SigningKey == "" {
			return fmt.Errorf("policy %q missing signing_key", p.Name)
		}
		if p.ValidateIssuer && p.Issuer == "" {
			return fmt.Errorf("policy %q enables issuer validation but has no issuer", p.Name)
		}
		if p.ValidateAudience && p.Audience == "" {
			return fmt.Errorf("policy %q enables audience validation but has no audience", p.Name)
		}

		scheme := p.Credentials().Scheme
		if _, exists := seenSchemes[scheme]; exists {
			return fmt.Errorf("scheme name %q is not unique", scheme)
		}
		seenSchemes[scheme] = struct{}{}
	}

	for idx, s := range c.Schemes {
		if s.Name == "" {
			return fmt.Errorf("scheme at index %d has empty name", idx)
		}
		if _, exists := seenSchemes[s.Name]; exists {
			return fmt.Errorf("scheme name %q is not unique", s.Name)
		}
		seenSchemes[s.Name] = struct{}{}
	}

	if c.Accounts.Type == "" {
		c.Accounts.Type = "static"
	}

	return nil
}

// SchemeNames returns the names of every configured verification scheme,
// used to validate endpoint bindings at startup.
func (c *Config) SchemeNames() map[string]struct{} {
	names := make(map[string]struct{}, len(c.Policies)+len(c.Schemes))
	for _, p := range c.Policies {
		names[p.Credentials().Scheme] = struct{}{}
	}
	for _, s := range c.Schemes {
		names[s.Name] = struct{}{}
	}
	return names
}
