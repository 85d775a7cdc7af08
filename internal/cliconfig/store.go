package cliconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

var ErrCredentialNotFound = errors.New("no saved credential for this server, run 'campusgate login' first")

// Credential is a saved login for one server.
type Credential struct {
	Username string    `json:"username,omitempty"`
	Token    string    `json:"token"`
	SavedAt  time.Time `json:"saved_at"`
}

// CLIConfig is the per-user state kept in ~/.campusgate/config.json,
// keyed by server address.
type CLIConfig struct {
	Credentials map[string]*Credential `json:"credentials,omitempty"`
}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home directory: %w", err)
	}
	return filepath.Join(home, ".campusgate", "config.json"), nil
}

func Load() (*CLIConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cli config '%s': %w", path, err)
	}

	var cfg CLIConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing cli config '%s': %w", path, err)
	}
	return &cfg, nil
}

func Save(cfg *CLIConfig) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating cli config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cli config: %w", err)
	}

	// tokens live in here, keep the file private to the user
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing cli config '%s': %w", path, err)
	}
	return nil
}

// SetCredential records a login for a server, replacing any previous one.
func (c *CLIConfig) SetCredential(server, username, token string) {
	if c.Credentials == nil {
		c.Credentials = make(map[string]*Credential)
	}
	c.Credentials[server] = &Credential{
		Username: username,
		Token:    token,
		SavedAt:  time.Now(),
	}
}

// GetCredential returns the saved credential for a server address.
func (c *CLIConfig) GetCredential(server string) (*Credential, error) {
	cred, ok := c.Credentials[server]
	if !ok {
		return nil, ErrCredentialNotFound
	}
	return cred, nil
}
