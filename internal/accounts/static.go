package accounts

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/KartikZCoding/campusgate/internal/config"
	"github.com/KartikZCoding/campusgate/internal/core"
)

type StaticSourceConfig struct {
	Users []StaticUserConfig `mapstructure:"users"`
}

type StaticUserConfig struct {
	Username string `mapstructure:"username"`

	// Password in plaintext. Hashed at load time; intended for local setups
	// and tests only.
	Password string `mapstructure:"password"`

	// PasswordHash and Salt as hex strings, alternative to Password.
	PasswordHash string `mapstructure:"password_hash"`
	Salt         string `mapstructure:"salt"`

	// Role embedded into tokens issued for this user.
	Role string `mapstructure:"role"`
}

// StaticSource serves accounts from configuration.
// It is read-only after construction.
type StaticSource struct {
	users map[string]*core.Account
}

var _ core.CredentialSource = (*StaticSource)(nil)

func NewStatic(cfg config.AccountsConfig) (*StaticSource, error) {
	var conf StaticSourceConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &conf,
	})
	if err != nil {
		return nil, fmt.Errorf("creating decoder for static account source: %w", err)
	}
	if err := decoder.Decode(cfg.Config); err != nil {
		return nil, fmt.Errorf("decoding config for static account source: %w", err)
	}

	users := make(map[string]*core.Account, len(conf.Users))
	for _, u := range conf.Users {
		if u.Username == "" {
			return nil, fmt.Errorf("static account with empty username")
		}
		if _, exists := users[u.Username]; exists {
			return nil, fmt.Errorf("duplicate static account %q", u.Username)
		}

		acc := &core.Account{
			Username: u.Username,
			Role:     u.Role,
		}

		switch {
		case u.PasswordHash != "":
			hash, err := hex.DecodeString(u.PasswordHash)
			if err != nil {
				return nil, fmt.Errorf("account %q: decoding password_hash: %w", u.Username, err)
			}
			salt, err := hex.DecodeString(u.Salt)
			if err != nil {
				return nil, fmt.Errorf("account %q: decoding salt: %w", u.Username, err)
			}
			acc.PasswordHash = hash
			acc.Salt = salt
		case u.Password != "":
			hash, salt, err := core.HashPassword(u.Password)
			if err != nil {
				return nil, fmt.Errorf("account %q: hashing password: %w", u.Username, err)
			}
			acc.PasswordHash = hash
			acc.Salt = salt
		default:
			return nil, fmt.Errorf("account %q has neither password nor password_hash", u.Username)
		}

		users[u.Username] = acc
	}

	return &StaticSource{users: users}, nil
}

func (s *StaticSource) Lookup(_ context.Context, username string) (*core.Account, error) {
	acc, ok := s.users[username]
	if !ok {
		return nil, core.ErrAccountNotFound
	}
	return acc, nil
}
