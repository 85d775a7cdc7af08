package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/KartikZCoding/campusgate/internal/cliconfig"
	"github.com/KartikZCoding/campusgate/pkg/client"
)

var (
	greenCheck = color.GreenString("✓")
	redCross   = color.RedString("✗")
	bold       = color.New(color.Bold).Sprint
)

// BeQuietError signals that the error was already reported to the user and
// should not be logged again by Execute.
type BeQuietError struct{}

func (BeQuietError) Error() string {
	return "(error already reported)"
}

func logSuccess(format string, args ...any) {
	log.Info().Msgf("%s "+format, append([]any{greenCheck}, args...)...)
}

func logError(err error, correlationID, msg string) error {
	if correlationID != "" {
		log.Error().Msgf("%s %s (correlation ID: %s)", redCross, msg, correlationID)
	} else {
		log.Error().Msgf("%s %s", redCross, msg)
	}
	log.Error().Msgf("error: %v", err)
	return BeQuietError{}
}

// getClient returns a client for the configured remote server, attaching a
// saved credential if one exists.
func getClient() (*client.Client, error) {
	// we need the user to provide some server address first
	server := viper.GetString(ServerAddrKey)
	if server == "" {
		return nil, fmt.Errorf("server address not configured (use --server or set CAMPUSGATE_ADDR)")
	}

	var token string
	if cfg, err := cliconfig.Load(); err == nil {
		if cred, err := cfg.GetCredential(server); err == nil { // token prio 1: saved credential
			token = cred.Token
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if envToken := os.Getenv("CAMPUSGATE_TOKEN"); envToken != "" { // token prio 2: env var
		token = envToken
	}

	return client.New(server, client.WithAuthToken(token)), nil
}

// bindConfigFlag registers the --config flag on commands that operate on a
// server configuration file.
func bindConfigFlag(flags *pflag.FlagSet) {
	flags.StringVarP(&cfgFile, "config", "f", "campusgate.yaml",
		"Server configuration file (policies, accounts, audit)")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
