package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/KartikZCoding/campusgate/internal/cliconfig"
	"github.com/KartikZCoding/campusgate/pkg/client"
)

var (
	loginPolicy   string
	loginUsername string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with a Campusgate server",
	Long: `Logs in under the given policy (Local, Microsoft, Google) and saves the
returned bearer token locally for future authenticated requests (like audit logs).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := viper.GetString(ServerAddrKey)
		if server == "" {
			return fmt.Errorf("server address not configured, provide via --server or env")
		}
		u, err := url.Parse(server)
		if err != nil {
			return fmt.Errorf("parsing server URL: %w", err)
		}

		fmt.Fprintf(os.Stderr, "Password for %s: ", loginUsername)
		passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}

		cli := client.New(server)

		log.Info().Msgf("Logging in to server %q...", u.Host)

		resp, correlationID, err := cli.Login(cmd.Context(), loginPolicy, loginUsername, string(passwordBytes))
		if err != nil {
			return logError(err, correlationID, "login failed")
		}

		cfg, err := cliconfig.Load()
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("loading config: %w", err)
			}
			cfg = &cliconfig.CLIConfig{}
		}
		cfg.SetCredential(server, resp.Username, resp.Token)
		if err := cliconfig.Save(cfg); err != nil {
			return logError(err, "", "login succeeded but could not save credentials")
		}

		logSuccess("logged in as %s, token valid until %s", bold(resp.Username), resp.ExpiresAt.Local().Format("15:04:05"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVar(&loginPolicy, "policy", "Local", "Login policy (Local, Microsoft, Google)")
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username to log in with")

	_ = loginCmd.MarkFlagRequired("username")
}
