package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/KartikZCoding/campusgate/internal/api"
	"github.com/KartikZCoding/campusgate/internal/config"
	"github.com/KartikZCoding/campusgate/internal/validation"
)

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("configuration is invalid: %w", err)
		}

		// make sure the declared endpoint bindings resolve, too
		if err := validation.ValidateBindings(api.Bindings(), cfg.SchemeNames()); err != nil {
			return fmt.Errorf("configuration is invalid: %w", err)
		}

		log.Info().Msg("Configuration is valid.")
		logSuccess("%d policies, %d extra schemes, account source: %s",
			len(cfg.Policies), len(cfg.Schemes), cfg.Accounts.Type)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
	bindConfigFlag(configValidateCmd.Flags())
}
