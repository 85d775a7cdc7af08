package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/KartikZCoding/campusgate/internal/buildinfo"
	"github.com/KartikZCoding/campusgate/internal/logging"
)

// global flags
var (
	cfgFile    string
	userConfig string
	serverAddr string
)

const ServerAddrKey = "addr"

var rootCmd = &cobra.Command{
	Use:   "campusgate",
	Short: fmt.Sprintf("Campusgate auth gateway (version: %s, commit: %s)", buildinfo.Version, buildinfo.CommitHash),
	Long: `Campusgate guards a student-records API with multi-issuer JWT authentication.
Each login policy (Local, Microsoft, Google) signs tokens with its own key,
issuer and audience, and protected endpoints declare which verification
schemes and roles they accept.`,
	Version: buildinfo.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, configErr := initUserConfig()
		logging.Init()
		if configErr != nil { // handle error after logging is initialized
			return configErr
		}
		if configPath != "" {
			log.Debug().Msgf("using config file: %s", configPath)
		}
		return nil
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		var quiet BeQuietError
		if !errors.As(err, &quiet) {
			log.Error().Err(err).Msg("execution failed")
		}
		os.Exit(1)
	}
}

func init() {
	// setup pre-flag logger
	logging.InitDefault()

	rootCmd.PersistentFlags().StringVar(&userConfig, "user-config", "",
		"User configuration file for default values (default is $HOME/.campusgate.yaml)")

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	_ = viper.BindPFlag(logging.LevelKey, rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().String("log-format", "console", "Log format (console, json)")
	_ = viper.BindPFlag(logging.FormatKey, rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.PersistentFlags().Bool("no-color", false, "Disable color output")
	_ = viper.BindPFlag(logging.NoColorKey, rootCmd.PersistentFlags().Lookup("no-color"))

	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", "", "Address of the remote Campusgate server")
	_ = viper.BindPFlag(ServerAddrKey, rootCmd.PersistentFlags().Lookup("server"))

	viper.SetEnvPrefix("CAMPUSGATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))

	viper.AutomaticEnv()

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

func initUserConfig() (string, error) {
	// reads in config file and ENV variables if set.
	if userConfig != "" {
		viper.SetConfigFile(userConfig)
	} else {
		// search order: current dir, $HOME, XDG config
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}

		config, err := os.UserConfigDir()
		if err == nil {
			viper.AddConfigPath(config + "/campusgate")
		}

		viper.SetConfigType("yaml")
		viper.SetConfigName(".campusgate")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		var notFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundError) {
			return "", err
		}
	} else {
		return viper.ConfigFileUsed(), nil
	}

	return "", nil
}
