package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/KartikZCoding/campusgate/internal/buildinfo"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show information about the Campusgate installation",
	RunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString(ServerAddrKey) == "" {
			return infoLocally(cmd, args)
		}
		return infoRemote(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func infoRemote(cmd *cobra.Command, _ []string) error {
	cli, err := getClient()
	if err != nil {
		return err
	}
	log.Info().Msg("Fetching build info from server...")
	info, err := cli.About(cmd.Context())
	if err != nil {
		return logError(err, "", "failed to get info from server")
	}
	printInfo(info)
	return nil
}

func infoLocally(_ *cobra.Command, _ []string) error {
	log.Info().Msg("Showing local build info...")
	info := buildinfo.GetBuildInfo()
	printInfo(&info)
	return nil
}

func printInfo(info *buildinfo.Info) {
	fmt.Println(bold("\n── Campusgate Build Information ──"))
	fmt.Printf("  Service:    %s\n", info.Service)
	fmt.Printf("  Version:    %s\n", info.Version)
	fmt.Printf("  Commit:     %s\n", info.CommitHash)
}
