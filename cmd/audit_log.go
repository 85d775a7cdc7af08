package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/KartikZCoding/campusgate/pkg/client"
)

var (
	auditLogLimit       int
	auditLogUsername    string
	auditLogFingerprint string
)

var auditLogCmd = &cobra.Command{
	Use:     "log",
	Aliases: []string{"ls"},
	Short:   "List recent audit log entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}

		log.Debug().Msg("Retrieving audit entries...")
		entries, err := cli.ListAudits(cmd.Context(), client.ListAuditsOptions{
			Limit:       auditLogLimit,
			Username:    auditLogUsername,
			Fingerprint: auditLogFingerprint,
		})
		if err != nil {
			return fmt.Errorf("listing audit entries: %w", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Time", "Action", "Policy/Scheme", "User", "Result", "Detail"})

		for _, e := range entries {
			result := greenCheck
			if !e.Success {
				result = redCross
			}

			target := e.Policy
			if target == "" {
				target = e.Scheme
			}

			detail := e.Error
			if e.FailedCheck != "" {
				detail = fmt.Sprintf("%s check failed", color.YellowString(string(e.FailedCheck)))
			}

			t.AppendRow(table.Row{
				e.Time.Local().Format("15:04:05"),
				e.Action,
				target,
				bold(e.Username),
				result,
				truncate(detail, 60),
			})
		}

		t.Render()
		return nil
	},
}

func init() {
	auditCmd.AddCommand(auditLogCmd)

	auditLogCmd.Flags().IntVar(&auditLogLimit, "limit", 50, "Maximum number of entries")
	auditLogCmd.Flags().StringVar(&auditLogUsername, "username", "", "Filter by username")
	auditLogCmd.Flags().StringVar(&auditLogFingerprint, "fingerprint", "", "Filter by token fingerprint")
}
