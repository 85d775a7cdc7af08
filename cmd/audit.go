package cmd

import "github.com/spf13/cobra"

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the server's audit trail",
}

func init() {
	rootCmd.AddCommand(auditCmd)
}
