package cmd

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/KartikZCoding/campusgate/internal/audit"
)

var tokenInspectRaw bool

var tokenInspectCmd = &cobra.Command{
	Use:     "inspect <token>",
	Aliases: []string{"decode"},
	Short:   "Decode a token's claims without verifying it",
	Long: `Parses a compact JWT and prints its header and claims.
No signature verification is performed; this is a debugging aid only.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenStr := args[0]

		token, _, err := jwt.NewParser().ParseUnverified(tokenStr, jwt.MapClaims{})
		if err != nil {
			return fmt.Errorf("parsing token: %w", err)
		}

		if tokenInspectRaw {
			spew.Dump(token)
			return nil
		}

		claims, _ := token.Claims.(jwt.MapClaims)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Claim", "Value"})

		keys := make([]string, 0, len(claims))
		for k := range claims {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			v := claims[k]
			if k == "exp" || k == "iat" {
				if num, ok := v.(float64); ok {
					ts := time.Unix(int64(num), 0)
					suffix := ""
					if k == "exp" && ts.Before(time.Now()) {
						suffix = " " + color.RedString("(expired)")
					}
					v = ts.Format(time.RFC3339) + suffix
				}
			}
			t.AppendRow(table.Row{bold(k), truncate(fmt.Sprint(v), 80)})
		}

		t.AppendFooter(table.Row{"alg", token.Method.Alg()})
		t.Render()

		fmt.Printf("fingerprint: %s\n", audit.Fingerprint(tokenStr))
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(tokenInspectCmd)

	tokenInspectCmd.Flags().BoolVar(&tokenInspectRaw, "raw", false, "Dump the parsed token structure")
}
