package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/BuzzLyutic/team-tracker/internal/config"
)

var checkEnvCmd = &cobra.Command{
	Use:   "check-env",
	Short: "Report which environment variables are set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		missing := checkEnv(cmd.OutOrStdout(), os.LookupEnv)
		if len(missing) > 0 {
			return fmt.Errorf("missing required variables: %s", strings.Join(missing, ", "))
		}
		return nil
	},
}

// checkEnv prints one line per known variable and returns the required ones
// that are unset. Secret values are masked.
func checkEnv(w io.Writer, lookup func(string) (string, bool)) []string {
	var missing []string
	for _, v := range config.Vars {
		val, ok := lookup(v.Name)
		switch {
		case !ok || val == "":
			label := "missing"
			if v.Required {
				label = "MISSING (required)"
				missing = append(missing, v.Name)
			}
			fmt.Fprintf(w, "%-20s %s\n", v.Name, label)
		case v.Secret:
			fmt.Fprintf(w, "%-20s set (%s)\n", v.Name, mask(val))
		default:
			fmt.Fprintf(w, "%-20s set (%s)\n", v.Name, val)
		}
	}
	return missing
}

// mask hides a secret entirely and reports only its length in characters.
func mask(s string) string {
	return fmt.Sprintf("%d chars", utf8.RuneCountInString(s))
}
