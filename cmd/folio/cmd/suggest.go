package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/folio/internal/search"
)

func newSuggestCmd() *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "suggest <text>",
		Short: "Autocomplete suggestions for partial input",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp(cmd)
			suggestions := a.engine.Suggestions(strings.Join(args, " "), limit)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), suggestions)
			}
			for _, s := range suggestions {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", search.DefaultSuggestionLimit, "Maximum number of suggestions")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output suggestions as JSON")

	return cmd
}
