package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/folio/internal/model"
)

type statsOutput struct {
	Locale   string            `json:"locale"`
	Stats    model.SearchStats `json:"stats"`
	Warnings []string          `json:"warnings,omitempty"`
}

func newStatsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show index size by content type",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := getApp(cmd)
			out := statsOutput{
				Locale: a.library.Locale(),
				Stats:  a.engine.Stats(),
			}
			for _, w := range a.indexer.Warnings() {
				out.Warnings = append(out.Warnings, w.String())
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Locale: %s\n", out.Locale)
			fmt.Fprintf(w, "Total items: %d\n", out.Stats.TotalItems)
			for _, t := range model.AllItemTypes() {
				fmt.Fprintf(w, "  %-11s %d\n", t, out.Stats.ByType[t])
			}
			for _, warning := range out.Warnings {
				fmt.Fprintf(w, "Warning: %s\n", warning)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output stats as JSON")

	return cmd
}
