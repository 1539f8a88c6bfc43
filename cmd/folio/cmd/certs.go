package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/folio/internal/filter"
	"github.com/nikbrunner/folio/internal/model"
)

func newCertsCmd() *cobra.Command {
	var category string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "certs",
		Short: "List certifications by category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := getApp(cmd)

			cat := model.CertificationCategory(category)
			if cat != "" && cat != filter.CategoryAll && !cat.Valid() {
				return fmt.Errorf("unknown certification category %q", category)
			}

			certs, err := a.library.Certifications()
			if err != nil {
				return fmt.Errorf("load certifications: %w", err)
			}
			filtered := filter.FilterCertifications(certs, cat)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), filtered)
			}

			w := cmd.OutOrStdout()
			counts := filter.CertificationCounts(certs)
			fmt.Fprintf(w, "all (%d)", counts[filter.CategoryAll])
			for _, c := range model.CertificationCategories() {
				fmt.Fprintf(w, "  %s (%d)", c, counts[c])
			}
			fmt.Fprintln(w)
			for _, c := range filtered {
				fmt.Fprintf(w, "  %-40s %-20s %s\n", c.Name, c.Issuer, c.IssueDate)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "all", "Category: all, technical, professional, language, other")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output certifications as JSON")

	return cmd
}
