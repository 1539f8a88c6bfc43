package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/folio/internal/sitemap"
)

func newSitemapCmd() *cobra.Command {
	var output string
	var siteURL string

	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Generate sitemap.xml from the indexed content",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := getApp(cmd)
			if siteURL == "" {
				siteURL = a.config.SiteURL
			}
			pages := sitemap.Pages(a.engine.Items())

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
					return err
				}
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			if err := sitemap.Write(w, siteURL, pages, time.Now()); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d pages to %s\n", len(pages), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().StringVar(&siteURL, "site-url", "", "Site base URL (default from config)")

	return cmd
}
