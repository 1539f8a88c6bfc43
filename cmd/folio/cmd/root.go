// Package cmd provides the CLI commands for folio.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/folio/internal/logging"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	configPath string
	locale     string
	contentDir string
	stateFile  string
	debug      bool
}

// NewRootCmd creates the root command for the folio CLI.
func NewRootCmd() *cobra.Command {
	var opts globalOptions

	cmd := &cobra.Command{
		Use:   "folio",
		Short: "Search and filter portfolio content",
		Long: `folio indexes portfolio content (projects, blog posts, experience
and skills) and answers fuzzy, typo-tolerant searches over it.

Content is read from the embedded portfolio data unless --content-dir
or contentDir in the config points at a directory with the same layout.

Examples:
  folio search lambda
  folio search kubernets --type blog
  folio projects --tech React --save
  folio browse --watch`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			setApp(cmd, app)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.config/folio/config.yaml)")
	cmd.PersistentFlags().StringVarP(&opts.locale, "locale", "L", "", "Content locale, e.g. en or vi")
	cmd.PersistentFlags().StringVar(&opts.contentDir, "content-dir", "", "Read content from this directory instead of the embedded data")
	cmd.PersistentFlags().StringVar(&opts.stateFile, "state-file", "", "Filter state file (.json or .db); default prefers ~/.config/folio/folio.db")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newSuggestCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newProjectsCmd())
	cmd.AddCommand(newCertsCmd())
	cmd.AddCommand(newSitemapCmd())
	cmd.AddCommand(newBrowseCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	if _, err := execute(NewRootCmd()); err != nil {
		slog.Debug("command failed", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// execute runs root and releases the app of the command that ran, also
// when it failed.
func execute(root *cobra.Command) (*cobra.Command, error) {
	cmd, err := root.ExecuteC()
	if cmd != nil {
		if a := getApp(cmd); a != nil {
			a.close()
		}
	}
	return cmd, err
}

// loggingConfig maps the config file and --debug onto logging.Config.
func loggingConfig(level, format string, debug bool) logging.Config {
	cfg := logging.DefaultConfig()
	if level != "" {
		cfg.Level = level
	}
	if format != "" {
		cfg.Format = format
	}
	if debug {
		cfg.Level = "debug"
	}
	return cfg
}
