package cmd

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/folio/internal/picker"
	"github.com/nikbrunner/folio/internal/watcher"
)

func newBrowseCmd() *cobra.Command {
	var watch bool
	var open bool

	cmd := &cobra.Command{
		Use:   "browse [query]",
		Short: "Interactive live search",
		Long: `Open an interactive search prompt. Results update as you type;
tab narrows to one content type and ctrl+y copies the selected URL.

With --watch and an on-disk content directory, edits to the content
clear the index so the next keystroke searches the new content.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp(cmd)

			if watch {
				if a.config.ContentDir == "" {
					return fmt.Errorf("--watch needs --content-dir or contentDir in the config")
				}
				w, err := watcher.New(a.config.ContentDir, a.engine, watcher.Options{Logger: a.logger})
				if err != nil {
					return err
				}
				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()
				go func() {
					if err := w.Run(ctx); err != nil {
						a.logger.Warn("content watcher stopped", "error", err)
					}
				}()
			}

			p := picker.New(a.engine, strings.Join(args, " "))
			finalModel, err := tea.NewProgram(p, tea.WithAltScreen(), tea.WithOutput(cmd.ErrOrStderr())).Run()
			if err != nil {
				return fmt.Errorf("run picker: %w", err)
			}

			selected := finalModel.(picker.Picker).Selected()
			if selected == nil {
				return nil
			}

			url := strings.TrimRight(a.config.SiteURL, "/") + selected.URL
			fmt.Fprintln(cmd.OutOrStdout(), url)
			if open {
				openURL(url)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Clear the index when the content directory changes")
	cmd.Flags().BoolVar(&open, "open", false, "Open the selected URL in the browser")

	return cmd
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}
