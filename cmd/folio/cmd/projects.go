package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/folio/internal/filter"
	"github.com/nikbrunner/folio/internal/model"
)

// projectsOptions holds CLI flags for projects.
type projectsOptions struct {
	techs      []string
	categories []string
	status     string
	query      string
	sort       string
	reset      bool
	save       bool
	facets     bool
	asJSON     bool
}

func newProjectsCmd() *cobra.Command {
	var opts projectsOptions

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects through the saved filter selection",
		Long: `List portfolio projects filtered by technology, category, status and
free text. The saved selection is applied first, then the flags.

A project passes when it uses any selected technology, is in any selected
category, has the selected status, and its title or description contains
the search text.

Examples:
  folio projects --tech React --tech AWS
  folio projects --status ongoing --save
  folio projects --reset --save`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProjects(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.techs, "tech", nil, "Select a technology (repeatable)")
	cmd.Flags().StringSliceVar(&opts.categories, "category", nil, "Select a category (repeatable)")
	cmd.Flags().StringVar(&opts.status, "status", "", "Status: all, completed, ongoing, archived")
	cmd.Flags().StringVarP(&opts.query, "search", "s", "", "Title or description contains this text")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Sort: default, title, newest")
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "Clear the saved selection before applying flags")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Save the resulting selection")
	cmd.Flags().BoolVar(&opts.facets, "facets", false, "List available technologies and categories")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Output projects as JSON")

	return cmd
}

func runProjects(cmd *cobra.Command, opts projectsOptions) error {
	a := getApp(cmd)

	projects, err := a.library.Projects()
	if err != nil {
		return fmt.Errorf("load projects: %w", err)
	}

	st, closeStorage, err := a.openStorage()
	if err != nil {
		return fmt.Errorf("open filter state: %w", err)
	}
	defer closeStorage()

	saved, err := st.Load()
	if err != nil {
		return fmt.Errorf("load filter state: %w", err)
	}

	store := filter.NewStore()
	store.Replace(saved)

	if opts.reset {
		store.ClearFilters()
	}
	if err := applyProjectFlags(store, opts); err != nil {
		return err
	}

	if opts.save {
		if err := st.Save(store.State()); err != nil {
			return fmt.Errorf("save filter state: %w", err)
		}
		a.logger.Debug("filter state saved", "filters", store.State().String())
	}

	filtered := store.FilteredProjects(projects)
	out := cmd.OutOrStdout()
	if opts.asJSON {
		return writeJSON(out, filtered)
	}

	state := store.State()
	fmt.Fprintf(out, "%d of %d projects (%d active filters: %s)\n", len(filtered), len(projects), store.ActiveFilterCount(), state)
	printProjects(out, filtered)

	if opts.facets {
		fmt.Fprintf(out, "\nTechnologies: %s\n", strings.Join(filter.Technologies(projects), ", "))
		fmt.Fprintf(out, "Categories: %s\n", strings.Join(filter.Categories(projects), ", "))
	}
	return nil
}

// applyProjectFlags adds the flag selections to the store. Categories are
// only added, so a saved category is never toggled off by repeating it.
func applyProjectFlags(store *filter.Store, opts projectsOptions) error {
	for _, tech := range opts.techs {
		store.SetTechnology(tech, true)
	}
	for _, cat := range opts.categories {
		if !slices.Contains(store.State().Categories, cat) {
			store.SetCategory(cat)
		}
	}
	if opts.status != "" {
		status, err := filter.ParseStatus(opts.status)
		if err != nil {
			return err
		}
		store.SetStatus(status)
	}
	if opts.query != "" {
		store.SetSearchQuery(opts.query)
	}
	if opts.sort != "" {
		mode, err := filter.ParseSortMode(opts.sort)
		if err != nil {
			return err
		}
		store.SetSort(mode)
	}
	return nil
}

func printProjects(w io.Writer, projects []model.Project) {
	for _, p := range projects {
		fmt.Fprintf(w, "  %-40s %-10s %s\n", p.Title, p.Status, p.Category)
		if len(p.Technologies) > 0 {
			fmt.Fprintf(w, "  %-40s %s\n", "", strings.Join(p.Technologies, ", "))
		}
	}
}
