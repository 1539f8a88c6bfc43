package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/folio/internal/model"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	limit  int
	types  []string
	tags   []string
	asJSON bool
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search projects, blog posts, experience and skills",
		Long: `Search the portfolio index. Matching tolerates typos and ignores
case and accents. Queries shorter than two characters return nothing.

Examples:
  folio search lambda
  folio search kubernets --type blog --type project
  folio search aws --tag serverless --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of results (default from config)")
	cmd.Flags().StringSliceVarP(&opts.types, "type", "t", nil, "Only return these types: project, blog, experience, skill")
	cmd.Flags().StringSliceVar(&opts.tags, "tag", nil, "Only return results with a tag containing this text")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Output results as JSON")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, opts searchOptions) error {
	a := getApp(cmd)

	q := model.SearchQuery{Query: query, Limit: opts.limit}
	if len(opts.types) > 0 || len(opts.tags) > 0 {
		filters := &model.SearchFilters{Tags: opts.tags}
		for _, s := range opts.types {
			t, err := model.ParseItemType(s)
			if err != nil {
				return err
			}
			filters.Types = append(filters.Types, t)
		}
		q.Filters = filters
	}

	results := a.engine.Search(q)
	a.logger.Debug("search finished", "query", query, "results", len(results))

	out := cmd.OutOrStdout()
	if opts.asJSON {
		return writeJSON(out, results)
	}
	if len(results) == 0 {
		fmt.Fprintf(out, "No results for '%s'\n", query)
		return nil
	}
	printResults(out, results)
	return nil
}

func printResults(w io.Writer, results []model.SearchResult) {
	for _, r := range results {
		fmt.Fprintf(w, "%-11s %s\n", r.Type, r.Title)
		fmt.Fprintf(w, "%-11s %s  (score %.3f)\n", "", r.URL, r.Score)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
