package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/folio/internal/model"
)

// runCmd executes the root command with an isolated config and state file.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	return runCmdIn(t, dir, args...)
}

func runCmdIn(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	base := []string{
		"--config", filepath.Join(dir, "config.yaml"),
		"--state-file", filepath.Join(dir, "filters.json"),
	}
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, base...))
	_, err := execute(cmd)
	return out.String(), err
}

func TestExecute_ReleasesAppWhenCommandFails(t *testing.T) {
	dir := t.TempDir()
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{
		"projects", "--status", "paused",
		"--config", filepath.Join(dir, "config.yaml"),
		"--state-file", filepath.Join(dir, "filters.json"),
	})

	ran, err := execute(root)
	assert.ErrorContains(t, err, "paused")

	a := getApp(ran)
	assert.Assert(t, a != nil, "expected the failed command to have an app")
	assert.Assert(t, a.cleanup == nil, "expected cleanup to have run")
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	cmd := NewRootCmd()

	names := make(map[string]bool)
	for _, sc := range cmd.Commands() {
		names[sc.Name()] = true
	}
	for _, want := range []string{"search", "suggest", "stats", "projects", "certs", "sitemap", "browse"} {
		assert.Assert(t, names[want], "missing %s command", want)
	}
}

func TestSearchCmd(t *testing.T) {
	out, err := runCmd(t, "search", "kubernetes")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "Kubernetes Observability Stack"))
}

func TestSearchCmd_JSONWithTypeFilter(t *testing.T) {
	out, err := runCmd(t, "search", "kubernetes", "--type", "skill", "--json")
	assert.NilError(t, err)

	var results []model.SearchResult
	assert.NilError(t, json.Unmarshal([]byte(out), &results))
	assert.Assert(t, len(results) > 0)
	for _, r := range results {
		assert.Equal(t, r.Type, model.TypeSkill)
	}
}

func TestSearchCmd_UnknownType(t *testing.T) {
	_, err := runCmd(t, "search", "aws", "--type", "bookmark")
	assert.ErrorIs(t, err, model.ErrUnknownItemType)
}

func TestSearchCmd_ShortQuery(t *testing.T) {
	out, err := runCmd(t, "search", "a")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "No results"))
}

func TestSuggestCmd(t *testing.T) {
	out, err := runCmd(t, "suggest", "ku")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "kubernetes"))
}

func TestStatsCmd(t *testing.T) {
	out, err := runCmd(t, "stats", "--json")
	assert.NilError(t, err)

	var stats statsOutput
	assert.NilError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, stats.Locale, "en")
	assert.Assert(t, stats.Stats.TotalItems > 0)
	assert.Equal(t, stats.Stats.ByType[model.TypeProject], 5)
	assert.Assert(t, is.Len(stats.Warnings, 0))
}

func TestStatsCmd_Locale(t *testing.T) {
	out, err := runCmd(t, "stats", "--locale", "vi-VN")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "Locale: vi"))
}

func TestProjectsCmd_Filters(t *testing.T) {
	out, err := runCmd(t, "projects", "--tech", "Python", "--json")
	assert.NilError(t, err)

	var projects []model.Project
	assert.NilError(t, json.Unmarshal([]byte(out), &projects))
	assert.Assert(t, is.Len(projects, 2))

	out, err = runCmd(t, "projects", "--status", "archived")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "1 of 5 projects (1 active filters: status=archived)"))
}

func TestProjectsCmd_SaveAndReset(t *testing.T) {
	dir := t.TempDir()

	_, err := runCmdIn(t, dir, "projects", "--category", "AI/ML", "--save")
	assert.NilError(t, err)
	_, err = os.Stat(filepath.Join(dir, "filters.json"))
	assert.NilError(t, err)

	// Saved selection applies without flags
	out, err := runCmdIn(t, dir, "projects")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "2 of 5 projects"))

	// Repeating a saved category keeps it selected
	out, err = runCmdIn(t, dir, "projects", "--category", "AI/ML")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "2 of 5 projects"))

	_, err = runCmdIn(t, dir, "projects", "--reset", "--save")
	assert.NilError(t, err)
	out, err = runCmdIn(t, dir, "projects")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "5 of 5 projects (0 active filters: no filters)"))
}

func TestProjectsCmd_ResetRestoresContentOrder(t *testing.T) {
	unsorted, err := runCmd(t, "projects", "--json")
	assert.NilError(t, err)

	dir := t.TempDir()
	_, err = runCmdIn(t, dir, "projects", "--sort", "title", "--save")
	assert.NilError(t, err)
	sorted, err := runCmdIn(t, dir, "projects", "--json")
	assert.NilError(t, err)
	assert.Assert(t, sorted != unsorted, "expected title sort to reorder the embedded projects")

	out, err := runCmdIn(t, dir, "projects", "--reset", "--json")
	assert.NilError(t, err)
	assert.Equal(t, out, unsorted)
}

func TestProjectsCmd_SQLiteState(t *testing.T) {
	dir := t.TempDir()
	dbArgs := []string{"--state-file", filepath.Join(dir, "folio.db")}

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"projects", "--tech", "Kubernetes", "--save", "--config", filepath.Join(dir, "config.yaml")}, dbArgs...))
	_, err := execute(cmd)
	assert.NilError(t, err)

	var out bytes.Buffer
	cmd = NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(append([]string{"projects", "--config", filepath.Join(dir, "config.yaml")}, dbArgs...))
	_, err = execute(cmd)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out.String(), "1 of 5 projects"))
}

func TestProjectsCmd_InvalidStatus(t *testing.T) {
	_, err := runCmd(t, "projects", "--status", "paused")
	assert.ErrorContains(t, err, "invalid status")
}

func TestProjectsCmd_Facets(t *testing.T) {
	out, err := runCmd(t, "projects", "--facets")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "Categories: AI/ML, Cloud Infrastructure, DevOps"))
}

func TestCertsCmd(t *testing.T) {
	out, err := runCmd(t, "certs", "--category", "technical")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "all (5)  technical (3)  professional (1)  language (1)  other (0)"))
	assert.Assert(t, is.Contains(out, "Certified Kubernetes Administrator"))
	assert.Assert(t, !strings.Contains(out, "Scrum"))

	_, err = runCmd(t, "certs", "--category", "hobby")
	assert.ErrorContains(t, err, "unknown certification category")
}

func TestSitemapCmd(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "public", "sitemap.xml")

	_, err := runCmdIn(t, dir, "sitemap", "-o", output, "--site-url", "https://portfolio.example")
	assert.NilError(t, err)

	data, err := os.ReadFile(output)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(string(data), "<loc>https://portfolio.example/blog/kubernetes-cost-optimization</loc>"))
}

func TestContentDirFlag(t *testing.T) {
	contentDir := t.TempDir()
	assert.NilError(t, os.MkdirAll(filepath.Join(contentDir, "en"), 0755))
	assert.NilError(t, os.WriteFile(filepath.Join(contentDir, "en", "projects.yaml"), []byte(`
items:
  - id: only
    title: Only Project
    status: ongoing
`), 0644))

	out, err := runCmd(t, "stats", "--content-dir", contentDir, "--json")
	assert.NilError(t, err)

	var stats statsOutput
	assert.NilError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, stats.Stats.TotalItems, 1)
	// blog, resume and skills are missing and reported, not fatal
	assert.Assert(t, len(stats.Warnings) >= 3)
}

func TestContentDirFlag_Missing(t *testing.T) {
	_, err := runCmd(t, "stats", "--content-dir", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, "content dir")
}
