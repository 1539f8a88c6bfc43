package indexer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/nikbrunner/folio/internal/content"
	"github.com/nikbrunner/folio/internal/indexer"
	"github.com/nikbrunner/folio/internal/model"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeProvider serves fixed content and optional per-source errors.
type fakeProvider struct {
	projects    []model.Project
	posts       []model.BlogPost
	experience  []model.Experience
	skills      []model.SkillCategory
	projectsErr error
	postsErr    error
	panicSkills bool
}

func (f fakeProvider) Projects() ([]model.Project, error)   { return f.projects, f.projectsErr }
func (f fakeProvider) BlogPosts() ([]model.BlogPost, error) { return f.posts, f.postsErr }
func (f fakeProvider) Experience() ([]model.Experience, error) {
	return f.experience, nil
}
func (f fakeProvider) SkillCategories() ([]model.SkillCategory, error) {
	if f.panicSkills {
		panic("malformed skills")
	}
	return f.skills, nil
}

func sampleProvider() fakeProvider {
	return fakeProvider{
		projects: []model.Project{
			{ID: "a", Title: "AWS Lambda Guide", Description: "Serverless", Tags: []string{"aws", "serverless"}},
			{ID: "b", Title: "Kubernetes Basics", Description: "Containers", Tags: []string{"k8s"}},
		},
		posts: []model.BlogPost{
			{ID: "post-1", Slug: "hello", Title: "Hello", Excerpt: "First", Tags: []string{"intro"}, Content: "Body"},
		},
		experience: []model.Experience{
			{Title: "Architect", Company: "ACME", Period: "2020 - Present", Responsibilities: []string{"Designed", "Built"}},
		},
		skills: []model.SkillCategory{
			{Key: "cloud", Name: "Cloud Platforms", Skills: []string{"AWS", "GCP"}},
		},
	}
}

func TestBuild_OrderAndShape(t *testing.T) {
	ix := indexer.New(quietLogger(), indexer.DefaultSources(sampleProvider())...)
	items := ix.Build(context.Background())

	wantIDs := []string{"project-0", "project-1", "post-1", "experience-0", "skill-cloud-0", "skill-cloud-1"}
	if len(items) != len(wantIDs) {
		t.Fatalf("expected %d items, got %d", len(wantIDs), len(items))
	}
	for i, id := range wantIDs {
		if items[i].ID != id {
			t.Errorf("item %d: expected id %q, got %q", i, id, items[i].ID)
		}
	}

	exp := items[3]
	if exp.Title != "Architect at ACME" {
		t.Errorf("unexpected experience title %q", exp.Title)
	}
	if exp.Excerpt != "2020 - Present" || exp.Content != "Designed Built" {
		t.Errorf("unexpected experience excerpt/content: %q / %q", exp.Excerpt, exp.Content)
	}

	skill := items[4]
	if skill.Excerpt != "Cloud Platforms skill" {
		t.Errorf("unexpected skill excerpt %q", skill.Excerpt)
	}
	if len(skill.Tags) != 2 || skill.Tags[0] != "Cloud Platforms" || skill.Tags[1] != "AWS" {
		t.Errorf("unexpected skill tags %v", skill.Tags)
	}

	if items[2].URL != "/blog/hello" {
		t.Errorf("unexpected blog url %q", items[2].URL)
	}
	if items[0].URL != "/#projects" || items[0].Content != "Serverless" {
		t.Errorf("unexpected project item %+v", items[0])
	}
	if len(ix.Warnings()) != 0 {
		t.Errorf("expected no warnings, got %v", ix.Warnings())
	}
}

func TestBuild_FailingSourceContributesNothing(t *testing.T) {
	p := sampleProvider()
	p.projectsErr = errors.New("translation key missing")
	p.panicSkills = true

	ix := indexer.New(quietLogger(), indexer.DefaultSources(p)...)
	items := ix.Build(context.Background())

	for _, item := range items {
		if item.Type == model.TypeProject || item.Type == model.TypeSkill {
			t.Errorf("expected no %s items, got %q", item.Type, item.ID)
		}
	}
	if len(items) != 2 {
		t.Errorf("expected blog + experience items only, got %d", len(items))
	}

	warnings := ix.Warnings()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(warnings))
	}
	if warnings[0].Source != "projects" || warnings[1].Source != "skills" {
		t.Errorf("unexpected warning sources: %v", warnings)
	}
}

func TestBuild_UniqueIDs(t *testing.T) {
	dup := indexer.StaticSource{Label: "extra", List: []model.SearchableItem{
		{ID: "project-0", Type: model.TypeProject, Title: "Shadow"},
		{ID: "extra-1", Type: model.TypeBlog, Title: "Extra"},
	}}
	sources := append(indexer.DefaultSources(sampleProvider()), dup)

	ix := indexer.New(quietLogger(), sources...)
	items := ix.Build(context.Background())

	seen := make(map[string]bool)
	for _, item := range items {
		if seen[item.ID] {
			t.Fatalf("duplicate id %q in build", item.ID)
		}
		seen[item.ID] = true
	}
	if !seen["extra-1"] {
		t.Error("expected non-duplicate extra item to be kept")
	}
	if len(ix.Warnings()) != 1 {
		t.Errorf("expected 1 duplicate warning, got %d", len(ix.Warnings()))
	}
}

func TestBuild_WarningsResetBetweenBuilds(t *testing.T) {
	p := sampleProvider()
	p.postsErr = errors.New("boom")
	ix := indexer.New(quietLogger(), indexer.DefaultSources(p)...)

	ix.Build(context.Background())
	ix.Build(context.Background())

	if len(ix.Warnings()) != 1 {
		t.Errorf("expected warnings of last build only, got %d", len(ix.Warnings()))
	}
}

func TestBuild_EmbeddedContentHasUniqueIDs(t *testing.T) {
	lib := content.New(content.Embedded(), "en")
	ix := indexer.New(quietLogger(), indexer.DefaultSources(lib)...)
	items := ix.Build(context.Background())

	if len(items) == 0 {
		t.Fatal("expected items from embedded content")
	}
	if len(ix.Warnings()) != 0 {
		t.Errorf("expected embedded content to load cleanly, got %v", ix.Warnings())
	}

	seen := make(map[string]bool)
	for _, item := range items {
		if seen[item.ID] {
			t.Fatalf("duplicate id %q", item.ID)
		}
		seen[item.ID] = true
	}
}
