package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/nikbrunner/folio/internal/model"
)

func TestParseItemType(t *testing.T) {
	tests := []struct {
		input   string
		want    model.ItemType
		wantErr bool
	}{
		{input: "project", want: model.TypeProject},
		{input: "Blog", want: model.TypeBlog},
		{input: " skill ", want: model.TypeSkill},
		{input: "experience", want: model.TypeExperience},
		{input: "bookmark", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := model.ParseItemType(tt.input)
			if tt.wantErr {
				if !errors.Is(err, model.ErrUnknownItemType) {
					t.Fatalf("expected ErrUnknownItemType, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewSearchStats_AllTypesPresent(t *testing.T) {
	items := []model.SearchableItem{
		{ID: "project-0", Type: model.TypeProject},
		{ID: "project-1", Type: model.TypeProject},
		{ID: "skill-cloud-0", Type: model.TypeSkill},
	}

	stats := model.NewSearchStats(items)

	if stats.TotalItems != 3 {
		t.Errorf("expected 3 items, got %d", stats.TotalItems)
	}
	if stats.ByType[model.TypeProject] != 2 {
		t.Errorf("expected 2 projects, got %d", stats.ByType[model.TypeProject])
	}
	if stats.ByType[model.TypeSkill] != 1 {
		t.Errorf("expected 1 skill, got %d", stats.ByType[model.TypeSkill])
	}
	for _, typ := range model.AllItemTypes() {
		if _, ok := stats.ByType[typ]; !ok {
			t.Errorf("expected %q in ByType", typ)
		}
	}
}

func TestBlogPost_Localized(t *testing.T) {
	post := model.BlogPost{
		ID:       "1",
		Slug:     "serverless",
		Title:    "Serverless on AWS",
		Excerpt:  "Best practices",
		Content:  "Body",
		Language: "en",
		Translations: map[string]model.BlogTranslation{
			"vi": {Title: "Serverless trên AWS"},
		},
	}

	vi := post.Localized("vi")
	if vi.Title != "Serverless trên AWS" {
		t.Errorf("expected translated title, got %q", vi.Title)
	}
	if vi.Excerpt != "Best practices" {
		t.Errorf("expected untranslated excerpt to be kept, got %q", vi.Excerpt)
	}

	// Unknown language and primary language leave the post untouched
	if got := post.Localized("fr"); got.Title != post.Title {
		t.Errorf("expected original title for missing translation, got %q", got.Title)
	}
	if got := post.Localized("en"); got.Title != post.Title {
		t.Errorf("expected original title for primary language, got %q", got.Title)
	}
	if post.Title != "Serverless on AWS" {
		t.Error("Localized must not mutate the receiver")
	}
}

func TestProjectStatus_Valid(t *testing.T) {
	for _, s := range []model.ProjectStatus{model.ProjectCompleted, model.ProjectOngoing, model.ProjectArchived} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if model.ProjectStatus("paused").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}

func TestStableID_Deterministic(t *testing.T) {
	a := model.StableID("blog", "aws-serverless")
	b := model.StableID("blog", "aws-serverless")
	c := model.StableID("blog", "kubernetes-basics")

	if a != b {
		t.Errorf("expected identical ids, got %q and %q", a, b)
	}
	if a == c {
		t.Error("expected different names to produce different ids")
	}
	if len(a) != 36 {
		t.Errorf("expected UUID string, got %q", a)
	}
}

func TestSearchResult_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(model.SearchResult{ID: "blog-1", Type: model.TypeBlog, Score: 0.25})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if raw["type"] != "blog" {
		t.Errorf("expected type field 'blog', got %v", raw["type"])
	}
	if _, ok := raw["tags"]; ok {
		t.Error("expected empty tags to be omitted")
	}
}
