package indexer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nikbrunner/folio/internal/model"
)

// Provider is the typed content a default index is built from.
// *content.Library implements it.
type Provider interface {
	Projects() ([]model.Project, error)
	BlogPosts() ([]model.BlogPost, error)
	Experience() ([]model.Experience, error)
	SkillCategories() ([]model.SkillCategory, error)
}

// DefaultSources returns the standard sources in indexing order:
// projects, blog, experience, skills.
func DefaultSources(p Provider) []Source {
	return []Source{
		ProjectSource{Provider: p},
		BlogSource{Provider: p},
		ExperienceSource{Provider: p},
		SkillSource{Provider: p},
	}
}

// ProjectSource indexes portfolio projects.
type ProjectSource struct{ Provider Provider }

func (ProjectSource) Name() string { return "projects" }

func (s ProjectSource) Items(context.Context) ([]model.SearchableItem, error) {
	projects, err := s.Provider.Projects()
	if err != nil {
		return nil, err
	}

	items := make([]model.SearchableItem, 0, len(projects))
	for i, p := range projects {
		items = append(items, model.SearchableItem{
			ID:      fmt.Sprintf("project-%d", i),
			Type:    model.TypeProject,
			Title:   p.Title,
			Excerpt: p.Description,
			URL:     "/#projects",
			Tags:    p.Tags,
			Content: p.Description,
		})
	}
	return items, nil
}

// BlogSource indexes blog posts.
type BlogSource struct{ Provider Provider }

func (BlogSource) Name() string { return "blog" }

func (s BlogSource) Items(context.Context) ([]model.SearchableItem, error) {
	posts, err := s.Provider.BlogPosts()
	if err != nil {
		return nil, err
	}

	items := make([]model.SearchableItem, 0, len(posts))
	for _, post := range posts {
		items = append(items, model.SearchableItem{
			ID:      post.ID,
			Type:    model.TypeBlog,
			Title:   post.Title,
			Excerpt: post.Excerpt,
			URL:     "/blog/" + post.Slug,
			Tags:    post.Tags,
			Content: post.Content,
		})
	}
	return items, nil
}

// ExperienceSource indexes résumé entries.
type ExperienceSource struct{ Provider Provider }

func (ExperienceSource) Name() string { return "experience" }

func (s ExperienceSource) Items(context.Context) ([]model.SearchableItem, error) {
	entries, err := s.Provider.Experience()
	if err != nil {
		return nil, err
	}

	items := make([]model.SearchableItem, 0, len(entries))
	for i, e := range entries {
		items = append(items, model.SearchableItem{
			ID:      fmt.Sprintf("experience-%d", i),
			Type:    model.TypeExperience,
			Title:   fmt.Sprintf("%s at %s", e.Title, e.Company),
			Excerpt: e.Period,
			URL:     "/#experience",
			Content: strings.Join(e.Responsibilities, " "),
		})
	}
	return items, nil
}

// SkillSource indexes one item per skill, tagged with its category.
type SkillSource struct{ Provider Provider }

func (SkillSource) Name() string { return "skills" }

func (s SkillSource) Items(context.Context) ([]model.SearchableItem, error) {
	categories, err := s.Provider.SkillCategories()
	if err != nil {
		return nil, err
	}

	var items []model.SearchableItem
	for _, c := range categories {
		for i, skill := range c.Skills {
			items = append(items, model.SearchableItem{
				ID:      fmt.Sprintf("skill-%s-%d", c.Key, i),
				Type:    model.TypeSkill,
				Title:   skill,
				Excerpt: c.Name + " skill",
				URL:     "/#skills",
				Tags:    []string{c.Name, skill},
			})
		}
	}
	return items, nil
}

// StaticSource serves a fixed item list. Useful for tests and for content
// that does not come from a Provider.
type StaticSource struct {
	Label string
	List  []model.SearchableItem
}

func (s StaticSource) Name() string { return s.Label }

func (s StaticSource) Items(context.Context) ([]model.SearchableItem, error) {
	return s.List, nil
}
