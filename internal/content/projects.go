package content

import (
	"fmt"

	"github.com/nikbrunner/folio/internal/model"
)

type projectsFile struct {
	Items []model.Project `yaml:"items"`
}

// Projects returns the localized project list in file order.
func (l *Library) Projects() ([]model.Project, error) {
	var file projectsFile
	if err := l.readLocalizedYAML("projects.yaml", &file); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(file.Items))
	for i := range file.Items {
		p := &file.Items[i]
		if err := validateProject(i, p); err != nil {
			return nil, err
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: project %d: duplicate id %q", ErrInvalidContent, i, p.ID)
		}
		seen[p.ID] = true
		if p.Tags == nil {
			p.Tags = []string{}
		}
		if p.Technologies == nil {
			p.Technologies = []string{}
		}
	}
	return file.Items, nil
}

func validateProject(i int, p *model.Project) error {
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: project %d: missing id", ErrInvalidContent, i)
	case p.Title == "":
		return fmt.Errorf("%w: project %q: missing title", ErrInvalidContent, p.ID)
	case !p.Status.Valid():
		return fmt.Errorf("%w: project %q: unknown status %q", ErrInvalidContent, p.ID, p.Status)
	}
	return nil
}
