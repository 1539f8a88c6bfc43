package content

import (
	"errors"
	"fmt"

	"github.com/nikbrunner/folio/internal/model"
)

type skillsFile struct {
	Categories []model.SkillCategory `yaml:"categories"`
}

type skillNamesFile struct {
	Categories map[string]string `yaml:"categories"`
}

// SkillCategories returns skill categories with localized names. A category
// without a translation uses its key as name.
func (l *Library) SkillCategories() ([]model.SkillCategory, error) {
	var file skillsFile
	if err := l.readYAML("skills.yaml", &file); err != nil {
		return nil, err
	}

	var names skillNamesFile
	if err := l.readLocalizedYAML("skills.yaml", &names); err != nil && !errors.Is(err, ErrMissingContent) {
		return nil, err
	}

	for i := range file.Categories {
		c := &file.Categories[i]
		if c.Key == "" {
			return nil, fmt.Errorf("%w: skill category %d: missing key", ErrInvalidContent, i)
		}
		c.Name = c.Key
		if name, ok := names.Categories[c.Key]; ok && name != "" {
			c.Name = name
		}
	}
	return file.Categories, nil
}
