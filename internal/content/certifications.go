package content

import (
	"fmt"

	"github.com/nikbrunner/folio/internal/model"
)

type certificationsFile struct {
	Certifications []model.Certification `yaml:"certifications"`
}

// Certifications returns all certifications in file order.
func (l *Library) Certifications() ([]model.Certification, error) {
	var file certificationsFile
	if err := l.readYAML("certifications.yaml", &file); err != nil {
		return nil, err
	}

	for i, c := range file.Certifications {
		if c.ID == "" || c.Name == "" {
			return nil, fmt.Errorf("%w: certification %d: id and name are required", ErrInvalidContent, i)
		}
		if !c.Category.Valid() {
			return nil, fmt.Errorf("%w: certification %q: unknown category %q", ErrInvalidContent, c.ID, c.Category)
		}
	}
	return file.Certifications, nil
}
