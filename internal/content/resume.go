package content

import (
	"fmt"

	"github.com/nikbrunner/folio/internal/model"
)

type resumeFile struct {
	Experience []model.Experience `yaml:"experience"`
}

// Experience returns the résumé work history, most recent first.
func (l *Library) Experience() ([]model.Experience, error) {
	var file resumeFile
	if err := l.readYAML("resume.yaml", &file); err != nil {
		return nil, err
	}

	for i, e := range file.Experience {
		if e.Title == "" || e.Company == "" {
			return nil, fmt.Errorf("%w: experience %d: title and company are required", ErrInvalidContent, i)
		}
	}
	return file.Experience, nil
}
