package model

// ProjectStatus is the lifecycle state of a portfolio project.
type ProjectStatus string

const (
	ProjectCompleted ProjectStatus = "completed"
	ProjectOngoing   ProjectStatus = "ongoing"
	ProjectArchived  ProjectStatus = "archived"
)

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectCompleted, ProjectOngoing, ProjectArchived:
		return true
	}
	return false
}

// Project is a portfolio project as shown in the projects section.
type Project struct {
	ID           string        `json:"id" yaml:"id"`
	Title        string        `json:"title" yaml:"title"`
	Description  string        `json:"description" yaml:"description"`
	Icon         string        `json:"icon,omitempty" yaml:"icon"`
	Tags         []string      `json:"tags" yaml:"tags"`
	Category     string        `json:"category" yaml:"category"`
	Status       ProjectStatus `json:"status" yaml:"status"`
	CompletedAt  string        `json:"completedAt,omitempty" yaml:"completedAt"` // YYYY-MM-DD
	Technologies []string      `json:"technologies" yaml:"technologies"`
	GitHub       string        `json:"github,omitempty" yaml:"github"`
	Demo         string        `json:"demo,omitempty" yaml:"demo"`
	Featured     bool          `json:"featured,omitempty" yaml:"featured"`
}
