package model

// Experience is a résumé work history entry.
type Experience struct {
	Title            string   `json:"title" yaml:"title"`
	Company          string   `json:"company" yaml:"company"`
	Location         string   `json:"location,omitempty" yaml:"location"`
	Period           string   `json:"period" yaml:"period"`
	Responsibilities []string `json:"responsibilities" yaml:"responsibilities"`
}

// SkillCategory groups skills under a translated heading.
// Key is stable across locales; Name is the localized label.
type SkillCategory struct {
	Key    string   `json:"key" yaml:"key"`
	Name   string   `json:"name" yaml:"-"`
	Skills []string `json:"skills" yaml:"skills"`
}
