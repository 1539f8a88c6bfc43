package model

// BlogTranslation overrides a post's text for one language.
type BlogTranslation struct {
	Title   string `json:"title,omitempty" yaml:"title"`
	Excerpt string `json:"excerpt,omitempty" yaml:"excerpt"`
	Content string `json:"content,omitempty" yaml:"content"`
}

// BlogPost is a published article.
type BlogPost struct {
	ID           string                     `json:"id" yaml:"id"`
	Slug         string                     `json:"slug" yaml:"slug"`
	Title        string                     `json:"title" yaml:"title"`
	Excerpt      string                     `json:"excerpt" yaml:"excerpt"`
	Content      string                     `json:"content" yaml:"-"`
	Category     string                     `json:"category" yaml:"category"`
	Tags         []string                   `json:"tags" yaml:"tags"`
	PublishedAt  string                     `json:"publishedAt" yaml:"publishedAt"`
	Language     string                     `json:"language" yaml:"language"`
	Featured     bool                       `json:"featured,omitempty" yaml:"featured"`
	Translations map[string]BlogTranslation `json:"translations,omitempty" yaml:"translations"`
}

// Localized returns a copy of the post with the translation for lang
// applied. Empty translated fields keep the original text.
func (p BlogPost) Localized(lang string) BlogPost {
	if lang == "" || lang == p.Language {
		return p
	}
	tr, ok := p.Translations[lang]
	if !ok {
		return p
	}
	if tr.Title != "" {
		p.Title = tr.Title
	}
	if tr.Excerpt != "" {
		p.Excerpt = tr.Excerpt
	}
	if tr.Content != "" {
		p.Content = tr.Content
	}
	return p
}
