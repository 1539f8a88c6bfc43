package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/nikbrunner/folio/internal/model"
)

const blogDir = "blog"

// BlogPosts returns all posts under blog/, localized to the library locale
// and ordered newest first. Markdown posts carry YAML front matter; HTML
// posts carry <meta> tags.
func (l *Library) BlogPosts() ([]model.BlogPost, error) {
	entries, err := fs.ReadDir(l.fsys, blogDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingContent, blogDir)
		}
		return nil, fmt.Errorf("read %s: %w", blogDir, err)
	}

	posts := []model.BlogPost{}
	seen := make(map[string]bool)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := path.Join(blogDir, e.Name())

		var post model.BlogPost
		switch strings.ToLower(path.Ext(name)) {
		case ".md", ".markdown":
			post, err = l.readMarkdownPost(name)
		case ".html", ".htm":
			post, err = l.readHTMLPost(name)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}

		if post.Slug == "" {
			post.Slug = strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		}
		if post.Title == "" {
			return nil, fmt.Errorf("%w: %s: missing title", ErrInvalidContent, name)
		}
		if post.ID == "" {
			post.ID = model.StableID(blogDir, post.Slug)
		}
		if seen[post.ID] {
			return nil, fmt.Errorf("%w: %s: duplicate id %q", ErrInvalidContent, name, post.ID)
		}
		seen[post.ID] = true
		if post.Language == "" {
			post.Language = DefaultLocale
		}
		if post.Tags == nil {
			post.Tags = []string{}
		}

		posts = append(posts, post.Localized(l.locale))
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt > posts[j].PublishedAt
	})
	return posts, nil
}

// readMarkdownPost parses front matter metadata and keeps the body as content.
func (l *Library) readMarkdownPost(name string) (model.BlogPost, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("read %s: %w", name, err)
	}

	var post model.BlogPost
	body, err := frontmatter.Parse(bytes.NewReader(data), &post)
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("%w: %s: %v", ErrInvalidContent, name, err)
	}
	post.Content = strings.TrimSpace(string(body))
	return post, nil
}

// readHTMLPost extracts metadata and visible text from an HTML document.
func (l *Library) readHTMLPost(name string) (model.BlogPost, error) {
	f, err := l.fsys.Open(name)
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("read %s: %w", name, err)
	}
	defer f.Close()

	post, err := ParseHTMLPost(f)
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("%w: %s: %v", ErrInvalidContent, name, err)
	}
	return post, nil
}
