// Package content loads portfolio content (projects, skills, résumé,
// certifications, blog posts) from a file system into typed, validated
// model values.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingContent = errors.New("content not found")
	ErrInvalidContent = errors.New("invalid content")
)

// DefaultLocale is used when the requested locale is not available.
const DefaultLocale = "en"

// Library reads content for a single resolved locale.
type Library struct {
	fsys   fs.FS
	locale string
}

// New creates a Library over fsys. The requested locale is matched against
// the locale directories present in fsys; unknown locales fall back to
// DefaultLocale.
func New(fsys fs.FS, locale string) *Library {
	return &Library{
		fsys:   fsys,
		locale: resolveLocale(fsys, locale),
	}
}

// Locale returns the resolved locale.
func (l *Library) Locale() string {
	return l.locale
}

// Locales returns the locale directories available in fsys, default first.
func Locales(fsys fs.FS) []string {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return []string{DefaultLocale}
	}

	locales := []string{DefaultLocale}
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || name == DefaultLocale || name == blogDir {
			continue
		}
		if _, err := language.Parse(name); err != nil {
			continue
		}
		locales = append(locales, name)
	}
	sort.Strings(locales[1:])
	return locales
}

// resolveLocale picks the best available locale for the requested one.
func resolveLocale(fsys fs.FS, requested string) string {
	available := Locales(fsys)
	tags := make([]language.Tag, len(available))
	for i, name := range available {
		tags[i] = language.Make(name)
	}

	matcher := language.NewMatcher(tags)
	_, idx, confidence := matcher.Match(language.Make(requested))
	if confidence == language.No {
		return DefaultLocale
	}
	return available[idx]
}

// readYAML decodes a YAML file into v.
func (l *Library) readYAML(name string, v any) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingContent, name)
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidContent, name, err)
	}
	return nil
}

// readLocalizedYAML reads <locale>/name, falling back to the default locale.
func (l *Library) readLocalizedYAML(name string, v any) error {
	err := l.readYAML(path.Join(l.locale, name), v)
	if errors.Is(err, ErrMissingContent) && l.locale != DefaultLocale {
		return l.readYAML(path.Join(DefaultLocale, name), v)
	}
	return err
}
