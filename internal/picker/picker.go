// Package picker is an interactive live-search prompt over the portfolio
// index.
package picker

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/folio/internal/model"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Width(12)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// Searcher is the part of the search engine the picker needs.
type Searcher interface {
	Search(q model.SearchQuery) []model.SearchResult
	Suggestions(text string, limit int) []string
}

// KeyMap defines the picker key bindings. Plain letters go to the query,
// so actions use control keys.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextType key.Binding
	Select   key.Binding
	CopyURL  key.Binding
	Complete key.Binding
	Cancel   key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+k", "ctrl+p"),
			key.WithHelp("↑/ctrl+k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+j", "ctrl+n"),
			key.WithHelp("↓/ctrl+j", "down"),
		),
		NextType: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "type"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		CopyURL: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy url"),
		),
		Complete: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "complete"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Picker is a live search TUI: every edit of the query reruns the search.
type Picker struct {
	searcher    Searcher
	keys        KeyMap
	input       textinput.Model
	results     []model.SearchResult
	suggestions []string
	typeFilter  int // index into typeCycle
	cursor      int
	selected    bool
	cancelled   bool
	status      string
	copy        func(string) error
	width       int
	height      int
}

// typeCycle is the order tab steps through; "" means every type.
var typeCycle = append([]model.ItemType{""}, model.AllItemTypes()...)

// New creates a Picker over searcher, pre-filled with query.
func New(searcher Searcher, query string) Picker {
	input := textinput.New()
	input.Placeholder = "Search projects, posts, experience, skills..."
	input.CharLimit = 100
	input.Width = 60
	input.SetValue(query)
	input.Focus()

	p := Picker{
		searcher: searcher,
		keys:     DefaultKeyMap(),
		input:    input,
		copy:     clipboard.WriteAll,
		width:    80,
		height:   24,
	}
	p.refresh()
	return p
}

// WithClipboard replaces the clipboard writer.
func (p Picker) WithClipboard(write func(string) error) Picker {
	p.copy = write
	return p
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Cancel):
			p.cancelled = true
			return p, tea.Quit

		case key.Matches(msg, p.keys.Select):
			if len(p.results) > 0 {
				p.selected = true
				return p, tea.Quit
			}
			return p, nil

		case key.Matches(msg, p.keys.Down):
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}
			return p, nil

		case key.Matches(msg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil

		case key.Matches(msg, p.keys.NextType):
			p.typeFilter = (p.typeFilter + 1) % len(typeCycle)
			p.refresh()
			return p, nil

		case key.Matches(msg, p.keys.CopyURL):
			p.copyURL()
			return p, nil

		case key.Matches(msg, p.keys.Complete):
			if len(p.suggestions) > 0 {
				p.input.SetValue(p.suggestions[0])
				p.input.CursorEnd()
				p.refresh()
			}
			return p, nil
		}
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.refresh()
	}
	return p, cmd
}

// refresh reruns the search for the current query and type filter.
func (p *Picker) refresh() {
	query := model.SearchQuery{Query: p.input.Value()}
	if t := typeCycle[p.typeFilter]; t != "" {
		query.Filters = &model.SearchFilters{Types: []model.ItemType{t}}
	}
	p.results = p.searcher.Search(query)
	p.suggestions = p.searcher.Suggestions(p.input.Value(), 0)
	p.cursor = 0
	p.status = ""
}

func (p *Picker) copyURL() {
	result := p.current()
	if result == nil {
		return
	}
	if err := p.copy(result.URL); err != nil {
		p.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	p.status = "copied " + result.URL
}

func (p Picker) current() *model.SearchResult {
	if p.cursor < 0 || p.cursor >= len(p.results) {
		return nil
	}
	return &p.results[p.cursor]
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	scope := "all"
	if t := typeCycle[p.typeFilter]; t != "" {
		scope = string(t)
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("Search [%s] (%d results)", scope, len(p.results))))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n")
	if len(p.suggestions) > 0 {
		b.WriteString(dimStyle.Render("  " + strings.Join(p.suggestions, " · ")))
	}
	b.WriteString("\n\n")

	// Each result takes two lines; leave room for header and footer
	maxResults := max((p.height-8)/2, 1)
	// cursor and type column take 14 cells
	textWidth := max(p.width-14, 10)
	for i, result := range p.results {
		if i >= maxResults {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more\n", len(p.results)-maxResults)))
			break
		}
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		fmt.Fprintf(&b, "%s%s%s\n", cursor, typeStyle.Render(string(result.Type)), style.Render(truncate(result.Title, textWidth)))
		fmt.Fprintf(&b, "  %s%s\n", strings.Repeat(" ", 12), urlStyle.Render(truncate(result.URL, textWidth)))
	}

	b.WriteString("\n")
	if p.status != "" {
		b.WriteString(dimStyle.Render(p.status))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(p.helpLine()))

	return b.String()
}

func (p Picker) helpLine() string {
	bindings := []key.Binding{p.keys.Down, p.keys.Up, p.keys.NextType, p.keys.Complete, p.keys.CopyURL, p.keys.Select, p.keys.Cancel}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

// Query returns the current query text.
func (p Picker) Query() string {
	return p.input.Value()
}

// Results returns the current results.
func (p Picker) Results() []model.SearchResult {
	return p.results
}

// Selected returns the chosen result, or nil if cancelled.
func (p Picker) Selected() *model.SearchResult {
	if p.cancelled || !p.selected {
		return nil
	}
	return p.current()
}

// Cancelled returns true if the user cancelled.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
