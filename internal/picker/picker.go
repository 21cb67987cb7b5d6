// Package picker is a one-shot list for choosing among quick-open matches.
package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/af/internal/search"
	"github.com/nikbrunner/af/internal/tui/layout"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5F8787")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E78A4E")).
			Bold(true)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5F8787")).
			Bold(true).
			MarginBottom(1)
)

// Picker is a simple TUI for selecting from search results.
type Picker struct {
	title     string
	results   []search.SearchResult
	query     string
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a new Picker with the given search results.
func New(title string, results []search.SearchResult, query string) Picker {
	return Picker{
		title:   title,
		results: results,
		query:   query,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			p.cancelled = true
			return p, tea.Quit
		case tea.KeyEnter:
			p.selected = len(p.results) > 0
			p.cancelled = !p.selected
			return p, tea.Quit
		case tea.KeyDown:
			p.move(1)
			return p, nil
		case tea.KeyUp:
			p.move(-1)
			return p, nil
		}

		if msg.Type == tea.KeyRunes {
			switch string(msg.Runes) {
			case "j":
				p.move(1)
			case "k":
				p.move(-1)
			case "g":
				p.cursor = 0
			case "G":
				p.cursor = max(len(p.results)-1, 0)
			case "q":
				p.cancelled = true
				return p, tea.Quit
			}
		}
	}

	return p, nil
}

func (p *Picker) move(delta int) {
	next := p.cursor + delta
	if next >= 0 && next < len(p.results) {
		p.cursor = next
	}
}

// View implements tea.Model. Only the rows around the cursor that fit the
// terminal are drawn; each result takes two lines.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s: %s (%d matches)", p.title, p.query, len(p.results))))
	b.WriteString("\n\n")

	visible := max((p.height-5)/2, 1)
	offset := layout.CalculateViewportOffset(p.cursor, len(p.results), visible)
	end := min(offset+visible, len(p.results))
	text := layout.DefaultConfig().Text

	for i := offset; i < end; i++ {
		result := p.results[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		name := highlight(result.Entry.Name, result.MatchedIndexes, style)
		path := layout.TruncatePathFromLeft(result.Entry.Path, max(p.width-4, 10), text)
		fmt.Fprintf(&b, "%s%s\n", cursor, name)
		fmt.Fprintf(&b, "   %s\n", pathStyle.Render(path))
	}

	b.WriteString("\n")
	b.WriteString(pathStyle.Render("j/k: move  Enter: open  q/Esc: cancel"))

	return b.String()
}

// highlight renders name with the fuzzy-matched runes emphasized.
func highlight(name string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(name)
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}
	var b strings.Builder
	for i, r := range name {
		if hit[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// Selected returns the chosen entry; ok is false if the user cancelled.
func (p Picker) Selected() (search.Entry, bool) {
	if p.cancelled || !p.selected || p.cursor >= len(p.results) {
		return search.Entry{}, false
	}
	return p.results[p.cursor].Entry, true
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
