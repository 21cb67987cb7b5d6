package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/af/internal/model"
	"github.com/nikbrunner/af/internal/tui/layout"
)

// renderView renders the dialog for the current mode.
func (a App) renderView() string {
	switch a.mode {
	case ModeHelp:
		return a.renderHelpOverlay()
	case ModeAdd, ModeRename, ModeConfirm:
		return a.renderModal()
	}

	listHeight := layout.CalculateListHeight(a.height, a.layoutConfig.List)
	pane := a.styles.Pane.
		Width(max(a.width-6, 1)).
		Render(a.renderList(listHeight))

	content := lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		a.renderFilterLine(),
		a.renderCandidate(),
		pane,
		a.renderHelpBar(),
	)
	return a.styles.App.Render(content)
}

// renderHeader renders the manager title followed by the tabs.
func (a App) renderHeader() string {
	tabs := []Tab{TabSaved, TabRecent}
	if a.session.Kind() == model.KindFolder {
		tabs = append(tabs, TabAutoOpen)
	}

	parts := []string{a.styles.Title.Render(a.session.Kind().Title()), " "}
	for _, t := range tabs {
		if t == a.tab {
			parts = append(parts, a.styles.TabActive.Render(t.String()))
		} else {
			parts = append(parts, a.styles.Tab.Render(t.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderFilterLine shows the filter input while typing, or the active query.
func (a App) renderFilterLine() string {
	if a.mode == ModeFilter {
		return "/ " + a.input.Filter.View()
	}
	if a.input.FilterQuery != "" {
		return a.styles.Path.Render("filter: " + a.input.FilterQuery)
	}
	return ""
}

// renderCandidate shows what Add would bookmark.
func (a App) renderCandidate() string {
	path, ok := a.session.Candidate()
	if !ok {
		return a.styles.Candidate.Render("Explorer: nothing selected")
	}
	path = layout.TruncatePathFromLeft(path, max(a.width-16, 10), a.layoutConfig.Text)
	return a.styles.Candidate.Render("Explorer: " + path)
}

// renderList renders the visible window of rows.
func (a App) renderList(height int) string {
	if len(a.rows) == 0 {
		return a.styles.Empty.Render(a.emptyText())
	}

	showPath := a.session.Store().ShowPath || a.tab == TabAutoOpen
	nameWidth, pathWidth := layout.CalculateColumns(a.width-1, showPath, a.layoutConfig.List)

	offset := layout.CalculateViewportOffset(a.cursor, len(a.rows), height)
	end := min(offset+height, len(a.rows))

	lines := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		lines = append(lines, a.renderRow(a.rows[i], i == a.cursor, nameWidth, pathWidth))
	}
	return strings.Join(lines, "\n")
}

func (a App) emptyText() string {
	if a.input.FilterQuery != "" {
		return "No matches."
	}
	switch a.tab {
	case TabRecent:
		return "Nothing opened yet."
	case TabAutoOpen:
		if !a.session.Store().AutoLoadLastFolder {
			return "Auto-load is off. Press A to turn it on."
		}
		return "No folders to reopen."
	default:
		return "No bookmarks yet. Press a to add the Explorer selection."
	}
}

// renderRow renders a single row with optional path column.
func (a App) renderRow(row Row, selected bool, nameWidth, pathWidth int) string {
	prefix := "  "
	if row.Pinned {
		prefix = "★ "
	}
	name, truncated := layout.TruncateWithPrefix(row.Title(), nameWidth, prefix, a.layoutConfig.Text)

	var path string
	if pathWidth > 0 {
		path = layout.TruncatePathFromLeft(row.Path, pathWidth, a.layoutConfig.Text)
	}

	nameCol := lipgloss.NewStyle().Width(nameWidth)

	if selected {
		line := nameCol.Render(name)
		if path != "" {
			line += "  " + path
		}
		return a.styles.ItemSelected.Render(line)
	}

	if len(row.Matched) > 0 && !truncated {
		name = prefix + a.highlight(row.Title(), row.Matched)
	}
	line := a.styles.Item.Render(nameCol.Render(name))
	if path != "" {
		line += "  " + a.styles.Path.Render(path)
	}
	return line
}

// highlight renders name with the fuzzy-matched runes emphasized.
func (a App) highlight(name string, matched []int) string {
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}
	var b strings.Builder
	for i, r := range name {
		if hit[i] {
			b.WriteString(a.styles.Match.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// renderHelpBar renders the message line, toggles and key hints.
func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: Empty spacer OR message (message replaces the gap)
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	// Line 2: Toggle hints and states (only in normal/filter modes)
	if a.mode == ModeNormal || a.mode == ModeFilter {
		lines = append(lines, a.renderStatusToggles())
	}

	// Line 3: Local (contextual) keyboard hints
	if localHints := a.renderHints(a.getContextualHints()); localHints != "" {
		lines = append(lines, a.styles.HintLabel.Render("Local  ")+localHints)
	}

	// Line 4: Gesture hint (only in normal mode)
	if a.mode == ModeNormal && a.open != nil {
		help := a.keys.Gesture.Help()
		lines = append(lines, a.styles.HintLabel.Render("Global ")+a.renderHint(Hint{Key: help.Key, Desc: help.Desc}))
	}

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
		prefix = ""
	}

	return msgStyle.Render(prefix + a.messageText)
}

// renderStatusToggles renders the toggle hints and [ord:X] [path:X] indicators.
func (a App) renderStatusToggles() string {
	store := a.session.Store()

	var status strings.Builder
	status.WriteString(a.styles.HintLabel.Render("Toggle "))
	status.WriteString(a.renderHintSlice(a.getToggleHints()))
	status.WriteString("  ")

	status.WriteString("[ord:" + store.SortMode.Short() + "]")
	status.WriteString(" [path:" + onOff(store.ShowPath) + "]")
	if store.Kind == model.KindFile {
		status.WriteString(" [type:" + strings.ToLower(a.filter.String()) + "]")
	} else {
		status.WriteString(" [auto:" + onOff(store.AutoLoadLastFolder) + "]")
	}

	return status.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// renderModal renders the name prompt or a confirmation over the dialog.
func (a App) renderModal() string {
	var title, content strings.Builder

	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	modalStyle := a.styles.Modal.Width(modalWidth)
	innerWidth := max(modalWidth-6, 1)

	switch a.mode {
	case ModeAdd:
		title.WriteString(a.styles.Title.Render("Add to "+a.session.Kind().Title()) + "\n\n")
		path, _ := a.session.Candidate()
		content.WriteString("Path:\n")
		content.WriteString(a.styles.Path.Render(layout.TruncatePathFromLeft(path, innerWidth, a.layoutConfig.Text)))
		content.WriteString("\n\n")
		content.WriteString("Name:\n")
		content.WriteString(a.input.Name.View())

	case ModeRename:
		title.WriteString(a.styles.Title.Render("Rename Bookmark") + "\n\n")
		content.WriteString("Name:\n")
		content.WriteString(a.input.Name.View())

	case ModeConfirm:
		title.WriteString(a.styles.Title.Render("Confirm") + "\n\n")
		content.WriteString(a.confirm.Prompt())
	}

	content.WriteString("\n\n")
	content.WriteString(a.renderHintsInline(a.getContextualHints().All()))

	modal := lipgloss.Place(
		a.width,
		a.height-3,
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(title.String()+content.String()),
	)

	return lipgloss.JoinVertical(lipgloss.Left, modal, a.renderHelpBar())
}

// renderHelpOverlay renders the full key reference in two columns.
func (a App) renderHelpOverlay() string {
	// Brutalist style: no border, just raw columns
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("j/k  move\n")
	left.WriteString("gg   top\n")
	left.WriteString("G    bottom\n")
	left.WriteString("tab  saved/recent\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("act") + "\n")
	left.WriteString("o    open\n")
	left.WriteString("R    run as admin\n")
	left.WriteString("y    copy path\n")
	left.WriteString("/    filter\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("switch") + "\n")
	left.WriteString(a.keys.Gesture.Help().Key + "   folders\n")
	left.WriteString(a.keys.Gesture.Help().Key + "x2 files\n")

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("edit") + "\n")
	right.WriteString("a    add selection\n")
	right.WriteString("e    rename\n")
	right.WriteString("d    remove\n")
	right.WriteString("*    pin/unpin\n")
	right.WriteString("J/K  reorder\n")
	right.WriteString("x    clear recent\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Title.Render("view") + "\n")
	right.WriteString("s    sort mode\n")
	right.WriteString("p    show paths\n")
	if a.session.Kind() == model.KindFile {
		right.WriteString("f    file type\n")
	} else {
		right.WriteString("A    auto-load\n")
		right.WriteString("O    auto-open list\n")
	}
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/esc] close"))

	colWidth := a.layoutConfig.Modal.HelpColumnWidth
	leftCol := lipgloss.NewStyle().Width(colWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(colWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	// Top-left aligned, brutalist style
	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}
