package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/sokinpui/eolbox/internal/log"
	"github.com/sokinpui/eolbox/internal/ui"
	"github.com/sokinpui/eolbox/lineending"
)

// --- Styles ---
var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")) // Mauve
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))           // Red
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))            // Green
	faintStyle    = lipgloss.NewStyle().Faint(true)
	caretStyle    = lipgloss.NewStyle().Reverse(true)
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("238"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1, 2)
)

// chrome is the number of rows taken by everything but the pane text:
// pane border (2), buttons (3), status (1) and help (1).
const chrome = 7

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderButtons())
	b.WriteString("\n")

	body := m.renderPane()
	switch {
	case m.mode != modeEdit:
		body = m.place(m.renderModal())
	case m.showLog:
		body = m.place(m.renderLog())
	}
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	if m.mode == modePrompt {
		b.WriteString(m.help.ShortHelpView(m.keys.promptHelp()))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return zone.Scan(b.String())
}

func (m Model) renderButtons() string {
	rendered := make([]string, len(buttons))
	for i, btn := range buttons {
		label := fmt.Sprintf("F%d %s", i+1, btn.label)
		rendered[i] = zone.Mark(btn.id, buttonStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) paneHeight() int {
	if m.height <= chrome {
		return 0
	}
	return m.height - chrome
}

// place centers a modal in the area of the pane.
func (m Model) place(content string) string {
	if m.width == 0 || m.paneHeight() == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.paneHeight()+2, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderModal() string {
	width := 60
	if m.width > 0 && m.width-8 < width {
		width = max(m.width-8, 20)
	}
	title := headerStyle.Render(m.notice.title)
	if m.notice.title == titleError {
		title = errorStyle.Render(m.notice.title)
	}
	body := lipgloss.NewStyle().Width(width).Render(m.notice.body)
	footer := faintStyle.Render("Press any key to close.")
	if m.mode == modePrompt {
		footer = faintStyle.Render("a / r / i to choose, esc to cancel.")
	}
	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", footer))
}

func (m Model) renderLog() string {
	var body string
	if !log.Enabled() {
		body = faintStyle.Render("Logging is off. Run with --debug.")
	} else {
		n := m.paneHeight()
		if n == 0 {
			n = 20
		}
		entries := log.Recent(n)
		if len(entries) == 0 {
			body = faintStyle.Render("No log entries yet.")
		} else {
			body = strings.Join(entries, "\n")
		}
	}
	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, headerStyle.Render("Log"), "", body))
}

func (m Model) renderStatus() string {
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	kind := m.counts.Kind()
	left := fmt.Sprintf("%s  %s  host: %s", kind, ui.CountsLine(m.counts), m.hostName)
	if m.status != "" {
		return faintStyle.Render(left) + "  " + successStyle.Render(m.status)
	}
	return faintStyle.Render(left)
}

// renderPane draws the text with a marker after each line break. The
// caret and selection are drawn when the host is editable here.
func (m Model) renderPane() string {
	cursor, selStart, selEnd := -1, 0, 0
	if m.editor != nil {
		cursor = m.editor.Cursor()
		if s, e, ok := m.editor.Selection(); ok {
			selStart, selEnd = s, e
		}
	}

	lines, ends := lineending.Lines(m.text)
	rows := make([]string, len(lines))
	caretRow := 0
	pos := 0
	for i, line := range lines {
		runes := []rune(line)
		breakLen := len([]rune(breakSequence(ends[i])))
		lineEnd := pos + len(runes)

		var row strings.Builder
		for j, r := range runes {
			at := pos + j
			switch {
			case at == cursor:
				row.WriteString(caretStyle.Render(string(r)))
			case at >= selStart && at < selEnd:
				row.WriteString(selectedStyle.Render(string(r)))
			default:
				row.WriteRune(r)
			}
		}

		onBreak := cursor >= lineEnd && (cursor < lineEnd+breakLen || (breakLen == 0 && cursor == lineEnd))
		if onBreak {
			caretRow = i
			row.WriteString(caretStyle.Render(" "))
		} else if cursor >= pos && cursor < lineEnd {
			caretRow = i
		}
		if marker := lineending.Marker(ends[i]); marker != "" {
			style := faintStyle
			if lineEnd >= selStart && lineEnd < selEnd {
				style = selectedStyle.Faint(true)
			}
			row.WriteString(style.Render(marker))
		}

		rows[i] = row.String()
		pos = lineEnd + breakLen
	}

	rows = visibleRows(rows, caretRow, m.paneHeight())
	style := paneStyle
	if m.width > 0 {
		style = style.Width(m.width - 2)
	}
	return style.Render(strings.Join(rows, "\n"))
}

// visibleRows returns at most height rows around the caret row. A height
// of 0 means unbounded.
func visibleRows(rows []string, caretRow, height int) []string {
	if height == 0 || len(rows) <= height {
		return rows
	}
	start := caretRow - height + 1
	if start < 0 {
		start = 0
	}
	return rows[start : start+height]
}

func breakSequence(kind lineending.Kind) string {
	seq, err := kind.Sequence()
	if err != nil {
		return ""
	}
	return seq
}
