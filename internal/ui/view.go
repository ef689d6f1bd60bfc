package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hollowbyte/it2jump/internal/session"
)

const activeMarker = "▶"

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

// View implements tea.Model.
func (m *Model) View() string {
	state := m.controller.Snapshot()

	lines := make([]styledLine, 0, len(state.FilteredRows)+8)
	lines = append(lines, styledLine{text: m.header(len(state.FilteredRows), len(state.AllRows)), style: styles.Header})

	if len(state.FilteredRows) == 0 {
		msg := "(no sessions)"
		if state.Query != "" {
			msg = fmt.Sprintf("No matches for %q", state.Query)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Muted})
	} else {
		start := 0
		rows := state.FilteredRows
		if max := m.maxVisibleRows(); max > 0 && len(rows) > max {
			start = state.SelectedIndex - max/2
			if start < 0 {
				start = 0
			}
			if start+max > len(rows) {
				start = len(rows) - max
			}
			rows = rows[start : start+max]
		}
		for i, row := range rows {
			lines = append(lines, m.buildRowLine(row, start+i == state.SelectedIndex))
		}
	}

	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "↑/↓ move  enter jump  ctrl+hjkl pane  esc clear/quit  ctrl+c quit", style: styles.Footer})
	}

	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	// Bottom bar: status/error line + query prompt.
	var statusLine styledLine
	switch {
	case m.errMsg != "":
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	case state.Status != "":
		statusLine = styledLine{text: state.Status, style: styles.Muted}
	}
	bottom := applyWidth([]styledLine{statusLine}, m.width)
	lines = append(lines, bottom...)

	return renderLines(lines) + "\n" + m.input.View()
}

func (m *Model) header(filtered, total int) string {
	if filtered == total {
		return fmt.Sprintf("iTerm2 sessions (%d)", total)
	}
	return fmt.Sprintf("iTerm2 sessions (%d/%d)", filtered, total)
}

// buildRowLine renders one session row: a cursor column, the active session
// marker, the window:tab label, and muted working-directory/command metadata.
func (m *Model) buildRowLine(row session.Row, selected bool) styledLine {
	indicator := " "
	indicatorStyle := styles.Row
	lineStyle := styles.Row
	if selected {
		indicator = "▌"
		indicatorStyle = styles.ActiveMarker
		lineStyle = styles.SelectedRow
	}
	marker := " "
	if row.Active {
		marker = activeMarker
	}
	text := fmt.Sprintf("%s %s %s%s", indicator, marker, row.Label(), rowMetadata(row))
	return styledLine{
		text:          text,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the cursor column
	}
}

func rowMetadata(row session.Row) string {
	var b strings.Builder
	if row.WorkingDirectory != "" {
		b.WriteString("  ")
		b.WriteString(row.WorkingDirectory)
	}
	if row.CommandLine != "" {
		b.WriteString("  (")
		b.WriteString(row.CommandLine)
		b.WriteString(")")
	}
	return b.String()
}

// maxVisibleRows returns how many session rows fit, or -1 when the height is
// unknown and the list should not be windowed.
func (m *Model) maxVisibleRows() int {
	if m.height <= 0 {
		return -1
	}
	used := 3 // header + bottom bar (status + prompt)
	if m.currentInfo() != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		result[i] = styledLine{
			text:          truncateText(line.text, width),
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
