package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Sternrassler/artic-client/pkg/artwork"
)

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	checkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	statusStyle = lipgloss.NewStyle().Faint(true)
	promptStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// column widths; the inscriptions column takes what is left
const (
	titleWidth  = 32
	originWidth = 16
	artistWidth = 28
	yearWidth   = 6
	minInscr    = 12
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Art Institute of Chicago: Artworks"))
	b.WriteString("\n\n")

	inscr := m.inscriptionsWidth()
	b.WriteString(headerStyle.Render(formatRow("   ", "Title", "Place of Origin", "Artist", "Inscriptions", "Start", "End", inscr)))
	b.WriteString("\n")

	if len(m.view.Rows) == 0 && m.view.Loading {
		b.WriteString("  loading...\n")
	}
	for i, a := range m.view.Rows {
		line := m.renderRow(a, inscr)
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderPaginator())
	b.WriteString("\n")

	if m.prompt {
		b.WriteString(promptStyle.Render("Select rows: " + m.input + "_\n[enter] Submit  [esc] Cancel"))
		b.WriteString("\n")
	}

	b.WriteString("[←/→] Page  [↑/↓] Move  [space] Toggle  [r] Row-click  [n] Select rows  [c] Clear  [q] Quit")
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	return b.String()
}

func (m *Model) renderRow(a artwork.Artwork, inscr int) string {
	box := "[ ]"
	if m.tracker.Has(a.ID) {
		box = checkStyle.Render("[x]")
	}
	return formatRow(box, a.Title, a.PlaceOfOrigin, a.ArtistDisplay, a.Inscriptions,
		yearText(a.DateStart), yearText(a.DateEnd), inscr)
}

func (m *Model) renderPaginator() string {
	v := m.view
	first, last := 0, 0
	if len(v.Rows) > 0 {
		first = v.Offset() + 1
		last = v.Offset() + len(v.Rows)
	}

	out := fmt.Sprintf("Page %d of %d  Showing %d to %d of %d entries  Selected: %d",
		v.Page, v.TotalPages, first, last, v.TotalRecords, m.tracker.Len())
	if v.Loading {
		out += fmt.Sprintf("  (loading page %d)", v.Target())
	}
	if m.rowClick {
		out += "  [row-click]"
	}
	return out
}

func (m *Model) inscriptionsWidth() int {
	used := 4 + titleWidth + originWidth + artistWidth + 2*yearWidth + 6
	if m.width-used > minInscr {
		return m.width - used
	}
	return minInscr
}

func formatRow(box, title, origin, artist, inscr, start, end string, inscrWidth int) string {
	return fmt.Sprintf("%s %-*s %-*s %-*s %-*s %*s %*s",
		box,
		titleWidth, truncate(title, titleWidth),
		originWidth, truncate(origin, originWidth),
		artistWidth, truncate(flatten(artist), artistWidth),
		inscrWidth, truncate(flatten(inscr), inscrWidth),
		yearWidth, start,
		yearWidth, end,
	)
}

func yearText(year int) string {
	if year == 0 {
		return ""
	}
	return fmt.Sprint(year)
}

// flatten joins multi-line API text (artist_display uses newlines) into one line.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
