package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const columnGap = "  "

// RenderTable aligns rows under styled headers. Widths are measured on
// visible characters so styled cells line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	widths := make([]int, len(headers))
	measure := func(i int, cell string) {
		if w := lipgloss.Width(cell); w > widths[i] {
			widths[i] = w
		}
	}
	for i, h := range headers {
		measure(i, h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			measure(i, row[i])
		}
	}

	line := func(cells []string, style func(...string) string) string {
		parts := make([]string, len(headers))
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = style(cells[i])
			}
			if i < len(headers)-1 {
				cell = lipgloss.NewStyle().Width(widths[i]).Render(cell)
			}
			parts[i] = cell
		}
		return strings.Join(parts, columnGap)
	}

	plain := func(s ...string) string { return strings.Join(s, "") }

	var b strings.Builder
	b.WriteString(line(headers, StyleHeader.Render))
	b.WriteString("\n")
	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = strings.Repeat("─", w)
	}
	b.WriteString(line(rules, StyleStone.Render))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(line(row, plain))
		b.WriteString("\n")
	}
	return b.String()
}
