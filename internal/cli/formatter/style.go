// Package formatter renders planning results and sessions for the terminal.
package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/wander/internal/domain"
)

// Forest palette.
var (
	ColorMoss   = lipgloss.Color("#8ec07c")
	ColorSun    = lipgloss.Color("#fabd2f")
	ColorClay   = lipgloss.Color("#fb4934")
	ColorWater  = lipgloss.Color("#83a598")
	ColorHeath  = lipgloss.Color("#d3869b")
	ColorStone  = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#b8bb26")
)

var (
	StyleMoss   = lipgloss.NewStyle().Foreground(ColorMoss)
	StyleSun    = lipgloss.NewStyle().Foreground(ColorSun)
	StyleClay   = lipgloss.NewStyle().Foreground(ColorClay)
	StyleWater  = lipgloss.NewStyle().Foreground(ColorWater)
	StyleHeath  = lipgloss.NewStyle().Foreground(ColorHeath)
	StyleStone  = lipgloss.NewStyle().Foreground(ColorStone)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorStone).
			Padding(1, 2)
)

// Header renders an upper-cased section title over a rule.
func Header(text string) string {
	upper := strings.ToUpper(text)
	return StyleHeader.Render(upper) + "\n" + StyleStone.Render(strings.Repeat("─", lipgloss.Width(upper)))
}

func Dim(text string) string  { return StyleStone.Render(text) }
func Bold(text string) string { return StyleBold.Render(text) }

// RenderBox wraps content in a rounded border with an optional title.
func RenderBox(title, content string) string {
	if title != "" {
		content = StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
	}
	return boxStyle.Render(content)
}

// SourceBadge labels where a candidate came from.
func SourceBadge(s domain.Source) string {
	switch s {
	case domain.SourceUserCustom:
		return StyleHeath.Render("★ community")
	case domain.SourceOSM:
		return StyleMoss.Render("◆ osm")
	case domain.SourceMapAPI:
		return StyleWater.Render("◆ places")
	case domain.SourceSynthetic:
		return StyleStone.Render("◇ placeholder")
	default:
		return StyleStone.Render(string(s))
	}
}

// TerrainBadge colours terrain by effort.
func TerrainBadge(t domain.TerrainIntensity) string {
	switch t {
	case domain.TerrainFlat:
		return StyleMoss.Render("flat")
	case domain.TerrainRolling:
		return StyleSun.Render("rolling")
	case domain.TerrainHilly:
		return StyleClay.Render("hilly")
	default:
		return StyleStone.Render("--")
	}
}

func DifficultyBadge(d domain.Difficulty) string {
	switch d {
	case domain.DifficultyEasy:
		return StyleMoss.Render("● easy")
	case domain.DifficultyModerate:
		return StyleSun.Render("● moderate")
	case domain.DifficultyChallenging:
		return StyleClay.Render("● challenging")
	default:
		return StyleStone.Render(string(d))
	}
}

func StatusPill(status domain.SessionStatus) string {
	switch status {
	case domain.SessionPlanned:
		return StyleWater.Render("○ planned")
	case domain.SessionActive:
		return StyleMoss.Render("● active")
	case domain.SessionCompleted:
		return StyleStone.Render("✔ completed")
	case domain.SessionAbandoned:
		return StyleStone.Render("✖ abandoned")
	default:
		return StyleStone.Render(string(status))
	}
}

// Distance renders metres below one kilometre and kilometres above.
func Distance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%.0f m", km*1000)
	}
	return fmt.Sprintf("%.1f km", km)
}

// Minutes renders a rounded minute count.
func Minutes(m float64) string {
	if m < 1 {
		return "<1 min"
	}
	return fmt.Sprintf("%.0f min", m)
}
