package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wander/internal/composer"
	"github.com/alexanderramin/wander/internal/contract"
	"github.com/alexanderramin/wander/internal/domain"
)

// FormatPlan renders a full planning response.
func FormatPlan(resp *contract.PlanResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	if resp.NoLocations != nil {
		b.WriteString(FormatNoLocations(resp.NoLocations))
		b.WriteString("\n")
		b.WriteString(FormatWarnings(resp.Warnings))
		return b.String()
	}

	b.WriteString(Header("Nearby nature"))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%s · within %s", resp.TravelMode, Distance(resp.RadiusMeters/1000))))
	b.WriteString("\n\n")
	b.WriteString(FormatRanked(resp.Ranked))

	if resp.Weather != nil {
		b.WriteString("\n")
		b.WriteString(FormatWeather(resp.Weather))
		b.WriteString("\n")
	}
	for i, opt := range resp.PlanOptions {
		b.WriteString("\n")
		b.WriteString(FormatPlanOption(i+1, opt))
		b.WriteString("\n")
	}
	if w := FormatWarnings(resp.Warnings); w != "" {
		b.WriteString("\n")
		b.WriteString(w)
	}
	return b.String()
}

// FormatRanked renders scored candidates as a table, best first.
func FormatRanked(ranked []domain.ScoredCandidate) string {
	table := make([][]string, 0, len(ranked))
	for i, sc := range ranked {
		c := sc.Candidate
		table = append(table, []string{
			fmt.Sprintf("%d", i+1),
			c.Name,
			Distance(c.DistanceKm),
			Minutes(c.TravelMinutesOneWay),
			TerrainBadge(c.TerrainIntensity),
			SourceBadge(c.Source),
			scoreCell(sc.Score),
		})
	}
	return RenderTable([]string{"#", "PLACE", "DIST", "ONE WAY", "TERRAIN", "SOURCE", "SCORE"}, table)
}

func scoreCell(score float64) string {
	s := fmt.Sprintf("%+.1f", score)
	switch {
	case score <= -100:
		return StyleClay.Render(s)
	case score > 0:
		return StyleMoss.Render(s)
	default:
		return s
	}
}

// FormatPlanOption renders one narrative plan in a box.
func FormatPlanOption(n int, opt composer.PlanOption) string {
	ro := opt.RouteOverview
	var b strings.Builder
	b.WriteString(Bold(ro.Title))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s  %s  %s",
		DifficultyBadge(ro.Difficulty),
		Minutes(float64(ro.TotalDurationMinutes)),
		Distance(ro.TotalDistanceKm),
		Dim(ro.TransportMode)))
	b.WriteString("\n")
	if ro.Description != "" {
		b.WriteString("\n")
		b.WriteString(ro.Description)
		b.WriteString("\n")
	}
	if len(opt.Zones) > 0 {
		b.WriteString("\n")
		for i, z := range opt.Zones {
			b.WriteString(fmt.Sprintf("%s %s %s\n", StyleMoss.Render(fmt.Sprintf("%d.", i+1)), z.Name, Dim(fmt.Sprintf("(%d min)", z.DurationMinutes))))
			if z.MindfulnessPrompt != "" {
				b.WriteString("   " + StyleHeath.Render(z.MindfulnessPrompt) + "\n")
			}
		}
	}
	if len(opt.SafetyTips) > 0 {
		b.WriteString("\n" + StyleSun.Render("Safety") + "\n")
		for _, tip := range opt.SafetyTips {
			b.WriteString("  • " + tip + "\n")
		}
	}
	if len(opt.PackingSuggestions) > 0 {
		b.WriteString("\n" + Dim("Bring: "+strings.Join(opt.PackingSuggestions, ", ")) + "\n")
	}
	return RenderBox(fmt.Sprintf("Option %d", n), strings.TrimRight(b.String(), "\n"))
}

func FormatNoLocations(nl *contract.NoLocations) string {
	hint := StyleMoss.Render("wander location add NAME --lat LAT --lon LON")
	return RenderBox("Nothing nearby", nl.MessageForUser+"\n\n"+hint+"\n"+Dim(nl.Reason))
}

// FormatWeather renders current conditions and the first forecast entries.
func FormatWeather(w *domain.WeatherSnapshot) string {
	cur := w.Current
	line := fmt.Sprintf("%s %.0f°C, %s · wind %.1f m/s", StyleWater.Render("☁"), cur.TemperatureC, cur.Description, cur.WindSpeedMS)
	parts := []string{line}
	for i, f := range w.Forecast {
		if i == 3 {
			break
		}
		parts = append(parts, Dim(fmt.Sprintf("  %s  %.0f°C %s  %.0f%% rain",
			f.Time.Format("15:04"), f.TemperatureC, f.Condition, f.PrecipProbability*100)))
	}
	return strings.Join(parts, "\n")
}

// FormatWarnings renders non-fatal problems, or nothing.
func FormatWarnings(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	for _, w := range warnings {
		b.WriteString(StyleSun.Render("! ") + w + "\n")
	}
	return b.String()
}
