package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wander/internal/composer"
	"github.com/alexanderramin/wander/internal/domain"
)

// FormatSession renders a session's status line.
func FormatSession(s *domain.ExcursionSession) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s  %s\n", Bold(s.ID), StatusPill(s.Status), Dim(string(s.Phase))))
	if s.CurrentZoneID != "" {
		b.WriteString(Dim("zone ") + s.CurrentZoneID + "\n")
	}
	if s.StartedAt != nil {
		b.WriteString(Dim("started ") + s.StartedAt.Local().Format("Mon 15:04") + "\n")
	}
	if s.EndedAt != nil {
		b.WriteString(Dim("ended   ") + s.EndedAt.Local().Format("Mon 15:04") + "\n")
	}
	return b.String()
}

// FormatGuidance renders instructions for the current zone.
func FormatGuidance(g *composer.Guidance) string {
	var b strings.Builder
	if g.Summary != "" {
		b.WriteString(g.Summary + "\n")
	}
	if len(g.Instructions) > 0 {
		b.WriteString("\n")
		for i, step := range g.Instructions {
			b.WriteString(fmt.Sprintf("%s %s\n", StyleMoss.Render(fmt.Sprintf("%d.", i+1)), step))
		}
	}
	if g.MindfulnessPrompt != "" {
		b.WriteString("\n" + StyleHeath.Render("✿ "+g.MindfulnessPrompt) + "\n")
	}
	if len(g.CheckIns) > 0 {
		b.WriteString("\n" + StyleHeader.Render("Check in") + "\n")
		for _, c := range g.CheckIns {
			b.WriteString("  " + checkInLine(c) + "\n")
		}
	}
	for _, r := range g.SafetyReminders {
		b.WriteString(StyleSun.Render("! ") + r + "\n")
	}
	b.WriteString("\n" + Dim("next: ") + nextAction(g.NextAction))
	title := g.ZoneName
	if title == "" {
		title = g.TargetZoneID
	}
	return RenderBox(title, b.String())
}

func checkInLine(c composer.GuideCheckIn) string {
	if c.Type == domain.CheckInScale && c.Min != nil && c.Max != nil {
		return fmt.Sprintf("%s %s %s", Dim(c.ID), c.Label, Dim(fmt.Sprintf("[%g-%g]", *c.Min, *c.Max)))
	}
	return fmt.Sprintf("%s %s %s", Dim(c.ID), c.Label, Dim("[text]"))
}

func nextAction(a composer.NextAction) string {
	switch a {
	case composer.NextEndExcursion:
		return StyleHeath.Render("time to reflect")
	case composer.NextEndSegment:
		return StyleWater.Render("move to the next zone")
	default:
		return StyleMoss.Render("stay a while")
	}
}

// FormatReflection renders the post-excursion questions.
func FormatReflection(r *composer.Reflection) string {
	var b strings.Builder
	for _, q := range r.QuantitativeQuestions {
		b.WriteString(fmt.Sprintf("%s %s %s\n", Dim(q.ID), q.Label, Dim(fmt.Sprintf("[%g-%g]", q.Min, q.Max))))
	}
	for _, q := range r.QualitativeQuestions {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(q.ID), q.Label))
		if q.Hint != "" {
			b.WriteString("   " + Dim(q.Hint) + "\n")
		}
	}
	if r.ClosingPrompt != "" {
		b.WriteString("\n" + StyleHeath.Render(r.ClosingPrompt))
	}
	return RenderBox("Reflect", strings.TrimRight(b.String(), "\n"))
}
