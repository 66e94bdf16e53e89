package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wander/internal/domain"
)

func FormatLocations(locs []*domain.CustomLocation) string {
	if len(locs) == 0 {
		return Dim("No community spots yet.") + "\n"
	}
	rows := make([][]string, 0, len(locs))
	for _, l := range locs {
		rows = append(rows, []string{
			l.Name,
			fmt.Sprintf("%.5f, %.5f", l.Latitude, l.Longitude),
			strings.Join(l.Tags, " "),
			Dim(l.CreatedBy),
		})
	}
	return RenderTable([]string{"NAME", "WHERE", "TAGS", "BY"}, rows)
}

func FormatExcursions(list []*domain.Excursion) string {
	if len(list) == 0 {
		return Dim("No excursions saved.") + "\n"
	}
	rows := make([][]string, 0, len(list))
	for _, e := range list {
		fav := ""
		if e.Favorite {
			fav = StyleSun.Render("★")
		}
		rows = append(rows, []string{
			fav,
			e.Title,
			DifficultyBadge(e.Difficulty),
			Minutes(float64(e.DurationMinutes)),
			Distance(e.DistanceKm),
			Dim(e.ID),
		})
	}
	return RenderTable([]string{"", "TITLE", "LEVEL", "TIME", "DIST", "ID"}, rows)
}

func FormatProfile(p *domain.UserProfile) string {
	val := func(s string) string {
		if s == "" {
			return Dim("--")
		}
		return s
	}
	age := Dim("--")
	if p.Age != nil {
		age = fmt.Sprintf("%d", *p.Age)
	}
	lines := []string{
		Dim("user      ") + p.UserID,
		Dim("mobility  ") + val(string(p.MobilityLevel)),
		Dim("fitness   ") + val(string(p.FitnessLevel)),
		Dim("age       ") + age,
		Dim("risk      ") + val(p.RiskTolerance),
		Dim("enjoys    ") + val(strings.Join(p.PreferredActivities, ", ")),
	}
	return RenderBox("Profile", strings.Join(lines, "\n"))
}
