package cli

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/wander/internal/cli/formatter"
	"github.com/alexanderramin/wander/internal/domain"
)

// wanderHuhTheme returns a huh theme using the forest palette.
func wanderHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorMoss)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorStone).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorStone)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorStone)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorStone)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorStone)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorStone)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorStone)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorStone)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorStone)

	return t
}

// contextWizard builds a form asking only for the fields in missing.
// Numeric fields are edited as strings and written back by apply.
type contextWizard struct {
	form    *huh.Form
	lat     string
	lon     string
	minutes string
	flags   *contextFlags
}

func newContextWizard(f *contextFlags, missing []string) *contextWizard {
	w := &contextWizard{flags: f}
	need := map[string]bool{}
	for _, m := range missing {
		need[m] = true
	}

	var fields []huh.Field
	if need["lat"] || need["lon"] {
		fields = append(fields,
			huh.NewInput().Title("Latitude").Placeholder("52.5200").Value(&w.lat).Validate(validateFloat(-90, 90)),
			huh.NewInput().Title("Longitude").Placeholder("13.4050").Value(&w.lon).Validate(validateFloat(-180, 180)),
		)
	}
	if need["minutes"] {
		fields = append(fields,
			huh.NewInput().Title("How many minutes do you have?").Placeholder("60").Value(&w.minutes).Validate(validatePositiveInt))
	}
	if need["energy"] {
		fields = append(fields, selectField("Energy", &f.energy, domain.EnergyLow, domain.EnergyMedium, domain.EnergyHigh))
	}
	if need["mood"] {
		fields = append(fields, selectField("Mood", &f.mood,
			domain.MoodStressed, domain.MoodAnxious, domain.MoodCalm, domain.MoodEnergetic,
			domain.MoodTired, domain.MoodHappy, domain.MoodSad))
	}
	if need["goal"] {
		fields = append(fields, selectField("Goal", &f.goal,
			domain.GoalRelax, domain.GoalRecharge, domain.GoalReflect, domain.GoalConnect, domain.GoalCreativity))
	}

	w.form = huh.NewForm(huh.NewGroup(fields...)).WithTheme(wanderHuhTheme()).WithShowHelp(false)
	return w
}

func selectField[T ~string](title string, dst *string, values ...T) huh.Field {
	opts := make([]huh.Option[string], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(string(v), string(v))
	}
	return huh.NewSelect[string]().Title(title).Options(opts...).Value(dst)
}

func (w *contextWizard) run() error {
	if err := w.form.Run(); err != nil {
		return err
	}
	return w.apply()
}

// apply copies the string answers into the flag values.
func (w *contextWizard) apply() error {
	if w.lat != "" {
		v, err := strconv.ParseFloat(w.lat, 64)
		if err != nil {
			return err
		}
		w.flags.lat = v
	}
	if w.lon != "" {
		v, err := strconv.ParseFloat(w.lon, 64)
		if err != nil {
			return err
		}
		w.flags.lon = v
	}
	if w.minutes != "" {
		v, err := strconv.Atoi(w.minutes)
		if err != nil {
			return err
		}
		w.flags.minutes = v
	}
	return nil
}

func validateFloat(lo, hi float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.New("enter a number")
		}
		if v < lo || v > hi {
			return errors.New("out of range")
		}
		return nil
	}
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return errors.New("enter a positive whole number")
	}
	return nil
}
