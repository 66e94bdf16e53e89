package cli

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/alexanderramin/wander/internal/domain"
)

// contextFlags binds the fields of a planning request to command-line flags.
type contextFlags struct {
	lat, lon float64
	minutes  int
	energy   string
	mood     string
	goal     string
	mobility string
	fitness  string
}

func (f *contextFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&f.lat, "lat", 0, "Latitude in decimal degrees")
	fs.Float64Var(&f.lon, "lon", 0, "Longitude in decimal degrees")
	fs.IntVarP(&f.minutes, "minutes", "m", 0, "Time available in minutes")
	fs.StringVar(&f.energy, "energy", "", "Energy level: low, medium, high")
	fs.StringVar(&f.mood, "mood", "", "Mood: stressed, anxious, calm, energetic, tired, happy, sad")
	fs.StringVar(&f.goal, "goal", "", "Goal: relax, recharge, reflect, connect, creativity")
	fs.StringVar(&f.mobility, "mobility", "", "Mobility level: full, limited, assisted")
	fs.StringVar(&f.fitness, "fitness", "", "Fitness level: beginner, intermediate, advanced")
}

// missing lists the required flags the user did not set.
func (f *contextFlags) missing(fs *pflag.FlagSet) []string {
	var out []string
	for _, name := range []string{"lat", "lon", "minutes", "energy", "mood", "goal"} {
		if !fs.Changed(name) {
			out = append(out, name)
		}
	}
	return out
}

func (f *contextFlags) userContext() domain.UserContext {
	return domain.UserContext{
		Location:             &domain.Coordinates{Latitude: f.lat, Longitude: f.lon},
		TimeAvailableMinutes: f.minutes,
		EnergyLevel:          domain.EnergyLevel(f.energy),
		Mood:                 domain.Mood(f.mood),
		Goal:                 domain.Goal(f.goal),
		MobilityLevel:        domain.MobilityLevel(f.mobility),
		FitnessLevel:         domain.FitnessLevel(f.fitness),
	}
}

func missingFlagsError(names []string) error {
	flags := make([]string, len(names))
	for i, n := range names {
		flags[i] = "--" + n
	}
	return fmt.Errorf("missing required flags: %v (run in a terminal to be prompted)", flags)
}
