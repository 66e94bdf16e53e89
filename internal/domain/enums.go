package domain

type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

type Mood string

const (
	MoodStressed  Mood = "stressed"
	MoodAnxious   Mood = "anxious"
	MoodCalm      Mood = "calm"
	MoodEnergetic Mood = "energetic"
	MoodTired     Mood = "tired"
	MoodHappy     Mood = "happy"
	MoodSad       Mood = "sad"
)

type Goal string

const (
	GoalRelax      Goal = "relax"
	GoalRecharge   Goal = "recharge"
	GoalReflect    Goal = "reflect"
	GoalConnect    Goal = "connect"
	GoalCreativity Goal = "creativity"
)

type MobilityLevel string

const (
	MobilityFull     MobilityLevel = "full"
	MobilityLimited  MobilityLevel = "limited"
	MobilityAssisted MobilityLevel = "assisted"
)

// Restricted reports whether the level requires accessible, flat routes.
func (m MobilityLevel) Restricted() bool {
	return m == MobilityLimited || m == MobilityAssisted
}

type FitnessLevel string

const (
	FitnessBeginner     FitnessLevel = "beginner"
	FitnessIntermediate FitnessLevel = "intermediate"
	FitnessAdvanced     FitnessLevel = "advanced"
)

type TravelMode string

const (
	TravelWalking TravelMode = "walking"
	TravelDriving TravelMode = "driving"
)

// Source identifies where a candidate location came from.
type Source string

const (
	SourceUserCustom Source = "user_custom"
	SourceOSM        Source = "osm"
	SourceMapAPI     Source = "map_api"
	SourceSynthetic  Source = "synthetic"
)

type TerrainIntensity string

const (
	TerrainUnknown TerrainIntensity = ""
	TerrainFlat    TerrainIntensity = "flat"
	TerrainRolling TerrainIntensity = "rolling"
	TerrainHilly   TerrainIntensity = "hilly"
)

type Difficulty string

const (
	DifficultyEasy        Difficulty = "easy"
	DifficultyModerate    Difficulty = "moderate"
	DifficultyChallenging Difficulty = "challenging"
)

type SessionStatus string

const (
	SessionPlanned   SessionStatus = "planned"
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

type SessionPhase string

const (
	PhasePlan    SessionPhase = "PLAN"
	PhaseGuide   SessionPhase = "GUIDE"
	PhaseReflect SessionPhase = "REFLECT"
)

type CheckInType string

const (
	CheckInScale CheckInType = "scale"
	CheckInText  CheckInType = "text"
)

// ValidEnergyLevels is the canonical set of accepted energy strings.
var ValidEnergyLevels = map[EnergyLevel]bool{
	EnergyLow: true, EnergyMedium: true, EnergyHigh: true,
}

var ValidMoods = map[Mood]bool{
	MoodStressed: true, MoodAnxious: true, MoodCalm: true, MoodEnergetic: true,
	MoodTired: true, MoodHappy: true, MoodSad: true,
}

var ValidGoals = map[Goal]bool{
	GoalRelax: true, GoalRecharge: true, GoalReflect: true, GoalConnect: true, GoalCreativity: true,
}

var ValidMobilityLevels = map[MobilityLevel]bool{
	MobilityFull: true, MobilityLimited: true, MobilityAssisted: true,
}

var ValidFitnessLevels = map[FitnessLevel]bool{
	FitnessBeginner: true, FitnessIntermediate: true, FitnessAdvanced: true,
}

var ValidTerrains = map[TerrainIntensity]bool{
	TerrainFlat: true, TerrainRolling: true, TerrainHilly: true,
}
