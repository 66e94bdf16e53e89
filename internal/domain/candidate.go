package domain

// CandidateLocation is a normalized nature spot considered for one planning
// request. It is never persisted.
type CandidateLocation struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Description         string           `json:"description,omitempty"`
	Coordinates         Coordinates      `json:"coordinates"`
	DistanceKm          float64          `json:"distance_km"`
	TravelMinutesOneWay float64          `json:"estimated_travel_minutes_one_way"`
	TravelMode          TravelMode       `json:"travel_mode"`
	Tags                []string         `json:"tags"`
	Source              Source           `json:"source"`
	TerrainIntensity    TerrainIntensity `json:"terrain_intensity,omitempty"`
}

// HasTag reports whether the candidate carries the given normalized tag.
func (c CandidateLocation) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ScoredCandidate pairs a candidate with its composite score breakdown.
type ScoredCandidate struct {
	Candidate     CandidateLocation `json:"candidate"`
	Score         float64           `json:"score"`
	DistanceScore float64           `json:"distance_score"`
	TerrainScore  float64           `json:"terrain_score"`
	TagScore      float64           `json:"tag_score"`
	Reasons       []ScoreReason     `json:"reasons,omitempty"`
}

// ScoreReason explains one contribution to a candidate's score.
type ScoreReason struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Delta   float64 `json:"delta"`
}
