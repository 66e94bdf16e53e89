package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/wander/internal/domain"
)

// PlacesConfig configures the commercial places API. The source is only
// wired when APIKey is set.
type PlacesConfig struct {
	Endpoint string
	APIKey   string
	Category string
	Timeout  time.Duration
}

func DefaultPlacesConfig() PlacesConfig {
	return PlacesConfig{
		Endpoint: "https://maps.googleapis.com/maps/api/place/nearbysearch/json",
		Category: "park",
		Timeout:  10 * time.Second,
	}
}

type placesResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Results      []placeResult `json:"results"`
}

type placeResult struct {
	PlaceID  string   `json:"place_id"`
	Name     string   `json:"name"`
	Vicinity string   `json:"vicinity"`
	Types    []string `json:"types"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// PlacesSource queries a nearby-search places API.
type PlacesSource struct {
	cfg  PlacesConfig
	http *http.Client
}

func NewPlacesSource(cfg PlacesConfig, client *http.Client) *PlacesSource {
	def := DefaultPlacesConfig()
	if cfg.Endpoint == "" {
		cfg.Endpoint = def.Endpoint
	}
	if cfg.Category == "" {
		cfg.Category = def.Category
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &PlacesSource{cfg: cfg, http: client}
}

func (s *PlacesSource) Kind() domain.Source { return domain.SourceMapAPI }

func (s *PlacesSource) Fetch(ctx context.Context, q Query) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%.6f,%.6f", q.Center.Latitude, q.Center.Longitude))
	params.Set("radius", fmt.Sprintf("%.0f", q.RadiusMeters))
	params.Set("type", s.cfg.Category)
	params.Set("key", s.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating places request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying places api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: places api returned %d: %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding places response: %w", err)
	}
	switch payload.Status {
	case "", "OK", "ZERO_RESULTS":
	default:
		return nil, fmt.Errorf("%w: places api status %s: %s", ErrUnexpectedStatus, payload.Status, payload.ErrorMessage)
	}

	out := make([]Record, 0, len(payload.Results))
	for _, p := range payload.Results {
		pos := domain.Coordinates{Latitude: p.Geometry.Location.Lat, Longitude: p.Geometry.Location.Lng}
		if p.PlaceID == "" || !pos.Valid() {
			continue
		}
		out = append(out, Record{
			SourceID:    p.PlaceID,
			Name:        strings.TrimSpace(p.Name),
			Description: strings.TrimSpace(p.Vicinity),
			Coordinates: pos,
			Tags:        DerivePlaceTags(p.Name, p.Vicinity, p.Types),
		})
	}
	return out, nil
}

type keywordRule struct {
	keywords []string
	tags     []string
}

var placeKeywordRules = []keywordRule{
	{[]string{"quiet", "peaceful"}, []string{domain.TagQuiet}},
	{[]string{"lake", "pond"}, []string{domain.TagWater, "lake"}},
	{[]string{"river", "stream"}, []string{domain.TagWater, "river"}},
	{[]string{"tree", "forest", "wood"}, []string{domain.TagTrees}},
	{[]string{"garden"}, []string{"garden", domain.TagPark}},
	{[]string{"bench"}, []string{domain.TagBenches}},
	{[]string{"path", "trail"}, []string{domain.TagTrail, "path"}},
	{[]string{"courtyard"}, []string{"courtyard"}},
}

// DerivePlaceTags infers tags from a place's category list and the keywords
// in its name and vicinity.
func DerivePlaceTags(name, vicinity string, types []string) []string {
	var tags []string
	for _, t := range types {
		switch t {
		case "park":
			tags = append(tags, domain.TagPark)
		case "trail_head", "hiking_area":
			tags = append(tags, domain.TagTrail)
		case "natural_feature":
			tags = append(tags, "nature")
		}
	}
	text := strings.ToLower(name + " " + vicinity)
	for _, rule := range placeKeywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				tags = append(tags, rule.tags...)
				break
			}
		}
	}
	return domain.NormalizeTags(tags)
}
