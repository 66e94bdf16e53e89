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

// OverpassConfig configures the open map-data source.
type OverpassConfig struct {
	Endpoint   string
	Timeout    time.Duration
	MaxResults int
}

// DefaultOverpassConfig points at the public Overpass instance.
func DefaultOverpassConfig() OverpassConfig {
	return OverpassConfig{
		Endpoint:   "https://overpass-api.de/api/interpreter",
		Timeout:    30 * time.Second,
		MaxResults: 60,
	}
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type overpassElement struct {
	ID     int64             `json:"id"`
	Type   string            `json:"type"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *overpassCenter   `json:"center,omitempty"`
	Tags   map[string]string `json:"tags"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// OverpassSource queries an Overpass API instance for natural spaces.
type OverpassSource struct {
	cfg  OverpassConfig
	http *http.Client
}

// NewOverpassSource builds the source. A nil client gets one with the
// configured timeout.
func NewOverpassSource(cfg OverpassConfig, client *http.Client) *OverpassSource {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultOverpassConfig().MaxResults
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultOverpassConfig().Timeout
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &OverpassSource{cfg: cfg, http: client}
}

func (s *OverpassSource) Kind() domain.Source { return domain.SourceOSM }

func (s *OverpassSource) Fetch(ctx context.Context, q Query) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	serverTimeout := int(s.cfg.Timeout.Seconds()) - 5
	if serverTimeout < 5 {
		serverTimeout = 5
	}
	form := url.Values{"data": {buildOverpassQuery(q, serverTimeout, s.cfg.MaxResults)}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying overpass: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: overpass returned %d: %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding overpass response: %w", err)
	}
	return parseOverpassElements(payload.Elements), nil
}

// parseOverpassElements keeps elements with a position and at least one
// recognised tag.
func parseOverpassElements(elements []overpassElement) []Record {
	out := make([]Record, 0, len(elements))
	seen := make(map[string]bool, len(elements))
	for _, el := range elements {
		pos, ok := elementPosition(el)
		if !ok {
			continue
		}
		tags := MapOSMTags(el.Tags)
		if len(tags) == 0 {
			continue
		}
		id := fmt.Sprintf("%s/%d", el.Type, el.ID)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, Record{
			SourceID:    id,
			Name:        strings.TrimSpace(el.Tags["name"]),
			Description: strings.TrimSpace(el.Tags["description"]),
			Coordinates: pos,
			Tags:        tags,
			Terrain:     InferOSMTerrain(el.Tags),
		})
	}
	return out
}

func elementPosition(el overpassElement) (domain.Coordinates, bool) {
	var pos domain.Coordinates
	switch {
	case el.Lat != nil && el.Lon != nil:
		pos = domain.Coordinates{Latitude: *el.Lat, Longitude: *el.Lon}
	case el.Center != nil:
		pos = domain.Coordinates{Latitude: el.Center.Lat, Longitude: el.Center.Lon}
	default:
		return pos, false
	}
	return pos, pos.Valid()
}
