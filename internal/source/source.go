// Package source adapts the external location providers to a single typed
// interface. Raw payloads are parsed and validated here so the rest of the
// pipeline only ever sees Records.
package source

import (
	"context"
	"errors"

	"github.com/alexanderramin/wander/internal/domain"
)

// ErrUnexpectedStatus is returned when a provider answers with a non-2xx code.
var ErrUnexpectedStatus = errors.New("unexpected provider status")

// Query is what every source receives for one planning request.
type Query struct {
	Center       domain.Coordinates
	RadiusMeters float64
	Mode         domain.TravelMode
	Goal         domain.Goal
}

// Record is a place as reported by one source, before normalization.
// SourceID is unique within its source only. Name may be empty.
type Record struct {
	SourceID    string                  `json:"source_id"`
	Name        string                  `json:"name,omitempty"`
	Description string                  `json:"description,omitempty"`
	Coordinates domain.Coordinates      `json:"coordinates"`
	Tags        []string                `json:"tags"`
	Terrain     domain.TerrainIntensity `json:"terrain,omitempty"`
}

// Source is a pluggable location provider.
type Source interface {
	Kind() domain.Source
	Fetch(ctx context.Context, q Query) ([]Record, error)
}
