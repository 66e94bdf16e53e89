// Package gather fans a planning request out to every configured location
// source and normalizes what comes back into candidate locations.
package gather

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/selector"
	"github.com/alexanderramin/wander/internal/source"
)

// OSMPolicy controls when the open map-data source is queried.
type OSMPolicy string

const (
	// OSMAlways queries every source concurrently.
	OSMAlways OSMPolicy = "always"
	// OSMWhenSparse queries open map data only when the higher-trust sources
	// returned fewer than OSMMinCandidates records.
	OSMWhenSparse OSMPolicy = "when_sparse"
)

// Config tunes the gatherer.
type Config struct {
	OSMPolicy        OSMPolicy
	OSMMinCandidates int
	Fallback         FallbackConfig
}

func DefaultConfig() Config {
	return Config{
		OSMPolicy:        OSMAlways,
		OSMMinCandidates: 5,
		Fallback:         DefaultFallbackConfig(),
	}
}

// Outcome values reported per source.
const (
	OutcomeOK      = "ok"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

// SourceReport records how one source behaved during a gather.
type SourceReport struct {
	Source   domain.Source
	Outcome  string
	Records  int
	Duration time.Duration
	Err      error
}

// Result is the outcome of one gather.
type Result struct {
	Candidates []domain.CandidateLocation
	Reports    []SourceReport
	Synthetic  int
}

// Recorder receives per-source fetch telemetry.
type Recorder interface {
	ObserveSourceFetch(source domain.Source, outcome string, records int, d time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) ObserveSourceFetch(domain.Source, string, int, time.Duration) {}

// Gatherer queries sources concurrently with per-source error isolation.
type Gatherer struct {
	sources  []source.Source
	cfg      Config
	logger   *slog.Logger
	recorder Recorder
}

// Option customizes a Gatherer.
type Option func(*Gatherer)

func WithLogger(l *slog.Logger) Option {
	return func(g *Gatherer) {
		if l != nil {
			g.logger = l
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(g *Gatherer) {
		if r != nil {
			g.recorder = r
		}
	}
}

// New builds a Gatherer. Sources are consulted, and their results merged,
// in the order given.
func New(sources []source.Source, cfg Config, opts ...Option) *Gatherer {
	if cfg.OSMPolicy == "" {
		cfg.OSMPolicy = OSMAlways
	}
	if cfg.OSMMinCandidates <= 0 {
		cfg.OSMMinCandidates = DefaultConfig().OSMMinCandidates
	}
	g := &Gatherer{
		sources:  sources,
		cfg:      cfg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder: noopRecorder{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type fetchResult struct {
	records []source.Record
	report  SourceReport
}

// Gather collects candidates for a validated context and search plan. It
// never fails as a whole: a failed source contributes nothing and is logged.
func (g *Gatherer) Gather(ctx context.Context, uc domain.UserContext, plan selector.SearchPlan) Result {
	q := source.Query{
		Center:       *uc.Location,
		RadiusMeters: plan.RadiusMeters,
		Mode:         plan.Mode,
		Goal:         uc.Goal,
	}

	results := make([]fetchResult, len(g.sources))
	if g.cfg.OSMPolicy == OSMWhenSparse {
		var trusted, osm []int
		for i, s := range g.sources {
			if s.Kind() == domain.SourceOSM {
				osm = append(osm, i)
			} else {
				trusted = append(trusted, i)
			}
		}
		g.fetchAll(ctx, q, trusted, results)

		count := 0
		for _, i := range trusted {
			count += len(results[i].records)
		}
		if count < g.cfg.OSMMinCandidates {
			g.fetchAll(ctx, q, osm, results)
		} else {
			for _, i := range osm {
				results[i].report = SourceReport{Source: g.sources[i].Kind(), Outcome: OutcomeSkipped}
			}
		}
	} else {
		all := make([]int, len(g.sources))
		for i := range all {
			all[i] = i
		}
		g.fetchAll(ctx, q, all, results)
	}

	var res Result
	for _, r := range results {
		res.Reports = append(res.Reports, r.report)
		for _, rec := range r.records {
			res.Candidates = append(res.Candidates, Normalize(r.report.Source, rec, q.Center, plan.Mode))
		}
	}

	if g.cfg.Fallback.Enabled && reachable(res.Candidates, uc) < g.cfg.Fallback.MinCandidates {
		ring := SyntheticRing(q.Center, plan, uc.Goal, g.cfg.Fallback)
		res.Synthetic = len(ring)
		res.Candidates = append(res.Candidates, ring...)
		g.logger.InfoContext(ctx, "synthetic fallback candidates added",
			"real", len(res.Candidates)-len(ring), "synthetic", len(ring))
	}
	return res
}

// reachable counts candidates whose round trip fits the time budget.
func reachable(candidates []domain.CandidateLocation, uc domain.UserContext) int {
	n := 0
	for _, c := range candidates {
		if selector.WithinBudget(c, uc.TimeAvailableMinutes) {
			n++
		}
	}
	return n
}

// fetchAll runs the indexed sources concurrently and joins on all of them.
func (g *Gatherer) fetchAll(ctx context.Context, q source.Query, indexes []int, results []fetchResult) {
	var wg sync.WaitGroup
	for _, i := range indexes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = g.fetchOne(ctx, g.sources[i], q)
		}(i)
	}
	wg.Wait()
}

func (g *Gatherer) fetchOne(ctx context.Context, src source.Source, q source.Query) (res fetchResult) {
	start := time.Now()
	kind := src.Kind()
	defer func() {
		if p := recover(); p != nil {
			res = fetchResult{report: SourceReport{Source: kind, Outcome: OutcomeFailed, Err: fmt.Errorf("source panicked: %v", p)}}
		}
		res.report.Duration = time.Since(start)
		if res.report.Err != nil {
			g.logger.WarnContext(ctx, "location source degraded",
				"source", kind, "duration_ms", res.report.Duration.Milliseconds(), "error", res.report.Err)
		}
		g.recorder.ObserveSourceFetch(kind, res.report.Outcome, res.report.Records, res.report.Duration)
	}()

	records, err := src.Fetch(ctx, q)
	if err != nil {
		return fetchResult{report: SourceReport{Source: kind, Outcome: OutcomeFailed, Err: err}}
	}
	return fetchResult{
		records: records,
		report:  SourceReport{Source: kind, Outcome: OutcomeOK, Records: len(records)},
	}
}
