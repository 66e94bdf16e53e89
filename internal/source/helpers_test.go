package source

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/wander/internal/domain"
)

var center = domain.Coordinates{Latitude: 40.0, Longitude: -74.0}

type staticLister struct {
	locs []*domain.CustomLocation
	err  error
}

func (s staticLister) List(context.Context) ([]*domain.CustomLocation, error) {
	return s.locs, s.err
}

type memoryCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
	setErr error
	sets   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	return nil
}

type countingSource struct {
	kind    domain.Source
	records []Record
	err     error
	calls   int
}

func (s *countingSource) Kind() domain.Source { return s.kind }

func (s *countingSource) Fetch(context.Context, Query) ([]Record, error) {
	s.calls++
	return s.records, s.err
}
