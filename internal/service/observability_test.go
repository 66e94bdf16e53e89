package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/wander/internal/contract"
)

func TestLogUseCaseObserver_Levels(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{"success", nil, "level=INFO"},
		{"invalid plan input", &contract.PlanError{Code: contract.ErrInvalidInput, Message: "bad"}, "level=WARN"},
		{"session not found", &contract.SessionError{Code: contract.ErrSessionNotFound, Message: "gone"}, "level=WARN"},
		{"invalid location", ErrInvalidLocation, "level=WARN"},
		{"composer failure", &contract.PlanError{Code: contract.ErrComposerFailed, Message: "down"}, "level=ERROR"},
		{"storage failure", errors.New("disk full"), "level=ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogUseCaseObserver(&buf).ObserveUseCase(context.Background(), UseCaseEvent{
				Name: "plan-excursion", Duration: 12 * time.Millisecond, Success: tt.err == nil, Err: tt.err,
			})
			assert.Contains(t, buf.String(), tt.level)
		})
	}
}

func TestLogUseCaseObserver_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	NewLogUseCaseObserver(&buf).ObserveUseCase(context.Background(), UseCaseEvent{
		Name:   "plan-excursion",
		Fields: map[string]any{"radius_m": 500, "mode": "walking", "candidates": 3},
	})
	out := buf.String()
	c, m, r := strings.Index(out, "candidates="), strings.Index(out, "mode="), strings.Index(out, "radius_m=")
	assert.True(t, c < m && m < r, out)
}

type countingObserver struct{ n int }

func (c *countingObserver) ObserveUseCase(context.Context, UseCaseEvent) { c.n++ }

func TestCombineObservers(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, combineObservers(nil))
	assert.IsType(t, NoopUseCaseObserver{}, combineObservers([]UseCaseObserver{nil}))

	single := &countingObserver{}
	assert.Same(t, single, combineObservers([]UseCaseObserver{nil, single}))

	a, b := &countingObserver{}, &countingObserver{}
	combineObservers([]UseCaseObserver{a, nil, b}).ObserveUseCase(context.Background(), UseCaseEvent{})
	assert.Equal(t, 1, a.n)
	assert.Equal(t, 1, b.n)
}

func TestNewLogUseCaseObserver_NilWriter(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewSlogUseCaseObserver(nil))
}
