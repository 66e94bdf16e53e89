package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPublisher struct{ calls int }

func (f *failingPublisher) Publish(context.Context, string, string, any) error {
	f.calls++
	return errors.New("bus down")
}

func TestLoggingPublisher_SwallowsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	next := &failingPublisher{}
	p := LoggingPublisher{Next: next, Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	err := p.Publish(context.Background(), SubjectLocationCreated, "u1", map[string]string{"id": "x"})

	require.NoError(t, err)
	assert.Equal(t, 1, next.calls)
	assert.Contains(t, buf.String(), "event_publish_failed")
	assert.Contains(t, buf.String(), "subject=location.created")
}

func TestNATSPublisher_SubjectPrefix(t *testing.T) {
	assert.Equal(t, "excursion.planned", NewNATSPublisher(nil, "").subjectFor(SubjectExcursionPlanned))
	assert.Equal(t, "wander.excursion.planned", NewNATSPublisher(nil, "wander").subjectFor(SubjectExcursionPlanned))
}

func TestNATSPublisher_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewNATSPublisher(nil, "").Publish(ctx, SubjectExcursionPlanned, "u1", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnvelope_JSONShape(t *testing.T) {
	env := Envelope{
		Subject:    SubjectSessionCompleted,
		UserID:     "u1",
		OccurredAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Data:       map[string]int{"duration_minutes": 40},
	}
	data, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"subject": "excursion.session.completed", "user_id": "u1",
		"occurred_at": "2026-03-01T10:00:00Z", "data": {"duration_minutes": 40}}`, string(data))
}
