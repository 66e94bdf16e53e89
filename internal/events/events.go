// Package events publishes domain events to a message bus.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	SubjectExcursionPlanned = "excursion.planned"
	SubjectSessionCompleted = "excursion.session.completed"
	SubjectLocationCreated  = "location.created"
)

// Envelope wraps every published payload.
type Envelope struct {
	Subject    string    `json:"subject"`
	UserID     string    `json:"user_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// Publisher emits events. Implementations must not block on slow consumers.
type Publisher interface {
	Publish(ctx context.Context, subject, userID string, data any) error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, string, any) error { return nil }

// NATSPublisher publishes JSON envelopes on core NATS subjects.
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

// NewNATSPublisher publishes on conn; prefix, when set, is prepended to
// every subject ("wander" gives "wander.excursion.planned").
func NewNATSPublisher(conn *nats.Conn, prefix string) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: prefix}
}

func (p *NATSPublisher) Publish(ctx context.Context, subject, userID string, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(Envelope{
		Subject:    subject,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", subject, err)
	}
	full := p.subjectFor(subject)
	if err := p.conn.Publish(full, payload); err != nil {
		return fmt.Errorf("publishing %s: %w", full, err)
	}
	return nil
}

func (p *NATSPublisher) subjectFor(subject string) string {
	if p.prefix == "" {
		return subject
	}
	return p.prefix + "." + subject
}

// ConnectConfig controls the NATS connection.
type ConnectConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// Connect dials NATS with reconnect handling that logs through logger.
func Connect(cfg ConnectConfig, logger *slog.Logger) (*nats.Conn, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	options := []nats.Option{
		nats.Name("wander"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats_reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			logger.Info("nats_closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats: %w", err)
	}
	return nc, nil
}

// LoggingPublisher logs publish failures from Next and always returns nil.
type LoggingPublisher struct {
	Next   Publisher
	Logger *slog.Logger
}

func (p LoggingPublisher) Publish(ctx context.Context, subject, userID string, data any) error {
	if err := p.Next.Publish(ctx, subject, userID, data); err != nil && p.Logger != nil {
		p.Logger.WarnContext(ctx, "event_publish_failed", "subject", subject, "error", err)
	}
	return nil
}
