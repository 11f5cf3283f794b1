package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Subjects for the events this service publishes.
const (
	SubjectOrderPlaced     = "bazario.order.placed"
	SubjectPaymentCaptured = "bazario.payment.captured"
	SubjectPaymentFailed   = "bazario.payment.failed"
)

// OrderPlaced is published after an order is committed.
type OrderPlaced struct {
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	GroupCount int       `json:"groupCount"`
	Total      float64   `json:"total"`
	PlacedAt   time.Time `json:"placedAt"`
}

// PaymentResult is published after a capture attempt, successful or not.
type PaymentResult struct {
	OrderID     string    `json:"orderId"`
	Method      string    `json:"method"`
	ProviderRef string    `json:"providerRef"`
	Status      string    `json:"status"`
	Amount      float64   `json:"amount"`
	CapturedAt  time.Time `json:"capturedAt"`
}

// Publisher publishes domain events for downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, subject string, event any) error
	Close()
}

// NatsPublisher publishes events to a NATS server.
type NatsPublisher struct {
	conn   *nats.Conn
	logger zerolog.Logger
}

// NewNatsPublisher connects to NATS at the given URL.
func NewNatsPublisher(url string, logger zerolog.Logger) (*NatsPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("bazario"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}

	return &NatsPublisher{
		conn:   conn,
		logger: logger,
	}, nil
}

func (p *NatsPublisher) Publish(ctx context.Context, subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.conn.Publish(subject, data); err != nil {
		return err
	}

	p.logger.Debug().
		Str("subject", subject).
		Int("bytes", len(data)).
		Msg("event published")

	return nil
}

func (p *NatsPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn().Err(err).Msg("nats drain failed")
	}
}

// NoopPublisher discards events. Used when no NATS URL is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, subject string, event any) error { return nil }
func (NoopPublisher) Close()                                                       {}
