package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/iliyamo/store-rating/internal/config"
)

// Publisher sends rating events to the configured queue.  Each publish
// opens its own connection, which keeps the publisher free of reconnect
// state at the cost of a dial per rating.
type Publisher struct {
	cfg config.QueueConfig
	log zerolog.Logger
}

const defaultDialTimeout = 2 * time.Second

// NewPublisher returns nil when publishing is disabled; a nil *Publisher
// accepts and drops every event.
func NewPublisher(cfg config.QueueConfig, log zerolog.Logger) *Publisher {
	if !cfg.Enabled {
		return nil
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = defaultDialTimeout
	}
	return &Publisher{cfg: cfg, log: log.With().Str("component", "rating-publisher").Logger()}
}

// PublishRatingSubmitted marshals ev and publishes it as a persistent
// message on the rating queue.  Connecting to the broker is bounded by
// DialTimeout and by ctx's deadline, whichever is sooner.
func (p *Publisher) PublishRatingSubmitted(ctx context.Context, ev RatingSubmittedEvent) error {
	if p == nil {
		return nil
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	timeout := p.cfg.DialTimeout
	if dl, ok := ctx.Deadline(); ok && time.Until(dl) < timeout {
		timeout = time.Until(dl)
	}
	conn, err := amqp.DialConfig(p.cfg.URL, amqp.Config{Dial: amqp.DefaultDial(timeout)})
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.cfg.RatingQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.cfg.RatingQueue, false, false, msg); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	p.log.Debug().Uint64("rating_id", ev.RatingID).Msg("rating event published")
	return nil
}
