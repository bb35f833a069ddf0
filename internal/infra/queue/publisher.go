package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher pushes JSON payloads onto a durable queue. Audit events from the
// cascade orchestrator go through here; publishing is best-effort and never
// blocks the originating operation on broker trouble beyond the publish call
// itself.
type Publisher struct {
	ch    *amqp.Channel
	queue string
	log   *zap.Logger
}

func NewPublisher(conn *amqp.Connection, queue string, log *zap.Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}

	return &Publisher{ch: ch, queue: queue, log: log}, nil
}

func (p *Publisher) PublishJSON(ctx context.Context, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	return p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}
