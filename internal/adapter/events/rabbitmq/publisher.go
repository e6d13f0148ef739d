// Package rabbitmq implements the event-broadcast sink over a RabbitMQ topic
// exchange. Publishing is best-effort: callers log failures and move on.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/hammerhouse/auction-backend/internal/domain"
)

// Routing keys per event type.
const (
	routingKeyBidAccepted = "bid.accepted"
	routingKeySoftClose   = "lot.softclose"
)

// Publisher broadcasts bid and soft-close events to a topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewPublisher dials the broker, opens a channel, and declares the durable
// topic exchange the events are published to.
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// EmitBid publishes a bid-accepted event.
func (p *Publisher) EmitBid(ctx context.Context, event domain.BidEvent) error {
	return p.publish(ctx, routingKeyBidAccepted, event)
}

// EmitSoftClose publishes a soft-close extension event.
func (p *Publisher) EmitSoftClose(ctx context.Context, event domain.SoftCloseEvent) error {
	return p.publish(ctx, routingKeySoftClose, event)
}

func (p *Publisher) publish(ctx context.Context, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", key, err)
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
