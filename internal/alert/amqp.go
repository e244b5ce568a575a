package alert

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RoutingKey is the routing key used for every published alert.
const RoutingKey = "alert.created"

// publishChannel is the subset of *amqp.Channel the publisher needs.
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher relays alerts to a RabbitMQ topic exchange so desktop or
// mobile notifiers subscribed to it can display them.
type Publisher struct {
	conn     *amqp.Connection
	channel  publishChannel
	exchange string
}

// DialPublisher connects to url and declares a durable topic exchange.
func DialPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declaring exchange %s: %w", exchange, err)
	}

	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Show publishes a as JSON.
func (p *Publisher) Show(ctx context.Context, a Alert) error {
	body, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encoding alert: %w", err)
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, RoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    a.ID,
		Priority:     uint8(a.Priority),
		Body:         body,
		DeliveryMode: amqp.Persistent,
	})
	if err != nil {
		return fmt.Errorf("publishing alert %s: %w", a.ID, err)
	}
	return nil
}

// Close closes the channel and the connection.
func (p *Publisher) Close() error {
	var err error
	if p.channel != nil {
		err = p.channel.Close()
	}
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
