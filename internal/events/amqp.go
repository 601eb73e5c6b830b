package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes events to a topic exchange, routed by event type.
type AMQPPublisher struct {
	conn     *amqp.Connection
	exchange string
	logger   logrus.FieldLogger

	mu sync.Mutex
	ch channel
}

// DialAMQP connects to the broker and declares the exchange.
func DialAMQP(url, exchange string, logger logrus.FieldLogger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

func (p *AMQPPublisher) Publish(_ context.Context, ev Event) {
	body, err := json.Marshal(ev)
	if err != nil {
		p.logger.WithError(err).WithField("event", ev.Type).Warn("encode event")
		return
	}

	// amqp channels are not safe for concurrent use
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.Publish(p.exchange, ev.Type, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   ev.OccurredAt,
		Body:        body,
	})
	if err != nil {
		p.logger.WithError(err).WithField("event", ev.Type).Warn("publish event")
	}
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	chErr := p.ch.Close()
	var connErr error
	if p.conn != nil {
		connErr = p.conn.Close()
	}
	if chErr != nil {
		return chErr
	}
	return connErr
}
