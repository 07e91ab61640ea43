package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 3 * time.Second

var ErrPublisherClosed = errors.New("publisher is closed")

// session is one broker connection with a channel that has the exchange declared.
type session interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// dialFunc opens a session. The returned channel yields the close reason, if
// any, and is closed once the session is gone.
type dialFunc func() (session, <-chan *amqp.Error, error)

// AMQPPublisher publishes events as persistent JSON messages on a topic exchange,
// using the event type as routing key. A session closed by the broker or the
// network is replaced on the next Publish.
type AMQPPublisher struct {
	exchange string
	dial     dialFunc

	mu      sync.Mutex
	current session
	closed  <-chan *amqp.Error
	shut    bool
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	return newAMQPPublisher(exchange, func() (session, <-chan *amqp.Error, error) {
		return dialSession(url, exchange)
	})
}

func newAMQPPublisher(exchange string, dial dialFunc) (*AMQPPublisher, error) {
	p := &AMQPPublisher{exchange: exchange, dial: dial}
	if _, err := p.session(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    e.OccurredAt,
		Body:         body,
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	// A session can die between the health check and the publish; retry once on a fresh one.
	for attempt := 0; ; attempt++ {
		s, err := p.session()
		if err != nil {
			return fmt.Errorf("publish %s: %w", e.Type, err)
		}
		err = s.PublishWithContext(ctx, p.exchange, e.Type, false, false, msg)
		if err == nil {
			return nil
		}
		if attempt > 0 || !errors.Is(err, amqp.ErrClosed) {
			return fmt.Errorf("publish %s: %w", e.Type, err)
		}
		p.discard(s)
	}
}

// session returns the live session, redialing when the previous one was closed.
func (p *AMQPPublisher) session() (session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.shut {
		return nil, ErrPublisherClosed
	}
	if p.current != nil {
		select {
		case reason := <-p.closed:
			if reason != nil {
				log.Printf("rabbitmq session closed, reconnecting: %v", reason)
			}
			_ = p.current.Close()
			p.current = nil
		default:
			return p.current, nil
		}
	}

	s, closed, err := p.dial()
	if err != nil {
		return nil, err
	}
	p.current, p.closed = s, closed
	return s, nil
}

func (p *AMQPPublisher) discard(s session) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == s {
		_ = s.Close()
		p.current = nil
	}
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.shut = true
	if p.current == nil {
		return nil
	}
	err := p.current.Close()
	p.current = nil
	return err
}

type amqpSession struct {
	conn *amqp.Connection
	*amqp.Channel
}

func dialSession(url, exchange string) (session, <-chan *amqp.Error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declare exchange: %w", err)
	}
	// Connection failures are broadcast to every channel, so one listener covers both.
	closed := ch.NotifyClose(make(chan *amqp.Error, 1))
	return &amqpSession{conn: conn, Channel: ch}, closed, nil
}

func (s *amqpSession) Close() error {
	_ = s.Channel.Close()
	return s.conn.Close()
}
