package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange = "blackout.events"

	// confirmWait bounds how long a publish blocks on the broker's
	// Return / Confirm; realtime fanout tolerates a lost confirm.
	confirmWait = 150 * time.Millisecond
)

var errNotConnected = errors.New("rabbitmq: publisher not connected")

// Publisher pushes envelope payloads onto a durable topic exchange with
// publisher confirms. It satisfies the application EventPublisher ports.
type Publisher struct {
	url      string
	exchange string

	mu        sync.Mutex
	conn      *amqp.Connection
	ch        *amqp.Channel
	confirmCh <-chan amqp.Confirmation
	returnCh  <-chan amqp.Return
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	p := &Publisher{url: url, exchange: exchange}
	if err := p.dial(); err != nil {
		return nil, err
	}
	return p, nil
}

// dial establishes connection, channel, exchange and confirm mode.
// Caller holds no lock during construction; later redials hold p.mu.
func (p *Publisher) dial() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}
	ch, err := openChannel(conn, p.exchange)
	if err != nil {
		_ = conn.Close()
		return err
	}

	p.conn = conn
	p.ch = ch
	p.confirmCh = ch.NotifyPublish(make(chan amqp.Confirmation, 1))
	p.returnCh = ch.NotifyReturn(make(chan amqp.Return, 1))
	return nil
}

func openChannel(conn *amqp.Connection, exchange string) (*amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, err
	}
	return ch, nil
}

func (p *Publisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
	return nil
}

// PublishEvent marshals the payload and publishes it under routingKey with a
// fresh message id. A publish on a dead channel gets one redial before the
// error surfaces to the caller.
func (p *Publisher) PublishEvent(ctx context.Context, routingKey string, payload any) error {
	if routingKey == "" {
		return errors.New("rabbitmq: missing routing key")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	msg := amqp.Publishing{
		MessageId:   uuid.NewString(),
		ContentType: "application/json",
		Timestamp:   time.Now().UTC(),
		Body:        body,
	}

	err = p.publishLocked(ctx, routingKey, msg)
	if err == nil || errors.Is(err, ctx.Err()) {
		return err
	}

	// channel-level failures (closed conn, broker restart): redial once
	p.closeLocked()
	if derr := p.dial(); derr != nil {
		return derr
	}
	return p.publishLocked(ctx, routingKey, msg)
}

func (p *Publisher) publishLocked(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	if p.ch == nil {
		return errNotConnected
	}

	// mandatory, so unroutable messages come back on returnCh
	if err := p.ch.PublishWithContext(ctx, p.exchange, routingKey, true, false, msg); err != nil {
		return err
	}

	select {
	case ret := <-p.returnCh:
		return errors.New("rabbitmq: no route for " + ret.RoutingKey)
	case conf := <-p.confirmCh:
		if !conf.Ack {
			return errors.New("rabbitmq: broker nacked publish")
		}
		return nil
	case <-time.After(confirmWait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
