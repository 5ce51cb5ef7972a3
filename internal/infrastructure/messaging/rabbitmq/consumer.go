package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	zlog "github.com/rs/zerolog/log"

	"github.com/blackout-app/backend/internal/notify"
)

// Consumer reads community events off the topic exchange and feeds the
// in-process hub that backs the SSE stream. It reconnects forever until
// the context is canceled.
type Consumer struct {
	url      string
	exchange string
	queue    string
	hub      *notify.Hub
}

// bindings the stream cares about. Everything is scoped by community, so a
// payload without community_id is dropped.
var consumerBindings = []string{
	"photo.captured",
	"member.joined",
	"member.left",
	"community.deleted",
}

func NewConsumer(url, exchange string, hub *notify.Hub) *Consumer {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &Consumer{
		url:      url,
		exchange: exchange,
		queue:    "blackout-api.stream",
		hub:      hub,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			if err := c.connectAndConsume(ctx); err != nil {
				zlog.Warn().Err(err).Msg("stream consumer disconnected, retrying in 5s")
				select {
				case <-ctx.Done():
					return
				case <-time.After(5 * time.Second):
				}
			}
		}
	}
}

func (c *Consumer) connectAndConsume(ctx context.Context) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(
		c.exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	q, err := ch.QueueDeclare(
		c.queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	for _, rk := range consumerBindings {
		if err := ch.QueueBind(q.Name, rk, c.exchange, false, nil); err != nil {
			return err
		}
	}

	msgs, err := ch.Consume(
		q.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	zlog.Info().Str("queue", c.queue).Msg("stream consumer started")

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return amqp.ErrClosed
			}
			if err := c.handle(d.RoutingKey, d.Body); err != nil {
				zlog.Error().Err(err).Str("routing_key", d.RoutingKey).Msg("failed to handle message")
				_ = d.Nack(false, false)
			} else {
				_ = d.Ack(false)
			}
		}
	}
}

func (c *Consumer) handle(routingKey string, body []byte) error {
	var env struct {
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return err
	}

	var scope struct {
		CommunityID string `json:"community_id"`
	}
	if err := json.Unmarshal(env.Payload, &scope); err != nil {
		return err
	}
	if scope.CommunityID == "" {
		zlog.Debug().Str("routing_key", routingKey).Msg("dropping message without community scope")
		return nil
	}

	c.hub.Publish(scope.CommunityID, notify.Message{
		Event:   routingKey,
		Payload: env.Payload,
	})
	return nil
}
