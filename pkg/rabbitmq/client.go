package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

const (
	ordersExchange         = "orders"
	ordersQueue            = "orders.events"
	orderCreatedRoutingKey = "order.created"
)

// Config holds the connection settings for the broker.
type Config struct {
	URL string
}

// Client wraps an AMQP connection and channel for order-event messaging.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewClient dials the broker and declares the orders exchange and queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(ordersExchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	queue, err := channel.QueueDeclare(ordersQueue, true, false, false, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := channel.QueueBind(queue.Name, "order.*", ordersExchange, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	return &Client{conn: conn, channel: channel}, nil
}

// Publish sends a raw message body to the given exchange and routing key.
func (c *Client) Publish(exchange, routingKey string, body []byte) error {
	return c.channel.Publish(exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
	})
}

// PublishOrderCreated serializes the message body and publishes it under the
// order.created routing key.
func (c *Client) PublishOrderCreated(messageBody map[string]interface{}) error {
	body, err := json.Marshal(messageBody)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}
	return c.Publish(ordersExchange, orderCreatedRoutingKey, body)
}

// ConsumeOrderEvents delivers each message on the orders queue to
// messageHandler, acking on nil and nacking (with requeue) on error. Blocks
// until the channel closes.
func (c *Client) ConsumeOrderEvents(messageHandler func(amqp.Delivery) error) error {
	deliveries, err := c.channel.Consume(ordersQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}

	for msg := range deliveries {
		if handleErr := messageHandler(msg); handleErr != nil {
			msg.Nack(false, true)
			continue
		}
		msg.Ack(false)
	}
	return nil
}

// Close shuts down the channel and connection.
func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
