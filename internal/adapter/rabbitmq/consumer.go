package rabbitmq

import (
	"context"
	"fmt"
	"log"
	"time"

	"mocktail/internal/interfaces"
)

const reconnectDelay = 5 * time.Second

type consumer struct {
	conn Connection
}

func NewConsumer(conn Connection) interfaces.DispenseConsumer {
	return &consumer{conn: conn}
}

// ConsumeDispenses delivers every dispense announcement to handler. It keeps
// re-subscribing after channel failures until the context is cancelled.
func (c *consumer) ConsumeDispenses(ctx context.Context, handler interfaces.DispenseHandler) error {
	for {
		err := c.consumeOnce(ctx, handler)

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			return nil
		}

		log.Printf("Dispense consumer disconnected: %v. Reconnecting in %s...", err, reconnectDelay)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

func (c *consumer) consumeOnce(ctx context.Context, handler interfaces.DispenseHandler) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	closeChan := ch.NotifyClose()

	if err := ch.ExchangeDeclare(dispensedExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	// Temporary exclusive queue: every subscriber sees every dispense.
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, "", dispensedExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-closeChan:
			if err != nil {
				return fmt.Errorf("channel closed: %w", err)
			}
			return fmt.Errorf("channel closed gracefully")

		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("messages channel closed")
			}
			// Notifications are best-effort on both ends.
			_ = handler(ctx, msg.Body)
		}
	}
}
