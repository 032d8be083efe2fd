package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"ticketapp/internal/infra/db"
	"ticketapp/internal/infra/repository"
	"ticketapp/internal/pkg/clock"
	"ticketapp/internal/pkg/config"
	"ticketapp/internal/pkg/errs"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	consumerPrefetch   = 50
	maxReconnectDelay  = 30 * time.Second
	baseReconnectDelay = time.Second
)

// TicketConsumer drains the ticket.issue queue and persists tickets. The
// insert is idempotent on booking_id, so redeliveries after a crash or a
// broker hiccup produce no duplicates.
type TicketConsumer struct {
	url     string
	tickets *repository.TicketRepository
	db      db.DBTX
	clock   clock.Clock
}

func NewTicketConsumer(cfg config.QueueConfig, tickets *repository.TicketRepository, db db.DBTX, clock clock.Clock) *TicketConsumer {
	return &TicketConsumer{
		url:     cfg.URL,
		tickets: tickets,
		db:      db,
		clock:   clock,
	}
}

// Run consumes until ctx is cancelled, reconnecting with capped exponential
// backoff when the broker connection drops.
func (c *TicketConsumer) Run(ctx context.Context) error {
	delay := baseReconnectDelay
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			slog.Warn("ticket consumer dial failed", "error", err.Error(), "retry_in", delay.String())
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			if delay < maxReconnectDelay {
				delay *= 2
			}
			continue
		}
		delay = baseReconnectDelay

		if err := c.consumeLoop(ctx, conn); err != nil {
			_ = conn.Close()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Warn("ticket consumer loop ended, reconnecting", "error", err.Error())
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(2 * time.Second):
			}
			continue
		}

		_ = conn.Close()
		return nil
	}
}

func (c *TicketConsumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return errs.Wrap(err, "failed to open channel")
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(consumerPrefetch, 0, false); err != nil {
		slog.Warn("ticket consumer set QoS failed", "error", err.Error())
	}

	if _, err := ch.QueueDeclare(TicketIssueQueue, true, false, false, false, nil); err != nil {
		return errs.Wrap(err, "failed to declare queue")
	}

	msgs, err := ch.Consume(TicketIssueQueue, "", false, false, false, false, nil)
	if err != nil {
		return errs.Wrap(err, "failed to start consuming")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errs.New("deliveries channel closed")
			}
			if err := c.handleMessage(ctx, d.Body); err != nil {
				slog.Error("ticket message handling failed", "error", err.Error())
				// Reject without requeue to avoid a tight redelivery loop.
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *TicketConsumer) handleMessage(ctx context.Context, body []byte) error {
	var msg TicketIssueMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return errs.Wrap(err, "failed to unmarshal ticket message")
	}

	issuedAt := c.clock.Now()
	payload := buildQRPayload(msg.BookingID, msg.UserID, msg.EventID, issuedAt)

	err := c.tickets.Create(ctx, c.db, uuid.New(), msg.BookingID, msg.UserID, msg.EventID, payload, issuedAt)
	if err != nil {
		return errs.Wrap(err, "failed to persist ticket")
	}

	slog.Info("ticket issued", "booking_id", msg.BookingID, "event_id", msg.EventID)
	return nil
}

func buildQRPayload(bookingID, userID, eventID uuid.UUID, issuedAt time.Time) string {
	return fmt.Sprintf("TICKET|%s|%s|%s|%d", bookingID, userID, eventID, issuedAt.Unix())
}
