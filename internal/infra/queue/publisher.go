package queue

import (
	"context"
	"encoding/json"
	"sync"

	"ticketapp/internal/domain/booking"
	"ticketapp/internal/infra"
	"ticketapp/internal/pkg/clock"
	"ticketapp/internal/pkg/config"
	"ticketapp/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher hands ticket issuance requests to the broker. Messages are
// persistent and the queue durable, so an accepted request survives broker
// restarts.
type Publisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	clock clock.Clock
}

func NewPublisher(cfg config.QueueConfig, clock clock.Clock) (*Publisher, func(), error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to dial broker")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, errs.Wrap(err, "failed to open channel")
	}

	if _, err := ch.QueueDeclare(TicketIssueQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, errs.Wrap(err, "failed to declare queue")
	}

	p := &Publisher{conn: conn, ch: ch, clock: clock}
	cleanup := func() {
		_ = p.ch.Close()
		_ = p.conn.Close()
	}
	return p, cleanup, nil
}

func (p *Publisher) IssueTicket(ctx context.Context, b *booking.Booking) error {
	msg := TicketIssueMessage{
		BookingID:   b.ID(),
		UserID:      b.UserID(),
		EventID:     b.EventID(),
		Quantity:    b.Quantity(),
		RequestedAt: p.clock.Now(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return errs.Wrap(err, "failed to marshal ticket message")
	}

	// amqp channels are not safe for concurrent publishes.
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		"",               // default exchange
		TicketIssueQueue, // routing key = queue name
		false,            // mandatory
		false,            // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    msg.RequestedAt,
			Body:         body,
		},
	)
	if err != nil {
		return infra.WrapRepoErr("failed to publish ticket message", err, infra.KindUnavailable)
	}
	return nil
}
