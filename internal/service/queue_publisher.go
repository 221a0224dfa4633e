// Package queue_publisher publishes domain events to RabbitMQ.  Errors are
// logged and returned so callers can ignore failures without interrupting
// the main request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	q "github.com/iliyamo/cinema-seat-booking/internal/queue"
)

// Publisher sends booking.confirmed events.  Each publish dials its own
// connection: bookings are rare and the broker may be absent in
// development.
type Publisher struct {
	url         string
	dialTimeout time.Duration
}

// New returns a Publisher for the broker at url.
func New(url string) *Publisher {
	return &Publisher{url: url, dialTimeout: 2 * time.Second}
}

// BookingConfirmed converts the receipt into a BookingConfirmedEvent and
// publishes it as a persistent message on the default exchange.
func (p *Publisher) BookingConfirmed(ctx context.Context, profileID string, b model.Booking) error {
	return p.publish(ctx, toEvent(profileID, b))
}

func toEvent(profileID string, b model.Booking) q.BookingConfirmedEvent {
	return q.BookingConfirmedEvent{
		ProfileID:   profileID,
		MovieIndex:  b.MovieIndex,
		MovieTitle:  b.MovieTitle,
		Seats:       append([]int(nil), b.Seats...),
		UnitPrice:   b.UnitPrice,
		Total:       b.Total,
		Method:      b.Method,
		ConfirmedAt: q.FormatTime(b.ConfirmedAt),
	}
}

func (p *Publisher) publish(ctx context.Context, event q.BookingConfirmedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(p.dialTimeout)})
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		q.BookingQueueName, // name
		true,               // durable
		false,              // autoDelete
		false,              // exclusive
		false,              // noWait
		nil,                // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := ch.PublishWithContext(ctx,
		"",                 // default exchange
		q.BookingQueueName, // routing key = queue name
		false,              // mandatory
		false,              // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
