package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadEventPayload is the fan-out message published after a lead has been
// accepted and mailed. Consumers (analytics, CRM sync) are external to this
// service; publishing is best-effort and never changes the request outcome.
type LeadEventPayload struct {
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      string    `json:"phone,omitempty"`
	Platform   string    `json:"platform,omitempty"`
	Campaign   string    `json:"campaign,omitempty"`
	AcceptedAt time.Time `json:"accepted_at"`
	Origin     string    `json:"origin"`
}

type LeadEventPublisherInterface interface {
	PublishLeadAccepted(ctx context.Context, payload LeadEventPayload) error
}

type RabbitMQPublisher struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewPublisher(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQPublisher) PublishLeadAccepted(ctx context.Context, payload LeadEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal lead event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish lead event: %w", err)
	}

	return nil
}
