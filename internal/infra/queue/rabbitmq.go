package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "ex.leads"
	QueueName    = "q.lead-events"
	DLQName      = "q.lead-events.dlq"
	DLXName      = "ex.dlx"
	RoutingKey   = "k.lead-accepted"
)

type RabbitMQ struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		conn.Close()
		return nil, err
	}

	return &RabbitMQ{Conn: conn, Ch: ch}, nil
}

func setupTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(DLXName, "direct", true, false, false, false, nil); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(DLQName, true, false, false, false, nil); err != nil {
		return err
	}

	if err := ch.QueueBind(DLQName, RoutingKey, DLXName, false, nil); err != nil {
		return err
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    DLXName,
		"x-dead-letter-routing-key": RoutingKey,
	}

	if err := ch.ExchangeDeclare(ExchangeName, "direct", true, false, false, false, nil); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, args); err != nil {
		return err
	}

	return ch.QueueBind(QueueName, RoutingKey, ExchangeName, false, nil)
}

func (r *RabbitMQ) Close() {
	if r.Ch != nil {
		r.Ch.Close()
	}
	if r.Conn != nil {
		r.Conn.Close()
	}
}
