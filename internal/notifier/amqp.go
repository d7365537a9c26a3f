package notifier

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"paritos.app/delivery/internal/entity"
)

const notificationsExchange = "notifications_fanout"

// AMQPEmitter publishes notifications to a fanout exchange so every
// connected client session picks them up.
type AMQPEmitter struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPEmitter(url string) (*AMQPEmitter, error) {

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(
		notificationsExchange, // name
		"fanout",              // type
		true,                  // durable
		false,                 // auto-deleted
		false,                 // internal
		false,                 // no-wait
		nil,                   // args
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &AMQPEmitter{conn: conn, ch: ch}, nil
}

type notificationMessage struct {
	ID       string `json:"id"`
	Audience string `json:"audience"`
	OrderID  uint64 `json:"order_id"`
	Message  string `json:"message"`
	Date     string `json:"date"`
}

func (e *AMQPEmitter) Emit(ctx context.Context, notification entity.Notification) error {

	body, err := json.Marshal(notificationMessage{
		ID:       notification.ID,
		Audience: string(notification.Audience),
		OrderID:  notification.OrderID,
		Message:  notification.Message,
		Date:     notification.Date.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
	if err != nil {
		return err
	}

	return e.ch.PublishWithContext(
		ctx,
		notificationsExchange,
		"",    // routing key, ignored by fanout
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   notification.ID,
			Timestamp:   notification.Date,
			Body:        body,
		},
	)
}

func (e *AMQPEmitter) Close() error {
	if err := e.ch.Close(); err != nil {
		e.conn.Close()
		return err
	}

	return e.conn.Close()
}
