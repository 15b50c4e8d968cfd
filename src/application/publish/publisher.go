package publish

import (
	"stem-separator-workers/src/lib/cerr"
	"sync"

	"github.com/streadway/amqp"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

var _ Publisher = &RabbitMQPublisher{}

//counterfeiter:generate . Publisher
type Publisher interface {
	Publish(msg amqp.Publishing) error
}

func NewRabbitMQPublisher(conn *amqp.Connection, queueName string) (*RabbitMQPublisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, cerr.Wrap(err).Error("Failed to create rabbit channel")
	}

	if _, err := channel.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		_ = channel.Close()
		return nil, cerr.Field("queue_name", queueName).Wrap(err).Error("Failed to declare queue")
	}

	return &RabbitMQPublisher{
		channel:   channel,
		queueName: queueName,
	}, nil
}

// RabbitMQPublisher is safe for concurrent use; amqp channels are not.
type RabbitMQPublisher struct {
	channel   *amqp.Channel
	queueName string
	lock      sync.Mutex
}

func (r *RabbitMQPublisher) Publish(msg amqp.Publishing) error {
	msg.ContentType = "application/json"
	msg.DeliveryMode = amqp.Persistent

	r.lock.Lock()
	defer r.lock.Unlock()

	if err := r.channel.Publish("", r.queueName, true, false, msg); err != nil {
		return cerr.Field("queue_name", r.queueName).
			Field("message_type", msg.Type).
			Wrap(err).Error("Failed to publish message")
	}

	return nil
}

func (r *RabbitMQPublisher) Close() error {
	return r.channel.Close()
}
