package worker

import (
	"context"
	"stem-separator-workers/src/lib/cerr"
	"sync"

	"github.com/apex/log"
	"github.com/streadway/amqp"
)

type MessageChannel interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

type MessageRouter interface {
	HandleMessage(ctx context.Context, message amqp.Delivery) error
}

type QueueWorker struct {
	channel     MessageChannel
	channelLock sync.Mutex
	cancel      context.CancelFunc
	router      MessageRouter
	queueName   string
}

func NewQueueWorker(channel MessageChannel, queueName string, router MessageRouter) *QueueWorker {
	return &QueueWorker{
		channel:   channel,
		queueName: queueName,
		router:    router,
	}
}

func NewQueueWorkerFromConnection(conn *amqp.Connection, queueName string, router MessageRouter) (*QueueWorker, error) {
	rabbitChannel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, cerr.Wrap(err).Error("Failed to get channel")
	}

	queue, err := rabbitChannel.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)

	if err != nil {
		_ = rabbitChannel.Close()
		return nil, cerr.Wrap(err).Error("Failed to declare queue")
	}

	// one unacknowledged separation at a time per worker
	if err := rabbitChannel.Qos(1, 0, false); err != nil {
		_ = rabbitChannel.Close()
		return nil, cerr.Wrap(err).Error("Failed to set channel prefetch")
	}

	return NewQueueWorker(rabbitChannel, queue.Name, router), nil
}

// Start consumes until the channel closes or Stop is called.
func (q *QueueWorker) Start() error {
	log.Info("Starting worker")

	q.channelLock.Lock()
	if q.channel == nil {
		q.channelLock.Unlock()
		return cerr.Error("Worker has been stopped")
	}

	channel := q.channel
	defer channel.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.cancel = cancel

	messageStream, err := channel.Consume(
		q.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	q.channelLock.Unlock()

	if err != nil {
		return cerr.Field("queue_name", q.queueName).
			Wrap(err).Error("Failed to start consuming from channel")
	}

	for message := range messageStream {
		logger := log.WithField("message_type", message.Type)
		logger.Info("Handling message")

		err := q.router.HandleMessage(ctx, message)
		if err != nil {
			err = cerr.Field("message_type", message.Type).
				Wrap(err).Error("Failed to process message")

			cerr.Log(err)

			if err = message.Nack(false, false); err != nil {
				logger.Error("Failed to nack message")
			}
		} else {
			logger.Info("Successfully processed message")
			if err = message.Ack(false); err != nil {
				logger.Error("Failed to ack message")
			}
		}

		if ctx.Err() != nil {
			break
		}
	}

	log.Info("Worker stopped")
	return nil
}

// Stop cancels the message in flight and closes the channel.
func (q *QueueWorker) Stop() {
	q.channelLock.Lock()
	defer q.channelLock.Unlock()

	if q.cancel != nil {
		q.cancel()
	}

	if q.channel != nil {
		_ = q.channel.Close()
		q.channel = nil
	}
}
