package queue

import (
	"context"
	"fmt"

	"github.com/phambaophuc/pdf-watermark/internal/models"
	"github.com/phambaophuc/pdf-watermark/internal/services/processor"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const defaultQueueName = "pdf_watermark"

// JobStore holds source documents and job records.
type JobStore interface {
	Download(ctx context.Context, path string) ([]byte, error)
	SaveJob(ctx context.Context, job *models.WatermarkJob) error
}

type QueueService struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	logger    *zap.Logger
	queueName string
	processor *processor.DocumentProcessor
	store     JobStore
}

func NewQueueService(
	rabbitmqURL string,
	processor *processor.DocumentProcessor,
	store JobStore,
	logger *zap.Logger,
) (*QueueService, error) {
	conn, err := amqp.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// One unacked document per worker; PDFs can be large.
	if err := channel.Qos(1, 0, false); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set qos: %w", err)
	}

	_, err = channel.QueueDeclare(
		defaultQueueName, // name
		true,             // durable
		false,            // delete when unused
		false,            // exclusive
		false,            // no-wait
		nil,              // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &QueueService{
		conn:      conn,
		channel:   channel,
		logger:    logger,
		queueName: defaultQueueName,
		processor: processor,
		store:     store,
	}, nil
}

// Close closes the queue connection
func (q *QueueService) Close() error {
	if q.channel != nil {
		q.channel.Close()
	}
	if q.conn != nil {
		q.conn.Close()
	}
	return nil
}
