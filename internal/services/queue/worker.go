package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/phambaophuc/pdf-watermark/internal/models"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

func (q *QueueService) StartWorker(ctx context.Context, workerID int) error {
	msgs, err := q.channel.Consume(
		q.queueName,                        // queue
		fmt.Sprintf("worker-%d", workerID), // consumer
		false,                              // auto-ack
		false,                              // exclusive
		false,                              // no-local
		false,                              // no-wait
		nil,                                // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	q.logger.Info("Worker started", zap.Int("worker_id", workerID))

	go func() {
		for {
			select {
			case <-ctx.Done():
				q.logger.Info("Worker stopping", zap.Int("worker_id", workerID))
				return
			case msg, ok := <-msgs:
				if !ok {
					q.logger.Warn("Message channel closed", zap.Int("worker_id", workerID))
					return
				}

				q.processMessage(ctx, msg, workerID)
			}
		}
	}()

	return nil
}

func (q *QueueService) processMessage(ctx context.Context, msg amqp.Delivery, workerID int) {
	if err := q.handleJob(ctx, msg.Body, workerID); err != nil {
		q.logger.Error("Rejecting malformed job",
			zap.Error(err),
			zap.Int("worker_id", workerID))
		msg.Nack(false, false) // Don't requeue malformed messages
		return
	}

	if err := msg.Ack(false); err != nil {
		q.logger.Error("Failed to ack message",
			zap.String("message_id", msg.MessageId),
			zap.Error(err))
	}
}

// handleJob runs one job and records its outcome. Only malformed messages
// are reported as errors; failed jobs are stored with StatusFailed.
func (q *QueueService) handleJob(ctx context.Context, body []byte, workerID int) error {
	var job models.WatermarkJob
	if err := json.Unmarshal(body, &job); err != nil {
		return err
	}
	if job.ID == "" || job.DocumentPath == "" {
		return fmt.Errorf("job is missing id or document path")
	}

	q.logger.Info("Processing job",
		zap.String("job_id", job.ID),
		zap.Int("worker_id", workerID))

	q.updateJob(ctx, &job, models.StatusProcessing)

	result, err := q.processJob(ctx, &job)
	if err != nil {
		job.Error = err.Error()
		q.updateJob(ctx, &job, models.StatusFailed)
		q.logger.Error("Job processing failed",
			zap.String("job_id", job.ID),
			zap.Error(err))
		return nil
	}

	job.Result = result
	q.updateJob(ctx, &job, models.StatusCompleted)
	q.logger.Info("Job completed successfully",
		zap.String("job_id", job.ID),
		zap.Int("pages", result.Pages))
	return nil
}

func (q *QueueService) updateJob(ctx context.Context, job *models.WatermarkJob, status string) {
	job.Status = status
	job.UpdatedAt = time.Now()

	if err := q.store.SaveJob(ctx, job); err != nil {
		q.logger.Warn("Failed to store job status",
			zap.String("job_id", job.ID),
			zap.String("status", status),
			zap.Error(err))
	}
}
