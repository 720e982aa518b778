package queue

import "fmt"

// GetQueueStats reports how many watermark jobs are waiting and how many
// workers consume them.
func (q *QueueService) GetQueueStats() (map[string]interface{}, error) {
	queueInfo, err := q.channel.QueueInspect(q.queueName)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect queue: %w", err)
	}

	stats := map[string]interface{}{
		"queue":     queueInfo.Name,
		"pending":   queueInfo.Messages,
		"consumers": queueInfo.Consumers,
	}

	return stats, nil
}

// HealthCheck reports whether the connection and channel are still usable.
func (q *QueueService) HealthCheck() string {
	if q.conn == nil || q.conn.IsClosed() {
		return "unhealthy: connection closed"
	}

	if q.channel == nil {
		return "unhealthy: channel not available"
	}

	return "healthy"
}
