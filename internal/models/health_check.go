package models

import "time"

// HealthCheck is the body of GET /api/v1/health. Services maps each backing
// service (redis, supabase, rabbitmq) to "healthy", "not configured" or an
// "unhealthy: ..." reason.
type HealthCheck struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}
