package models

import "time"

type WatermarkJobRequest struct {
	DocumentPath string `json:"document_path" binding:"required"`
}

type WatermarkJob struct {
	ID           string               `json:"id"`
	DocumentPath string               `json:"document_path"`
	Status       string               `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
	Result       *WatermarkedDocument `json:"result,omitempty"`
	Error        string               `json:"error,omitempty"`
}

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)
