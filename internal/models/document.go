package models

import "time"

type WatermarkedDocument struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"original_name"`
	URL          string    `json:"url"`
	StoragePath  string    `json:"storage_path,omitempty"`
	Pages        int       `json:"pages"`
	FileSize     int64     `json:"file_size"`
	ProcessedAt  time.Time `json:"processed_at"`
}

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}
