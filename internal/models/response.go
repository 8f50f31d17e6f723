package models

import "time"

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type ImageListResponse struct {
	Images []ImageResponse `json:"images"`
}

type ImageResponse struct {
	ID           int64     `json:"id"`
	OriginalName string    `json:"original_name"`
	URL          string    `json:"url"`
	Tags         string    `json:"tags"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}
