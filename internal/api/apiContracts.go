package api

import "github.com/akolanti/DocProcessorAPI/internal/domain/documentModel"

// requests---------------------

type ProcessRequest struct {
	Content  string `json:"content"`
	Filename string `json:"filename,omitempty"`
}

// responses--------------------

type ErrorResponse struct {
	Error string `json:"error" example:"Document not found"`
}

type HealthResponse struct {
	Status string `json:"status" example:"healthy"`
}

type ConfigSnapshot struct {
	MaxDocumentSizeMB        int    `json:"max_document_size_mb" example:"10"`
	ProcessingTimeoutSeconds int    `json:"processing_timeout_seconds" example:"15"`
	LogLevel                 string `json:"log_level" example:"INFO"`
	StoragePath              string `json:"storage_path" example:"/tmp/processed"`
}

type ServiceInfoResponse struct {
	Service     string                    `json:"service"`
	Status      string                    `json:"status" example:"running"`
	Version     string                    `json:"version" example:"1.0.0"`
	Environment string                    `json:"environment" example:"development"`
	Model       documentModel.ModelInfo   `json:"model"`
	Secrets     documentModel.SecretsInfo `json:"secrets"`
	Config      ConfigSnapshot            `json:"config"`
}

type DocumentListResponse struct {
	Documents []documentModel.DocumentSummary `json:"documents"`
	Count     *int                            `json:"count,omitempty"`
	Error     string                          `json:"error,omitempty"`
}
