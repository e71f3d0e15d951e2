package adapter

import (
	"time"

	"github.com/akolanti/DocProcessorAPI/internal/adapter/utils"
	"github.com/akolanti/DocProcessorAPI/internal/analysis"
	"github.com/akolanti/DocProcessorAPI/internal/api"
	"github.com/akolanti/DocProcessorAPI/internal/config"
	"github.com/akolanti/DocProcessorAPI/internal/domain/documentModel"
)

// ToProcessedDocument builds the full record for one processing request:
// fresh id, UTC timestamp, measured statistics, canned analysis, and a
// snapshot of the configuration in effect. Storage stays nil until the
// store has had its say.
func ToProcessedDocument(cfg config.Config, content string, filename string) documentModel.ProcessedDocument {
	return documentModel.ProcessedDocument{
		DocumentID:  utils.GetNewUUID(),
		Filename:    filename,
		ProcessedAt: utils.FormatTimestamp(time.Now()),
		Environment: cfg.Environment,
		Model:       documentModel.ModelInfo{Name: cfg.ModelName},
		Secrets:     documentModel.SecretsInfo{EmbeddingsAPIKeyConfigured: cfg.EmbeddingsKeyConfigured},
		Statistics:  analysis.ComputeStatistics(content),
		Analysis:    analysis.MockResult(),
		ProcessingConfig: documentModel.ProcessingConfig{
			TimeoutSeconds: cfg.ProcessingTimeoutSeconds,
			MaxSizeMB:      cfg.MaxDocumentSizeMB,
		},
	}
}

func ToServiceInfoResponse(cfg config.Config) api.ServiceInfoResponse {
	return api.ServiceInfoResponse{
		Service:     config.ServiceName,
		Status:      "running",
		Version:     config.ServiceVersion,
		Environment: cfg.Environment,
		Model:       documentModel.ModelInfo{Name: cfg.ModelName},
		Secrets:     documentModel.SecretsInfo{EmbeddingsAPIKeyConfigured: cfg.EmbeddingsKeyConfigured},
		Config: api.ConfigSnapshot{
			MaxDocumentSizeMB:        cfg.MaxDocumentSizeMB,
			ProcessingTimeoutSeconds: cfg.ProcessingTimeoutSeconds,
			LogLevel:                 cfg.LogLevel,
			StoragePath:              cfg.StoragePath,
		},
	}
}
