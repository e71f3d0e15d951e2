package documentModel

import (
	"context"
	"errors"
)

// ErrDocumentNotFound is returned by DocumentStore.Get when no record exists for the id.
var ErrDocumentNotFound = errors.New("document not found")

// StorageUnavailableReason is the outcome reason when the backing store cannot
// be reached or created. Part of the API contract, not just a log message.
const StorageUnavailableReason = "Storage not available"

type ModelInfo struct {
	Name string `json:"name"`
}

type SecretsInfo struct {
	EmbeddingsAPIKeyConfigured bool `json:"embeddings_api_key_configured"`
}

type Statistics struct {
	CharacterCount int `json:"character_count"`
	WordCount      int `json:"word_count"`
	SizeBytes      int `json:"size_bytes"`
}

type Entity struct {
	Text       string  `json:"text"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

type SentimentScores struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

type Sentiment struct {
	Overall    string          `json:"overall"`
	Confidence float64         `json:"confidence"`
	Scores     SentimentScores `json:"scores"`
}

type Analysis struct {
	Entities   []Entity  `json:"entities"`
	KeyPhrases []string  `json:"key_phrases"`
	Sentiment  Sentiment `json:"sentiment"`
}

type ProcessingConfig struct {
	TimeoutSeconds int `json:"timeout_seconds"`
	MaxSizeMB      int `json:"max_size_mb"`
}

// StorageOutcome reports how the persistence attempt went. It is embedded in the
// record itself so the caller always learns the outcome without an error path.
type StorageOutcome struct {
	Saved  bool   `json:"saved"`
	Path   string `json:"path,omitempty"`
	Key    string `json:"key,omitempty"`
	Error  string `json:"error,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// ProcessedDocument is the persisted and returned result of one /process call.
// Created once per request, written once, never updated.
type ProcessedDocument struct {
	DocumentID       string           `json:"document_id"`
	Filename         string           `json:"filename"`
	ProcessedAt      string           `json:"processed_at"`
	Environment      string           `json:"environment"`
	Model            ModelInfo        `json:"model"`
	Secrets          SecretsInfo      `json:"secrets"`
	Statistics       Statistics       `json:"statistics"`
	Analysis         Analysis         `json:"analysis"`
	ProcessingConfig ProcessingConfig `json:"processing_config"`
	Storage          *StorageOutcome  `json:"storage,omitempty"`
}

type DocumentSummary struct {
	DocumentID string `json:"document_id"`
	SizeBytes  int64  `json:"size_bytes"`
	CreatedAt  string `json:"created_at"`
}

// DocumentStore is a flat id-to-record mapping. Save fills in doc.Storage with
// the outcome and never returns an error: persistence failures degrade, they
// don't fail the request. The success outcome is set before serialization so a
// persisted record is identical to the one returned to the caller.
type DocumentStore interface {
	Available(ctx context.Context) bool
	Save(ctx context.Context, doc *ProcessedDocument)
	Get(ctx context.Context, id string) ([]byte, error)
	List(ctx context.Context) ([]DocumentSummary, error)
}
