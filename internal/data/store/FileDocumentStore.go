package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akolanti/DocProcessorAPI/internal/adapter/utils"
	"github.com/akolanti/DocProcessorAPI/internal/config"
	"github.com/akolanti/DocProcessorAPI/internal/domain/documentModel"
	"github.com/akolanti/DocProcessorAPI/internal/metrics"
	"github.com/akolanti/DocProcessorAPI/pkg/logger_i"
)

// FileDocumentStore keeps one pretty-printed JSON file per record in a flat
// directory. The container filesystem is ephemeral, so losing these on restart
// is expected and fine.
type FileDocumentStore struct {
	path   string
	logger *logger_i.Logger
}

func NewFileDocumentStore(path string) *FileDocumentStore {
	return &FileDocumentStore{
		path:   path,
		logger: logger_i.NewLogger("FileDocumentStore"),
	}
}

// EnsureDirectory idempotently creates the storage directory. Creation failure
// is a warning, not an error: the service keeps answering, just without
// persistence.
func (s *FileDocumentStore) EnsureDirectory() bool {
	if err := os.MkdirAll(s.path, config.StorageDirPerm); err != nil {
		s.logger.Warn("Could not create storage directory", "path", s.path, "error", err)
		return false
	}
	return true
}

func (s *FileDocumentStore) Available(ctx context.Context) bool {
	return s.EnsureDirectory()
}

func (s *FileDocumentStore) Save(ctx context.Context, doc *documentModel.ProcessedDocument) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "document id", doc.DocumentID)

	if !s.EnsureDirectory() {
		doc.Storage = &documentModel.StorageOutcome{Saved: false, Reason: documentModel.StorageUnavailableReason}
		metrics.IncrementStorageFailures()
		return
	}

	resultPath := filepath.Join(s.path, doc.DocumentID+".json")
	doc.Storage = &documentModel.StorageOutcome{Saved: true, Path: resultPath}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Error("Failed to serialize result", "error", err)
		doc.Storage = &documentModel.StorageOutcome{Saved: false, Error: err.Error()}
		metrics.IncrementStorageFailures()
		return
	}

	if err := os.WriteFile(resultPath, data, config.StorageFilePerm); err != nil {
		log.Error("Failed to save result", "error", err)
		doc.Storage = &documentModel.StorageOutcome{Saved: false, Error: err.Error()}
		metrics.IncrementStorageFailures()
		return
	}
	log.Info("Result saved", "path", resultPath)
}

func (s *FileDocumentStore) Get(ctx context.Context, id string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.path, id+".json"))
	if os.IsNotExist(err) {
		return nil, documentModel.ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("stored record %s is not valid JSON", id)
	}
	return data, nil
}

func (s *FileDocumentStore) List(ctx context.Context) ([]documentModel.DocumentSummary, error) {
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, err
	}

	summaries := make([]documentModel.DocumentSummary, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, documentModel.DocumentSummary{
			DocumentID: strings.TrimSuffix(entry.Name(), ".json"),
			SizeBytes:  info.Size(),
			// records are write-once so ModTime is the creation time
			CreatedAt: utils.FormatTimestamp(info.ModTime()),
		})
	}
	return summaries, nil
}
