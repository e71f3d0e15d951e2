package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/akolanti/DocProcessorAPI/internal/adapter/utils"
	"github.com/akolanti/DocProcessorAPI/internal/config"
	"github.com/akolanti/DocProcessorAPI/internal/data/redisStore"
	"github.com/akolanti/DocProcessorAPI/internal/domain/documentModel"
	"github.com/akolanti/DocProcessorAPI/internal/metrics"
	"github.com/akolanti/DocProcessorAPI/pkg/logger_i"
)

const (
	recordKeyPrefix  = "doc:"
	summaryKeyPrefix = "meta:"
)

// RedisDocumentStore is the swap-in backend behind the same DocumentStore
// interface: record JSON under doc:{id}, its listing summary under meta:{id}.
// Records carry no TTL; cleanup stays external, same as the file backend.
type RedisDocumentStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisDocumentStore(ctx context.Context, addr string) *RedisDocumentStore {
	inner := redisStore.GetRedisStore(ctx, addr)
	if inner == nil {
		return nil
	}
	return &RedisDocumentStore{
		store:  inner,
		logger: logger_i.NewLogger("RedisDocumentStore"),
	}
}

func (s *RedisDocumentStore) Available(ctx context.Context) bool {
	return s.store.Ping(ctx) == nil
}

func (s *RedisDocumentStore) Save(ctx context.Context, doc *documentModel.ProcessedDocument) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "document id", doc.DocumentID)

	if !s.Available(ctx) {
		doc.Storage = &documentModel.StorageOutcome{Saved: false, Reason: documentModel.StorageUnavailableReason}
		metrics.IncrementStorageFailures()
		return
	}

	key := recordKeyPrefix + doc.DocumentID
	doc.Storage = &documentModel.StorageOutcome{Saved: true, Key: key}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Error("Failed to serialize result", "error", err)
		doc.Storage = &documentModel.StorageOutcome{Saved: false, Error: err.Error()}
		metrics.IncrementStorageFailures()
		return
	}

	summary, err := json.Marshal(documentModel.DocumentSummary{
		DocumentID: doc.DocumentID,
		SizeBytes:  int64(len(data)),
		CreatedAt:  utils.FormatTimestamp(time.Now()),
	})
	if err != nil {
		doc.Storage = &documentModel.StorageOutcome{Saved: false, Error: err.Error()}
		metrics.IncrementStorageFailures()
		return
	}

	if err := s.store.Set(ctx, key, data, 0); err != nil {
		log.Error("Failed to save result", "error", err)
		doc.Storage = &documentModel.StorageOutcome{Saved: false, Error: err.Error()}
		metrics.IncrementStorageFailures()
		return
	}
	if err := s.store.Set(ctx, summaryKeyPrefix+doc.DocumentID, summary, 0); err != nil {
		log.Error("Failed to save summary", "error", err)
	}
	log.Info("Result saved", "key", key)
}

func (s *RedisDocumentStore) Get(ctx context.Context, id string) ([]byte, error) {
	val, err := s.store.Get(ctx, recordKeyPrefix+id)
	if s.store.IsNil(err) {
		return nil, documentModel.ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(val)) {
		return nil, fmt.Errorf("stored record %s is not valid JSON", id)
	}
	return []byte(val), nil
}

func (s *RedisDocumentStore) List(ctx context.Context) ([]documentModel.DocumentSummary, error) {
	keys, err := s.store.ScanKeys(ctx, summaryKeyPrefix+"*")
	if err != nil {
		return nil, err
	}

	summaries := make([]documentModel.DocumentSummary, 0, len(keys))
	for _, key := range keys {
		val, err := s.store.Get(ctx, key)
		if s.store.IsNil(err) {
			continue //deleted between scan and read
		}
		if err != nil {
			return nil, err
		}
		var summary documentModel.DocumentSummary
		if err := json.Unmarshal([]byte(val), &summary); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func TestDocumentStore(store *redisStore.Store) *RedisDocumentStore {
	return &RedisDocumentStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
