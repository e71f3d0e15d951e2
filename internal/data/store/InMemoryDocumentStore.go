package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/akolanti/DocProcessorAPI/internal/adapter/utils"
	"github.com/akolanti/DocProcessorAPI/internal/domain/documentModel"
	"github.com/akolanti/DocProcessorAPI/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem DocumentStore")

type storedRecord struct {
	data      []byte
	createdAt time.Time
}

// InMemoryDocumentStore holds records for the process lifetime only. Backs
// tests and completes the DocumentStore interface without touching disk.
type InMemoryDocumentStore struct {
	docMutex *sync.RWMutex
	docMap   map[string]storedRecord
}

func InitInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		docMutex: new(sync.RWMutex),
		docMap:   make(map[string]storedRecord),
	}
}

func (store *InMemoryDocumentStore) Available(ctx context.Context) bool {
	return true
}

func (store *InMemoryDocumentStore) Save(ctx context.Context, doc *documentModel.ProcessedDocument) {
	doc.Storage = &documentModel.StorageOutcome{Saved: true, Key: doc.DocumentID}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		doc.Storage = &documentModel.StorageOutcome{Saved: false, Error: err.Error()}
		return
	}

	store.docMutex.Lock()
	defer store.docMutex.Unlock()
	store.docMap[doc.DocumentID] = storedRecord{data: data, createdAt: time.Now()}
	inMemLogger.Info(doc.DocumentID, " : Saved document to store")
}

func (store *InMemoryDocumentStore) Get(ctx context.Context, id string) ([]byte, error) {
	store.docMutex.RLock()
	defer store.docMutex.RUnlock()
	record, found := store.docMap[id]
	if !found {
		return nil, documentModel.ErrDocumentNotFound
	}
	return record.data, nil
}

func (store *InMemoryDocumentStore) List(ctx context.Context) ([]documentModel.DocumentSummary, error) {
	store.docMutex.RLock()
	defer store.docMutex.RUnlock()

	summaries := make([]documentModel.DocumentSummary, 0, len(store.docMap))
	for id, record := range store.docMap {
		summaries = append(summaries, documentModel.DocumentSummary{
			DocumentID: id,
			SizeBytes:  int64(len(record.data)),
			CreatedAt:  utils.FormatTimestamp(record.createdAt),
		})
	}
	return summaries, nil
}
