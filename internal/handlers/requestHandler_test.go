package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/akolanti/DocProcessorAPI/internal/api"
	"github.com/akolanti/DocProcessorAPI/internal/config"
	"github.com/akolanti/DocProcessorAPI/internal/data/store"
	"github.com/akolanti/DocProcessorAPI/internal/domain/documentModel"
)

func testConfig(storagePath string) config.Config {
	return config.Config{
		Environment:              "test",
		LogLevel:                 "INFO",
		ModelName:                "not-configured",
		MaxDocumentSizeMB:        1,
		ProcessingTimeoutSeconds: 15,
		StoragePath:              storagePath,
		StorageBackend:           config.StorageBackendFile,
	}
}

func newTestHandler(t *testing.T) (*DocumentHandler, string) {
	t.Helper()
	dir := t.TempDir()
	return NewDocumentHandler(testConfig(dir), store.NewFileDocumentStore(dir)), dir
}

func testRouter(h *DocumentHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/", h.ServiceInfo)
	r.Get("/health", h.Health)
	r.Post("/process", h.ProcessDocument)
	r.Get("/documents", h.ListDocuments)
	r.Get("/documents/{id}", h.GetDocument)
	return r
}

func doRequest(t *testing.T, h *DocumentHandler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("response is not valid JSON: %v\nbody: %s", err, rec.Body.String())
	}
}

func TestHealth_AlwaysHealthy(t *testing.T) {
	h, _ := newTestHandler(t)

	for i := 0; i < 5; i++ {
		rec := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/health", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var health api.HealthResponse
		decodeJSON(t, rec, &health)
		if health.Status != "healthy" {
			t.Fatalf("status field = %q, want healthy", health.Status)
		}
	}
}

func TestServiceInfo(t *testing.T) {
	h, dir := newTestHandler(t)

	rec := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var info api.ServiceInfoResponse
	decodeJSON(t, rec, &info)

	if info.Service != config.ServiceName {
		t.Errorf("service = %q, want %q", info.Service, config.ServiceName)
	}
	if info.Status != "running" {
		t.Errorf("status = %q, want running", info.Status)
	}
	if info.Environment != "test" {
		t.Errorf("environment = %q, want test", info.Environment)
	}
	if info.Secrets.EmbeddingsAPIKeyConfigured {
		t.Error("secrets flag = true, no key was configured")
	}
	if info.Config.MaxDocumentSizeMB != 1 || info.Config.StoragePath != dir {
		t.Errorf("config snapshot = %+v", info.Config)
	}
}

func TestProcessDocument_JSON(t *testing.T) {
	h, _ := newTestHandler(t)

	body := strings.NewReader(`{"content": "hello world", "filename": "a.txt"}`)
	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", "application/json")

	rec := doRequest(t, h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	var result documentModel.ProcessedDocument
	decodeJSON(t, rec, &result)

	if result.Filename != "a.txt" {
		t.Errorf("filename = %q, want a.txt", result.Filename)
	}
	if result.Statistics.WordCount != 2 {
		t.Errorf("word_count = %d, want 2", result.Statistics.WordCount)
	}
	if result.Statistics.CharacterCount != 11 {
		t.Errorf("character_count = %d, want 11", result.Statistics.CharacterCount)
	}
	if _, err := uuid.Parse(result.DocumentID); err != nil {
		t.Errorf("document_id %q is not a UUID: %v", result.DocumentID, err)
	}
	if _, err := time.Parse(time.RFC3339, result.ProcessedAt); err != nil {
		t.Errorf("processed_at %q is not parseable: %v", result.ProcessedAt, err)
	}
	if result.Environment != "test" || result.Model.Name != "not-configured" {
		t.Errorf("config snapshot mismatch: env=%q model=%q", result.Environment, result.Model.Name)
	}
	if len(result.Analysis.Entities) != 3 || len(result.Analysis.KeyPhrases) != 4 {
		t.Errorf("analysis shape = %d entities, %d phrases", len(result.Analysis.Entities), len(result.Analysis.KeyPhrases))
	}
	if result.Storage == nil || !result.Storage.Saved {
		t.Fatalf("storage outcome = %+v, want saved", result.Storage)
	}
	if _, err := os.Stat(result.Storage.Path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
}

func TestProcessDocument_JSONDefaults(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	rec := doRequest(t, h, req)
	var result documentModel.ProcessedDocument
	decodeJSON(t, rec, &result)

	if result.Filename != "document.txt" {
		t.Errorf("filename = %q, want document.txt", result.Filename)
	}
	// JSON input does not get the raw-body sample fallback
	if result.Statistics.CharacterCount != 0 {
		t.Errorf("character_count = %d, want 0 for empty content", result.Statistics.CharacterCount)
	}
}

func TestProcessDocument_RawBody(t *testing.T) {
	h, _ := newTestHandler(t)

	t.Run("plain text", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader("one two three"))
		req.Header.Set("Content-Type", "text/plain")

		rec := doRequest(t, h, req)
		var result documentModel.ProcessedDocument
		decodeJSON(t, rec, &result)

		if result.Statistics.WordCount != 3 {
			t.Errorf("word_count = %d, want 3", result.Statistics.WordCount)
		}
		if result.Filename != "document.txt" {
			t.Errorf("filename = %q, want document.txt", result.Filename)
		}
	})

	t.Run("empty body falls back to sample", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/process", nil)

		rec := doRequest(t, h, req)
		var result documentModel.ProcessedDocument
		decodeJSON(t, rec, &result)

		// "Sample document"
		if result.Statistics.WordCount != 2 || result.Statistics.CharacterCount != 15 {
			t.Errorf("statistics = %+v, want the sample document counts", result.Statistics)
		}
	})

	t.Run("invalid utf8 is dropped", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/process", bytes.NewReader([]byte("ok\xff\xfe text")))

		rec := doRequest(t, h, req)
		var result documentModel.ProcessedDocument
		decodeJSON(t, rec, &result)

		// invalid bytes removed leaves "ok text"
		if result.Statistics.CharacterCount != 7 {
			t.Errorf("character_count = %d, want 7", result.Statistics.CharacterCount)
		}
	})
}

func TestProcessDocument_Multipart(t *testing.T) {
	h, _ := newTestHandler(t)

	t.Run("file field", func(t *testing.T) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("file", "report.txt")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte("uploaded contents here")); err != nil {
			t.Fatal(err)
		}
		writer.Close()

		req := httptest.NewRequest(http.MethodPost, "/process", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		rec := doRequest(t, h, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
		}
		var result documentModel.ProcessedDocument
		decodeJSON(t, rec, &result)
		if result.Filename != "report.txt" {
			t.Errorf("filename = %q, want report.txt", result.Filename)
		}
		if result.Statistics.WordCount != 3 {
			t.Errorf("word_count = %d, want 3", result.Statistics.WordCount)
		}
	})

	t.Run("missing file field", func(t *testing.T) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		if err := writer.WriteField("document_name", "nope"); err != nil {
			t.Fatal(err)
		}
		writer.Close()

		req := httptest.NewRequest(http.MethodPost, "/process", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		rec := doRequest(t, h, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		var errResp api.ErrorResponse
		decodeJSON(t, rec, &errResp)
		if errResp.Error != "No file provided" {
			t.Errorf("error = %q, want No file provided", errResp.Error)
		}
	})
}

func TestProcessDocument_TooLarge(t *testing.T) {
	h, dir := newTestHandler(t) //1 MB limit

	oversized := strings.Repeat("a", 1<<20+1)
	payload, err := json.Marshal(api.ProcessRequest{Content: oversized, Filename: "big.txt"})
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/process", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := doRequest(t, h, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
	var errResp api.ErrorResponse
	decodeJSON(t, rec, &errResp)
	if errResp.Error != "Document exceeds maximum size of 1 MB" {
		t.Errorf("error = %q", errResp.Error)
	}

	// nothing may be persisted for a rejected document
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("storage directory has %d entries, want 0", len(entries))
	}
}

func TestProcessDocument_StorageUnavailable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	badPath := filepath.Join(blocker, "sub")
	h := NewDocumentHandler(testConfig(badPath), store.NewFileDocumentStore(badPath))

	req := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader("still works"))

	rec := doRequest(t, h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite broken storage", rec.Code)
	}
	var result documentModel.ProcessedDocument
	decodeJSON(t, rec, &result)
	if result.Storage == nil || result.Storage.Saved {
		t.Fatalf("storage outcome = %+v, want saved=false", result.Storage)
	}
	if result.Storage.Reason == "" && result.Storage.Error == "" {
		t.Error("failure outcome carries neither reason nor error")
	}
}

func TestGetDocument_RoundTrip(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(`{"content": "round trip", "filename": "rt.txt"}`))
	req.Header.Set("Content-Type", "application/json")
	processRec := doRequest(t, h, req)

	var processed map[string]any
	decodeJSON(t, processRec, &processed)
	id, _ := processed["document_id"].(string)
	if id == "" {
		t.Fatal("no document_id in process response")
	}

	getRec := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/documents/"+id, nil))
	if getRec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", getRec.Code)
	}

	var fetched map[string]any
	decodeJSON(t, getRec, &fetched)
	if !reflect.DeepEqual(processed, fetched) {
		t.Errorf("stored record differs from process response\nprocess: %v\nfetched: %v", processed, fetched)
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/documents/"+uuid.New().String(), nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var errResp api.ErrorResponse
	decodeJSON(t, rec, &errResp)
	if errResp.Error != "Document not found" {
		t.Errorf("error = %q, want Document not found", errResp.Error)
	}
}

func TestListDocuments(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, content := range []string{"first doc", "second doc"} {
		req := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(content))
		if rec := doRequest(t, h, req); rec.Code != http.StatusOK {
			t.Fatalf("seed process status = %d", rec.Code)
		}
	}

	rec := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/documents", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var list api.DocumentListResponse
	decodeJSON(t, rec, &list)
	if list.Error != "" {
		t.Fatalf("unexpected error field: %q", list.Error)
	}
	if list.Count == nil || *list.Count != 2 || len(list.Documents) != 2 {
		t.Fatalf("list = %+v, want 2 documents with count", list)
	}
	for _, summary := range list.Documents {
		if summary.SizeBytes <= 0 {
			t.Errorf("summary %s has size %d", summary.DocumentID, summary.SizeBytes)
		}
		if _, err := time.Parse(time.RFC3339, summary.CreatedAt); err != nil {
			t.Errorf("created_at %q not parseable: %v", summary.CreatedAt, err)
		}
	}
}

func TestListDocuments_StorageUnavailable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	badPath := filepath.Join(blocker, "sub")
	h := NewDocumentHandler(testConfig(badPath), store.NewFileDocumentStore(badPath))

	rec := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/documents", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want degraded 200", rec.Code)
	}

	var list api.DocumentListResponse
	decodeJSON(t, rec, &list)
	if list.Error != documentModel.StorageUnavailableReason {
		t.Errorf("error = %q, want %q", list.Error, documentModel.StorageUnavailableReason)
	}
	if len(list.Documents) != 0 {
		t.Errorf("documents = %+v, want empty", list.Documents)
	}
}
