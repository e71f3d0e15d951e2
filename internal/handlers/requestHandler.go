package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/akolanti/DocProcessorAPI/internal/adapter"
	"github.com/akolanti/DocProcessorAPI/internal/adapter/utils"
	"github.com/akolanti/DocProcessorAPI/internal/api"
	"github.com/akolanti/DocProcessorAPI/internal/config"
	"github.com/akolanti/DocProcessorAPI/internal/domain/documentModel"
	"github.com/akolanti/DocProcessorAPI/internal/metrics"
	"github.com/akolanti/DocProcessorAPI/pkg/logger_i"
)

// DocumentHandler owns the five endpoints. Config is the immutable snapshot
// loaded at startup; the store is whichever backend main wired in.
type DocumentHandler struct {
	cfg    config.Config
	store  documentModel.DocumentStore
	logger *logger_i.Logger
}

func NewDocumentHandler(cfg config.Config, store documentModel.DocumentStore) *DocumentHandler {
	return &DocumentHandler{
		cfg:    cfg,
		store:  store,
		logger: logger_i.NewLogger("DocumentHandler"),
	}
}

// ServiceInfo godoc
// @Summary      Service and configuration snapshot
// @Description  Returns the service identity and the configuration in effect. Secrets are reported as presence flags only.
// @Tags         Service
// @Produce      json
// @Success      200  {object}  api.ServiceInfoResponse
// @Router       / [get]
func (h *DocumentHandler) ServiceInfo(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("Service info requested")
	writeJsonResponse(w, http.StatusOK, adapter.ToServiceInfoResponse(h.cfg))
}

// Health godoc
// @Summary      Liveness probe
// @Description  Always healthy. Deliberately checks nothing.
// @Tags         Service
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Router       /health [get]
func (h *DocumentHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{Status: "healthy"})
}

// ProcessDocument godoc
// @Summary      Process a document
// @Description  Accepts JSON {content, filename}, a multipart file field named "file", or a raw text body. Returns fabricated analysis plus real size statistics and persists the record.
// @Tags         Documents
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Param        request  body      api.ProcessRequest  false  "Document content and optional filename"
// @Success      200      {object}  documentModel.ProcessedDocument
// @Failure      400      {object}  api.ErrorResponse  "No file provided"
// @Failure      413      {object}  api.ErrorResponse  "Document exceeds the configured size limit"
// @Router       /process [post]
func (h *DocumentHandler) ProcessDocument(w http.ResponseWriter, r *http.Request) {
	log := h.logger.With("traceId", r.Context().Value(config.TRACE_ID_KEY))
	log.Info("Document processing request received")

	input, err := resolveDocumentInput(r)
	if err != nil {
		if errors.Is(err, errMissingFile) {
			WriteErrorResponse(w, http.StatusBadRequest, "No file provided")
			return
		}
		log.Warn("Could not read request body", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "Could not read request body")
		return
	}

	sizeBytes := len(input.content)
	metrics.ObserveDocumentSize(sizeBytes)
	if float64(sizeBytes)/(1024*1024) > float64(h.cfg.MaxDocumentSizeMB) {
		log.Warn("Document too large", "size_bytes", sizeBytes)
		metrics.IncrementDocumentsProcessed("rejected_too_large")
		WriteErrorResponse(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Document exceeds maximum size of %d MB", h.cfg.MaxDocumentSizeMB))
		return
	}

	log.Info("Processing document", "filename", input.filename, "chars", sizeBytes)

	result := adapter.ToProcessedDocument(h.cfg, input.content, input.filename)
	h.store.Save(r.Context(), &result)

	metrics.IncrementDocumentsProcessed("processed")
	writeJsonResponse(w, http.StatusOK, result)
}

// ListDocuments godoc
// @Summary      List stored document summaries
// @Description  Enumerates stored records. Storage trouble degrades to an empty list with an error field, never a failure status.
// @Tags         Documents
// @Produce      json
// @Success      200  {object}  api.DocumentListResponse
// @Router       /documents [get]
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	log := h.logger.With("traceId", r.Context().Value(config.TRACE_ID_KEY))
	log.Info("Listing processed documents")

	empty := []documentModel.DocumentSummary{}
	if !h.store.Available(r.Context()) {
		writeJsonResponse(w, http.StatusOK, api.DocumentListResponse{
			Documents: empty,
			Error:     documentModel.StorageUnavailableReason,
		})
		return
	}

	summaries, err := h.store.List(r.Context())
	if err != nil {
		log.Error("Failed to list documents", "error", err)
		writeJsonResponse(w, http.StatusOK, api.DocumentListResponse{
			Documents: empty,
			Error:     err.Error(),
		})
		return
	}

	count := len(summaries)
	writeJsonResponse(w, http.StatusOK, api.DocumentListResponse{
		Documents: summaries,
		Count:     &count,
	})
}

// GetDocument godoc
// @Summary      Retrieve a processed document
// @Description  Returns the stored record exactly as persisted.
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  documentModel.ProcessedDocument
// @Failure      404  {object}  api.ErrorResponse  "Document not found"
// @Failure      500  {object}  api.ErrorResponse  "Stored record unreadable"
// @Router       /documents/{id} [get]
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := utils.GetChiURLParam(r, "id")
	log := h.logger.With("traceId", r.Context().Value(config.TRACE_ID_KEY), "document id", id)
	log.Info("Retrieving document")

	data, err := h.store.Get(r.Context(), id)
	if errors.Is(err, documentModel.ErrDocumentNotFound) {
		WriteErrorResponse(w, http.StatusNotFound, "Document not found")
		return
	}
	if err != nil {
		log.Error("Failed to read document", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	// the stored bytes are the response - no re-encoding
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Error("Error writing response", "error", err)
	}
}
