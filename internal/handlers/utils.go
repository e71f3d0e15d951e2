package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/akolanti/DocProcessorAPI/internal/api"
	"github.com/akolanti/DocProcessorAPI/internal/config"
	"github.com/akolanti/DocProcessorAPI/pkg/logger_i"
)

var logUtils = logger_i.NewLogger("handlers")

var errMissingFile = errors.New("no file provided")

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logUtils.Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, api.ErrorResponse{Error: message})
}

type inputSource int

const (
	sourceJSON inputSource = iota
	sourceMultipart
	sourceRaw
)

// documentInput is the request content after resolution: one source tag, one
// content string, one filename. Validation operates on this, never on the raw
// request again.
type documentInput struct {
	source   inputSource
	content  string
	filename string
}

// resolveDocumentInput picks the input source by content type, in priority
// order: JSON body, multipart file field "file", raw body. Invalid UTF-8
// sequences in uploaded or raw bytes are dropped rather than rejected.
func resolveDocumentInput(r *http.Request) (documentInput, error) {
	contentType := r.Header.Get("Content-Type")

	switch {
	case strings.HasPrefix(contentType, "application/json"):
		return resolveJSONInput(r)
	case strings.HasPrefix(contentType, "multipart/form-data"):
		return resolveMultipartInput(r)
	default:
		return resolveRawInput(r)
	}
}

func resolveJSONInput(r *http.Request) (documentInput, error) {
	input := documentInput{source: sourceJSON, filename: "document.txt"}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return input, err
	}

	// malformed JSON degrades to an empty document rather than failing
	var requestData api.ProcessRequest
	if err := json.Unmarshal(body, &requestData); err != nil {
		logUtils.Debug("Ignoring malformed JSON body", "error", err)
		return input, nil
	}

	input.content = requestData.Content
	if requestData.Filename != "" {
		input.filename = requestData.Filename
	}
	return input, nil
}

func resolveMultipartInput(r *http.Request) (documentInput, error) {
	input := documentInput{source: sourceMultipart}

	if err := r.ParseMultipartForm(config.MaxMultipartMemory); err != nil {
		return input, errMissingFile
	}

	fileReader, fileMetadata, err := r.FormFile("file")
	if err != nil {
		return input, errMissingFile
	}
	defer fileReader.Close()

	fileBytes, err := io.ReadAll(fileReader)
	if err != nil {
		return input, err
	}

	input.content = decodeLossyUTF8(fileBytes)
	input.filename = fileMetadata.Filename
	if input.filename == "" {
		input.filename = "document.txt"
	}
	return input, nil
}

func resolveRawInput(r *http.Request) (documentInput, error) {
	input := documentInput{source: sourceRaw, filename: "document.txt"}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return input, err
	}

	input.content = decodeLossyUTF8(body)
	if input.content == "" {
		input.content = "Sample document"
	}
	return input, nil
}

// decodeLossyUTF8 drops invalid byte sequences instead of failing on them.
func decodeLossyUTF8(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}
