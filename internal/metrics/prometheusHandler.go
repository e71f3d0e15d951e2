package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var documentsProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "documents_processed_total",
	Help: "Documents handled by /process labelled by result",
}, []string{"result"})

var documentSizeBytes = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "document_size_bytes",
	Help:    "UTF-8 byte size of submitted document content",
	Buckets: prometheus.ExponentialBuckets(64, 4, 10),
})

var storageFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "storage_failures_total",
	Help: "Persistence attempts that did not result in a saved record",
})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementDocumentsProcessed(result string) {
	documentsProcessedTotal.WithLabelValues(result).Inc()
}

func ObserveDocumentSize(sizeBytes int) {
	documentSizeBytes.Observe(float64(sizeBytes))
}

func IncrementStorageFailures() {
	storageFailuresTotal.Inc()
}
