package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IngestedFilesTotal counts ingested files by the path they took: optimized, direct or failed.
	IngestedFilesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assetpipe",
			Subsystem: "ingest",
			Name:      "files_total",
			Help:      "Total files handed to the ingestion pipeline",
		},
		[]string{"path"},
	)

	SavedBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "assetpipe",
			Subsystem: "ingest",
			Name:      "saved_bytes_total",
			Help:      "Bytes saved by storing transcoded output instead of the original",
		},
	)

	TranscodeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assetpipe",
			Subsystem: "transcoder",
			Name:      "requests_total",
			Help:      "Total calls to the transcoding service",
		},
		[]string{"outcome"},
	)

	TranscodeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "assetpipe",
			Subsystem: "transcoder",
			Name:      "duration_seconds",
			Help:      "Transcoding service round trip in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)

	BatchItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assetpipe",
			Subsystem: "batch",
			Name:      "items_total",
			Help:      "Items processed by bulk operations",
		},
		[]string{"operation", "status"},
	)

	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assetpipe",
			Subsystem: "blobstore",
			Name:      "operations_total",
			Help:      "Total blob store operations",
		},
		[]string{"operation", "status"},
	)

	StoreDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "assetpipe",
			Subsystem: "blobstore",
			Name:      "duration_seconds",
			Help:      "Blob store operation duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"operation"},
	)
)

func RecordIngest(path string) {
	IngestedFilesTotal.WithLabelValues(path).Inc()
}

func RecordSavedBytes(n int64) {
	if n > 0 {
		SavedBytesTotal.Add(float64(n))
	}
}

func RecordTranscode(outcome string, elapsed time.Duration) {
	TranscodeRequestsTotal.WithLabelValues(outcome).Inc()
	TranscodeDuration.Observe(elapsed.Seconds())
}

func RecordBatchItem(operation, status string) {
	BatchItemsTotal.WithLabelValues(operation, status).Inc()
}

func RecordStoreOperation(operation string, err error, elapsed time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	StoreOperationsTotal.WithLabelValues(operation, status).Inc()
	StoreDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
