package entity

// ProgressFunc receives round(100*processed/total) after each item of a batch.
// Calls are serialized and percent never decreases within one batch.
type ProgressFunc func(processed, total, percent int)

type BatchReport struct {
	BatchID   string        `json:"batch_id"`
	Operation string        `json:"operation"`
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	Failures  []ItemFailure `json:"failures,omitempty"`
	// Orphans lists storage paths or asset ids left in only one of the two stores.
	Orphans []string `json:"orphans,omitempty"`
}

type OptimizeReport struct {
	BatchReport
	OriginalTotal  int64                `json:"original_total"`
	OptimizedTotal int64                `json:"optimized_total"`
	Stats          *OptimizationOutcome `json:"stats"`
}
