package entity

import "math"

// OptimizationOutcome aggregates the files of one call that were stored transcoded.
type OptimizationOutcome struct {
	OriginalSize   int64 `json:"original_size"`
	OptimizedSize  int64 `json:"optimized_size"`
	SavingsBytes   int64 `json:"savings_bytes"`
	SavingsPercent int   `json:"savings_percent"`
}

// SavingsTally accumulates sizes of transcoded items. The zero value is ready to use.
type SavingsTally struct {
	original  int64
	optimized int64
	count     int
}

func (t *SavingsTally) Add(original, optimized int64) {
	t.original += original
	t.optimized += optimized
	t.count++
}

func (t *SavingsTally) Totals() (original, optimized int64) {
	return t.original, t.optimized
}

// Outcome returns nil when nothing went through the optimized path.
func (t *SavingsTally) Outcome() *OptimizationOutcome {
	if t.count == 0 || t.original <= 0 {
		return nil
	}

	saved := t.original - t.optimized
	percent := int(math.Round(100 * float64(saved) / float64(t.original)))
	percent = max(0, min(100, percent))

	return &OptimizationOutcome{
		OriginalSize:   t.original,
		OptimizedSize:  t.optimized,
		SavingsBytes:   saved,
		SavingsPercent: percent,
	}
}
