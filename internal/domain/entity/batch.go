package entity

import "time"

// ReloadBatchConfig bounds a batched reload so large batches complete in
// bounded wall-clock time without hammering the host.
type ReloadBatchConfig struct {
	BatchSize       int           `json:"batch_size"`
	PerTabDelay     time.Duration `json:"per_tab_delay"`
	InterBatchDelay time.Duration `json:"inter_batch_delay"`
}

// ReloadBatchResult accounts for a completed batched reload. Partial
// failure is the steady state, not an exception.
type ReloadBatchResult struct {
	Processed int           `json:"processed"` // individually successful members
	Errors    int           `json:"errors"`
	Total     int           `json:"total"` // members with a valid tab id
	Duration  time.Duration `json:"duration"`
}
