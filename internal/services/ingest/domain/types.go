// Package domain holds the ingest run models
package domain

import "time"

// IngestReport summarizes one fetch run
type IngestReport struct {
	RunID          string    `json:"run_id"`
	StartedAt      time.Time `json:"started_at"`
	DurationMS     int64     `json:"duration_ms"`
	EventsFetched  int       `json:"events_fetched"`
	BatchesWritten int       `json:"batches_written"`
	Files          []string  `json:"files"`
}
