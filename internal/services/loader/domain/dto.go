package domain

// Outcome of one batch within a load invocation
const (
	BatchLoaded  = "loaded"
	BatchSkipped = "skipped"
	BatchFailed  = "failed"
)

// BatchReport is the per-batch slice of a load run
type BatchReport struct {
	Path            string `json:"path"`
	Outcome         string `json:"outcome"`
	RecordsSeen     int    `json:"records_seen"`
	RecordsInserted int    `json:"records_inserted"`
	RecordsDeduped  int    `json:"records_deduped"`
	RecordsBadParse int    `json:"records_failed_parse"`
	Error           string `json:"error,omitempty"`
}

// LoadReport aggregates one loader invocation across all scanned batches
type LoadReport struct {
	BatchesScanned  int           `json:"batches_scanned"`
	BatchesLoaded   int           `json:"batches_loaded"`
	BatchesSkipped  int           `json:"batches_skipped"`
	BatchesFailed   int           `json:"batches_failed"`
	RecordsSeen     int           `json:"records_seen"`
	RecordsInserted int           `json:"records_inserted"`
	RecordsDeduped  int           `json:"records_deduped"`
	RecordsBadParse int           `json:"records_failed_parse"`
	DurationMS      int64         `json:"duration_ms"`
	Batches         []BatchReport `json:"batches"`
}
