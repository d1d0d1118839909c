package domain

import "context"

// IngestPort is the ingest surface other modules and handlers consume
type IngestPort interface {
	// FetchOnce pulls the event feed and stages it as JSONL batches, blocking
	FetchOnce(ctx context.Context) (IngestReport, error)

	// FetchAsync starts a fetch run in the background and returns its run id
	FetchAsync() string

	// FetchAsyncWith is FetchAsync with per-run page overrides, zero means default
	FetchAsyncWith(pages, perPage int) string
}
