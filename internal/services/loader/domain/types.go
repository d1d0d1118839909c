// Package domain holds the loader's data model and contracts
package domain

import "time"

// Event is one immutable activity record as stored in Postgres
// fields mirror the events table, nullable identity fields use pointers
type Event struct {
	EventID     string
	EventType   string
	CreatedAt   time.Time
	IngestedAt  time.Time
	ActorID     *int64
	ActorLogin  *string
	RepoID      *int64
	RepoName    *string
	Payload     []byte // type-specific detail, opaque JSON, nil when absent
	Raw         []byte // full original record preserved verbatim
	SourceBatch string
}

// BatchMeta identifies one staged JSONL batch file by content
type BatchMeta struct {
	Path        string // base name, unique key in loaded_batches
	ByteSize    int64
	ModifiedAt  time.Time
	ContentHash string // lowercase hex sha256 of the full byte content
}
