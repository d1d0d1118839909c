package module

import "gitpulse/internal/services/ingest/domain"

// Ports exposes the ingest surface to sibling modules
type Ports struct {
	Ingest domain.IngestPort
}
