package module

import "gitpulse/internal/services/loader/domain"

// Ports exposes the loader port for cross module wiring
type Ports struct {
	Loader domain.LoaderPort
}
