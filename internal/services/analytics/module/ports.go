package module

import "gitpulse/internal/services/analytics/domain"

// Ports exposes the analytics surface to sibling modules
type Ports struct {
	Analytics domain.ServicePort
}
