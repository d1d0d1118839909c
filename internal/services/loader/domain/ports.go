package domain

import "context"

// LoaderPort is consumed by handlers and the load binary
type LoaderPort interface {
	LoadAll(ctx context.Context) (LoadReport, error)
}
