package domain

import "context"

// ServicePort is the analytics surface other modules and handlers consume
type ServicePort interface {
	// TopRepos ranks repositories by event volume over the lookback window
	TopRepos(ctx context.Context, in TopReposInput) (TopReposReport, error)

	// UserSessions segments per-actor activity into 30 minute sessions
	UserSessions(ctx context.Context, in SessionsInput) (SessionsReport, error)
}
