// Package service computes the analytics read models
package service

import (
	"context"
	"sort"
	"time"

	"gitpulse/internal/modkit/repokit"
	perr "gitpulse/internal/platform/errors"
	"gitpulse/internal/services/analytics/domain"
	"gitpulse/internal/services/analytics/repo"
)

// Service defines the analytics contract
type Service interface {
	domain.ServicePort
}

// Svc implements the analytics service
type Svc struct {
	Repo repo.Repo
	db   repokit.Queryer

	// now is swappable so window math is testable
	now func() time.Time
}

// New constructs an analytics service
func New(db repokit.Queryer, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("analytics.Service requires a non nil Queryer")
	}
	if binder == nil {
		panic("analytics.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), db: db, now: time.Now}
}

// TopRepos ranks repositories by event volume over the lookback window
func (s *Svc) TopRepos(ctx context.Context, in domain.TopReposInput) (domain.TopReposReport, error) {
	if in.Days <= 0 {
		return domain.TopReposReport{}, perr.InvalidArgf("days must be positive, got %d", in.Days)
	}
	if in.Limit <= 0 {
		return domain.TopReposReport{}, perr.InvalidArgf("limit must be positive, got %d", in.Limit)
	}

	now := s.now().UTC()
	cutoff := now.AddDate(0, 0, -in.Days)

	rows, err := s.Repo.TopRepos(ctx, cutoff, in.Limit)
	if err != nil {
		return domain.TopReposReport{}, err
	}
	return domain.TopReposReport{
		Days:       in.Days,
		Limit:      in.Limit,
		ComputedAt: now,
		Repos:      rows,
	}, nil
}

// UserSessions segments per-actor activity into sessions split on gaps
// longer than SessionGap
func (s *Svc) UserSessions(ctx context.Context, in domain.SessionsInput) (domain.SessionsReport, error) {
	if in.Days <= 0 {
		return domain.SessionsReport{}, perr.InvalidArgf("days must be positive, got %d", in.Days)
	}
	if in.Limit <= 0 {
		return domain.SessionsReport{}, perr.InvalidArgf("limit must be positive, got %d", in.Limit)
	}

	now := s.now().UTC()
	windowStart := now.AddDate(0, 0, -in.Days)

	// reach one gap behind the window so a session straddling the
	// boundary is not split at windowStart
	candidates, err := s.Repo.SessionCandidates(ctx, windowStart.Add(-SessionGap))
	if err != nil {
		return domain.SessionsReport{}, err
	}

	sessions := segment(candidates, SessionGap)

	// sessions that ended before the window are only context for the
	// boundary expansion, not results
	kept := sessions[:0]
	for _, sess := range sessions {
		if !sess.SessionEnd.Before(windowStart) {
			kept = append(kept, sess)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].ActorID != kept[j].ActorID {
			return kept[i].ActorID < kept[j].ActorID
		}
		return kept[i].SessionStart.After(kept[j].SessionStart)
	})
	if len(kept) > in.Limit {
		kept = kept[:in.Limit]
	}

	return domain.SessionsReport{
		Days:       in.Days,
		Limit:      in.Limit,
		ComputedAt: now,
		Sessions:   kept,
	}, nil
}
