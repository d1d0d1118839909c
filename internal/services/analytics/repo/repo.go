// Package repo provides postgres access for the analytics queries
package repo

import (
	"context"
	"time"

	"gitpulse/internal/modkit/repokit"
	perr "gitpulse/internal/platform/errors"
	"gitpulse/internal/platform/store"
	"gitpulse/internal/services/analytics/domain"
)

// Repo is the read surface the analytics service runs on
type Repo interface {
	// TopRepos aggregates the repository leaderboard for events after cutoff
	TopRepos(ctx context.Context, cutoff time.Time, limit int) ([]domain.TopRepoRow, error)

	// SessionCandidates streams the ordered event projection since the given instant
	// ordering is (actor_id, created_at, event_id) so segmentation is deterministic
	SessionCandidates(ctx context.Context, since time.Time) ([]domain.Candidate, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the analytics repo
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) TopRepos(ctx context.Context, cutoff time.Time, limit int) ([]domain.TopRepoRow, error) {
	const sql = `
select
    repo_name,
    count(*)                                            as total_events,
    count(distinct actor_id)                            as unique_actors,
    count(*) filter (where event_type = 'PushEvent')    as push_events,
    min(created_at)                                     as first_event_at,
    max(created_at)                                     as last_event_at
from events
where created_at > $1
  and repo_name is not null
group by repo_name
order by total_events desc, repo_name asc
limit $2
`
	rows, err := store.Many[domain.TopRepoRow](ctx, r.q, func(rs store.Row) (domain.TopRepoRow, error) {
		var row domain.TopRepoRow
		err := rs.Scan(
			&row.RepoName,
			&row.TotalEvents,
			&row.UniqueActors,
			&row.PushEvents,
			&row.FirstEventAt,
			&row.LastEventAt,
		)
		return row, err
	}, sql, cutoff, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "top repos")
	}
	return rows, nil
}

func (r *queries) SessionCandidates(ctx context.Context, since time.Time) ([]domain.Candidate, error) {
	const sql = `
select actor_id, coalesce(actor_login, ''), event_id, created_at
from events
where created_at >= $1
  and actor_id is not null
order by actor_id asc, created_at asc, event_id asc
`
	rows, err := store.Many[domain.Candidate](ctx, r.q, func(rs store.Row) (domain.Candidate, error) {
		var c domain.Candidate
		err := rs.Scan(&c.ActorID, &c.ActorLogin, &c.EventID, &c.CreatedAt)
		return c, err
	}, sql, since)
	if err != nil {
		return nil, perr.FromPostgres(err, "session candidates")
	}
	return rows, nil
}
