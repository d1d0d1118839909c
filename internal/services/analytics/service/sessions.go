package service

import (
	"time"

	"gitpulse/internal/services/analytics/domain"
)

// SessionGap is the inactivity threshold that splits two sessions.
// A gap of exactly SessionGap keeps both events in the same session,
// only a strictly larger gap opens a new one
const SessionGap = 30 * time.Minute

// segment folds an (actor_id, created_at, event_id) ordered candidate
// stream into per-actor sessions, numbering each actor's sessions from 1
// in chronological order
func segment(candidates []domain.Candidate, gap time.Duration) []domain.SessionRow {
	var (
		out  []domain.SessionRow
		cur  *domain.SessionRow
		prev time.Time
	)

	flush := func() {
		if cur != nil {
			out = append(out, *cur)
			cur = nil
		}
	}

	for _, c := range candidates {
		fresh := cur == nil ||
			cur.ActorID != c.ActorID ||
			c.CreatedAt.Sub(prev) > gap

		if fresh {
			seq := 1
			if cur != nil && cur.ActorID == c.ActorID {
				seq = cur.SessionSequence + 1
			}
			flush()
			cur = &domain.SessionRow{
				ActorID:         c.ActorID,
				ActorLogin:      c.ActorLogin,
				SessionSequence: seq,
				SessionStart:    c.CreatedAt,
				SessionEnd:      c.CreatedAt,
				EventCount:      1,
			}
		} else {
			cur.SessionEnd = c.CreatedAt
			cur.EventCount++
			if c.ActorLogin != "" {
				cur.ActorLogin = c.ActorLogin
			}
		}
		prev = c.CreatedAt
	}
	flush()

	return out
}
