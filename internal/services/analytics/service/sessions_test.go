package service

import (
	"testing"
	"time"

	"gitpulse/internal/services/analytics/domain"
)

func at(t *testing.T, hhmmss string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2026-02-03T"+hhmmss+"Z")
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func cand(actor int64, login, id string, ts time.Time) domain.Candidate {
	return domain.Candidate{ActorID: actor, ActorLogin: login, EventID: id, CreatedAt: ts}
}

func TestSegment_ExactGapStaysTogether(t *testing.T) {
	got := segment([]domain.Candidate{
		cand(1, "alice", "e1", at(t, "10:00:00")),
		cand(1, "alice", "e2", at(t, "10:30:00")), // exactly 30m later
	}, SessionGap)

	if len(got) != 1 {
		t.Fatalf("exact threshold gap must not split, got %d sessions", len(got))
	}
	s := got[0]
	if s.EventCount != 2 || !s.SessionStart.Equal(at(t, "10:00:00")) || !s.SessionEnd.Equal(at(t, "10:30:00")) {
		t.Fatalf("session: %+v", s)
	}
}

func TestSegment_BeyondGapSplits(t *testing.T) {
	got := segment([]domain.Candidate{
		cand(1, "alice", "e1", at(t, "10:00:00")),
		cand(1, "alice", "e2", at(t, "10:30:01")), // one second past the threshold
	}, SessionGap)

	if len(got) != 2 {
		t.Fatalf("gap past the threshold must split, got %d sessions", len(got))
	}
	if got[0].SessionSequence != 1 || got[1].SessionSequence != 2 {
		t.Fatalf("sequences: %d, %d", got[0].SessionSequence, got[1].SessionSequence)
	}
}

func TestSegment_NumbersPerActorFromOne(t *testing.T) {
	got := segment([]domain.Candidate{
		cand(1, "alice", "a1", at(t, "09:00:00")),
		cand(1, "alice", "a2", at(t, "09:10:00")),
		cand(1, "alice", "a3", at(t, "10:00:00")),
		cand(1, "alice", "a4", at(t, "10:05:00")),
		cand(2, "bob", "b1", at(t, "09:05:00")),
	}, SessionGap)

	if len(got) != 3 {
		t.Fatalf("want 3 sessions, got %d: %+v", len(got), got)
	}
	// alice: two sessions of two events each
	if got[0].ActorID != 1 || got[0].SessionSequence != 1 || got[0].EventCount != 2 {
		t.Fatalf("alice session 1: %+v", got[0])
	}
	if got[1].ActorID != 1 || got[1].SessionSequence != 2 || got[1].EventCount != 2 {
		t.Fatalf("alice session 2: %+v", got[1])
	}
	// bob restarts at 1
	if got[2].ActorID != 2 || got[2].SessionSequence != 1 || got[2].EventCount != 1 {
		t.Fatalf("bob session: %+v", got[2])
	}
}

func TestSegment_SingleEventSession(t *testing.T) {
	got := segment([]domain.Candidate{
		cand(1, "alice", "e1", at(t, "10:00:00")),
	}, SessionGap)

	if len(got) != 1 {
		t.Fatalf("got %d sessions", len(got))
	}
	s := got[0]
	if !s.SessionStart.Equal(s.SessionEnd) || s.EventCount != 1 {
		t.Fatalf("single event session: %+v", s)
	}
}

func TestSegment_EqualTimestampsShareASession(t *testing.T) {
	// candidates arrive ordered by (created_at, event_id), a zero gap
	// can never open a new session
	got := segment([]domain.Candidate{
		cand(1, "alice", "e1", at(t, "10:00:00")),
		cand(1, "alice", "e2", at(t, "10:00:00")),
	}, SessionGap)

	if len(got) != 1 || got[0].EventCount != 2 {
		t.Fatalf("sessions: %+v", got)
	}
}

func TestSegment_EmptyInput(t *testing.T) {
	if got := segment(nil, SessionGap); len(got) != 0 {
		t.Fatalf("empty input should yield no sessions, got %+v", got)
	}
}

func TestSegment_Deterministic(t *testing.T) {
	in := []domain.Candidate{
		cand(1, "alice", "e1", at(t, "10:00:00")),
		cand(1, "alice", "e2", at(t, "10:10:00")),
		cand(1, "alice", "e3", at(t, "11:30:00")),
		cand(2, "bob", "b1", at(t, "10:00:00")),
	}
	first := segment(in, SessionGap)
	second := segment(in, SessionGap)
	if len(first) != len(second) {
		t.Fatalf("runs disagree: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("run mismatch at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}
