package service

import (
	"context"
	"testing"
	"time"

	"gitpulse/internal/modkit/repokit"
	perr "gitpulse/internal/platform/errors"
	"gitpulse/internal/platform/store"
	"gitpulse/internal/platform/testkit"
	"gitpulse/internal/services/analytics/domain"
	"gitpulse/internal/services/analytics/repo"
)

type fakeQueryer struct{}

func (fakeQueryer) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (fakeQueryer) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (fakeQueryer) QueryRow(context.Context, string, ...any) store.Row             { return nil }

type fakeRepo struct {
	topRows    []domain.TopRepoRow
	candidates []domain.Candidate

	topCalls     int
	lastCutoff   time.Time
	lastLimit    int
	sessionCalls int
	lastSince    time.Time
}

func (f *fakeRepo) TopRepos(_ context.Context, cutoff time.Time, limit int) ([]domain.TopRepoRow, error) {
	f.topCalls++
	f.lastCutoff = cutoff
	f.lastLimit = limit
	return f.topRows, nil
}

func (f *fakeRepo) SessionCandidates(_ context.Context, since time.Time) ([]domain.Candidate, error) {
	f.sessionCalls++
	f.lastSince = since
	return f.candidates, nil
}

func newSvc(f *fakeRepo, now time.Time) *Svc {
	s := New(fakeQueryer{}, repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return f }))
	s.now = func() time.Time { return now }
	return s
}

func TestNew_NilGuards(t *testing.T) {
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return &fakeRepo{} })
	testkit.MustPanic(t, func() { New(nil, binder) })
	testkit.MustPanic(t, func() { New(fakeQueryer{}, nil) })
}

func TestTopRepos_WindowAndPassthrough(t *testing.T) {
	now := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
	f := &fakeRepo{topRows: []domain.TopRepoRow{{RepoName: "alice/repo", TotalEvents: 5}}}
	svc := newSvc(f, now)

	rep, err := svc.TopRepos(context.Background(), domain.TopReposInput{Days: 30, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if f.lastCutoff != now.AddDate(0, 0, -30) {
		t.Fatalf("cutoff = %v", f.lastCutoff)
	}
	if f.lastLimit != 10 {
		t.Fatalf("limit = %d", f.lastLimit)
	}
	if len(rep.Repos) != 1 || rep.Repos[0].RepoName != "alice/repo" {
		t.Fatalf("report: %+v", rep)
	}
	if !rep.ComputedAt.Equal(now) || rep.Days != 30 || rep.Limit != 10 {
		t.Fatalf("report params: %+v", rep)
	}
}

func TestTopRepos_RejectsBadInputWithoutQuerying(t *testing.T) {
	f := &fakeRepo{}
	svc := newSvc(f, time.Now())

	cases := []domain.TopReposInput{
		{Days: 0, Limit: 10},
		{Days: -3, Limit: 10},
		{Days: 30, Limit: 0},
		{Days: 30, Limit: -1},
	}
	for _, in := range cases {
		_, err := svc.TopRepos(context.Background(), in)
		if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("input %+v: want invalid argument, got %v", in, err)
		}
	}
	if f.topCalls != 0 {
		t.Fatalf("invalid input must not reach the database, got %d calls", f.topCalls)
	}
}

func TestUserSessions_BoundaryExpansion(t *testing.T) {
	now := time.Date(2026, 2, 4, 10, 0, 0, 0, time.UTC)
	windowStart := now.AddDate(0, 0, -1) // 2026-02-03T10:00:00Z

	f := &fakeRepo{candidates: []domain.Candidate{
		// starts before the window, ends inside it
		{ActorID: 1, ActorLogin: "alice", EventID: "e1", CreatedAt: windowStart.Add(-10 * time.Minute)},
		{ActorID: 1, ActorLogin: "alice", EventID: "e2", CreatedAt: windowStart.Add(5 * time.Minute)},
	}}
	svc := newSvc(f, now)

	rep, err := svc.UserSessions(context.Background(), domain.SessionsInput{Days: 1, Limit: 50})
	if err != nil {
		t.Fatal(err)
	}
	if !f.lastSince.Equal(windowStart.Add(-SessionGap)) {
		t.Fatalf("candidate fetch should reach one gap behind the window, got %v", f.lastSince)
	}
	if len(rep.Sessions) != 1 {
		t.Fatalf("sessions: %+v", rep.Sessions)
	}
	s := rep.Sessions[0]
	if !s.SessionStart.Equal(windowStart.Add(-10*time.Minute)) || s.EventCount != 2 {
		t.Fatalf("straddling session must keep its pre-window start: %+v", s)
	}
}

func TestUserSessions_DropsSessionsEndedBeforeWindow(t *testing.T) {
	now := time.Date(2026, 2, 4, 10, 0, 0, 0, time.UTC)
	windowStart := now.AddDate(0, 0, -1)

	f := &fakeRepo{candidates: []domain.Candidate{
		// entirely inside the expansion slack, gone before the window opens
		{ActorID: 1, ActorLogin: "alice", EventID: "e1", CreatedAt: windowStart.Add(-25 * time.Minute)},
		// a later in-window session for the same actor
		{ActorID: 1, ActorLogin: "alice", EventID: "e2", CreatedAt: windowStart.Add(2 * time.Hour)},
	}}
	svc := newSvc(f, now)

	rep, err := svc.UserSessions(context.Background(), domain.SessionsInput{Days: 1, Limit: 50})
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Sessions) != 1 {
		t.Fatalf("pre-window session must be dropped: %+v", rep.Sessions)
	}
	if !rep.Sessions[0].SessionStart.Equal(windowStart.Add(2 * time.Hour)) {
		t.Fatalf("kept the wrong session: %+v", rep.Sessions[0])
	}
}

func TestUserSessions_OrderingAndLimit(t *testing.T) {
	now := time.Date(2026, 2, 4, 10, 0, 0, 0, time.UTC)
	base := now.Add(-6 * time.Hour)

	f := &fakeRepo{candidates: []domain.Candidate{
		{ActorID: 1, ActorLogin: "alice", EventID: "a1", CreatedAt: base},
		{ActorID: 1, ActorLogin: "alice", EventID: "a2", CreatedAt: base.Add(2 * time.Hour)},
		{ActorID: 1, ActorLogin: "alice", EventID: "a3", CreatedAt: base.Add(4 * time.Hour)},
		{ActorID: 2, ActorLogin: "bob", EventID: "b1", CreatedAt: base.Add(time.Hour)},
	}}
	svc := newSvc(f, now)

	rep, err := svc.UserSessions(context.Background(), domain.SessionsInput{Days: 1, Limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Sessions) != 3 {
		t.Fatalf("limit must cap output: %+v", rep.Sessions)
	}
	// actor 1 first, their sessions newest-first, then actor 2
	if rep.Sessions[0].ActorID != 1 || !rep.Sessions[0].SessionStart.Equal(base.Add(4*time.Hour)) {
		t.Fatalf("sessions[0]: %+v", rep.Sessions[0])
	}
	if rep.Sessions[1].ActorID != 1 || !rep.Sessions[1].SessionStart.Equal(base.Add(2*time.Hour)) {
		t.Fatalf("sessions[1]: %+v", rep.Sessions[1])
	}
	if rep.Sessions[2].ActorID != 1 {
		t.Fatalf("limit trims the tail of the ordered list: %+v", rep.Sessions[2])
	}
}

func TestUserSessions_RejectsBadInputWithoutQuerying(t *testing.T) {
	f := &fakeRepo{}
	svc := newSvc(f, time.Now())

	for _, in := range []domain.SessionsInput{{Days: 0, Limit: 50}, {Days: 30, Limit: 0}} {
		_, err := svc.UserSessions(context.Background(), in)
		if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("input %+v: want invalid argument, got %v", in, err)
		}
	}
	if f.sessionCalls != 0 {
		t.Fatalf("invalid input must not reach the database")
	}
}
