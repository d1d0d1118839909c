//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gitpulse/internal/modkit/repokit"
	"gitpulse/internal/platform/store"
	loaderdomain "gitpulse/internal/services/loader/domain"
	loaderrepo "gitpulse/internal/services/loader/repo"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func seedEvent(t *testing.T, ctx context.Context, lr loaderrepo.Repo, id, typ string, at time.Time, actor int64, repoName string) {
	t.Helper()
	login := fmt.Sprintf("user%d", actor)
	ev := loaderdomain.Event{
		EventID:     id,
		EventType:   typ,
		CreatedAt:   at,
		IngestedAt:  at,
		ActorID:     &actor,
		ActorLogin:  &login,
		RepoName:    &repoName,
		Raw:         []byte("{}"),
		SourceBatch: "seed.jsonl",
	}
	if _, err := lr.InsertEvent(ctx, ev); err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestRepo_Integration_TopReposAndSessions(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		AppName: "analytics-test",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	})
	if err != nil {
		t.Fatalf("store open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	lr := repokit.MustBind[loaderrepo.Repo](loaderrepo.NewPG(), st.PG)
	if err := lr.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	base := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	// repo-a: 3 events, 2 actors, 2 pushes; repo-b: 1 event
	seedEvent(t, ctx, lr, "e1", "PushEvent", base, 1, "org/repo-a")
	seedEvent(t, ctx, lr, "e2", "PushEvent", base.Add(time.Minute), 2, "org/repo-a")
	seedEvent(t, ctx, lr, "e3", "WatchEvent", base.Add(2*time.Minute), 1, "org/repo-a")
	seedEvent(t, ctx, lr, "e4", "PushEvent", base.Add(3*time.Minute), 1, "org/repo-b")
	// outside the cutoff, must not count
	seedEvent(t, ctx, lr, "e5", "PushEvent", base.AddDate(0, 0, -40), 1, "org/repo-a")

	ar := repokit.MustBind[Repo](NewPG(), st.PG)

	rows, err := ar.TopRepos(ctx, base.AddDate(0, 0, -30), 10)
	if err != nil {
		t.Fatalf("top repos: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: %+v", rows)
	}
	a := rows[0]
	if a.RepoName != "org/repo-a" || a.TotalEvents != 3 || a.UniqueActors != 2 || a.PushEvents != 2 {
		t.Fatalf("repo-a aggregate: %+v", a)
	}
	if !a.FirstEventAt.Equal(base) || !a.LastEventAt.Equal(base.Add(2*time.Minute)) {
		t.Fatalf("repo-a first/last: %+v", a)
	}
	if rows[1].RepoName != "org/repo-b" || rows[1].TotalEvents != 1 {
		t.Fatalf("repo-b aggregate: %+v", rows[1])
	}

	cands, err := ar.SessionCandidates(ctx, base.AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("session candidates: %v", err)
	}
	// ordered by actor then time then event id
	if len(cands) != 4 {
		t.Fatalf("candidates: %+v", cands)
	}
	if cands[0].ActorID != 1 || cands[0].EventID != "e1" {
		t.Fatalf("candidates[0]: %+v", cands[0])
	}
	if cands[1].EventID != "e3" || cands[2].EventID != "e4" {
		t.Fatalf("actor 1 ordering: %+v", cands[:3])
	}
	if cands[3].ActorID != 2 || cands[3].EventID != "e2" {
		t.Fatalf("candidates[3]: %+v", cands[3])
	}
}
