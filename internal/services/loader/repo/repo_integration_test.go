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
	"gitpulse/internal/services/loader/domain"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres launches a disposable Postgres and returns DSN + stop func
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

func openTxRunner(t *testing.T, ctx context.Context, dsn string) repokit.TxRunner {
	t.Helper()
	st, err := store.Open(ctx, store.Config{
		AppName: "loader-test",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	})
	if err != nil {
		t.Fatalf("store open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	return st.PG
}

func someEvent(id string, at time.Time) domain.Event {
	actorID := int64(7)
	login := "alice"
	repoID := int64(9)
	name := "alice/repo"
	return domain.Event{
		EventID:     id,
		EventType:   "PushEvent",
		CreatedAt:   at,
		IngestedAt:  at.Add(5 * time.Second),
		ActorID:     &actorID,
		ActorLogin:  &login,
		RepoID:      &repoID,
		RepoName:    &name,
		Payload:     []byte(`{"size":1}`),
		Raw:         []byte(`{"id":"` + id + `"}`),
		SourceBatch: "events_a.jsonl",
	}
}

func TestRepo_Integration_InsertAndBatchGate(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	db := openTxRunner(t, ctx, dsn)
	r := MustBindRepo(db)

	if err := r.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	// schema application must be idempotent
	if err := r.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema twice: %v", err)
	}

	at := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)

	inserted, err := r.InsertEvent(ctx, someEvent("e1", at))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !inserted {
		t.Fatalf("fresh event should insert")
	}

	// same id again, conflict target swallows it
	inserted, err = r.InsertEvent(ctx, someEvent("e1", at))
	if err != nil {
		t.Fatalf("dup insert: %v", err)
	}
	if inserted {
		t.Fatalf("duplicate event id must not insert a second row")
	}

	// batch gate round trip
	if _, ok, err := r.BatchHash(ctx, "events_a.jsonl"); err != nil || ok {
		t.Fatalf("unknown batch: ok=%v err=%v", ok, err)
	}
	meta := domain.BatchMeta{
		Path:        "events_a.jsonl",
		ByteSize:    123,
		ModifiedAt:  at,
		ContentHash: "aaaa",
	}
	if err := r.RegisterBatch(ctx, meta); err != nil {
		t.Fatalf("register: %v", err)
	}
	hash, ok, err := r.BatchHash(ctx, "events_a.jsonl")
	if err != nil || !ok || hash != "aaaa" {
		t.Fatalf("stored hash: %q ok=%v err=%v", hash, ok, err)
	}

	// re-registering the same path updates the hash in place
	meta.ContentHash = "bbbb"
	if err := r.RegisterBatch(ctx, meta); err != nil {
		t.Fatalf("re-register: %v", err)
	}
	hash, ok, err = r.BatchHash(ctx, "events_a.jsonl")
	if err != nil || !ok || hash != "bbbb" {
		t.Fatalf("updated hash: %q ok=%v err=%v", hash, ok, err)
	}
}

func TestRepo_Integration_TxRollsBackBatch(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	db := openTxRunner(t, ctx, dsn)
	if err := MustBindRepo(db).EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	at := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	boom := fmt.Errorf("boom")

	err := db.Tx(ctx, func(q repokit.Queryer) error {
		r := NewPG().Bind(q)
		if _, err := r.InsertEvent(ctx, someEvent("tx1", at)); err != nil {
			return err
		}
		return boom
	})
	if err == nil {
		t.Fatalf("tx should surface the callback error")
	}

	r := MustBindRepo(db)
	inserted, err := r.InsertEvent(ctx, someEvent("tx1", at))
	if err != nil {
		t.Fatalf("insert after rollback: %v", err)
	}
	if !inserted {
		t.Fatalf("rolled-back event should be insertable again")
	}
}

// MustBindRepo binds the production binder outside a transaction
func MustBindRepo(q repokit.Queryer) Repo {
	return repokit.MustBind[Repo](NewPG(), q)
}
