// Package repo provides postgres access for the batch loader
package repo

import (
	"context"
	_ "embed"
	"errors"

	"gitpulse/internal/modkit/repokit"
	perr "gitpulse/internal/platform/errors"
	"gitpulse/internal/platform/store"
	"gitpulse/internal/services/loader/domain"

	"github.com/jackc/pgx/v5"
)

//go:embed schema.sql
var schemaSQL string

// Repo is the minimal persistence surface for the loader
type Repo interface {
	// EnsureSchema applies the embedded schema idempotently
	EnsureSchema(ctx context.Context) error

	// BatchHash returns the stored content hash for a batch path
	// ok is false when the path has never been committed
	BatchHash(ctx context.Context, path string) (hash string, ok bool, err error)

	// InsertEvent applies the idempotent upsert, inserted reports whether a row was written
	InsertEvent(ctx context.Context, ev domain.Event) (inserted bool, err error)

	// RegisterBatch upserts the loaded_batches row for the batch
	RegisterBatch(ctx context.Context, meta domain.BatchMeta) error
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) EnsureSchema(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, schemaSQL); err != nil {
		return perr.FromPostgres(err, "ensure schema")
	}
	return nil
}

func (r *queries) BatchHash(ctx context.Context, path string) (string, bool, error) {
	const sql = `
select content_hash
from loaded_batches
where batch_path = $1
`
	hash, err := store.Scalar[string](ctx, r.q, sql, path)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, perr.ErrNotFound) {
			return "", false, nil
		}
		return "", false, perr.FromPostgres(err, "batch hash lookup")
	}
	return hash, true, nil
}

func (r *queries) InsertEvent(ctx context.Context, ev domain.Event) (bool, error) {
	const sql = `
insert into events
  (event_id, event_type, created_at, ingested_at,
   actor_id, actor_login, repo_id, repo_name,
   payload, raw, source_batch)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
on conflict (event_id) do nothing
`
	tag, err := r.q.Exec(ctx, sql,
		ev.EventID, ev.EventType, ev.CreatedAt, ev.IngestedAt,
		ev.ActorID, ev.ActorLogin, ev.RepoID, ev.RepoName,
		ev.Payload, ev.Raw, ev.SourceBatch,
	)
	if err != nil {
		return false, perr.FromPostgresf(err, "insert event %s", ev.EventID)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *queries) RegisterBatch(ctx context.Context, meta domain.BatchMeta) error {
	const sql = `
insert into loaded_batches (batch_path, byte_size, modified_at, content_hash)
values ($1, $2, $3, $4)
on conflict (batch_path) do update set
  byte_size = excluded.byte_size,
  modified_at = excluded.modified_at,
  content_hash = excluded.content_hash,
  loaded_at = now()
`
	if _, err := r.q.Exec(ctx, sql, meta.Path, meta.ByteSize, meta.ModifiedAt, meta.ContentHash); err != nil {
		return perr.FromPostgresf(err, "register batch %s", meta.Path)
	}
	return nil
}
