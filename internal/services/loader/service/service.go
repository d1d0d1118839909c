// Package service contains the idempotent batch load workflow
package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gitpulse/internal/modkit/repokit"
	perr "gitpulse/internal/platform/errors"
	"gitpulse/internal/platform/logger"
	"gitpulse/internal/services/loader/domain"
	"gitpulse/internal/services/loader/repo"
)

// Config holds loader knobs
type Config struct {
	// RawDir is the directory holding staged *.jsonl batch files
	RawDir string
}

// Service defines the loader contract
type Service interface {
	domain.LoaderPort
}

// Svc implements the loader service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	cfg    Config
}

// New constructs a loader service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], cfg Config) *Svc {
	if db == nil {
		panic("loader.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("loader.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, cfg: cfg}
}

// LoadAll scans the raw directory and merges every admitted batch,
// one transaction per batch, never aborting the run on a single failure
func (s *Svc) LoadAll(ctx context.Context) (domain.LoadReport, error) {
	start := time.Now()
	log := logger.Named("loader")

	if err := s.Repo.EnsureSchema(ctx); err != nil {
		return domain.LoadReport{}, err
	}

	paths, err := s.listBatches()
	if err != nil {
		return domain.LoadReport{}, err
	}

	rep := domain.LoadReport{BatchesScanned: len(paths)}
	log.Info().Int("batches", len(paths)).Str("dir", s.cfg.RawDir).Msg("load started")

	for _, path := range paths {
		br := s.loadOne(ctx, path)
		rep.Batches = append(rep.Batches, br)

		rep.RecordsSeen += br.RecordsSeen
		rep.RecordsInserted += br.RecordsInserted
		rep.RecordsDeduped += br.RecordsDeduped
		rep.RecordsBadParse += br.RecordsBadParse

		switch br.Outcome {
		case domain.BatchLoaded:
			rep.BatchesLoaded++
		case domain.BatchSkipped:
			rep.BatchesSkipped++
		case domain.BatchFailed:
			rep.BatchesFailed++
			log.Warn().Str("batch", br.Path).Str("error", br.Error).Msg("batch failed, continuing")
		}
	}

	rep.DurationMS = time.Since(start).Milliseconds()
	log.Info().
		Int("loaded", rep.BatchesLoaded).
		Int("skipped", rep.BatchesSkipped).
		Int("failed", rep.BatchesFailed).
		Int("inserted", rep.RecordsInserted).
		Int64("elapsed_ms", rep.DurationMS).
		Msg("load complete")
	return rep, nil
}

// listBatches returns base-sorted *.jsonl files so runs are deterministic
func (s *Svc) listBatches() ([]string, error) {
	if err := os.MkdirAll(s.cfg.RawDir, 0o755); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "raw dir %s", s.cfg.RawDir)
	}
	matches, err := filepath.Glob(filepath.Join(s.cfg.RawDir, "*.jsonl"))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "scan raw dir")
	}
	sort.Strings(matches)
	return matches, nil
}

// loadOne runs the content hash gate then the per-batch transaction
func (s *Svc) loadOne(ctx context.Context, path string) domain.BatchReport {
	name := filepath.Base(path)
	br := domain.BatchReport{Path: name}

	content, err := os.ReadFile(path)
	if err != nil {
		br.Outcome = domain.BatchFailed
		br.Error = err.Error()
		return br
	}
	info, err := os.Stat(path)
	if err != nil {
		br.Outcome = domain.BatchFailed
		br.Error = err.Error()
		return br
	}

	meta := domain.BatchMeta{
		Path:        name,
		ByteSize:    int64(len(content)),
		ModifiedAt:  info.ModTime().UTC(),
		ContentHash: fingerprint(content),
	}

	// gate: skip iff the same path was committed with the same fingerprint
	// a changed fingerprint re-admits the batch, record idempotency keeps it safe
	stored, known, err := s.Repo.BatchHash(ctx, meta.Path)
	if err != nil {
		br.Outcome = domain.BatchFailed
		br.Error = err.Error()
		return br
	}
	if known && stored == meta.ContentHash {
		br.Outcome = domain.BatchSkipped
		return br
	}

	// parse every line independently, malformed lines never abort the batch
	events, seen, badParse := s.parseBatch(content, meta.Path)
	br.RecordsSeen = seen
	br.RecordsBadParse = badParse

	// all upserts plus the batch registration commit or roll back together
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		for _, ev := range events {
			inserted, err := r.InsertEvent(ctx, ev)
			if err != nil {
				return err
			}
			if inserted {
				br.RecordsInserted++
			} else {
				br.RecordsDeduped++
			}
		}
		return r.RegisterBatch(ctx, meta)
	})
	if err != nil {
		br.Outcome = domain.BatchFailed
		br.Error = err.Error()
		br.RecordsInserted = 0
		br.RecordsDeduped = 0
		return br
	}

	br.Outcome = domain.BatchLoaded
	return br
}

func (s *Svc) parseBatch(content []byte, sourceBatch string) (events []domain.Event, seen, badParse int) {
	log := logger.Named("loader")
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		seen++
		ev, err := parseLine(line, sourceBatch)
		if err != nil {
			badParse++
			log.Warn().Str("batch", sourceBatch).Err(err).Msg("record skipped")
			continue
		}
		events = append(events, ev)
	}
	return events, seen, badParse
}
