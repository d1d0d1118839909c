// Package service pulls the public event feed and stages it for the loader
package service

import (
	"context"
	"encoding/json"
	"time"

	perr "gitpulse/internal/platform/errors"
	"gitpulse/internal/platform/logger"
	"gitpulse/internal/services/ingest/domain"

	"github.com/google/uuid"
)

// batchSize is how many events one staged JSONL file holds
const batchSize = 150

// asyncRunTimeout bounds a background fetch run
const asyncRunTimeout = 5 * time.Minute

// Feed is the upstream event source, one page of raw JSON objects at a time
type Feed interface {
	Events(ctx context.Context, page, perPage int) ([]json.RawMessage, error)
}

// Config holds ingest knobs
type Config struct {
	// RawDir is where staged batch files land
	RawDir string
	// Pages is how many feed pages one run pulls
	Pages int
	// PerPage is the feed page size
	PerPage int
}

// Service defines the ingest contract
type Service interface {
	domain.IngestPort
}

// Svc implements the ingest service
type Svc struct {
	feed Feed
	cfg  Config

	now      func() time.Time
	newRunID func() string
}

// New constructs an ingest service
func New(feed Feed, cfg Config) *Svc {
	if feed == nil {
		panic("ingest.Service requires a non nil Feed")
	}
	if cfg.Pages <= 0 {
		cfg.Pages = 3
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = 100
	}
	return &Svc{feed: feed, cfg: cfg, now: time.Now, newRunID: uuid.NewString}
}

// FetchOnce pulls the configured number of feed pages, stamps each event
// with its ingest time, and stages the result as JSONL batch files
func (s *Svc) FetchOnce(ctx context.Context) (domain.IngestReport, error) {
	return s.run(ctx, s.newRunID(), s.cfg.Pages, s.cfg.PerPage)
}

// FetchAsync starts a fetch run in the background and returns its run id
func (s *Svc) FetchAsync() string {
	return s.FetchAsyncWith(0, 0)
}

// FetchAsyncWith is FetchAsync with per-run page overrides, zero means
// the configured default
func (s *Svc) FetchAsyncWith(pages, perPage int) string {
	if pages <= 0 {
		pages = s.cfg.Pages
	}
	if perPage <= 0 {
		perPage = s.cfg.PerPage
	}
	runID := s.newRunID()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncRunTimeout)
		defer cancel()

		log := logger.Named("ingest")
		rep, err := s.run(ctx, runID, pages, perPage)
		if err != nil {
			log.Error().Err(err).Str("run_id", runID).Msg("background ingest failed")
			return
		}
		log.Info().
			Str("run_id", runID).
			Int("events", rep.EventsFetched).
			Int("batches", rep.BatchesWritten).
			Int64("duration_ms", rep.DurationMS).
			Msg("background ingest complete")
	}()
	return runID
}

func (s *Svc) run(ctx context.Context, runID string, pages, perPage int) (domain.IngestReport, error) {
	start := s.now().UTC()
	log := logger.Named("ingest")

	rep := domain.IngestReport{RunID: runID, StartedAt: start}

	var lines [][]byte
	for page := 1; page <= pages; page++ {
		events, err := s.feed.Events(ctx, page, perPage)
		if err != nil {
			return rep, err
		}
		stamp := s.now().UTC()
		for _, ev := range events {
			line, err := stampEvent(ev, stamp)
			if err != nil {
				log.Warn().Err(err).Int("page", page).Msg("event skipped")
				continue
			}
			lines = append(lines, line)
		}
		// a short page means the feed is exhausted
		if len(events) < perPage {
			break
		}
	}
	rep.EventsFetched = len(lines)

	files, err := writeBatches(s.cfg.RawDir, start, lines)
	if err != nil {
		return rep, err
	}
	rep.BatchesWritten = len(files)
	rep.Files = files
	rep.DurationMS = s.now().UTC().Sub(start).Milliseconds()

	log.Info().
		Str("run_id", runID).
		Int("events", rep.EventsFetched).
		Int("batches", rep.BatchesWritten).
		Msg("fetch run staged")
	return rep, nil
}

// stampEvent records when we saw the event without touching its other fields
func stampEvent(ev json.RawMessage, at time.Time) ([]byte, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(ev, &obj); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "event is not an object")
	}
	ts, err := json.Marshal(at.Format(time.RFC3339Nano))
	if err != nil {
		return nil, err
	}
	obj["_ingested_at"] = ts
	return json.Marshal(obj)
}
