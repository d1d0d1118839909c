package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"gitpulse/internal/adapters/ingest/github"
	"gitpulse/internal/platform/config"
	"gitpulse/internal/platform/logger"

	ingestsvc "gitpulse/internal/services/ingest/service"
)

func main() {
	root := config.New()
	l := logger.Get()

	var (
		fRawDir  = flag.String("raw-dir", root.MayString("RAW_DIR", "data/raw"), "directory staged batches are written to")
		fPages   = flag.Int("pages", root.MayInt("INGEST_PAGES", 3), "feed pages to pull")
		fPerPage = flag.Int("per-page", root.MayInt("INGEST_PER_PAGE", 100), "feed page size")
		fTimeout = flag.Duration("timeout", 5*time.Minute, "overall run timeout")
	)
	flag.Parse()

	feed := github.NewClient(github.Options{
		BaseURL:   root.MayString("GITHUB_API_URL", ""),
		TokensCSV: root.MayString("GITHUB_TOKENS", ""),
		Timeout:   root.MayDuration("GITHUB_TIMEOUT", 10*time.Second),
	})
	svc := ingestsvc.New(feed, ingestsvc.Config{
		RawDir:  *fRawDir,
		Pages:   *fPages,
		PerPage: *fPerPage,
	})

	ctx, cancel := context.WithTimeout(context.Background(), *fTimeout)
	defer cancel()

	rep, err := svc.FetchOnce(ctx)
	if err != nil {
		l.Fatal().Err(err).Msg("fetch failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		l.Fatal().Err(err).Msg("report encode failed")
	}
}
