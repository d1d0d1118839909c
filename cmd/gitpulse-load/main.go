package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"gitpulse/internal/modkit"
	"gitpulse/internal/modkit/module"
	"gitpulse/internal/modkit/repokit"
	"gitpulse/internal/platform/config"
	"gitpulse/internal/platform/logger"
	"gitpulse/internal/platform/store"

	loadermod "gitpulse/internal/services/loader/module"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	var (
		fRawDir = flag.String("raw-dir", "", "directory holding staged *.jsonl batches (overrides RAW_DIR)")
	)
	flag.Parse()
	mustSetEnv("RAW_DIR", *fRawDir)

	st, err := store.Open(context.Background(), store.Config{
		AppName: "gitpulse-load",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	repokit.MustGuard(context.Background(), st)

	deps := modkit.Deps{Log: *l, Cfg: config.New(), PG: st.PG}
	loader := loadermod.New(deps)
	port := module.MustPortsOf[loadermod.Ports](loader).Loader

	rep, err := port.LoadAll(context.Background())
	if err != nil {
		l.Fatal().Err(err).Msg("load failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		l.Fatal().Err(err).Msg("report encode failed")
	}

	if rep.BatchesFailed > 0 {
		os.Exit(1)
	}
}
