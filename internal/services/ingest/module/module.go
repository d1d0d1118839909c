// Package module wires the ingest fetcher into the API using modkit
package module

import (
	"net/http"
	"time"

	"gitpulse/internal/adapters/ingest/github"
	modkit "gitpulse/internal/modkit"
	"gitpulse/internal/modkit/httpkit"
	ingesthttp "gitpulse/internal/services/ingest/http"
	ingestsvc "gitpulse/internal/services/ingest/service"
)

// Module implements the ingest module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc ingestsvc.Service
}

// New constructs the ingest module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("ingest"), modkit.WithPrefix("/ingest")}, opts...)...)

	feed := github.NewClient(github.Options{
		BaseURL:   deps.Cfg.MayString("GITHUB_API_URL", ""),
		TokensCSV: deps.Cfg.MayString("GITHUB_TOKENS", ""),
		Timeout:   deps.Cfg.MayDuration("GITHUB_TIMEOUT", 10*time.Second),
	})
	cfg := ingestsvc.Config{
		RawDir:  deps.Cfg.MayString("RAW_DIR", "data/raw"),
		Pages:   deps.Cfg.MayInt("INGEST_PAGES", 3),
		PerPage: deps.Cfg.MayInt("INGEST_PER_PAGE", 100),
	}
	svc := ingestsvc.New(feed, cfg)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Ingest: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		ingesthttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
