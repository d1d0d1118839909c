// Package module wires the loader into the API using modkit
package module

import (
	"net/http"

	modkit "gitpulse/internal/modkit"
	"gitpulse/internal/modkit/httpkit"
	loaderhttp "gitpulse/internal/services/loader/http"
	loaderrepo "gitpulse/internal/services/loader/repo"
	loadersvc "gitpulse/internal/services/loader/service"
)

// Module implements the loader module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc loadersvc.Service
}

// New constructs the loader module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("loader"), modkit.WithPrefix("/load")}, opts...)...)

	cfg := loadersvc.Config{
		RawDir: deps.Cfg.MayString("RAW_DIR", "data/raw"),
	}
	svc := loadersvc.New(deps.PG, loaderrepo.NewPG(), cfg)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Loader: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		loaderhttp.Register(r, m.svc)
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
