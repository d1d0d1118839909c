// Package api provides the HTTP API for the application
package api

import (
	"gitpulse/internal/platform/config"
	"gitpulse/internal/platform/logger"
	phttp "gitpulse/internal/platform/net/http"
	"gitpulse/internal/platform/store"

	"gitpulse/internal/modkit"
	"gitpulse/internal/modkit/httpkit"
	"gitpulse/internal/modkit/module"
	"gitpulse/internal/modkit/swaggerkit"

	analyticsmod "gitpulse/internal/services/analytics/module"
	metamod "gitpulse/internal/services/api/meta/module"
	ingestmod "gitpulse/internal/services/ingest/module"
	loadermod "gitpulse/internal/services/loader/module"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Store         *store.Store
	Logger        *logger.Logger
	EnableSwagger bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	mods := []module.Module{
		metamod.New(deps),
		loadermod.New(deps),
		ingestmod.New(deps),
		analyticsmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			m.MountRoutes(api)
		}
	})
}
