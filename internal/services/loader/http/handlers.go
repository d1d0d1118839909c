// Package http provides http transport for the loader
package http

import (
	stdhttp "net/http"

	"gitpulse/internal/modkit/httpkit"
	svc "gitpulse/internal/services/loader/service"
)

// Register mounts loader endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// synchronous load of all staged batches
	httpkit.Post(r, "/", h.load)
}

type handlers struct{ svc svc.Service }

// @Summary Load staged event batches into Postgres
// @Tags Loader
// @Produce json
// @Success 200 {object} domain.LoadReport "load report"
// @Router /load [post]
func (h *handlers) load(r *stdhttp.Request) (any, error) {
	return h.svc.LoadAll(r.Context())
}
