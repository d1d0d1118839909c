// Package http provides http transport for the ingest fetcher
package http

import (
	stdhttp "net/http"

	"gitpulse/internal/modkit/httpkit"
	svc "gitpulse/internal/services/ingest/service"
)

// Register mounts ingest endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Post(r, "/", h.ingest)
	httpkit.PostJSON(r, "/run", h.run)
}

type handlers struct{ svc svc.Service }

// startedBody acknowledges a background fetch run
type startedBody struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}

// runBody carries per-run overrides for a parameterized fetch
type runBody struct {
	Pages   int `json:"pages"    validate:"omitempty,gt=0,max=10"`
	PerPage int `json:"per_page" validate:"omitempty,gt=0,max=100"`
}

// @Summary Fetch the public event feed into staged batches
// @Tags Ingest
// @Produce json
// @Success 202 {object} startedBody "run started"
// @Router /ingest [post]
func (h *handlers) ingest(r *stdhttp.Request) (any, error) {
	runID := h.svc.FetchAsync()
	return httpkit.Accepted(startedBody{RunID: runID, Status: "started"}), nil
}

// @Summary Fetch the event feed with per-run page overrides
// @Tags Ingest
// @Accept json
// @Produce json
// @Param body body runBody true "run overrides"
// @Success 202 {object} startedBody "run started"
// @Failure 400 {object} httpkit.Envelope "malformed or invalid body"
// @Router /ingest/run [post]
func (h *handlers) run(_ *stdhttp.Request, in runBody) (any, error) {
	runID := h.svc.FetchAsyncWith(in.Pages, in.PerPage)
	return httpkit.Accepted(startedBody{RunID: runID, Status: "started"}), nil
}
