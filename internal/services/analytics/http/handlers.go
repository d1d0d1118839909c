// Package http provides http transport for the analytics queries
package http

import (
	stdhttp "net/http"
	"strconv"

	"gitpulse/internal/modkit/httpkit"
	perr "gitpulse/internal/platform/errors"
	"gitpulse/internal/services/analytics/domain"
	svc "gitpulse/internal/services/analytics/service"
)

const (
	defaultDays          = 30
	defaultTopRepoLimit  = 10
	defaultSessionsLimit = 50
)

// Register mounts analytics endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/top-repos", h.topRepos)
	httpkit.Get(r, "/user-sessions", h.userSessions)
}

type handlers struct{ svc svc.Service }

// @Summary Repository activity leaderboard
// @Tags Analytics
// @Produce json
// @Param days query int false "lookback window in days" default(30)
// @Param limit query int false "max rows" default(10)
// @Success 200 {object} domain.TopReposReport
// @Failure 422 {object} httpkit.Envelope "non-positive days or limit"
// @Router /top-repos [get]
func (h *handlers) topRepos(r *stdhttp.Request) (any, error) {
	days, err := queryInt(r, "days", defaultDays)
	if err != nil {
		return nil, err
	}
	limit, err := queryInt(r, "limit", defaultTopRepoLimit)
	if err != nil {
		return nil, err
	}
	return h.svc.TopRepos(r.Context(), domain.TopReposInput{Days: days, Limit: limit})
}

// @Summary Per-actor activity sessions
// @Tags Analytics
// @Produce json
// @Param days query int false "lookback window in days" default(30)
// @Param limit query int false "max sessions" default(50)
// @Success 200 {object} domain.SessionsReport
// @Failure 422 {object} httpkit.Envelope "non-positive days or limit"
// @Router /user-sessions [get]
func (h *handlers) userSessions(r *stdhttp.Request) (any, error) {
	days, err := queryInt(r, "days", defaultDays)
	if err != nil {
		return nil, err
	}
	limit, err := queryInt(r, "limit", defaultSessionsLimit)
	if err != nil {
		return nil, err
	}
	return h.svc.UserSessions(r.Context(), domain.SessionsInput{Days: days, Limit: limit})
}

func queryInt(r *stdhttp.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, perr.InvalidArgf("%s must be an integer, got %q", key, raw)
	}
	return n, nil
}
