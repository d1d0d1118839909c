package http

import (
	"context"
	"net/http/httptest"
	"testing"

	perr "gitpulse/internal/platform/errors"
	"gitpulse/internal/services/analytics/domain"
)

type fakeSvc struct {
	topIn      domain.TopReposInput
	sessionsIn domain.SessionsInput
}

func (f *fakeSvc) TopRepos(_ context.Context, in domain.TopReposInput) (domain.TopReposReport, error) {
	f.topIn = in
	return domain.TopReposReport{Days: in.Days, Limit: in.Limit}, nil
}

func (f *fakeSvc) UserSessions(_ context.Context, in domain.SessionsInput) (domain.SessionsReport, error) {
	f.sessionsIn = in
	return domain.SessionsReport{Days: in.Days, Limit: in.Limit}, nil
}

func TestTopRepos_DefaultsApply(t *testing.T) {
	f := &fakeSvc{}
	h := &handlers{svc: f}

	req := httptest.NewRequest("GET", "/top-repos", nil)
	if _, err := h.topRepos(req); err != nil {
		t.Fatal(err)
	}
	if f.topIn.Days != 30 || f.topIn.Limit != 10 {
		t.Fatalf("defaults: %+v", f.topIn)
	}
}

func TestUserSessions_QueryOverridesDefaults(t *testing.T) {
	f := &fakeSvc{}
	h := &handlers{svc: f}

	req := httptest.NewRequest("GET", "/user-sessions?days=7&limit=5", nil)
	if _, err := h.userSessions(req); err != nil {
		t.Fatal(err)
	}
	if f.sessionsIn.Days != 7 || f.sessionsIn.Limit != 5 {
		t.Fatalf("overrides: %+v", f.sessionsIn)
	}
}

func TestQueryInt_RejectsGarbage(t *testing.T) {
	f := &fakeSvc{}
	h := &handlers{svc: f}

	req := httptest.NewRequest("GET", "/top-repos?days=soon", nil)
	_, err := h.topRepos(req)
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
	if f.topIn.Days != 0 {
		t.Fatalf("bad query must not reach the service")
	}
}
