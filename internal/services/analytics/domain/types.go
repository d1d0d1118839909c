// Package domain holds the analytics read models
package domain

import "time"

// TopReposInput bounds the repository leaderboard query
type TopReposInput struct {
	// Days is the lookback window, events with created_at strictly after now-Days qualify
	Days int `json:"days" validate:"gt=0"`
	// Limit caps the number of rows returned
	Limit int `json:"limit" validate:"gt=0,max=500"`
}

// TopRepoRow is one repository on the activity leaderboard
type TopRepoRow struct {
	RepoName     string    `json:"repo_name"`
	TotalEvents  int64     `json:"total_events"`
	UniqueActors int64     `json:"unique_actors"`
	PushEvents   int64     `json:"push_events"`
	FirstEventAt time.Time `json:"first_event_at"`
	LastEventAt  time.Time `json:"last_event_at"`
}

// TopReposReport wraps the leaderboard with its parameters
type TopReposReport struct {
	Days       int          `json:"days"`
	Limit      int          `json:"limit"`
	ComputedAt time.Time    `json:"computed_at"`
	Repos      []TopRepoRow `json:"repos"`
}

// SessionsInput bounds the session segmentation query
type SessionsInput struct {
	// Days is the lookback window for session starts
	Days int `json:"days" validate:"gt=0"`
	// Limit caps the number of sessions returned
	Limit int `json:"limit" validate:"gt=0,max=1000"`
}

// SessionRow is one contiguous activity burst for an actor
type SessionRow struct {
	ActorID         int64     `json:"actor_id"`
	ActorLogin      string    `json:"actor_login"`
	SessionSequence int       `json:"session_sequence"`
	SessionStart    time.Time `json:"session_start"`
	SessionEnd      time.Time `json:"session_end"`
	EventCount      int64     `json:"event_count"`
}

// SessionsReport wraps the session list with its parameters
type SessionsReport struct {
	Days       int          `json:"days"`
	Limit      int          `json:"limit"`
	ComputedAt time.Time    `json:"computed_at"`
	Sessions   []SessionRow `json:"sessions"`
}

// Candidate is the minimal event projection session segmentation runs on
type Candidate struct {
	ActorID    int64
	ActorLogin string
	EventID    string
	CreatedAt  time.Time
}
