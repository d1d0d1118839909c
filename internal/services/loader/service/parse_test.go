package service

import (
	"testing"
	"time"

	perr "gitpulse/internal/platform/errors"
)

func TestParseLine_FlattensIdentity(t *testing.T) {
	raw := []byte(`{"id":"42","type":"PushEvent","created_at":"2026-02-03T10:00:00Z",` +
		`"_ingested_at":"2026-02-03T10:00:05.123Z",` +
		`"actor":{"id":7,"login":"alice"},"repo":{"id":9,"name":"alice/repo"},` +
		`"payload":{"size":3}}`)

	ev, err := parseLine(raw, "events_a.jsonl")
	if err != nil {
		t.Fatal(err)
	}
	if ev.EventID != "42" || ev.EventType != "PushEvent" {
		t.Fatalf("identity fields: %+v", ev)
	}
	if ev.ActorID == nil || *ev.ActorID != 7 || ev.ActorLogin == nil || *ev.ActorLogin != "alice" {
		t.Fatalf("actor not flattened: %+v", ev)
	}
	if ev.RepoID == nil || *ev.RepoID != 9 || ev.RepoName == nil || *ev.RepoName != "alice/repo" {
		t.Fatalf("repo not flattened: %+v", ev)
	}
	want := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	if !ev.CreatedAt.Equal(want) {
		t.Fatalf("created_at = %v", ev.CreatedAt)
	}
	if ev.CreatedAt.Location() != time.UTC {
		t.Fatalf("timestamps must be UTC")
	}
	if string(ev.Payload) != `{"size":3}` {
		t.Fatalf("payload = %q", ev.Payload)
	}
	if ev.SourceBatch != "events_a.jsonl" {
		t.Fatalf("source batch = %q", ev.SourceBatch)
	}
}

func TestParseLine_NormalizesUnicode(t *testing.T) {
	// "é" as combining sequence (e + U+0301) must be stored composed
	raw := []byte(`{"id":"1","type":"WatchEvent","created_at":"2026-02-03T10:00:00Z",` +
		`"_ingested_at":"2026-02-03T10:00:01Z","actor":{"id":1,"login":"rémi"}}`)

	ev, err := parseLine(raw, "b")
	if err != nil {
		t.Fatal(err)
	}
	if ev.ActorLogin == nil || *ev.ActorLogin != "rémi" {
		t.Fatalf("login = %q", *ev.ActorLogin)
	}
}

func TestParseLine_NullFieldsStayNull(t *testing.T) {
	raw := []byte(`{"id":"1","type":"PushEvent","created_at":"2026-02-03T10:00:00Z",` +
		`"_ingested_at":"2026-02-03T10:00:01Z","payload":null}`)

	ev, err := parseLine(raw, "b")
	if err != nil {
		t.Fatal(err)
	}
	if ev.ActorID != nil || ev.ActorLogin != nil || ev.RepoID != nil || ev.RepoName != nil {
		t.Fatalf("missing identity must stay nil: %+v", ev)
	}
	if ev.Payload != nil {
		t.Fatalf("null payload must stay nil, got %q", ev.Payload)
	}
}

func TestParseLine_RejectsIncompleteRecords(t *testing.T) {
	cases := map[string]string{
		"not json":           `{broken`,
		"missing id":         `{"type":"PushEvent","created_at":"2026-02-03T10:00:00Z","_ingested_at":"2026-02-03T10:00:01Z"}`,
		"missing type":       `{"id":"1","created_at":"2026-02-03T10:00:00Z","_ingested_at":"2026-02-03T10:00:01Z"}`,
		"missing created_at": `{"id":"1","type":"PushEvent","_ingested_at":"2026-02-03T10:00:01Z"}`,
		"missing ingested":   `{"id":"1","type":"PushEvent","created_at":"2026-02-03T10:00:00Z"}`,
		"bad timestamp":      `{"id":"1","type":"PushEvent","created_at":"yesterday","_ingested_at":"2026-02-03T10:00:01Z"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := parseLine([]byte(raw), "b"); !perr.IsCode(err, perr.ErrorCodeParse) {
				t.Fatalf("want parse error, got %v", err)
			}
		})
	}
}

func TestFingerprint_TracksContent(t *testing.T) {
	a := fingerprint([]byte("alpha"))
	b := fingerprint([]byte("alpha"))
	c := fingerprint([]byte("beta"))
	if a != b {
		t.Fatalf("same bytes must fingerprint identically")
	}
	if a == c {
		t.Fatalf("different bytes must not collide")
	}
	if len(a) != 64 {
		t.Fatalf("hex sha256 should be 64 chars, got %d", len(a))
	}
}
