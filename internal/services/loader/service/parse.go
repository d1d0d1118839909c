package service

import (
	"encoding/json"
	"time"

	perr "gitpulse/internal/platform/errors"
	"gitpulse/internal/services/loader/domain"

	"golang.org/x/text/unicode/norm"
)

// rawRecord mirrors one JSONL line from the ingest producer
// nested actor/repo objects are flattened into the stored event
type rawRecord struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	CreatedAt  string          `json:"created_at"`
	IngestedAt string          `json:"_ingested_at"`
	Actor      *rawIdentity    `json:"actor"`
	Repo       *rawIdentity    `json:"repo"`
	Payload    json.RawMessage `json:"payload"`
}

type rawIdentity struct {
	ID    *int64  `json:"id"`
	Login *string `json:"login"`
	Name  *string `json:"name"`
}

// parseLine turns one JSONL line into a storable event
// a failure here is a record-level parse error, the batch keeps going
func parseLine(line []byte, sourceBatch string) (domain.Event, error) {
	var rec rawRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return domain.Event{}, perr.Parsef("invalid record json: %v", err)
	}
	if rec.ID == "" {
		return domain.Event{}, perr.Parsef("record missing id")
	}
	if rec.Type == "" {
		return domain.Event{}, perr.Parsef("record %s missing type", rec.ID)
	}

	createdAt, err := parseStamp(rec.CreatedAt)
	if err != nil {
		return domain.Event{}, perr.Parsef("record %s created_at: %v", rec.ID, err)
	}
	ingestedAt, err := parseStamp(rec.IngestedAt)
	if err != nil {
		return domain.Event{}, perr.Parsef("record %s _ingested_at: %v", rec.ID, err)
	}

	ev := domain.Event{
		EventID:     rec.ID,
		EventType:   rec.Type,
		CreatedAt:   createdAt,
		IngestedAt:  ingestedAt,
		Payload:     nonEmptyJSON(rec.Payload),
		Raw:         append([]byte(nil), line...),
		SourceBatch: sourceBatch,
	}
	if rec.Actor != nil {
		ev.ActorID = rec.Actor.ID
		ev.ActorLogin = nfcPtr(rec.Actor.Login)
	}
	if rec.Repo != nil {
		ev.RepoID = rec.Repo.ID
		ev.RepoName = nfcPtr(rec.Repo.Name)
	}
	return ev, nil
}

func parseStamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, perr.Parsef("missing timestamp")
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// nfcPtr NFC-normalizes identity strings so lookups do not split on
// composed vs decomposed unicode forms
func nfcPtr(s *string) *string {
	if s == nil {
		return nil
	}
	n := norm.NFC.String(*s)
	return &n
}

func nonEmptyJSON(m json.RawMessage) []byte {
	if len(m) == 0 || string(m) == "null" {
		return nil
	}
	return []byte(m)
}
