package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

// Init is sync.Once guarded, so the whole file shares one configured root
// writing into this buffer; each test resets it before logging
var logBuf bytes.Buffer

func initTestLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	Init(Options{Level: "debug", Format: "json", Service: "gitpulse-test", Writer: &logBuf})
	logBuf.Reset()
	return &logBuf
}

func TestInitSetsServiceField(t *testing.T) {
	buf := initTestLogger(t)

	Get().Info().Msg("hello")
	out := buf.String()
	if !strings.Contains(out, `"service":"gitpulse-test"`) {
		t.Fatalf("expected service field in output, got %s", out)
	}
	if !strings.Contains(out, `"message":"hello"`) {
		t.Fatalf("expected message in output, got %s", out)
	}
}

func TestInitKeepsFirstWriter(t *testing.T) {
	buf := initTestLogger(t)

	var other bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Service: "other", Writer: &other})

	Get().Info().Msg("still here")
	if other.Len() != 0 {
		t.Fatalf("second Init must not replace the writer, got %s", other.String())
	}
	if !strings.Contains(buf.String(), `"message":"still here"`) {
		t.Fatalf("expected output on the original writer, got %s", buf.String())
	}
}

func TestCEnrichesWithRequestID(t *testing.T) {
	buf := initTestLogger(t)

	ctx := WithRequest(context.Background(), "req-123")
	C(ctx).Info().Msg("scoped")

	if !strings.Contains(buf.String(), `"request_id":"req-123"`) {
		t.Fatalf("expected request_id field, got %s", buf.String())
	}
}

func TestNamedAddsComponent(t *testing.T) {
	buf := initTestLogger(t)

	Named("loader").Info().Msg("component log")
	if !strings.Contains(buf.String(), `"component":"loader"`) {
		t.Fatalf("expected component field, got %s", buf.String())
	}
}

func TestParseLevelFallsBackToDebug(t *testing.T) {
	for in, want := range map[string]string{
		"info":    "info",
		"WARN":    "warn",
		"bogus":   "debug",
		"":        "debug",
		"warning": "warn",
	} {
		if got := parseLevel(in).String(); got != want {
			t.Fatalf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
