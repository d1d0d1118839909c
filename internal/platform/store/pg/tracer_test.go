package pg

import "testing"

func TestCompactCollapsesWhitespace(t *testing.T) {
	in := "SELECT\n\tevent_id,\n\tevent_type\nFROM   events\r\nWHERE created_at > $1"
	want := "SELECT event_id, event_type FROM events WHERE created_at > $1"
	if got := compact(in); got != want {
		t.Fatalf("compact = %q, want %q", got, want)
	}
}

func TestCompactLeavesSingleSpaces(t *testing.T) {
	in := "SELECT 1"
	if got := compact(in); got != in {
		t.Fatalf("compact changed already-compact SQL: %q", got)
	}
}
