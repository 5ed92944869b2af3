package reveal

import (
	"testing"
	"time"
)

func demoLog() []Activity {
	return []Activity{
		{Offset: 0, Message: "pulling prescription history"},
		{Offset: 400 * time.Millisecond, Message: "aligning clinical events"},
		{Offset: 900 * time.Millisecond, Message: "scoring cohort drop-off"},
		{Offset: 1500 * time.Millisecond, Message: "summary ready"},
	}
}

func TestVisible_PrefixByElapsed(t *testing.T) {
	log := demoLog()

	if got := Visible(log, 0); len(got) != 1 {
		t.Errorf("at t=0 only the zero-offset line shows, got %d", len(got))
	}
	if got := Visible(log, 900*time.Millisecond); len(got) != 3 {
		t.Errorf("boundary offset is inclusive, got %d lines", len(got))
	}
	if got := Visible(log, time.Hour); len(got) != len(log) {
		t.Errorf("long elapsed shows everything, got %d", len(got))
	}
}

func TestVisible_NegativeElapsed(t *testing.T) {
	if got := Visible(demoLog(), -time.Second); len(got) != 0 {
		t.Errorf("nothing visible before the clock starts, got %d", len(got))
	}
}

func TestVisible_DoesNotMutateLog(t *testing.T) {
	log := demoLog()
	Visible(log, time.Second)
	Visible(log, time.Second)
	if log[0].Message != "pulling prescription history" || len(log) != 4 {
		t.Error("log must be read-only")
	}
}

func TestVisible_RestartIsIdempotent(t *testing.T) {
	log := demoLog()
	first := Visible(log, 500*time.Millisecond)
	// Leaving and re-entering the stage replays from elapsed zero; the same
	// elapsed value always yields the same prefix.
	second := Visible(log, 500*time.Millisecond)
	if len(first) != len(second) {
		t.Fatalf("replay diverged: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("line %d diverged on replay", i)
		}
	}
}

func TestProgress(t *testing.T) {
	log := demoLog()
	if got := Progress(log, 0); got != 25 {
		t.Errorf("t=0 progress = %v, want 25", got)
	}
	if got := Progress(log, time.Hour); got != 100 {
		t.Errorf("complete progress = %v, want 100", got)
	}
	if got := Progress(nil, 0); got != 100 {
		t.Errorf("empty log progress = %v, want 100", got)
	}
}

func TestDone(t *testing.T) {
	log := demoLog()
	if Done(log, time.Second) {
		t.Error("not done before the last offset")
	}
	if !Done(log, 1500*time.Millisecond) {
		t.Error("done exactly at the last offset")
	}
	if !Done(nil, 0) {
		t.Error("empty log is trivially done")
	}
}
