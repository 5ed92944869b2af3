package timeline

import (
	"testing"

	"switchscope/domain/core"
)

func timelineFor(months ...string) []MonthPoint {
	points := make([]MonthPoint, 0, len(months))
	for _, m := range months {
		points = append(points, MonthPoint{Month: core.MonthKey(m)})
	}
	return points
}

func TestAlignEvents_MatchesMonthBucket(t *testing.T) {
	points := timelineFor("2025-05", "2025-06", "2025-07")
	events := []ClinicalEvent{
		{Date: "2025-06-14", Title: "PA change", Type: "payer_policy_change"},
		{Date: "2025-07-02", Title: "AE report", Type: "adverse_event"},
	}

	aligned := AlignEvents(events, points)
	if len(aligned) != 2 {
		t.Fatalf("expected 2 aligned events, got %d", len(aligned))
	}
	if aligned[0].MonthIndex != 1 {
		t.Errorf("expected June index 1, got %d", aligned[0].MonthIndex)
	}
	if aligned[1].MonthIndex != 2 {
		t.Errorf("expected July index 2, got %d", aligned[1].MonthIndex)
	}
}

func TestAlignEvents_DropsOutOfWindow(t *testing.T) {
	points := timelineFor("2025-05", "2025-06")
	events := []ClinicalEvent{
		{Date: "2024-12-25", Title: "old", Type: "conference"},
		{Date: "2025-09-01", Title: "future", Type: "conference"},
	}

	aligned := AlignEvents(events, points)
	if len(aligned) != 0 {
		t.Errorf("expected out-of-window events dropped, got %d", len(aligned))
	}
}

func TestAlignEvents_MultiplePerMonth(t *testing.T) {
	points := timelineFor("2025-06")
	events := []ClinicalEvent{
		{Date: "2025-06-01", Title: "first", Type: "conference"},
		{Date: "2025-06-30", Title: "second", Type: "adverse_event"},
	}

	aligned := AlignEvents(events, points)
	if len(aligned) != 2 {
		t.Fatalf("expected both events aligned, got %d", len(aligned))
	}
	for _, ae := range aligned {
		if ae.MonthIndex != 0 {
			t.Errorf("event %q: expected index 0, got %d", ae.Event.Title, ae.MonthIndex)
		}
	}
}

func TestAlignEvents_MalformedDateDropped(t *testing.T) {
	points := timelineFor("2025-06")
	events := []ClinicalEvent{
		{Date: "bad", Title: "too short", Type: "conference"},
		{Date: "not-a-date", Title: "long but not a month", Type: "conference"},
		{Date: "2025-13-01", Title: "month out of range", Type: "conference"},
	}

	if got := AlignEvents(events, points); len(got) != 0 {
		t.Errorf("expected malformed-date events dropped, got %d", len(got))
	}
}
