package timeline

import (
	"testing"
	"time"

	"switchscope/domain/cohort"
	"switchscope/domain/core"
)

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func monthsOfHistory(product string, from core.MonthKey, n int) []PrescriptionHistoryRecord {
	records := make([]PrescriptionHistoryRecord, 0, n)
	m := from
	for i := 0; i < n; i++ {
		records = append(records, PrescriptionHistoryRecord{
			Month: m, ProductName: product, Count: 10, IsOurProduct: true,
		})
		m = m.Next()
	}
	return records
}

func TestBuildTimeline_BoundaryPolicy(t *testing.T) {
	// A patient switching 2025-07-15 is a June survivor but excluded from
	// July onward: switching is attributed at the month's start date.
	patients := []cohort.Patient{
		{ID: "p1", Cohort: "c", SwitchedDate: date("2025-07-15")},
	}
	records := monthsOfHistory("Onco-Pro", "2025-06", 3) // Jun, Jul, Aug

	points := BuildTimeline(patients, records, "Onco-Pro")
	if len(points) != 3 {
		t.Fatalf("expected 3 months, got %d", len(points))
	}

	if points[0].Survivors["c"] != 1 {
		t.Errorf("June: expected 1 survivor, got %d", points[0].Survivors["c"])
	}
	if points[1].Survivors["c"] != 0 {
		t.Errorf("July: expected 0 survivors, got %d", points[1].Survivors["c"])
	}
	if points[2].Survivors["c"] != 0 {
		t.Errorf("August: expected 0 survivors, got %d", points[2].Survivors["c"])
	}
}

func TestBuildTimeline_SwitchOnFirstOfMonth(t *testing.T) {
	// Switched exactly at the month boundary: not strictly after it, so the
	// patient is out starting that month.
	patients := []cohort.Patient{
		{ID: "p1", Cohort: "c", SwitchedDate: date("2025-07-01")},
	}
	records := monthsOfHistory("Onco-Pro", "2025-06", 2)

	points := BuildTimeline(patients, records, "Onco-Pro")
	if points[0].Survivors["c"] != 1 {
		t.Errorf("June: expected 1 survivor, got %d", points[0].Survivors["c"])
	}
	if points[1].Survivors["c"] != 0 {
		t.Errorf("July: expected 0 survivors, got %d", points[1].Survivors["c"])
	}
}

func TestBuildTimeline_TotalEqualsCohortSum(t *testing.T) {
	patients := []cohort.Patient{
		{ID: "p1", Cohort: "a"},
		{ID: "p2", Cohort: "a", SwitchedDate: date("2025-02-10")},
		{ID: "p3", Cohort: "b"},
		{ID: "p4", Cohort: "c", SwitchedDate: date("2025-03-20")},
	}
	records := monthsOfHistory("Onco-Pro", "2025-01", 5)

	for _, p := range BuildTimeline(patients, records, "Onco-Pro") {
		sum := 0
		for _, n := range p.Survivors {
			sum += n
		}
		if p.Total != sum {
			t.Errorf("%s: total %d != cohort sum %d", p.Month, p.Total, sum)
		}
	}
}

func TestBuildTimeline_MonotonicPerCohort(t *testing.T) {
	patients := []cohort.Patient{
		{ID: "p1", Cohort: "a"},
		{ID: "p2", Cohort: "a", SwitchedDate: date("2025-02-15")},
		{ID: "p3", Cohort: "a", SwitchedDate: date("2025-04-02")},
		{ID: "p4", Cohort: "b", SwitchedDate: date("2025-03-01")},
	}
	records := monthsOfHistory("Onco-Pro", "2025-01", 6)

	points := BuildTimeline(patients, records, "Onco-Pro")
	for i := 1; i < len(points); i++ {
		for c := range points[i].Survivors {
			if points[i].Survivors[c] > points[i-1].Survivors[c] {
				t.Errorf("cohort %s grew from %d to %d at %s", c,
					points[i-1].Survivors[c], points[i].Survivors[c], points[i].Month)
			}
		}
	}
}

func TestBuildTimeline_NoHistoryYieldsEmpty(t *testing.T) {
	patients := []cohort.Patient{{ID: "p1", Cohort: "a"}}
	records := monthsOfHistory("Other-Drug", "2025-01", 4)

	points := BuildTimeline(patients, records, "Onco-Pro")
	if points == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(points) != 0 {
		t.Errorf("expected empty timeline, got %d points", len(points))
	}
}

func TestBuildTimeline_Idempotent(t *testing.T) {
	patients := []cohort.Patient{
		{ID: "p1", Cohort: "a"},
		{ID: "p2", Cohort: "b", SwitchedDate: date("2025-03-10")},
	}
	records := monthsOfHistory("Onco-Pro", "2025-01", 4)

	first := BuildTimeline(patients, records, "Onco-Pro")
	second := BuildTimeline(patients, records, "Onco-Pro")

	if len(first) != len(second) {
		t.Fatalf("length mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Month != second[i].Month || first[i].Total != second[i].Total {
			t.Errorf("point %d differs between runs", i)
		}
	}
}

func TestBuildTimeline_DoesNotMutateInputs(t *testing.T) {
	patients := []cohort.Patient{{ID: "p1", Cohort: "a", SwitchedDate: date("2025-03-10")}}
	records := []PrescriptionHistoryRecord{
		{Month: "2025-02", ProductName: "Onco-Pro", Count: 7, IsOurProduct: true},
		{Month: "2025-01", ProductName: "Onco-Pro", Count: 9, IsOurProduct: true},
	}

	BuildTimeline(patients, records, "Onco-Pro")

	if records[0].Month != "2025-02" || records[1].Month != "2025-01" {
		t.Error("input record order was mutated")
	}
	if patients[0].SwitchedDate == nil {
		t.Error("patient input was mutated")
	}
}

// The example scenario: 12 patients in three cohorts, Jan-Oct history, all 5
// young_rcc patients switching between mid-June and early July.
func TestBuildTimeline_CohortCliffScenario(t *testing.T) {
	switchDates := []string{"2025-06-16", "2025-06-20", "2025-06-25", "2025-07-01", "2025-07-05"}
	var patients []cohort.Patient
	for i, d := range switchDates {
		patients = append(patients, cohort.Patient{
			ID: core.PatientID(rune('a' + i)), Cohort: "young_rcc", SwitchedDate: date(d),
		})
	}
	for i := 0; i < 4; i++ {
		patients = append(patients, cohort.Patient{ID: core.PatientID(rune('f' + i)), Cohort: "cv_risk"})
	}
	for i := 0; i < 3; i++ {
		patients = append(patients, cohort.Patient{ID: core.PatientID(rune('k' + i)), Cohort: "stable"})
	}

	records := monthsOfHistory("Onco-Pro", "2025-01", 10) // Jan-Oct
	points := BuildTimeline(patients, records, "Onco-Pro")
	if len(points) != 10 {
		t.Fatalf("expected 10 months, got %d", len(points))
	}

	june, july := points[5], points[6]
	if june.Month != "2025-06" || july.Month != "2025-07" {
		t.Fatalf("unexpected month ordering: %s, %s", june.Month, july.Month)
	}

	// Every switch happened after June 1st, so June still shows all five.
	if june.Survivors["young_rcc"] != 5 {
		t.Errorf("June young_rcc: expected 5, got %d", june.Survivors["young_rcc"])
	}
	// July 1st cutoff excludes the whole cohort, including the 07-05 switch.
	if july.Survivors["young_rcc"] != 0 {
		t.Errorf("July young_rcc: expected 0, got %d", july.Survivors["young_rcc"])
	}
	wantJulyTotal := july.Survivors["cv_risk"] + july.Survivors["stable"]
	if july.Total != wantJulyTotal {
		t.Errorf("July total: expected %d, got %d", wantJulyTotal, july.Total)
	}
}
