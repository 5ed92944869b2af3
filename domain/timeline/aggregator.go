package timeline

import (
	"sort"
	"time"

	"switchscope/domain/cohort"
	"switchscope/domain/core"
)

// SurvivorPredicate decides whether a patient still counts as on-product at a
// given month boundary. The default is Patient.OnProductAt; view variants that
// need a different cutoff share the same aggregation by swapping the predicate.
type SurvivorPredicate func(p cohort.Patient, monthStart time.Time) bool

// OnProduct is the standard survivor rule: a patient who switched during a
// month is excluded starting from that month.
func OnProduct(p cohort.Patient, monthStart time.Time) bool {
	return p.OnProductAt(monthStart)
}

// BuildTimeline produces the per-month, per-cohort survivor series for the
// target product using the standard survivor rule.
func BuildTimeline(patients []cohort.Patient, records []PrescriptionHistoryRecord, targetProduct string) []MonthPoint {
	return BuildTimelineWith(patients, records, targetProduct, OnProduct)
}

// BuildTimelineWith is BuildTimeline parameterized by the survivor predicate.
// It never mutates its inputs. A product with no history yields an empty
// timeline, which callers render as an explicit no-data state.
func BuildTimelineWith(patients []cohort.Patient, records []PrescriptionHistoryRecord, targetProduct string, stillOn SurvivorPredicate) []MonthPoint {
	months := productMonths(records, targetProduct)
	if len(months) == 0 {
		return []MonthPoint{}
	}

	cohorts := cohort.DiscoverCohorts(patients)
	points := make([]MonthPoint, 0, len(months))
	for _, m := range months {
		start := m.FirstDay()
		point := MonthPoint{
			Month:     m,
			Survivors: make(map[string]int, len(cohorts)),
		}
		for _, c := range cohorts {
			point.Survivors[c] = 0
		}
		for _, p := range patients {
			if stillOn(p, start) {
				point.Survivors[p.Cohort]++
			}
		}
		for _, n := range point.Survivors {
			point.Total += n
		}
		points = append(points, point)
	}
	return points
}

// productMonths returns the sorted, deduplicated months with history for the
// target product.
func productMonths(records []PrescriptionHistoryRecord, targetProduct string) []core.MonthKey {
	seen := make(map[core.MonthKey]bool)
	months := make([]core.MonthKey, 0, len(records))
	for _, r := range records {
		if r.ProductName != targetProduct || seen[r.Month] {
			continue
		}
		seen[r.Month] = true
		months = append(months, r.Month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	return months
}
