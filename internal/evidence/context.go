// Package evidence summarizes the clinical and financial patient attributes
// that accompany hypotheses as context in the deep-dive view. These summaries
// are presentation inputs only; the survival aggregator never reads them.
package evidence

import (
	"github.com/montanaflynn/stats"

	"switchscope/domain/cohort"
)

// CohortContext is the attribute profile of one cohort.
type CohortContext struct {
	Cohort       string  `json:"cohort"`
	Patients     int     `json:"patients"`
	SwitchedPct  float64 `json:"switchedPct"`
	CopayMean    float64 `json:"copayMean"`
	CopayMedian  float64 `json:"copayMedian"`
	CopayP90     float64 `json:"copayP90"`
	LagMeanDays  float64 `json:"fulfillmentLagMeanDays"`
	LagP75Days   float64 `json:"fulfillmentLagP75Days"`
	AgeMeanYears float64 `json:"ageMeanYears"`
}

// SummarizeCohorts profiles each discovered cohort. Cohort order follows the
// registry's lexicographic ordering; empty input yields an empty slice.
func SummarizeCohorts(patients []cohort.Patient) []CohortContext {
	labels := cohort.DiscoverCohorts(patients)
	out := make([]CohortContext, 0, len(labels))
	for _, label := range labels {
		var copays, lags, ages []float64
		var switched int
		var n int
		for _, p := range patients {
			if p.Cohort != label {
				continue
			}
			n++
			copays = append(copays, p.Copay)
			lags = append(lags, float64(p.LagDays))
			ages = append(ages, float64(p.AgeYrs))
			if p.Switched() {
				switched++
			}
		}
		ctx := CohortContext{
			Cohort:       label,
			Patients:     n,
			SwitchedPct:  pct(switched, n),
			CopayMean:    mean(copays),
			CopayMedian:  median(copays),
			CopayP90:     percentile(copays, 90),
			LagMeanDays:  mean(lags),
			LagP75Days:   percentile(lags, 75),
			AgeMeanYears: mean(ages),
		}
		out = append(out, ctx)
	}
	return out
}

func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// The stats helpers error only on empty input, which we fold to zero.

func mean(xs []float64) float64 {
	v, err := stats.Mean(xs)
	if err != nil {
		return 0
	}
	return v
}

func median(xs []float64) float64 {
	v, err := stats.Median(xs)
	if err != nil {
		return 0
	}
	return v
}

func percentile(xs []float64, p float64) float64 {
	v, err := stats.Percentile(xs, p)
	if err != nil {
		return 0
	}
	return v
}
