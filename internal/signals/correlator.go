// Package signals computes the Observe stage's signal-correlation summary:
// which overlaid signals (clinical events, competitor pressure) move together
// with month-over-month survivor loss. Completion of this summary is the guard
// on entering the Investigating stage.
package signals

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"switchscope/domain/core"
	"switchscope/domain/timeline"
)

// minSamples is the shortest series worth correlating.
const minSamples = 3

// Signal is one candidate driver and its correlation with survivor loss.
type Signal struct {
	Name        string  `json:"name"`
	Correlation float64 `json:"correlation"`
	Samples     int     `json:"samples"`
}

// Summary is the ranked correlation summary for one HCP's timeline.
type Summary struct {
	HCPID       core.HCPID     `json:"hcpId"`
	Signals     []Signal       `json:"signals"`
	GeneratedAt core.Timestamp `json:"generatedAt"`
}

// Summarize correlates monthly survivor deltas against per-type event counts
// and competitor prescription deltas. Signals with too few samples or no
// variance are skipped rather than reported as NaN. The result is ranked by
// absolute correlation, strongest first.
func Summarize(hcpID core.HCPID, points []timeline.MonthPoint, events []timeline.AlignedEvent, trends []timeline.TrendPoint) Summary {
	summary := Summary{
		HCPID:       hcpID,
		Signals:     []Signal{},
		GeneratedAt: core.Now(),
	}

	losses := survivorLosses(points)
	if len(losses) < minSamples {
		return summary
	}

	for name, series := range eventSeries(events, len(points)) {
		// Event in a month is paired with the loss into that month.
		if sig, ok := correlate("event:"+name, series[1:], losses); ok {
			summary.Signals = append(summary.Signals, sig)
		}
	}

	if comp := competitorDeltas(points, trends); comp != nil {
		if sig, ok := correlate("competitor_pressure", comp, losses); ok {
			summary.Signals = append(summary.Signals, sig)
		}
	}

	sort.SliceStable(summary.Signals, func(i, j int) bool {
		return math.Abs(summary.Signals[i].Correlation) > math.Abs(summary.Signals[j].Correlation)
	})
	return summary
}

// survivorLosses returns month-over-month drops in the combined survivor
// total, one value per month transition.
func survivorLosses(points []timeline.MonthPoint) []float64 {
	if len(points) < 2 {
		return nil
	}
	losses := make([]float64, len(points)-1)
	for i := 1; i < len(points); i++ {
		losses[i-1] = float64(points[i-1].Total - points[i].Total)
	}
	return losses
}

// eventSeries buckets aligned events into per-type monthly count series.
func eventSeries(events []timeline.AlignedEvent, months int) map[string][]float64 {
	series := make(map[string][]float64)
	for _, ae := range events {
		if ae.MonthIndex < 0 || ae.MonthIndex >= months {
			continue
		}
		s, ok := series[ae.Event.Type]
		if !ok {
			s = make([]float64, months)
			series[ae.Event.Type] = s
		}
		s[ae.MonthIndex]++
	}
	return series
}

// competitorDeltas aligns trend records to the timeline months and returns
// month-over-month competitor count changes, or nil when coverage is partial.
func competitorDeltas(points []timeline.MonthPoint, trends []timeline.TrendPoint) []float64 {
	if len(points) < 2 {
		return nil
	}
	byMonth := make(map[core.MonthKey]int, len(trends))
	for _, t := range trends {
		byMonth[t.Month] = t.CompetitorCount
	}
	deltas := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		prev, okPrev := byMonth[points[i-1].Month]
		cur, okCur := byMonth[points[i].Month]
		if !okPrev || !okCur {
			return nil
		}
		deltas = append(deltas, float64(cur-prev))
	}
	return deltas
}

func correlate(name string, x, y []float64) (Signal, bool) {
	if len(x) != len(y) || len(x) < minSamples {
		return Signal{}, false
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return Signal{}, false
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return Signal{}, false
	}
	return Signal{Name: name, Correlation: r, Samples: len(x)}, true
}
