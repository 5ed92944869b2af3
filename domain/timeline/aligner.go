package timeline

import (
	"switchscope/domain/core"
)

// AlignEvents maps each event onto the timeline index of its containing month.
// Events whose month is outside the observed window are dropped, not errors;
// multiple events may land on the same index.
func AlignEvents(events []ClinicalEvent, points []MonthPoint) []AlignedEvent {
	index := make(map[core.MonthKey]int, len(points))
	for i, p := range points {
		index[p.Month] = i
	}

	aligned := make([]AlignedEvent, 0, len(events))
	for _, ev := range events {
		key := core.MonthKeyFromDate(ev.Date)
		if !key.IsValid() {
			continue
		}
		if i, ok := index[key]; ok {
			aligned = append(aligned, AlignedEvent{Event: ev, MonthIndex: i})
		}
	}
	return aligned
}
