// Package reveal models the staged "live activity" display as a pure function
// of a pre-fetched activity log and elapsed wall-clock time. Nothing here
// mutates the log or owns a timer; pausing and resuming a view reconstructs
// identical state from elapsed time alone.
package reveal

import (
	"time"
)

// Activity is one line of a stage's pre-computed activity log. Offset is the
// relative time at which it becomes visible.
type Activity struct {
	Offset  time.Duration `json:"offsetMs"`
	Message string        `json:"message"`
}

// Visible returns the prefix of activities whose offsets have elapsed. The
// log is treated as fixed and already sorted by offset; re-entering a stage
// restarts cleanly from elapsed zero without double-counting.
func Visible(log []Activity, elapsed time.Duration) []Activity {
	visible := make([]Activity, 0, len(log))
	for _, a := range log {
		if a.Offset <= elapsed {
			visible = append(visible, a)
		}
	}
	return visible
}

// Progress reports reveal completion as a percentage, clamped to 100 once
// every activity is visible. An empty log counts as complete.
func Progress(log []Activity, elapsed time.Duration) float64 {
	if len(log) == 0 {
		return 100
	}
	shown := len(Visible(log, elapsed))
	pct := float64(shown) / float64(len(log)) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// Done reports whether the full log has been revealed.
func Done(log []Activity, elapsed time.Duration) bool {
	return len(Visible(log, elapsed)) == len(log)
}
