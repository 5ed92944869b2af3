package timeline

import (
	"switchscope/domain/core"
)

// PrescriptionHistoryRecord is one product's prescription volume in one month.
// At most one record exists per (product, month) pair.
type PrescriptionHistoryRecord struct {
	Month        core.MonthKey `json:"month"`
	ProductName  string        `json:"productName"`
	Count        int           `json:"prescriptionCount"`
	IsOurProduct bool          `json:"isOurProduct"`
}

// MonthPoint is one month of the stacked retention series: survivor counts per
// cohort plus their sum. Total is always derived from the cohort counts so the
// stacked series and the displayed total cannot disagree.
type MonthPoint struct {
	Month     core.MonthKey  `json:"month"`
	Survivors map[string]int `json:"survivors"`
	Total     int            `json:"total"`
}

// ClinicalEvent is a point-in-time clinical or payer event overlaid on the
// timeline. EventType is an open tag used for annotation lookup only.
type ClinicalEvent struct {
	Date  string `json:"eventDate"` // ISO date, YYYY-MM-DD
	Title string `json:"eventTitle"`
	Type  string `json:"eventType"`
}

// TrendPoint is one month of own-versus-competitor prescription volume. The
// aggregator never transforms these; they feed the signal-correlation summary
// and the trend overlay.
type TrendPoint struct {
	Month           core.MonthKey `json:"month"`
	OwnCount        int           `json:"ownCount"`
	CompetitorCount int           `json:"competitorCount"`
}

// AlignedEvent pairs an event with the timeline index of its month bucket.
type AlignedEvent struct {
	Event      ClinicalEvent `json:"event"`
	MonthIndex int           `json:"monthIndex"`
}
