package testkit

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"switchscope/domain/cohort"
	"switchscope/domain/core"
	"switchscope/domain/timeline"
)

// PanelConfig configures the synthetic patient-panel generator.
type PanelConfig struct {
	Cohorts       map[string]int // cohort label -> patient count
	SwitchRates   map[string]float64
	Product       string
	Competitor    string
	StartMonth    core.MonthKey
	Months        int
	Seed          int64
	BaselineCount int // prescriptions in the first month
}

// DefaultPanelConfig mirrors a typical switching-risk panel: three cohorts
// with heavy switching concentrated in the access-barrier cohort mid-window.
func DefaultPanelConfig() PanelConfig {
	return PanelConfig{
		Cohorts:       map[string]int{"young_rcc": 5, "cv_risk": 4, "stable": 3},
		SwitchRates:   map[string]float64{"young_rcc": 1.0, "cv_risk": 0.25, "stable": 0.0},
		Product:       "Onco-Pro",
		Competitor:    "Rivalex",
		StartMonth:    "2025-01",
		Months:        10,
		Seed:          42,
		BaselineCount: 48,
	}
}

// PanelGenerator produces a deterministic synthetic panel.
type PanelGenerator struct {
	config PanelConfig
	rng    *rand.Rand
}

// NewPanelGenerator creates a generator for the given configuration.
func NewPanelGenerator(config PanelConfig) *PanelGenerator {
	return &PanelGenerator{config: config, rng: rand.New(rand.NewSource(config.Seed))}
}

// Patients generates the panel. Switchers receive dates in the middle third
// of the window so the survival curve shows a visible cliff.
func (g *PanelGenerator) Patients() []cohort.Patient {
	window := g.switchWindow()
	var patients []cohort.Patient
	i := 0
	for _, label := range sortedKeys(g.config.Cohorts) {
		count := g.config.Cohorts[label]
		rate := g.config.SwitchRates[label]
		for n := 0; n < count; n++ {
			i++
			p := cohort.Patient{
				ID:      core.PatientID(fmt.Sprintf("PT-%03d", i)),
				Cohort:  label,
				AgeYrs:  38 + g.rng.Intn(40),
				Cancer:  "RCC",
				Payer:   pick(g.rng, "Aetna", "UHC", "Cigna", "Medicare"),
				Copay:   float64(20 + g.rng.Intn(180)),
				LagDays: 2 + g.rng.Intn(12),
			}
			if g.rng.Float64() < rate {
				d := window.Add(time.Duration(g.rng.Intn(20*24)) * time.Hour)
				p.SwitchedDate = &d
			}
			patients = append(patients, p)
		}
	}
	return patients
}

// History generates monthly prescription records for the index product and
// its competitor, with the index count decaying over the window.
func (g *PanelGenerator) History() []timeline.PrescriptionHistoryRecord {
	var records []timeline.PrescriptionHistoryRecord
	month := g.config.StartMonth
	own := g.config.BaselineCount
	comp := g.config.BaselineCount / 4
	for i := 0; i < g.config.Months; i++ {
		records = append(records,
			timeline.PrescriptionHistoryRecord{
				Month: month, ProductName: g.config.Product, Count: own, IsOurProduct: true,
			},
			timeline.PrescriptionHistoryRecord{
				Month: month, ProductName: g.config.Competitor, Count: comp, IsOurProduct: false,
			},
		)
		own -= g.rng.Intn(5)
		if own < 5 {
			own = 5
		}
		comp += g.rng.Intn(4)
		month = month.Next()
	}
	return records
}

// Events generates a payer policy change just before the switch window plus a
// conference and an adverse-event report.
func (g *PanelGenerator) Events() []timeline.ClinicalEvent {
	window := g.switchWindow()
	return []timeline.ClinicalEvent{
		{
			Date:  window.AddDate(0, -1, 3).Format("2006-01-02"),
			Title: "Regional payer tightened prior authorization",
			Type:  "payer_policy_change",
		},
		{
			Date:  window.AddDate(0, -2, 10).Format("2006-01-02"),
			Title: "Oncology congress: competitor trial readout",
			Type:  "conference",
		},
		{
			Date:  window.AddDate(0, 0, 12).Format("2006-01-02"),
			Title: "Grade 3 adverse event reported in panel",
			Type:  "adverse_event",
		},
	}
}

// Trends derives monthly own-vs-competitor counts from the history.
func (g *PanelGenerator) Trends(history []timeline.PrescriptionHistoryRecord) []timeline.TrendPoint {
	byMonth := make(map[core.MonthKey]*timeline.TrendPoint)
	var order []core.MonthKey
	for _, r := range history {
		tp, ok := byMonth[r.Month]
		if !ok {
			tp = &timeline.TrendPoint{Month: r.Month}
			byMonth[r.Month] = tp
			order = append(order, r.Month)
		}
		if r.IsOurProduct {
			tp.OwnCount += r.Count
		} else {
			tp.CompetitorCount += r.Count
		}
	}
	trends := make([]timeline.TrendPoint, 0, len(order))
	for _, m := range order {
		trends = append(trends, *byMonth[m])
	}
	return trends
}

// switchWindow is the start of the period switch dates fall into: the middle
// of the observation window.
func (g *PanelGenerator) switchWindow() time.Time {
	return g.config.StartMonth.FirstDay().AddDate(0, g.config.Months/2, 15)
}

func pick(rng *rand.Rand, options ...string) string {
	return options[rng.Intn(len(options))]
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
