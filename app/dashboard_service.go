package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"switchscope/domain/cohort"
	"switchscope/domain/core"
	"switchscope/domain/timeline"
	"switchscope/internal"
	"switchscope/internal/evidence"
	"switchscope/ports"
)

// paletteSize matches the dashboard's cohort color palette.
const paletteSize = 12

// CohortSeries names one stacked series and its stable palette slot.
type CohortSeries struct {
	Label        string `json:"label"`
	PaletteIndex int    `json:"paletteIndex"`
}

// TimelineView is the survival chart payload: the month series, the cohort
// legend, and the aligned event overlay. Empty distinguishes a genuine
// no-data state from a loading or error state.
type TimelineView struct {
	Product string                  `json:"product"`
	Points  []timeline.MonthPoint   `json:"points"`
	Cohorts []CohortSeries          `json:"cohorts"`
	Events  []timeline.AlignedEvent `json:"events"`
	Empty   bool                    `json:"empty"`
}

// Overview is the top-level dashboard payload for one HCP.
type Overview struct {
	Summary  ports.HCPSummary        `json:"summary"`
	Timeline TimelineView            `json:"timeline"`
	Trends   []timeline.TrendPoint   `json:"trends"`
	Context  []evidence.CohortContext `json:"cohortContext"`
}

// DashboardService assembles read-only dashboard views from upstream data.
type DashboardService struct {
	reader ports.DataReader
	log    *internal.Logger
}

// NewDashboardService creates the dashboard read service.
func NewDashboardService(reader ports.DataReader) *DashboardService {
	return &DashboardService{
		reader: reader,
		log:    internal.DefaultLogger.With("dashboard"),
	}
}

// Overview fetches the bundle and assembles the survival timeline view.
func (s *DashboardService) Overview(ctx context.Context, id core.HCPID, targetProduct string) (*Overview, error) {
	bundle, err := fetchBundle(ctx, s.reader, id)
	if err != nil {
		return nil, err
	}

	points := timeline.BuildTimeline(bundle.Patients, bundle.History, targetProduct)
	view := TimelineView{
		Product: targetProduct,
		Points:  points,
		Cohorts: cohortLegend(bundle.Patients),
		Events:  timeline.AlignEvents(bundle.Events, points),
		Empty:   len(points) == 0,
	}
	if view.Empty {
		s.log.Debug("no %s history for hcp %s", targetProduct, id)
	}

	return &Overview{
		Summary:  bundle.Summary,
		Timeline: view,
		Trends:   bundle.Trends,
		Context:  evidence.SummarizeCohorts(bundle.Patients),
	}, nil
}

// cohortLegend pairs each discovered cohort with its stable palette slot.
func cohortLegend(patients []cohort.Patient) []CohortSeries {
	labels := cohort.DiscoverCohorts(patients)
	legend := make([]CohortSeries, 0, len(labels))
	for _, label := range labels {
		legend = append(legend, CohortSeries{
			Label:        label,
			PaletteIndex: cohort.PaletteIndex(label, paletteSize),
		})
	}
	return legend
}

// fetchBundle issues the independent upstream reads concurrently; any single
// failure fails the whole bundle.
func fetchBundle(ctx context.Context, reader ports.DataReader, id core.HCPID) (*ports.DataBundle, error) {
	bundle := &ports.DataBundle{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bundle.Summary, err = reader.HCPSummary(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		bundle.Patients, err = reader.Patients(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		bundle.Events, err = reader.Events(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		bundle.History, err = reader.PrescriptionHistory(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		bundle.Trends, err = reader.PrescriptionTrends(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bundle, nil
}
