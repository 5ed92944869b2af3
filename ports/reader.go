package ports

import (
	"context"

	"switchscope/domain/cohort"
	"switchscope/domain/core"
	"switchscope/domain/timeline"
	"switchscope/domain/verdict"
)

// HCPSummary is the prescriber profile the dashboard header renders.
type HCPSummary struct {
	ID        core.HCPID       `json:"id"`
	Name      string           `json:"name"`
	Specialty string           `json:"specialty"`
	RiskScore float64          `json:"riskScore"`
	RiskTier  verdict.RiskTier `json:"riskTier"`
}

// DataReader fetches read-only collections from the external data service.
// Implementations must surface non-success responses as errors, never as
// empty data.
type DataReader interface {
	HCPSummary(ctx context.Context, id core.HCPID) (HCPSummary, error)
	Patients(ctx context.Context, id core.HCPID) ([]cohort.Patient, error)
	Events(ctx context.Context, id core.HCPID) ([]timeline.ClinicalEvent, error)
	PrescriptionHistory(ctx context.Context, id core.HCPID) ([]timeline.PrescriptionHistoryRecord, error)
	PrescriptionTrends(ctx context.Context, id core.HCPID) ([]timeline.TrendPoint, error)
}

// DataBundle is every upstream collection one investigation needs, fetched
// concurrently since the reads are independent.
type DataBundle struct {
	Summary  HCPSummary
	Patients []cohort.Patient
	Events   []timeline.ClinicalEvent
	History  []timeline.PrescriptionHistoryRecord
	Trends   []timeline.TrendPoint
}
