// Package testkit fabricates a realistic HCP panel for demo mode and tests:
// patients with switch dates, prescription history, clinical events, and an
// externally-shaped hypothesis set with confidence scores.
package testkit

import (
	"context"

	"switchscope/domain/cohort"
	"switchscope/domain/core"
	"switchscope/domain/hypothesis"
	"switchscope/domain/timeline"
	"switchscope/domain/verdict"
	"switchscope/ports"
)

// Kit serves generated fixtures through the same ports the upstream client
// implements, so demo mode and the mock upstream share one data source.
type Kit struct {
	Summary    ports.HCPSummary
	Panel      []cohort.Patient
	Records    []timeline.PrescriptionHistoryRecord
	EventLog   []timeline.ClinicalEvent
	TrendLine  []timeline.TrendPoint
	Generated  []hypothesis.Hypothesis
	NBAPayload []ports.Strategy
}

// NewKit builds a kit from the default panel configuration.
func NewKit() *Kit {
	return NewKitWith(DefaultPanelConfig())
}

// NewKitWith builds a kit from an explicit configuration.
func NewKitWith(config PanelConfig) *Kit {
	gen := NewPanelGenerator(config)
	history := gen.History()
	riskScore := 82.0
	return &Kit{
		Summary: ports.HCPSummary{
			ID:        "HCP-1001",
			Name:      "Dr. Maren Okafor",
			Specialty: "Oncology",
			RiskScore: riskScore,
			RiskTier:  verdict.RiskTierFor(riskScore),
		},
		Panel:      gen.Patients(),
		Records:    history,
		EventLog:   gen.Events(),
		TrendLine:  gen.Trends(history),
		Generated:  demoHypotheses(),
		NBAPayload: demoStrategies(),
	}
}

var (
	_ ports.DataReader          = (*Kit)(nil)
	_ ports.HypothesisGenerator = (*Kit)(nil)
	_ ports.StrategyProvider    = (*Kit)(nil)
)

func (k *Kit) HCPSummary(ctx context.Context, id core.HCPID) (ports.HCPSummary, error) {
	summary := k.Summary
	summary.ID = id
	return summary, nil
}

func (k *Kit) Patients(ctx context.Context, id core.HCPID) ([]cohort.Patient, error) {
	return k.Panel, nil
}

func (k *Kit) Events(ctx context.Context, id core.HCPID) ([]timeline.ClinicalEvent, error) {
	return k.EventLog, nil
}

func (k *Kit) PrescriptionHistory(ctx context.Context, id core.HCPID) ([]timeline.PrescriptionHistoryRecord, error) {
	return k.Records, nil
}

func (k *Kit) PrescriptionTrends(ctx context.Context, id core.HCPID) ([]timeline.TrendPoint, error) {
	return k.TrendLine, nil
}

func (k *Kit) Generate(ctx context.Context, id core.HCPID) ([]hypothesis.Hypothesis, error) {
	return k.Generated, nil
}

func (k *Kit) Strategies(ctx context.Context, id core.HCPID) ([]ports.Strategy, error) {
	return k.NBAPayload, nil
}

func demoHypotheses() []hypothesis.Hypothesis {
	return []hypothesis.Hypothesis{
		{
			ID:         "hyp-access-barrier",
			Title:      "Prior-authorization change is driving young RCC patients off product",
			Confidence: 86,
			CausalChain: []hypothesis.CausalStep{
				{Order: 1, Description: "Payer tightened prior authorization in June"},
				{Order: 2, Description: "Fulfillment lag for young_rcc cohort doubled"},
				{Order: 3, Description: "Patients switched to competitor with open access"},
			},
			Evidence: []hypothesis.Evidence{
				{Source: "payer_communications", Finding: "PA requirement effective 2025-06-01", Supports: true, Strength: 90},
				{Source: "fulfillment_data", Finding: "Median lag rose from 4 to 11 days", Supports: true, Strength: 78},
			},
		},
		{
			ID:         "hyp-copay-pressure",
			Title:      "Copay increases are pushing price-sensitive patients to switch",
			Confidence: 55,
			CausalChain: []hypothesis.CausalStep{
				{Order: 1, Description: "Plan-year reset raised effective copay"},
				{Order: 2, Description: "High-copay patients abandoned refills"},
			},
			Evidence: []hypothesis.Evidence{
				{Source: "claims", Finding: "Mean copay up 22% year over year", Supports: true, Strength: 60},
				{Source: "call_notes", Finding: "No copay complaints recorded", Supports: false, Strength: 35},
			},
		},
		{
			ID:         "hyp-adverse-event",
			Title:      "Safety signal from adverse-event report changed prescribing",
			Confidence: 20,
			CausalChain: []hypothesis.CausalStep{
				{Order: 1, Description: "Grade 3 event reported in July"},
				{Order: 2, Description: "HCP moved at-risk patients preemptively"},
			},
			Evidence: []hypothesis.Evidence{
				{Source: "call_notes", Finding: "HCP unaware of the report at July call", Supports: false, Strength: 70},
			},
		},
	}
}

func demoStrategies() []ports.Strategy {
	return []ports.Strategy{
		{ID: "nba-1", Title: "Deploy field reimbursement specialist", Description: "Walk the office through the new prior-authorization workflow within two weeks.", Priority: 1},
		{ID: "nba-2", Title: "Enroll affected patients in bridge program", Description: "Offer the manufacturer bridge supply to patients stuck in PA review.", Priority: 2},
	}
}
