package upstream

import (
	"context"
	"encoding/json"
	"fmt"

	"switchscope/domain/cohort"
	"switchscope/domain/core"
	"switchscope/domain/timeline"
	"switchscope/internal/errors"
	"switchscope/ports"
)

// HCPSummary fetches the prescriber profile with risk score and tier.
func (c *Client) HCPSummary(ctx context.Context, id core.HCPID) (ports.HCPSummary, error) {
	body, err := c.get(ctx, fmt.Sprintf("/api/hcps/%s", id))
	if err != nil {
		return ports.HCPSummary{}, err
	}
	var summary ports.HCPSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return ports.HCPSummary{}, errors.Wrapf(err, "decode hcp summary for %s", id)
	}
	return summary, nil
}

// Patients fetches the patient panel for an HCP.
func (c *Client) Patients(ctx context.Context, id core.HCPID) ([]cohort.Patient, error) {
	body, err := c.get(ctx, fmt.Sprintf("/api/hcps/%s/patients", id))
	if err != nil {
		return nil, err
	}
	var patients []cohort.Patient
	if err := decodeList(body, "patients", &patients); err != nil {
		return nil, errors.Wrapf(err, "decode patients for %s", id)
	}
	return patients, nil
}

// Events fetches the clinical/payer event overlay for an HCP.
func (c *Client) Events(ctx context.Context, id core.HCPID) ([]timeline.ClinicalEvent, error) {
	body, err := c.get(ctx, fmt.Sprintf("/api/hcps/%s/events", id))
	if err != nil {
		return nil, err
	}
	var events []timeline.ClinicalEvent
	if err := decodeList(body, "events", &events); err != nil {
		return nil, errors.Wrapf(err, "decode events for %s", id)
	}
	return events, nil
}

// PrescriptionHistory fetches per-product monthly prescription records.
func (c *Client) PrescriptionHistory(ctx context.Context, id core.HCPID) ([]timeline.PrescriptionHistoryRecord, error) {
	body, err := c.get(ctx, fmt.Sprintf("/api/prescription-history/%s", id))
	if err != nil {
		return nil, err
	}
	var records []timeline.PrescriptionHistoryRecord
	if err := decodeList(body, "history", &records); err != nil {
		return nil, errors.Wrapf(err, "decode prescription history for %s", id)
	}
	return records, nil
}

// PrescriptionTrends fetches monthly own-versus-competitor counts.
func (c *Client) PrescriptionTrends(ctx context.Context, id core.HCPID) ([]timeline.TrendPoint, error) {
	body, err := c.get(ctx, fmt.Sprintf("/api/hcps/%s/prescription-trends", id))
	if err != nil {
		return nil, err
	}
	var trends []timeline.TrendPoint
	if err := decodeList(body, "trends", &trends); err != nil {
		return nil, errors.Wrapf(err, "decode prescription trends for %s", id)
	}
	return trends, nil
}

