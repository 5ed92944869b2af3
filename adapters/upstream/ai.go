package upstream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"switchscope/domain/core"
	"switchscope/domain/hypothesis"
	"switchscope/internal/errors"
	"switchscope/ports"
)

// Generate triggers hypothesis generation for an HCP in the external AI
// service and returns the generated set. Verdicts are not part of the wire
// shape; the caller evaluates them locally.
func (c *Client) Generate(ctx context.Context, id core.HCPID) ([]hypothesis.Hypothesis, error) {
	body, err := c.post(ctx, fmt.Sprintf("/api/ai/investigate/%s", id), nil)
	if err != nil {
		return nil, err
	}
	var hs []hypothesis.Hypothesis
	if err := decodeList(body, "allHypotheses", &hs); err != nil {
		return nil, errors.Wrapf(err, "decode generated hypotheses for %s", id)
	}
	return hs, nil
}

// Strategies fetches the NBA payload. The caller is responsible for checking
// the strategy gate first; this method does no gating of its own.
func (c *Client) Strategies(ctx context.Context, id core.HCPID) ([]ports.Strategy, error) {
	body, err := c.get(ctx, fmt.Sprintf("/api/ai/nba-results/%s", id))
	if err != nil {
		return nil, err
	}
	var strategies []ports.Strategy
	if err := decodeList(body, "strategies", &strategies); err != nil {
		return nil, errors.Wrapf(err, "decode strategies for %s", id)
	}
	return strategies, nil
}

// confirmPayload is the confirm-investigation request body.
type confirmPayload struct {
	ConfirmedHypotheses []core.HypothesisID `json:"confirmedHypotheses"`
	SMENotes            string              `json:"smeNotes"`
}

// ConfirmInvestigation persists a confirmation record upstream and returns
// the confirmed count the service reports.
func (c *Client) ConfirmInvestigation(ctx context.Context, id core.HCPID, selected []core.HypothesisID, smeNotes string) (int, error) {
	payload := confirmPayload{ConfirmedHypotheses: selected, SMENotes: smeNotes}
	body, err := c.post(ctx, fmt.Sprintf("/api/ai/confirm-investigation/%s", id), payload)
	if err != nil {
		return 0, err
	}
	if count := gjson.GetBytes(body, "confirmedCount"); count.Exists() {
		return int(count.Int()), nil
	}
	var resp struct {
		Confirmed int `json:"confirmed"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return len(selected), nil
	}
	return resp.Confirmed, nil
}
