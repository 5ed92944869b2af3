package cohort

import (
	"time"

	"switchscope/domain/core"
)

// Patient is one patient observed under an HCP, tagged with the switching-driver
// cohort it belongs to. Cohort labels are an open set discovered from the data,
// not a fixed enum.
type Patient struct {
	ID      core.PatientID `json:"id"`
	Cohort  string         `json:"cohort"`
	AgeYrs  int            `json:"age,omitempty"`
	Cancer  string         `json:"cancerType,omitempty"`
	Payer   string         `json:"payer,omitempty"`
	Copay   float64        `json:"copayAmount,omitempty"`
	LagDays int            `json:"fulfillmentLagDays,omitempty"`

	// SwitchedDate is nil while the patient is still on the index product.
	SwitchedDate *time.Time `json:"switchedDate,omitempty"`
}

// Switched reports whether the patient has left the index product.
func (p Patient) Switched() bool {
	return p.SwitchedDate != nil
}

// OnProductAt reports whether the patient counts as a survivor for the month
// beginning at monthStart. A switch is attributed to the month it falls in:
// the patient survives a month only if the switch happened no earlier than
// the start of the following month.
func (p Patient) OnProductAt(monthStart time.Time) bool {
	if p.SwitchedDate == nil {
		return true
	}
	return !p.SwitchedDate.Before(monthStart.AddDate(0, 1, 0))
}
