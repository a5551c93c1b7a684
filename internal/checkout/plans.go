package checkout

import (
	"errors"
	"fmt"
)

var ErrUnknownPlan = errors.New("unknown plan")

// Plan is one purchasable premium plan. Value is the decimal amount as
// PayPal expects it on the wire.
type Plan struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Value         string `json:"value"`
	Currency      string `json:"currency"`
	BillingCycles int    `json:"billing_cycles,omitempty"`
	TrialDays     int    `json:"trial_days,omitempty"`
}

var plans = map[string]Plan{
	"trial": {
		ID:          "trial",
		Name:        "7 free days + R$ 9.90/month",
		Description: "7 free days, then R$ 9.90/month for the first 3 months and R$ 17.90/month after",
		Value:       "9.90",
		Currency:    "BRL",
		TrialDays:   7,
	},
	"quarterly": {
		ID:            "quarterly",
		Name:          "Promotional Quarterly Plan",
		Description:   "R$ 29.70 for 3 months, then R$ 53.70 per 3 months",
		Value:         "29.70",
		Currency:      "BRL",
		BillingCycles: 3,
	},
	"biannual": {
		ID:            "biannual",
		Name:          "Biannual Plan",
		Description:   "R$ 82.90 for 6 months",
		Value:         "82.90",
		Currency:      "BRL",
		BillingCycles: 6,
	},
}

// PlanByID resolves a plan identifier from the fixed catalog.
func PlanByID(id string) (Plan, error) {
	plan, ok := plans[id]
	if !ok {
		return Plan{}, fmt.Errorf("%w: %q", ErrUnknownPlan, id)
	}
	return plan, nil
}

// Plans lists the catalog in display order.
func Plans() []Plan {
	return []Plan{plans["trial"], plans["quarterly"], plans["biannual"]}
}
