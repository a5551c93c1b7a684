package models

import "time"

type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// User is the profile persisted under the "profile" storage key.
// Tier is upgraded only through a successful checkout capture.
type User struct {
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Tier           Tier       `json:"tier"`
	PlanID         string     `json:"plan_id,omitempty"`
	TransactionID  string     `json:"transaction_id,omitempty"`
	ActivationDate *time.Time `json:"activation_date,omitempty"`
}

func (u User) IsPremium() bool {
	return u.Tier == TierPremium
}

// Activate records a completed checkout and flips the user to premium.
func (u *User) Activate(planID, transactionID string, at time.Time) {
	u.Tier = TierPremium
	u.PlanID = planID
	u.TransactionID = transactionID
	u.ActivationDate = &at
}
