// Package gate is the single source of truth for tier-based feature limits.
// Every mutating operation in the planner, shopping list, mood journal and
// cycle screens consults this table before mutating; hitting a limit is a
// silent refusal with an advisory message, never an error.
package gate

import "github.com/lumiwell/lumi/internal/models"

type Feature string

const (
	FeaturePlannerTasks      Feature = "planner_tasks"
	FeatureShoppingItems     Feature = "shopping_items"
	FeatureMoodHistory       Feature = "mood_history"
	FeatureNextMonthCalendar Feature = "next_month_calendar"
	FeatureCycleForecast     Feature = "cycle_forecast"
	FeatureRecipeSave        Feature = "recipe_save"
	FeatureCycleCountdown    Feature = "cycle_countdown"
)

type entry struct {
	allowed bool
	limit   int
}

var table = map[Feature]map[models.Tier]entry{
	FeaturePlannerTasks: {
		models.TierFree:    {allowed: true, limit: 3},
		models.TierPremium: {allowed: true, limit: 10},
	},
	FeatureShoppingItems: {
		models.TierFree:    {allowed: true, limit: 5},
		models.TierPremium: {allowed: true, limit: 30},
	},
	FeatureMoodHistory: {
		models.TierFree:    {allowed: true, limit: 2},
		models.TierPremium: {allowed: true, limit: 7},
	},
	FeatureNextMonthCalendar: {
		models.TierFree:    {allowed: false}, // view-only
		models.TierPremium: {allowed: true},
	},
	FeatureCycleForecast: {
		models.TierFree:    {allowed: false},
		models.TierPremium: {allowed: true},
	},
	FeatureRecipeSave: {
		models.TierFree:    {allowed: false},
		models.TierPremium: {allowed: true},
	},
	FeatureCycleCountdown: {
		models.TierFree:    {allowed: false},
		models.TierPremium: {allowed: true},
	},
}

// Check returns whether the feature is available for the tier and, for
// counted features, the list-size limit (0 for purely boolean features).
func Check(tier models.Tier, feature Feature) (allowed bool, limit int) {
	e := table[feature][tier]
	return e.allowed, e.limit
}

// Allowed reports whether a boolean feature is unlocked for the tier.
func Allowed(tier models.Tier, feature Feature) bool {
	a, _ := Check(tier, feature)
	return a
}

// Limit returns the list-size limit of a counted feature for the tier.
func Limit(tier models.Tier, feature Feature) int {
	_, l := Check(tier, feature)
	return l
}

// CanAdd reports whether a list currently holding n entries may grow by one.
func CanAdd(tier models.Tier, feature Feature, n int) bool {
	a, l := Check(tier, feature)
	return a && n < l
}

// Advisory returns the user-facing message shown when a counted feature is at
// capacity. Free-tier messages point at the premium upgrade.
func Advisory(tier models.Tier, feature Feature) string {
	switch feature {
	case FeaturePlannerTasks:
		if tier == models.TierPremium {
			return "You reached the 10-task limit. Complete or remove a task to add more."
		}
		return "Free limit reached! Go Premium for up to 10 tasks."
	case FeatureShoppingItems:
		if tier == models.TierPremium {
			return "You reached the 30-item limit. Check off or remove an item to add more."
		}
		return "Free limit reached! Go Premium for up to 30 items."
	case FeatureRecipeSave:
		return "Saving recipes and auto-adding ingredients is a Premium feature."
	case FeatureCycleForecast:
		return "Automatic cycle forecast is only available on Premium."
	case FeatureCycleCountdown:
		return "Cycle countdown reminders are exclusive to Premium."
	case FeatureNextMonthCalendar:
		return "The next-month calendar is view-only on the free plan."
	}
	return "This feature requires Premium."
}
