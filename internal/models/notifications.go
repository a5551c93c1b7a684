package models

// NotificationSettings holds the per-category enabled flags. The six meal
// prompt times share the single Meals toggle. The rule definitions themselves
// (times, tier requirements) are static and live in the scheduler.
type NotificationSettings struct {
	Shopping bool `json:"shopping"`
	Cycle    bool `json:"cycle"`
	Mood     bool `json:"mood"`
	Meals    bool `json:"meals"`
}

// DefaultNotificationSettings enables every category, matching a fresh account.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{Shopping: true, Cycle: true, Mood: true, Meals: true}
}
