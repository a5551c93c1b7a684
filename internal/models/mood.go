package models

// MoodEntry is one journal entry. Date is a YYYY-MM-DD key; new entries are
// prepended, so index 0 is always the most recent.
type MoodEntry struct {
	Date  string `json:"date"`
	Mood  string `json:"mood"`
	Emoji string `json:"emoji"`
	Note  string `json:"note,omitempty"`
}
