// Package rrule computes reminder occurrences. Reminder rules are fixed
// daily times of day, expressed as RFC 5545 FREQ=DAILY rules.
package rrule

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// dtstart far enough in the past that every daily rule already generates
// occurrences for any query time.
var dailyEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

func dailyRule(hour, minute int, loc *time.Location) (*rrule.RRule, error) {
	return rrule.NewRRule(rrule.ROption{
		Freq:     rrule.DAILY,
		Byhour:   []int{hour},
		Byminute: []int{minute},
		Bysecond: []int{0},
		Dtstart:  dailyEpoch.In(loc),
	})
}

// NextDaily returns the next occurrence of the given time of day at or after
// t: today when the time has not passed yet, otherwise tomorrow.
func NextDaily(hour, minute int, t time.Time) (time.Time, error) {
	rule, err := dailyRule(hour, minute, t.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("build daily rule %02d:%02d: %w", hour, minute, err)
	}
	next := rule.After(t, true)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("no occurrence for daily rule %02d:%02d", hour, minute)
	}
	return next, nil
}

// NextDailyAfter returns the first occurrence strictly after t. Used to
// re-arm a rule for the following day once it has fired.
func NextDailyAfter(hour, minute int, t time.Time) (time.Time, error) {
	rule, err := dailyRule(hour, minute, t.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("build daily rule %02d:%02d: %w", hour, minute, err)
	}
	next := rule.After(t, false)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("no occurrence for daily rule %02d:%02d", hour, minute)
	}
	return next, nil
}
