package cycle

import (
	"time"

	"github.com/lumiwell/lumi/internal/models"
)

// DaysUntilNextPeriod estimates how many days remain until the next period
// start: last start plus the configured cycle duration, minus today. The
// second return is false when no last period start is recorded. The result may
// be negative when overdue; callers that display "days remaining" clamp to
// zero for presentation only.
func DaysUntilNextPeriod(data *models.CycleData, today time.Time) (int, bool) {
	if data.LastPeriodStart == "" {
		return 0, false
	}
	last, err := time.Parse(dateLayout, data.LastPeriodStart)
	if err != nil {
		return 0, false
	}
	next := last.AddDate(0, 0, data.CycleDurationDays)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(next.Sub(t).Hours() / 24), true
}

// Summary is the fertile-window estimate shown on the premium cycle screen.
// Ovulation is assumed 14 days before the next period; the fertile window
// opens four days before ovulation and closes the day after.
type Summary struct {
	FertileStart time.Time
	FertileEnd   time.Time
	Ovulation    time.Time
	NextPeriod   time.Time
}

// Forecast computes the fertile-window summary, or false when no last period
// start is recorded.
func Forecast(data *models.CycleData) (Summary, bool) {
	if data.LastPeriodStart == "" {
		return Summary{}, false
	}
	last, err := time.Parse(dateLayout, data.LastPeriodStart)
	if err != nil {
		return Summary{}, false
	}
	ovulation := last.AddDate(0, 0, data.CycleDurationDays-14)
	return Summary{
		FertileStart: ovulation.AddDate(0, 0, -4),
		FertileEnd:   ovulation.AddDate(0, 0, 1),
		Ovulation:    ovulation,
		NextPeriod:   last.AddDate(0, 0, data.CycleDurationDays),
	}, true
}
