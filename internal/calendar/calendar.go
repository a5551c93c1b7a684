// Package calendar derives the month grid shown on the cycle screen. It is
// read-only: everything here is recomputed from the day store on each render.
package calendar

import (
	"fmt"
	"time"

	"github.com/lumiwell/lumi/internal/cycle"
	"github.com/lumiwell/lumi/internal/models"
)

// ColorClass is the derived visual state of one day cell.
type ColorClass string

const (
	ColorDefault        ColorClass = "default"
	ColorToday          ColorClass = "today"
	ColorFlowLight      ColorClass = "flow-light"
	ColorFlowLightToday ColorClass = "flow-light-today"
	ColorFlowMedium     ColorClass = "flow-medium"
	ColorFlowIntense    ColorClass = "flow-intense"
	ColorOvulation      ColorClass = "ovulation"
	ColorPMS            ColorClass = "pms"
)

// GridCells is the fixed grid size: six weeks of seven days.
const GridCells = 42

// Cell is one slot in the 42-cell grid. Filler cells outside the month have
// Day 0, no color, no badges, and are never interactive.
type Cell struct {
	Day            int
	Interactive    bool
	Color          ColorClass
	OvulationBadge bool
	PMSBadge       bool
}

// MonthView is the derived presentation of one month. FirstWeekdayOffset is
// the weekday of day 1, with 0 meaning Sunday.
type MonthView struct {
	Year               int
	Month              time.Month
	DaysInMonth        int
	FirstWeekdayOffset int
	Cells              [GridCells]Cell
}

// DateKey builds the zero-padded YYYY-MM-DD key for a day of the month.
func DateKey(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// DaysIn returns the number of days in the given month, leap years included.
// Day zero of the following month normalizes to the last day of this one.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Render produces the month grid for (year, month) from the day store.
// Interactive controls whether day cells respond to taps; the next-month
// preview is rendered non-interactive for free-tier users.
func Render(year int, month time.Month, store *cycle.DayStore, today time.Time, interactive bool) MonthView {
	view := MonthView{
		Year:               year,
		Month:              month,
		DaysInMonth:        DaysIn(year, month),
		FirstWeekdayOffset: int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()),
	}

	isTodayMonth := today.Year() == year && today.Month() == month

	for day := 1; day <= view.DaysInMonth; day++ {
		tags := store.Get(DateKey(year, month, day))
		isToday := isTodayMonth && today.Day() == day
		view.Cells[view.FirstWeekdayOffset+day-1] = Cell{
			Day:         day,
			Interactive: interactive,
			Color:       colorFor(tags, isToday),
			// Badges render independently of the color priority: a flow-colored
			// day still shows its ovulation or PMS marker.
			OvulationBadge: tags.Ovulation,
			PMSBadge:       tags.PMS,
		}
	}
	return view
}

// colorFor applies the priority order flow > ovulation > PMS > default. Only
// the light intensity distinguishes today from other days; medium and intense
// render the same saturated color either way. That asymmetry is the documented
// visual rule and is kept as is.
func colorFor(tags models.DayTags, isToday bool) ColorClass {
	switch tags.Flow {
	case models.FlowLight:
		if isToday {
			return ColorFlowLightToday
		}
		return ColorFlowLight
	case models.FlowMedium:
		return ColorFlowMedium
	case models.FlowIntense:
		return ColorFlowIntense
	}
	if tags.Ovulation {
		return ColorOvulation
	}
	if tags.PMS {
		return ColorPMS
	}
	if isToday {
		return ColorToday
	}
	return ColorDefault
}
