package cycle

import (
	"errors"
	"fmt"
	"time"

	"github.com/lumiwell/lumi/internal/models"
)

// ErrInvalidDate is returned when a date key is not in YYYY-MM-DD form.
var ErrInvalidDate = errors.New("invalid date key")

const dateLayout = "2006-01-02"

// ValidateDate checks that key is a well-formed, zero-padded YYYY-MM-DD date.
// Round-tripping through time.Parse catches both bad formats and impossible
// dates like 2024-02-30.
func ValidateDate(key string) error {
	t, err := time.Parse(dateLayout, key)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, key)
	}
	if t.Format(dateLayout) != key {
		return fmt.Errorf("%w: %q", ErrInvalidDate, key)
	}
	return nil
}

// DayStore holds the per-date tags (flow intensity, ovulation, PMS) for one
// user. It mutates the underlying CycleData in place; persistence is the
// caller's concern. Dates are never checked against the cycle length, so any
// well-formed date may be tagged, including future ones.
type DayStore struct {
	data *models.CycleData
}

func NewDayStore(data *models.CycleData) *DayStore {
	if data.FlowDays == nil {
		data.FlowDays = make(map[string]models.FlowIntensity)
	}
	return &DayStore{data: data}
}

// SetFlow sets the flow tag for date, or removes it when intensity is empty.
// Last write wins; a date holds at most one intensity.
func (s *DayStore) SetFlow(date string, intensity models.FlowIntensity) error {
	if err := ValidateDate(date); err != nil {
		return err
	}
	if intensity == "" {
		delete(s.data.FlowDays, date)
		return nil
	}
	if !intensity.Valid() {
		return fmt.Errorf("unknown flow intensity %q", intensity)
	}
	s.data.FlowDays[date] = intensity
	return nil
}

// SetOvulation adds or removes date from the ovulation set. Idempotent.
func (s *DayStore) SetOvulation(date string, on bool) error {
	if err := ValidateDate(date); err != nil {
		return err
	}
	s.data.OvulationDays = setMembership(s.data.OvulationDays, date, on)
	return nil
}

// SetPMS adds or removes date from the PMS set. Idempotent.
func (s *DayStore) SetPMS(date string, on bool) error {
	if err := ValidateDate(date); err != nil {
		return err
	}
	s.data.PMSDays = setMembership(s.data.PMSDays, date, on)
	return nil
}

// ClearAll removes the flow tag and both set memberships for date, leaving it
// indistinguishable from a date that was never tagged.
func (s *DayStore) ClearAll(date string) error {
	if err := ValidateDate(date); err != nil {
		return err
	}
	delete(s.data.FlowDays, date)
	s.data.OvulationDays = setMembership(s.data.OvulationDays, date, false)
	s.data.PMSDays = setMembership(s.data.PMSDays, date, false)
	return nil
}

// Get returns the current tags for date. It never fails: malformed or untagged
// dates yield the zero DayTags.
func (s *DayStore) Get(date string) models.DayTags {
	return models.DayTags{
		Flow:      s.data.FlowDays[date],
		Ovulation: contains(s.data.OvulationDays, date),
		PMS:       contains(s.data.PMSDays, date),
	}
}

// Data exposes the underlying CycleData for persistence.
func (s *DayStore) Data() *models.CycleData {
	return s.data
}

func contains(set []string, date string) bool {
	for _, d := range set {
		if d == date {
			return true
		}
	}
	return false
}

func setMembership(set []string, date string, on bool) []string {
	if on {
		if contains(set, date) {
			return set
		}
		return append(set, date)
	}
	out := set[:0]
	for _, d := range set {
		if d != date {
			out = append(out, d)
		}
	}
	return out
}
