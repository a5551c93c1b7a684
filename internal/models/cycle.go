package models

type FlowIntensity string

const (
	FlowLight   FlowIntensity = "light"
	FlowMedium  FlowIntensity = "medium"
	FlowIntense FlowIntensity = "intense"
)

// Valid reports whether f is one of the three known intensities.
func (f FlowIntensity) Valid() bool {
	switch f {
	case FlowLight, FlowMedium, FlowIntense:
		return true
	}
	return false
}

// DayTags is the derived per-date annotation set. The zero value means the
// date carries no tags at all.
type DayTags struct {
	Flow      FlowIntensity `json:"flow,omitempty"`
	Ovulation bool          `json:"ovulation"`
	PMS       bool          `json:"pms"`
}

func (t DayTags) Empty() bool {
	return t.Flow == "" && !t.Ovulation && !t.PMS
}

// CycleData is everything persisted under the "cycle" storage key: the user's
// cycle configuration plus the per-date tags. FlowDays maps YYYY-MM-DD keys to
// an intensity; OvulationDays and PMSDays are membership sets, so an untagged
// date is absent rather than present-with-false.
type CycleData struct {
	CycleDurationDays    int                      `json:"cycle_duration_days"`
	FlowDurationDays     int                      `json:"flow_duration_days"`
	DefaultFlowIntensity FlowIntensity            `json:"default_flow_intensity"`
	LastPeriodStart      string                   `json:"last_period_start,omitempty"`
	FlowDays             map[string]FlowIntensity `json:"flow_days"`
	OvulationDays        []string                 `json:"ovulation_days"`
	PMSDays              []string                 `json:"pms_days"`
}

const (
	MinCycleDuration = 21
	MaxCycleDuration = 35
	MinFlowDuration  = 2
	MaxFlowDuration  = 8
)

// NewCycleData returns the default configuration for a fresh account.
func NewCycleData() *CycleData {
	return &CycleData{
		CycleDurationDays:    28,
		FlowDurationDays:     4,
		DefaultFlowIntensity: FlowMedium,
		FlowDays:             make(map[string]FlowIntensity),
	}
}
