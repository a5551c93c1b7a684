package cycle

import (
	"testing"
	"time"

	"github.com/lumiwell/lumi/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysUntilNextPeriod(t *testing.T) {
	tests := []struct {
		name      string
		lastStart string
		duration  int
		today     time.Time
		want      int
		wantOK    bool
	}{
		{"four days out", "2024-01-01", 28, date(2024, 1, 25), 4, true},
		{"starts today", "2024-01-01", 28, date(2024, 1, 29), 0, true},
		{"overdue is negative", "2024-01-01", 28, date(2024, 2, 3), -5, true},
		{"short cycle", "2024-03-01", 21, date(2024, 3, 2), 20, true},
		{"unset start", "", 28, date(2024, 1, 25), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := models.NewCycleData()
			data.CycleDurationDays = tt.duration
			data.LastPeriodStart = tt.lastStart

			got, ok := DaysUntilNextPeriod(data, tt.today)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("DaysUntilNextPeriod() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysUntilNextPeriodIgnoresTimeOfDay(t *testing.T) {
	data := models.NewCycleData()
	data.LastPeriodStart = "2024-01-01"

	late := time.Date(2024, 1, 25, 23, 45, 0, 0, time.UTC)
	got, ok := DaysUntilNextPeriod(data, late)
	if !ok || got != 4 {
		t.Fatalf("DaysUntilNextPeriod(23:45) = %d, %v; want 4, true", got, ok)
	}
}

func TestForecastSummary(t *testing.T) {
	data := models.NewCycleData()
	data.LastPeriodStart = "2024-01-01"

	sum, ok := Forecast(data)
	if !ok {
		t.Fatal("Forecast() returned not ok")
	}
	if !sum.NextPeriod.Equal(date(2024, 1, 29)) {
		t.Errorf("NextPeriod = %v, want 2024-01-29", sum.NextPeriod)
	}
	if !sum.Ovulation.Equal(date(2024, 1, 15)) {
		t.Errorf("Ovulation = %v, want 2024-01-15", sum.Ovulation)
	}
	if !sum.FertileStart.Equal(date(2024, 1, 11)) {
		t.Errorf("FertileStart = %v, want 2024-01-11", sum.FertileStart)
	}
	if !sum.FertileEnd.Equal(date(2024, 1, 16)) {
		t.Errorf("FertileEnd = %v, want 2024-01-16", sum.FertileEnd)
	}
}

func TestForecastUnset(t *testing.T) {
	if _, ok := Forecast(models.NewCycleData()); ok {
		t.Fatal("Forecast() without last period start must return not ok")
	}
}
