package gate

import (
	"testing"

	"github.com/lumiwell/lumi/internal/models"
)

func TestCountedLimits(t *testing.T) {
	tests := []struct {
		feature Feature
		free    int
		premium int
	}{
		{FeaturePlannerTasks, 3, 10},
		{FeatureShoppingItems, 5, 30},
		{FeatureMoodHistory, 2, 7},
	}
	for _, tt := range tests {
		if got := Limit(models.TierFree, tt.feature); got != tt.free {
			t.Errorf("Limit(free, %s) = %d, want %d", tt.feature, got, tt.free)
		}
		if got := Limit(models.TierPremium, tt.feature); got != tt.premium {
			t.Errorf("Limit(premium, %s) = %d, want %d", tt.feature, got, tt.premium)
		}
	}
}

func TestCanAddAtBoundary(t *testing.T) {
	// Free planner rejects the 4th task; premium accepts up to 10 and
	// rejects the 11th.
	if !CanAdd(models.TierFree, FeaturePlannerTasks, 2) {
		t.Error("free tier should accept a 3rd task")
	}
	if CanAdd(models.TierFree, FeaturePlannerTasks, 3) {
		t.Error("free tier should reject a 4th task")
	}
	if !CanAdd(models.TierPremium, FeaturePlannerTasks, 9) {
		t.Error("premium tier should accept a 10th task")
	}
	if CanAdd(models.TierPremium, FeaturePlannerTasks, 10) {
		t.Error("premium tier should reject an 11th task")
	}
}

func TestBooleanFeatures(t *testing.T) {
	for _, f := range []Feature{
		FeatureNextMonthCalendar,
		FeatureCycleForecast,
		FeatureRecipeSave,
		FeatureCycleCountdown,
	} {
		if Allowed(models.TierFree, f) {
			t.Errorf("Allowed(free, %s) = true, want false", f)
		}
		if !Allowed(models.TierPremium, f) {
			t.Errorf("Allowed(premium, %s) = false, want true", f)
		}
	}
}

func TestAdvisoryIsTierSpecific(t *testing.T) {
	free := Advisory(models.TierFree, FeaturePlannerTasks)
	premium := Advisory(models.TierPremium, FeaturePlannerTasks)
	if free == premium {
		t.Error("free and premium advisories should differ")
	}
	if free == "" || premium == "" {
		t.Error("advisories must not be empty")
	}
}
