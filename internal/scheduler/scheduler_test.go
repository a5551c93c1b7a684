package scheduler

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lumiwell/lumi/internal/models"
	"github.com/lumiwell/lumi/internal/notify"
)

// fakeState is a controllable AppState.
type fakeState struct {
	mu       sync.Mutex
	tier     models.Tier
	disabled map[string]bool
	pending  []models.ShoppingItem
	moodDays map[string]bool
	cycle    models.CycleData
}

func newFakeState() *fakeState {
	return &fakeState{
		tier:     models.TierFree,
		disabled: make(map[string]bool),
		moodDays: make(map[string]bool),
		cycle:    *models.NewCycleData(),
	}
}

func (f *fakeState) Tier() models.Tier {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tier
}

func (f *fakeState) NotificationsEnabled(category string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.disabled[category]
}

func (f *fakeState) PendingShoppingItems() []models.ShoppingItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

func (f *fakeState) HasMoodEntry(date string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.moodDays[date]
}

func (f *fakeState) CycleSnapshot() models.CycleData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cycle
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

type fixture struct {
	state    *fakeState
	notifier *notify.Memory
	sched    *Scheduler
	now      time.Time
	mu       sync.Mutex
}

func newFixture(t *testing.T, start time.Time) *fixture {
	t.Helper()
	f := &fixture{
		state:    newFakeState(),
		notifier: notify.NewMemory(notify.PermissionGranted),
		now:      start,
	}
	f.sched = New(f.state, f.notifier, quietLogger(), WithClock(func() time.Time {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.now
	}))
	return f
}

func (f *fixture) advanceTo(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

func at(h, m int) time.Time {
	return time.Date(2024, 6, 10, h, m, 0, 0, time.UTC)
}

func TestShoppingReminderFiresWithPendingItems(t *testing.T) {
	f := newFixture(t, at(7, 0))
	f.state.pending = []models.ShoppingItem{{ID: 1, Text: "oat milk"}}

	f.sched.Reconcile()
	f.advanceTo(at(8, 0))
	f.sched.check(context.Background())

	msgs := f.notifier.DeliveredMessages()
	var shopping []notify.Delivered
	for _, m := range msgs {
		if strings.Contains(m.Body, "oat milk") {
			shopping = append(shopping, m)
		}
	}
	if len(shopping) != 1 {
		t.Fatalf("shopping deliveries = %d (%v), want 1 naming the item", len(shopping), msgs)
	}
}

func TestShoppingReminderNamesCount(t *testing.T) {
	f := newFixture(t, at(7, 0))
	f.state.pending = []models.ShoppingItem{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}, {ID: 3, Text: "c"}}

	f.sched.Reconcile()
	f.advanceTo(at(8, 0))
	f.sched.check(context.Background())

	found := false
	for _, m := range f.notifier.DeliveredMessages() {
		if strings.Contains(m.Body, "3 items") {
			found = true
		}
	}
	if !found {
		t.Fatal("multi-item shopping reminder should name the pending count")
	}
}

func TestShoppingReminderSkipsWhenAllComplete(t *testing.T) {
	f := newFixture(t, at(7, 0))

	f.sched.Reconcile()
	f.advanceTo(at(8, 0))
	f.sched.check(context.Background())

	for _, m := range f.notifier.DeliveredMessages() {
		if strings.Contains(m.Body, "buy") {
			t.Fatalf("shopping reminder fired with nothing pending: %q", m.Body)
		}
	}
}

func TestCycleCountdownMessageSelection(t *testing.T) {
	tests := []struct {
		name      string
		lastStart string
		wantFire  bool
		fragment  string
	}{
		// today = 2024-06-10; duration 28.
		{"zero days", "2024-05-13", true, "starts today"},
		{"five days", "2024-05-18", true, "5 days"},
		{"six days out fires nothing", "2024-05-19", false, ""},
		{"overdue fires nothing", "2024-05-01", false, ""},
		{"unset fires nothing", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, at(11, 0))
			f.state.tier = models.TierPremium
			f.state.cycle.LastPeriodStart = tt.lastStart

			f.sched.Reconcile()
			f.advanceTo(at(12, 0))
			f.sched.check(context.Background())

			var cycleMsgs []string
			for _, m := range f.notifier.DeliveredMessages() {
				if m.Body != mealMessage && !strings.Contains(m.Body, "mood") {
					cycleMsgs = append(cycleMsgs, m.Body)
				}
			}
			if tt.wantFire {
				if len(cycleMsgs) != 1 || !strings.Contains(cycleMsgs[0], tt.fragment) {
					t.Fatalf("cycle deliveries = %v, want one containing %q", cycleMsgs, tt.fragment)
				}
			} else if len(cycleMsgs) != 0 {
				t.Fatalf("cycle deliveries = %v, want none", cycleMsgs)
			}
		})
	}
}

func TestCycleCountdownRequiresPremium(t *testing.T) {
	f := newFixture(t, at(11, 0))
	f.state.cycle.LastPeriodStart = "2024-05-13" // starts today

	f.sched.Reconcile()
	if _, armed := f.sched.armed["cycle"]; armed {
		t.Fatal("cycle rule must not arm for a free-tier user")
	}
}

func TestMoodReminderSkipsWhenLogged(t *testing.T) {
	f := newFixture(t, at(9, 0))
	f.state.moodDays["2024-06-10"] = true

	f.sched.Reconcile()
	f.advanceTo(at(10, 0))
	f.sched.check(context.Background())

	for _, m := range f.notifier.DeliveredMessages() {
		if m.Body == moodMessage {
			t.Fatal("mood reminder fired although today has an entry")
		}
	}
}

func TestMealPromptsFireUnconditionally(t *testing.T) {
	f := newFixture(t, at(6, 0))

	f.sched.Reconcile()
	f.advanceTo(time.Date(2024, 6, 10, 23, 0, 0, 0, time.UTC))
	f.sched.check(context.Background())

	meals := 0
	for _, m := range f.notifier.DeliveredMessages() {
		if m.Body == mealMessage {
			meals++
		}
	}
	if meals != 6 {
		t.Fatalf("meal prompt deliveries = %d, want 6", meals)
	}
}

func TestAtMostOneDeliveryPerRulePerDay(t *testing.T) {
	f := newFixture(t, at(9, 0))

	f.sched.Reconcile()
	f.advanceTo(at(10, 0))
	f.sched.check(context.Background())
	// A later reconcile must not produce a second mood delivery today.
	f.sched.Reconcile()
	f.advanceTo(at(10, 30))
	f.sched.check(context.Background())

	moods := 0
	for _, m := range f.notifier.DeliveredMessages() {
		if m.Body == moodMessage {
			moods++
		}
	}
	if moods != 1 {
		t.Fatalf("mood deliveries today = %d, want 1", moods)
	}
}

func TestDisablingCategoryStopsDelivery(t *testing.T) {
	f := newFixture(t, at(9, 0))

	f.sched.Reconcile()
	// Toggle off after the timer was armed: the pending timer may still
	// elapse but must not deliver nor re-arm.
	f.state.mu.Lock()
	f.state.disabled[CategoryMood] = true
	f.state.mu.Unlock()

	f.advanceTo(at(10, 0))
	f.sched.check(context.Background())

	for _, m := range f.notifier.DeliveredMessages() {
		if m.Body == moodMessage {
			t.Fatal("disabled category still delivered")
		}
	}
	if _, armed := f.sched.armed["mood"]; armed {
		t.Fatal("disabled rule was re-armed")
	}
}

func TestRearmForFollowingDay(t *testing.T) {
	f := newFixture(t, at(9, 0))

	f.sched.Reconcile()
	f.advanceTo(at(10, 0))
	f.sched.check(context.Background())

	next, armed := f.sched.armed["mood"]
	if !armed {
		t.Fatal("fired rule was not re-armed")
	}
	want := time.Date(2024, 6, 11, 10, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("re-armed instant = %v, want %v", next, want)
	}
}

func TestDeniedConsentArmsButDoesNotDeliver(t *testing.T) {
	f := newFixture(t, at(9, 0))
	f.notifier.SetPermission(notify.PermissionDenied)

	f.sched.Reconcile()
	if _, armed := f.sched.armed["mood"]; !armed {
		t.Fatal("rules should still arm with consent denied")
	}

	f.advanceTo(at(10, 0))
	f.sched.check(context.Background())
	if got := len(f.notifier.DeliveredMessages()); got != 0 {
		t.Fatalf("deliveries with denied consent = %d, want 0", got)
	}
}

// A state-change poke arriving after a rule's instant but before the next
// tick must still deliver that rule, not re-arm it straight to tomorrow.
func TestWakeFiresDueRuleBeforeRearming(t *testing.T) {
	f := newFixture(t, at(9, 0))

	f.sched.Reconcile()
	f.advanceTo(at(10, 5))
	f.sched.wake(context.Background())

	moods := 0
	for _, m := range f.notifier.DeliveredMessages() {
		if m.Body == moodMessage {
			moods++
		}
	}
	if moods != 1 {
		t.Fatalf("mood deliveries after wake = %d, want 1", moods)
	}

	next, armed := f.sched.armed["mood"]
	if !armed {
		t.Fatal("rule not re-armed after wake")
	}
	want := time.Date(2024, 6, 11, 10, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("re-armed instant = %v, want %v", next, want)
	}
}
