// Package scheduler arms one timer per reminder rule and delivers at most one
// notification per rule per day. Content is computed at fire time from live
// application state, never at schedule time.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/lumiwell/lumi/internal/cycle"
	"github.com/lumiwell/lumi/internal/gate"
	"github.com/lumiwell/lumi/internal/models"
	"github.com/lumiwell/lumi/internal/notify"
	"github.com/lumiwell/lumi/internal/rrule"
)

// AppState is the live state a rule inspects when it fires. *session.Session
// satisfies it.
type AppState interface {
	Tier() models.Tier
	NotificationsEnabled(category string) bool
	PendingShoppingItems() []models.ShoppingItem
	HasMoodEntry(date string) bool
	CycleSnapshot() models.CycleData
}

type Scheduler struct {
	state    AppState
	notifier notify.Notifier
	log      *logrus.Logger

	clock         func() time.Time
	checkInterval time.Duration
	notifyCh      chan struct{}

	mu      sync.Mutex
	armed   map[string]time.Time // ruleID -> next fire instant, at most one per rule
	firedOn map[string]string    // ruleID -> date key last delivered
}

type Option func(*Scheduler)

// WithClock injects a fake clock for deterministic tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Scheduler) { s.clock = clock }
}

func WithCheckInterval(d time.Duration) Option {
	return func(s *Scheduler) { s.checkInterval = d }
}

func New(state AppState, notifier notify.Notifier, log *logrus.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		state:         state,
		notifier:      notifier,
		log:           log,
		clock:         time.Now,
		checkInterval: 1 * time.Minute,
		notifyCh:      make(chan struct{}, 1),
		armed:         make(map[string]time.Time),
		firedOn:       make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notify triggers an immediate reconcile and check. Non-blocking if one is
// already pending; called whenever dependent state changes (toggles, tier).
func (s *Scheduler) Notify() {
	select {
	case s.notifyCh <- struct{}{}:
	default:
	}
}

// Start runs the tick loop until the context is cancelled. A re-open of the
// app goes through here again, so timers are always recomputed from current
// state rather than assumed to have survived.
func (s *Scheduler) Start(ctx context.Context) {
	s.log.Info("Reminder scheduler started")

	// Ask for notification consent once if the user never decided.
	if s.notifier.Permission() == notify.PermissionDefault {
		s.notifier.RequestPermission(ctx)
	}

	s.Reconcile()

	// Midnight job: recompute every timer from current state for the new day.
	c := cron.New()
	if _, err := c.AddFunc("0 0 * * *", s.Reconcile); err != nil {
		s.log.WithError(err).Error("Failed to register midnight reconcile job")
	}
	c.Start()
	defer c.Stop()

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Reminder scheduler stopped")
			return
		case <-ticker.C:
			s.check(ctx)
		case <-s.notifyCh:
			s.wake(ctx)
		}
	}
}

// wake services a state-change poke: fire anything already due under the old
// timers, then recompute them all. Firing first means a poke landing between
// a rule's instant and the next tick cannot push that delivery to tomorrow.
func (s *Scheduler) wake(ctx context.Context) {
	s.check(ctx)
	s.Reconcile()
}

// Reconcile recomputes the next fire instant of every rule from current
// state, invalidating stale timers: enabled rules get exactly one pending
// instant, disabled rules none.
func (s *Scheduler) Reconcile() {
	now := s.clock()
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rule := range Rules() {
		if !s.ruleEnabled(rule) {
			delete(s.armed, rule.ID)
			continue
		}
		next, err := rrule.NextDaily(rule.Hour, rule.Minute, now)
		if err != nil {
			s.log.WithError(err).WithField("rule", rule.ID).Error("Failed to compute next fire time")
			continue
		}
		s.armed[rule.ID] = next
	}
}

// ruleEnabled checks the category toggle and the premium gate. Callers hold mu.
func (s *Scheduler) ruleEnabled(rule Rule) bool {
	if !s.state.NotificationsEnabled(rule.Category) {
		return false
	}
	if rule.PremiumOnly && !gate.Allowed(s.state.Tier(), gate.FeatureCycleCountdown) {
		return false
	}
	return true
}

// check fires every rule whose instant has passed and re-arms it for the
// following day. A rule disabled after its timer was armed simply does not
// deliver and is not re-armed.
func (s *Scheduler) check(ctx context.Context) {
	now := s.clock()
	today := dateKey(now)

	s.mu.Lock()
	var due []Rule
	for _, rule := range Rules() {
		at, ok := s.armed[rule.ID]
		if !ok || at.After(now) {
			continue
		}
		delete(s.armed, rule.ID)
		if !s.ruleEnabled(rule) {
			continue
		}
		if s.firedOn[rule.ID] == today {
			// Already delivered today; re-arm for tomorrow only.
		} else {
			due = append(due, rule)
		}
		next, err := rrule.NextDailyAfter(rule.Hour, rule.Minute, now)
		if err != nil {
			s.log.WithError(err).WithField("rule", rule.ID).Error("Failed to re-arm rule")
			continue
		}
		s.armed[rule.ID] = next
	}
	s.mu.Unlock()

	for _, rule := range due {
		s.fire(ctx, rule, now, today)
	}
}

// fire computes the rule's content from live state and delivers it. An empty
// message means the rule's condition does not hold right now and nothing is
// shown; delivery itself is a no-op without consent.
func (s *Scheduler) fire(ctx context.Context, rule Rule, now time.Time, today string) {
	var body string
	switch rule.Category {
	case CategoryShopping:
		body = shoppingMessage(s.state.PendingShoppingItems())
	case CategoryCycle:
		data := s.state.CycleSnapshot()
		if days, ok := cycle.DaysUntilNextPeriod(&data, now); ok {
			body = cycleCountdownMessages[days]
		}
	case CategoryMood:
		if !s.state.HasMoodEntry(today) {
			body = moodMessage
		}
	case CategoryMeals:
		body = mealMessage
	}
	if body == "" {
		return
	}

	s.notifier.Show(ctx, Title, body)
	s.log.WithFields(logrus.Fields{"rule": rule.ID, "date": today}).Debug("Reminder fired")

	s.mu.Lock()
	s.firedOn[rule.ID] = today
	s.mu.Unlock()
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
