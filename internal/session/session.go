// Package session holds one logged-in user's application state: the explicit
// context object every screen and the scheduler read from, with login and
// logout as its lifecycle boundaries. All state is loaded from storage on
// login and written back after each mutation; persistence failures degrade
// silently (the storage layer falls back to memory).
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lumiwell/lumi/internal/cycle"
	"github.com/lumiwell/lumi/internal/gate"
	"github.com/lumiwell/lumi/internal/models"
	"github.com/lumiwell/lumi/internal/storage"
)

// Notification categories, matching the per-category enabled toggles.
const (
	CategoryShopping = "shopping"
	CategoryCycle    = "cycle"
	CategoryMood     = "mood"
	CategoryMeals    = "meals"
)

type Session struct {
	mu    sync.Mutex
	store storage.Store
	log   *logrus.Logger

	user          models.User
	tasks         []models.Task
	shopping      []models.ShoppingItem
	mood          []models.MoodEntry
	cycleData     *models.CycleData
	dayStore      *cycle.DayStore
	editor        *cycle.Editor
	notifications models.NotificationSettings
	lastID        int64
}

// nextID returns a millisecond timestamp id, bumped when two mutations land
// in the same millisecond.
func (s *Session) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Login loads every state key for the user, falling back to defaults for keys
// that were never written, and persists the (possibly new) profile.
func Login(ctx context.Context, store storage.Store, log *logrus.Logger, name, email string) (*Session, error) {
	s := &Session{store: store, log: log}

	if err := s.loadJSON(ctx, email, storage.KeyProfile, &s.user); err != nil {
		return nil, err
	}
	if s.user.Email == "" {
		s.user = models.User{Name: name, Email: email, Tier: models.TierFree}
	} else if name != "" {
		s.user.Name = name
	}

	if err := s.loadJSON(ctx, email, storage.KeyTasks, &s.tasks); err != nil {
		return nil, err
	}
	if err := s.loadJSON(ctx, email, storage.KeyShopping, &s.shopping); err != nil {
		return nil, err
	}
	if err := s.loadJSON(ctx, email, storage.KeyMood, &s.mood); err != nil {
		return nil, err
	}

	s.cycleData = models.NewCycleData()
	if err := s.loadJSON(ctx, email, storage.KeyCycle, s.cycleData); err != nil {
		return nil, err
	}
	s.dayStore = cycle.NewDayStore(s.cycleData)
	s.editor = cycle.NewEditor(s.dayStore)

	s.notifications = models.DefaultNotificationSettings()
	if err := s.loadJSON(ctx, email, storage.KeyNotifications, &s.notifications); err != nil {
		return nil, err
	}

	s.persist(ctx, storage.KeyProfile, s.user)
	return s, nil
}

// Logout drops the in-memory state. Persisted data stays in the store and is
// reloaded on the next login.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = models.User{}
	s.tasks = nil
	s.shopping = nil
	s.mood = nil
	s.cycleData = models.NewCycleData()
	s.dayStore = cycle.NewDayStore(s.cycleData)
	s.editor = cycle.NewEditor(s.dayStore)
	s.notifications = models.DefaultNotificationSettings()
}

func (s *Session) loadJSON(ctx context.Context, email, key string, dst any) error {
	raw, err := s.store.Load(ctx, email, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Corrupt state blob, using defaults")
	}
	return nil
}

// persist marshals and saves one state key. Save errors are already handled
// by the storage fallback; anything else is logged and swallowed so no
// mutation ever fails on durability.
func (s *Session) persist(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Error("Failed to marshal state")
		return
	}
	if err := s.store.Save(ctx, s.user.Email, key, raw); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Failed to persist state")
	}
}

func (s *Session) User() models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Session) Tier() models.Tier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.Tier
}

// SetUser replaces the profile (after a checkout activation) and persists it.
func (s *Session) SetUser(ctx context.Context, user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.persist(ctx, storage.KeyProfile, s.user)
}

// ---- Planner ----

func (s *Session) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// AddTask appends a planner task. At the tier limit the operation is a no-op
// and the advisory message explains why.
func (s *Session) AddTask(ctx context.Context, text string) (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if text == "" {
		return false, ""
	}
	if !gate.CanAdd(s.user.Tier, gate.FeaturePlannerTasks, len(s.tasks)) {
		return false, gate.Advisory(s.user.Tier, gate.FeaturePlannerTasks)
	}
	s.tasks = append(s.tasks, models.Task{ID: s.nextID(), Text: text})
	s.persist(ctx, storage.KeyTasks, s.tasks)
	return true, ""
}

func (s *Session) ToggleTask(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			s.persist(ctx, storage.KeyTasks, s.tasks)
			return true
		}
	}
	return false
}

func (s *Session) DeleteTask(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.persist(ctx, storage.KeyTasks, s.tasks)
			return true
		}
	}
	return false
}

// ---- Shopping list ----

func (s *Session) ShoppingList() []models.ShoppingItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ShoppingItem, len(s.shopping))
	copy(out, s.shopping)
	return out
}

// PendingShoppingItems returns the incomplete items, newest last. The
// shopping reminder fires only when this is non-empty.
func (s *Session) PendingShoppingItems() []models.ShoppingItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ShoppingItem
	for _, item := range s.shopping {
		if !item.Completed {
			out = append(out, item)
		}
	}
	return out
}

func (s *Session) AddShoppingItem(ctx context.Context, text string) (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addShoppingLocked(ctx, text)
}

// AddIngredient auto-adds a recipe ingredient to the shopping list, a
// premium-only affordance.
func (s *Session) AddIngredient(ctx context.Context, ingredient string) (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !gate.Allowed(s.user.Tier, gate.FeatureRecipeSave) {
		return false, gate.Advisory(s.user.Tier, gate.FeatureRecipeSave)
	}
	return s.addShoppingLocked(ctx, ingredient)
}

func (s *Session) addShoppingLocked(ctx context.Context, text string) (bool, string) {
	if text == "" {
		return false, ""
	}
	if !gate.CanAdd(s.user.Tier, gate.FeatureShoppingItems, len(s.shopping)) {
		return false, gate.Advisory(s.user.Tier, gate.FeatureShoppingItems)
	}
	s.shopping = append(s.shopping, models.ShoppingItem{ID: s.nextID(), Text: text})
	s.persist(ctx, storage.KeyShopping, s.shopping)
	return true, ""
}

func (s *Session) ToggleShoppingItem(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.shopping {
		if s.shopping[i].ID == id {
			s.shopping[i].Completed = !s.shopping[i].Completed
			s.persist(ctx, storage.KeyShopping, s.shopping)
			return true
		}
	}
	return false
}

func (s *Session) DeleteShoppingItem(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.shopping {
		if s.shopping[i].ID == id {
			s.shopping = append(s.shopping[:i], s.shopping[i+1:]...)
			s.persist(ctx, storage.KeyShopping, s.shopping)
			return true
		}
	}
	return false
}

// ---- Mood journal ----

// RecordMood prepends today's entry. Retention follows the display window:
// the newest entry plus depth-1 previous ones are kept at write time.
func (s *Session) RecordMood(ctx context.Context, date, mood, emoji, note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	depth := gate.Limit(s.user.Tier, gate.FeatureMoodHistory)
	entry := models.MoodEntry{Date: date, Mood: mood, Emoji: emoji, Note: note}
	keep := depth - 1
	if keep > len(s.mood) {
		keep = len(s.mood)
	}
	s.mood = append([]models.MoodEntry{entry}, s.mood[:keep]...)
	s.persist(ctx, storage.KeyMood, s.mood)
}

// MoodHistory returns the entries visible at the current tier's depth.
func (s *Session) MoodHistory() []models.MoodEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	depth := gate.Limit(s.user.Tier, gate.FeatureMoodHistory)
	if depth > len(s.mood) {
		depth = len(s.mood)
	}
	out := make([]models.MoodEntry, depth)
	copy(out, s.mood[:depth])
	return out
}

// HasMoodEntry reports whether any entry exists for the given date key.
func (s *Session) HasMoodEntry(date string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.mood {
		if e.Date == date {
			return true
		}
	}
	return false
}

// ---- Cycle ----

// CycleSnapshot returns a copy of the cycle data safe to read concurrently.
func (s *Session) CycleSnapshot() models.CycleData {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := *s.cycleData
	snap.FlowDays = make(map[string]models.FlowIntensity, len(s.cycleData.FlowDays))
	for k, v := range s.cycleData.FlowDays {
		snap.FlowDays[k] = v
	}
	snap.OvulationDays = append([]string(nil), s.cycleData.OvulationDays...)
	snap.PMSDays = append([]string(nil), s.cycleData.PMSDays...)
	return snap
}

// DayStore returns a day store over a snapshot of the cycle data. Renders
// read the copy, so a concurrent commit on the live data cannot race them.
func (s *Session) DayStore() *cycle.DayStore {
	snap := s.CycleSnapshot()
	return cycle.NewDayStore(&snap)
}

// SetCycleConfig validates and stores the cycle configuration.
func (s *Session) SetCycleConfig(ctx context.Context, cycleDays, flowDays int, defaultIntensity models.FlowIntensity, lastPeriodStart string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cycleDays < models.MinCycleDuration || cycleDays > models.MaxCycleDuration {
		return fmt.Errorf("cycle duration %d out of range %d-%d", cycleDays, models.MinCycleDuration, models.MaxCycleDuration)
	}
	if flowDays < models.MinFlowDuration || flowDays > models.MaxFlowDuration {
		return fmt.Errorf("flow duration %d out of range %d-%d", flowDays, models.MinFlowDuration, models.MaxFlowDuration)
	}
	if !defaultIntensity.Valid() {
		return fmt.Errorf("unknown flow intensity %q", defaultIntensity)
	}
	if lastPeriodStart != "" {
		if err := cycle.ValidateDate(lastPeriodStart); err != nil {
			return err
		}
	}
	s.cycleData.CycleDurationDays = cycleDays
	s.cycleData.FlowDurationDays = flowDays
	s.cycleData.DefaultFlowIntensity = defaultIntensity
	s.cycleData.LastPeriodStart = lastPeriodStart
	s.persist(ctx, storage.KeyCycle, s.cycleData)
	return nil
}

// OpenDay starts editing a day's tags, discarding any previous edit buffer.
func (s *Session) OpenDay(date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Open(date)
}

func (s *Session) DayBuffer() (models.DayTags, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Buffer(), s.editor.IsOpen()
}

func (s *Session) ToggleDayFlow(intensity models.FlowIntensity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.ToggleFlow(intensity)
}

func (s *Session) ToggleDayOvulation() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.ToggleOvulation()
}

func (s *Session) ToggleDayPMS() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.TogglePMS()
}

// CommitDay writes the edit buffer to the store and persists the cycle data.
func (s *Session) CommitDay(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editor.Commit(); err != nil {
		return err
	}
	s.persist(ctx, storage.KeyCycle, s.cycleData)
	return nil
}

// RemoveDay clears every tag for the open day and persists.
func (s *Session) RemoveDay(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editor.Remove(); err != nil {
		return err
	}
	s.persist(ctx, storage.KeyCycle, s.cycleData)
	return nil
}

func (s *Session) DiscardDay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.Discard()
}

// ---- Notifications ----

func (s *Session) Notifications() models.NotificationSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notifications
}

// NotificationsEnabled reports the toggle for one category.
func (s *Session) NotificationsEnabled(category string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch category {
	case CategoryShopping:
		return s.notifications.Shopping
	case CategoryCycle:
		return s.notifications.Cycle
	case CategoryMood:
		return s.notifications.Mood
	case CategoryMeals:
		return s.notifications.Meals
	}
	return false
}

// SetNotificationEnabled flips one category toggle. Enabling the cycle
// countdown category is gated to premium.
func (s *Session) SetNotificationEnabled(ctx context.Context, category string, enabled bool) (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category == CategoryCycle && enabled && !gate.Allowed(s.user.Tier, gate.FeatureCycleCountdown) {
		return false, gate.Advisory(s.user.Tier, gate.FeatureCycleCountdown)
	}
	switch category {
	case CategoryShopping:
		s.notifications.Shopping = enabled
	case CategoryCycle:
		s.notifications.Cycle = enabled
	case CategoryMood:
		s.notifications.Mood = enabled
	case CategoryMeals:
		s.notifications.Meals = enabled
	default:
		return false, ""
	}
	s.persist(ctx, storage.KeyNotifications, s.notifications)
	return true, ""
}
