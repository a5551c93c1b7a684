// Package handlers maps Telegram commands onto the session operations. Each
// chat gets its own session, notifier and reminder scheduler, created at
// login and torn down at logout.
package handlers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/lumiwell/lumi/internal/ai"
	"github.com/lumiwell/lumi/internal/checkout"
	"github.com/lumiwell/lumi/internal/config"
	"github.com/lumiwell/lumi/internal/models"
	"github.com/lumiwell/lumi/internal/notify"
	"github.com/lumiwell/lumi/internal/scheduler"
	"github.com/lumiwell/lumi/internal/session"
	"github.com/lumiwell/lumi/internal/storage"
)

// Services are the app-wide dependencies shared by every chat.
type Services struct {
	Store    storage.Store
	Checkout *checkout.Client
	AI       *ai.Client
	Config   *config.Config
}

// chatState is one chat's logged-in context: the session plus its reminder
// scheduler and notifier. Nil session means logged out. mu serializes
// update handling per chat; updates arrive one goroutine each.
type chatState struct {
	mu       sync.Mutex
	session  *session.Session
	notifier *notify.Telegram
	sched    *scheduler.Scheduler
	cancel   context.CancelFunc

	loginStep  string // "", "name", "email"
	loginName  string
	openDay    string
	lastRecipe *models.Recipe
}

type Handlers struct {
	api      *tgbotapi.BotAPI
	services *Services
	log      *logrus.Logger

	mu    sync.Mutex
	chats map[int64]*chatState
}

func New(api *tgbotapi.BotAPI, services *Services, log *logrus.Logger) *Handlers {
	return &Handlers{
		api:      api,
		services: services,
		log:      log,
		chats:    make(map[int64]*chatState),
	}
}

func (h *Handlers) state(chatID int64) *chatState {
	h.mu.Lock()
	defer h.mu.Unlock()
	st, ok := h.chats[chatID]
	if !ok {
		st = &chatState{}
		h.chats[chatID] = st
	}
	return st
}

// SessionFor returns the logged-in session for an email, or nil. Used by the
// checkout return endpoint to finish an activation. Lock order is always
// h.mu before st.mu.
func (h *Handlers) SessionFor(email string) *session.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, st := range h.chats {
		st.mu.Lock()
		sess := st.session
		st.mu.Unlock()
		if sess != nil && sess.User().Email == email {
			return sess
		}
	}
	return nil
}

func (h *Handlers) HandleCommand(ctx context.Context, msg *tgbotapi.Message) {
	st := h.state(msg.Chat.ID)
	st.mu.Lock()
	defer st.mu.Unlock()

	switch msg.Command() {
	case "start":
		h.handleStart(ctx, st, msg)
		return
	case "help":
		h.handleHelp(msg.Chat.ID)
		return
	}

	if st.session == nil {
		h.sendMessage(msg.Chat.ID, "You are not logged in yet. Send /start to begin 🌷")
		return
	}

	switch msg.Command() {
	case "tasks":
		h.handleTaskList(st, msg)
	case "task":
		h.handleTaskAdd(ctx, st, msg)
	case "done":
		h.handleTaskToggle(ctx, st, msg)
	case "deltask":
		h.handleTaskDelete(ctx, st, msg)
	case "shopping":
		h.handleShoppingList(st, msg)
	case "buy":
		h.handleShoppingAdd(ctx, st, msg)
	case "got":
		h.handleShoppingToggle(ctx, st, msg)
	case "delitem":
		h.handleShoppingDelete(ctx, st, msg)
	case "mood":
		h.handleMood(ctx, st, msg)
	case "moods":
		h.handleMoodHistory(st, msg)
	case "cycle":
		h.handleCycle(st, msg)
	case "cycleconfig":
		h.handleCycleConfig(ctx, st, msg)
	case "day":
		h.handleDayOpen(st, msg)
	case "flow":
		h.handleDayFlow(st, msg)
	case "ovulation":
		h.handleDayOvulation(st, msg)
	case "pms":
		h.handleDayPMS(st, msg)
	case "save":
		h.handleDaySave(ctx, st, msg)
	case "remove":
		h.handleDayRemove(ctx, st, msg)
	case "cancel":
		h.handleDayCancel(st, msg)
	case "recipe":
		h.handleRecipe(ctx, st, msg)
	case "ingredients":
		h.handleIngredients(ctx, st, msg)
	case "premium":
		h.handlePremium(ctx, st, msg)
	case "notifications":
		h.handleNotifications(st, msg)
	case "notify":
		h.handleNotifyToggle(ctx, st, msg)
	case "allow":
		h.handleConsent(st, msg, notify.PermissionGranted)
	case "deny":
		h.handleConsent(st, msg, notify.PermissionDenied)
	case "logout":
		h.handleLogout(st, msg)
	default:
		h.sendMessage(msg.Chat.ID, "Unknown command. Send /help to see what I can do 💛")
	}
}

// HandleMessage routes plain text. Only the login flow consumes free text;
// everything else is commands.
func (h *Handlers) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	st := h.state(msg.Chat.ID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.loginStep != "" {
		h.handleLoginInput(ctx, st, msg)
		return
	}
	h.sendMessage(msg.Chat.ID, "Send /help to see what I can do 💛")
}

func (h *Handlers) handleStart(ctx context.Context, st *chatState, msg *tgbotapi.Message) {
	if st.session != nil {
		h.sendMessage(msg.Chat.ID, fmt.Sprintf("Welcome back, %s! 🌷 Send /help anytime.", st.session.User().Name))
		return
	}
	st.loginStep = "name"
	h.sendMessage(msg.Chat.ID, "Hi, I'm Lumi 🌷 What's your name?")
}

func (h *Handlers) handleLoginInput(ctx context.Context, st *chatState, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	switch st.loginStep {
	case "name":
		if text == "" {
			h.sendMessage(msg.Chat.ID, "What's your name?")
			return
		}
		st.loginName = text
		st.loginStep = "email"
		h.sendMessage(msg.Chat.ID, fmt.Sprintf("Nice to meet you, %s! And your email?", text))
	case "email":
		if !strings.Contains(text, "@") {
			h.sendMessage(msg.Chat.ID, "That doesn't look like an email. Try again?")
			return
		}
		h.finishLogin(ctx, st, msg.Chat.ID, st.loginName, strings.ToLower(text))
	}
}

func (h *Handlers) finishLogin(ctx context.Context, st *chatState, chatID int64, name, email string) {
	sess, err := session.Login(ctx, h.services.Store, h.log, name, email)
	if err != nil {
		h.log.WithError(err).Error("Login failed")
		h.sendMessage(chatID, "Something went wrong logging you in. Please try /start again.")
		return
	}

	st.loginStep = ""
	st.loginName = ""
	st.session = sess
	st.notifier = notify.NewTelegram(h.api, chatID, h.log)

	schedCtx, cancel := context.WithCancel(context.Background())
	st.cancel = cancel
	st.sched = scheduler.New(sess, st.notifier, h.log)
	go st.sched.Start(schedCtx)

	h.sendMessage(chatID, fmt.Sprintf("Welcome, %s! 🌸 You're all set.\n\nSend /allow if you'd like daily reminders, or /help to explore.", name))
}

func (h *Handlers) handleLogout(st *chatState, msg *tgbotapi.Message) {
	if st.cancel != nil {
		st.cancel()
	}
	st.session.Logout()
	st.session = nil
	st.notifier = nil
	st.sched = nil
	st.openDay = ""
	h.sendMessage(msg.Chat.ID, "You're logged out. Your data is saved for next time 💛")
}

func (h *Handlers) handleConsent(st *chatState, msg *tgbotapi.Message, p notify.Permission) {
	st.notifier.SetPermission(p)
	st.sched.Notify()
	if p == notify.PermissionGranted {
		h.sendMessage(msg.Chat.ID, "Reminders are on! I'll check in at the right moments 🌷")
	} else {
		h.sendMessage(msg.Chat.ID, "No reminders, got it. You can /allow them anytime.")
	}
}

func (h *Handlers) handleHelp(chatID int64) {
	h.sendMessage(chatID, `Here's what I can do 🌷

*Planner*
/tasks — your day's tasks
/task <text> — add a task
/done <n> · /deltask <n>

*Shopping*
/shopping — your list
/buy <item> · /got <n> · /delitem <n>

*Mood*
/mood <mood> [note] — log today
/moods — your history

*Cycle*
/cycle [YYYY-MM] — calendar
/day <YYYY-MM-DD> — tag a day
/cycleconfig — cycle settings

*More*
/recipe <period> <craving> · /ingredients
/premium — go premium 💎
/notifications · /allow · /deny
/logout`)
}

func (h *Handlers) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := h.api.Send(msg); err != nil {
		h.log.WithError(err).Warn("Failed to send message")
	}
}
