package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lumiwell/lumi/internal/checkout"
	"github.com/lumiwell/lumi/internal/httpserver"
	"github.com/lumiwell/lumi/internal/notify"
	"github.com/lumiwell/lumi/internal/scheduler"
)

// handlePremium lists the plans, or starts a checkout when called with a
// plan id. The approval link carries a signed state token so the return
// endpoint knows which user to activate.
func (h *Handlers) handlePremium(ctx context.Context, st *chatState, msg *tgbotapi.Message) {
	if st.session.User().IsPremium() {
		h.sendMessage(msg.Chat.ID, "You're already Premium 💎 Thank you for supporting Lumi!")
		return
	}

	planID := strings.TrimSpace(msg.CommandArguments())
	if planID == "" {
		var b strings.Builder
		b.WriteString("*Go Premium* 💎\n\n")
		for _, plan := range checkout.Plans() {
			fmt.Fprintf(&b, "*%s*\n%s\n`/premium %s`\n\n", plan.Name, plan.Description, plan.ID)
		}
		b.WriteString("Premium unlocks 10 tasks, 30 shopping items, 7-day mood history, cycle forecast and AI recipes.")
		h.sendMessage(msg.Chat.ID, b.String())
		return
	}

	email := st.session.User().Email
	state, err := httpserver.IssueState(h.services.Config.StateSecret, email, planID)
	if err != nil {
		h.log.WithError(err).Error("Failed to issue checkout state token")
		h.sendMessage(msg.Chat.ID, "Checkout is unavailable right now. Please try again later.")
		return
	}

	base := h.services.Config.BaseURL
	returnURL := fmt.Sprintf("%s/checkout/success?state=%s", base, state)
	cancelURL := base + "/checkout/cancel"

	order, err := h.services.Checkout.CreateOrder(ctx, planID, returnURL, cancelURL)
	if err != nil {
		h.log.WithError(err).WithField("plan_id", planID).Error("Failed to create order")
		h.sendMessage(msg.Chat.ID, "I couldn't start that checkout. Check the plan id with /premium and try again.")
		return
	}

	h.sendMessage(msg.Chat.ID, fmt.Sprintf(
		"Almost there! Approve the payment for *%s* here:\n%s\n\nI'll confirm as soon as it goes through 💛",
		order.Plan.Name, order.ApprovalURL))
}

// NotifyActivated tells the user's chat that premium is live. Called from
// the checkout return endpoint.
func (h *Handlers) NotifyActivated(email string) {
	var chatID int64
	var sched *scheduler.Scheduler
	found := false

	h.mu.Lock()
	for id, st := range h.chats {
		st.mu.Lock()
		if st.session != nil && st.session.User().Email == email {
			chatID, sched, found = id, st.sched, true
		}
		st.mu.Unlock()
		if found {
			break
		}
	}
	h.mu.Unlock()

	if !found {
		return
	}
	h.sendMessage(chatID, "Payment confirmed, welcome to Premium 💎✨")
	if sched != nil {
		sched.Notify()
	}
}

func (h *Handlers) handleNotifications(st *chatState, msg *tgbotapi.Message) {
	settings := st.session.Notifications()
	mark := func(on bool) string {
		if on {
			return "🔔 on"
		}
		return "🔕 off"
	}
	var perm string
	switch st.notifier.Permission() {
	case notify.PermissionGranted:
		perm = "granted ✅"
	case notify.PermissionDenied:
		perm = "denied ❌ (/allow to change)"
	default:
		perm = "undecided · /allow or /deny"
	}
	h.sendMessage(msg.Chat.ID, fmt.Sprintf(
		`*Reminders* 🔔
Consent: %s

shopping: %s
cycle: %s (Premium)
mood: %s
meals: %s

Toggle with /notify <category> on|off`,
		perm, mark(settings.Shopping), mark(settings.Cycle), mark(settings.Mood), mark(settings.Meals)))
}

func (h *Handlers) handleNotifyToggle(ctx context.Context, st *chatState, msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
		h.sendMessage(msg.Chat.ID, "Usage: /notify <shopping|cycle|mood|meals> on|off")
		return
	}

	ok, advisory := st.session.SetNotificationEnabled(ctx, args[0], args[1] == "on")
	if !ok {
		h.sendMessage(msg.Chat.ID, advisory)
		return
	}
	st.sched.Notify()
	h.sendMessage(msg.Chat.ID, "Saved 🔔")
}
