package notify

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Telegram delivers notifications as chat messages. Consent maps onto the
// chat: RequestPermission sends the prompt once, and the bot surface calls
// SetPermission when the user answers.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    *logrus.Logger

	mu       sync.Mutex
	perm     Permission
	prompted bool
}

func NewTelegram(api *tgbotapi.BotAPI, chatID int64, log *logrus.Logger) *Telegram {
	return &Telegram{api: api, chatID: chatID, log: log, perm: PermissionDefault}
}

func (t *Telegram) Permission() Permission {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.perm
}

// SetPermission records the user's consent decision.
func (t *Telegram) SetPermission(p Permission) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.perm = p
}

// RequestPermission prompts once when consent is still undecided and returns
// the current state. A denied decision is never re-prompted.
func (t *Telegram) RequestPermission(ctx context.Context) Permission {
	t.mu.Lock()
	if t.perm != PermissionDefault || t.prompted {
		p := t.perm
		t.mu.Unlock()
		return p
	}
	t.prompted = true
	t.mu.Unlock()

	msg := tgbotapi.NewMessage(t.chatID,
		"May I send you daily reminders? Reply with /notifications to choose. 🌷")
	if _, err := t.api.Send(msg); err != nil {
		t.log.WithError(err).Warn("Failed to send permission prompt")
	}
	return PermissionDefault
}

// Show delivers one notification. No-op unless permission is granted; there
// is no delivery receipt.
func (t *Telegram) Show(ctx context.Context, title, body string) {
	if t.Permission() != PermissionGranted {
		return
	}
	msg := tgbotapi.NewMessage(t.chatID, title+"\n\n"+body)
	if _, err := t.api.Send(msg); err != nil {
		t.log.WithError(err).Warn("Failed to deliver notification")
	}
}
