// Package bot runs the Telegram surface and owns the per-chat sessions.
package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/lumiwell/lumi/internal/ai"
	"github.com/lumiwell/lumi/internal/bot/handlers"
	"github.com/lumiwell/lumi/internal/checkout"
	"github.com/lumiwell/lumi/internal/config"
	"github.com/lumiwell/lumi/internal/storage"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	handlers *handlers.Handlers
	checkout *checkout.Service
	log      *logrus.Logger
}

func New(cfg *config.Config, store storage.Store, paypal *checkout.Client, aiClient *ai.Client, log *logrus.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	services := &handlers.Services{
		Store:    store,
		Checkout: paypal,
		AI:       aiClient,
		Config:   cfg,
	}

	return &Bot{
		api:      api,
		handlers: handlers.New(api, services, log),
		checkout: checkout.NewService(paypal, log),
		log:      log,
	}, nil
}

func (b *Bot) Start(ctx context.Context) error {
	b.log.WithField("account", b.api.Self.UserName).Info("Bot authorized")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	if update.Message.IsCommand() {
		b.handlers.HandleCommand(ctx, update.Message)
		return
	}

	b.handlers.HandleMessage(ctx, update.Message)
}

// ActivateUser finishes a checkout for the logged-in user a state token was
// issued to. It captures the order, upgrades the session profile, and tells
// the chat.
func (b *Bot) ActivateUser(ctx context.Context, email, orderID, planID string) error {
	sess := b.handlers.SessionFor(email)
	if sess == nil {
		return fmt.Errorf("no active session for %s", email)
	}

	user := sess.User()
	capture, err := b.checkout.Activate(ctx, &user, orderID, planID)
	if err != nil {
		return err
	}
	sess.SetUser(ctx, user)

	b.log.WithFields(logrus.Fields{
		"email":          email,
		"transaction_id": capture.TransactionID,
	}).Info("Checkout finished")
	b.handlers.NotifyActivated(email)
	return nil
}
