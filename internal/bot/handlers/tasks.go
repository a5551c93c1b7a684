package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handlers) handleTaskList(st *chatState, msg *tgbotapi.Message) {
	tasks := st.session.Tasks()
	if len(tasks) == 0 {
		h.sendMessage(msg.Chat.ID, "No tasks yet. Add one with /task <text> ✨")
		return
	}
	var b strings.Builder
	b.WriteString("*Your day* 📋\n")
	for i, task := range tasks {
		mark := "◻️"
		if task.Completed {
			mark = "✅"
		}
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, mark, task.Text)
	}
	h.sendMessage(msg.Chat.ID, b.String())
}

func (h *Handlers) handleTaskAdd(ctx context.Context, st *chatState, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.CommandArguments())
	if text == "" {
		h.sendMessage(msg.Chat.ID, "Usage: /task <text>")
		return
	}
	if ok, advisory := st.session.AddTask(ctx, text); !ok {
		h.sendMessage(msg.Chat.ID, advisory)
		return
	}
	h.sendMessage(msg.Chat.ID, "Added ✨")
}

func (h *Handlers) handleTaskToggle(ctx context.Context, st *chatState, msg *tgbotapi.Message) {
	idx, ok := parseIndex(msg.CommandArguments(), len(st.session.Tasks()))
	if !ok {
		h.sendMessage(msg.Chat.ID, "Usage: /done <number from /tasks>")
		return
	}
	st.session.ToggleTask(ctx, st.session.Tasks()[idx].ID)
	h.handleTaskList(st, msg)
}

func (h *Handlers) handleTaskDelete(ctx context.Context, st *chatState, msg *tgbotapi.Message) {
	idx, ok := parseIndex(msg.CommandArguments(), len(st.session.Tasks()))
	if !ok {
		h.sendMessage(msg.Chat.ID, "Usage: /deltask <number from /tasks>")
		return
	}
	st.session.DeleteTask(ctx, st.session.Tasks()[idx].ID)
	h.sendMessage(msg.Chat.ID, "Removed 🗑️")
}

func (h *Handlers) handleShoppingList(st *chatState, msg *tgbotapi.Message) {
	items := st.session.ShoppingList()
	if len(items) == 0 {
		h.sendMessage(msg.Chat.ID, "Your shopping list is empty. Add something with /buy <item> 🛒")
		return
	}
	var b strings.Builder
	b.WriteString("*Shopping list* 🛒\n")
	for i, item := range items {
		mark := "◻️"
		if item.Completed {
			mark = "✅"
		}
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, mark, item.Text)
	}
	h.sendMessage(msg.Chat.ID, b.String())
}

func (h *Handlers) handleShoppingAdd(ctx context.Context, st *chatState, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.CommandArguments())
	if text == "" {
		h.sendMessage(msg.Chat.ID, "Usage: /buy <item>")
		return
	}
	if ok, advisory := st.session.AddShoppingItem(ctx, text); !ok {
		h.sendMessage(msg.Chat.ID, advisory)
		return
	}
	h.sendMessage(msg.Chat.ID, "On the list 🛒")
}

func (h *Handlers) handleShoppingToggle(ctx context.Context, st *chatState, msg *tgbotapi.Message) {
	idx, ok := parseIndex(msg.CommandArguments(), len(st.session.ShoppingList()))
	if !ok {
		h.sendMessage(msg.Chat.ID, "Usage: /got <number from /shopping>")
		return
	}
	st.session.ToggleShoppingItem(ctx, st.session.ShoppingList()[idx].ID)
	h.handleShoppingList(st, msg)
}

func (h *Handlers) handleShoppingDelete(ctx context.Context, st *chatState, msg *tgbotapi.Message) {
	idx, ok := parseIndex(msg.CommandArguments(), len(st.session.ShoppingList()))
	if !ok {
		h.sendMessage(msg.Chat.ID, "Usage: /delitem <number from /shopping>")
		return
	}
	st.session.DeleteShoppingItem(ctx, st.session.ShoppingList()[idx].ID)
	h.sendMessage(msg.Chat.ID, "Removed 🗑️")
}

// parseIndex turns a 1-based list position into a slice index.
func parseIndex(arg string, length int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > length {
		return 0, false
	}
	return n - 1, true
}
