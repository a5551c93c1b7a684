package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lumiwell/lumi/internal/mood"
)

func (h *Handlers) handleMood(ctx context.Context, st *chatState, msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		var names []string
		for _, opt := range mood.Options() {
			names = append(names, fmt.Sprintf("%s %s", opt.Emoji, opt.Name))
		}
		h.sendMessage(msg.Chat.ID, "How are you feeling today?\n"+strings.Join(names, " · ")+"\n\nUsage: /mood <mood> [note]")
		return
	}

	name := strings.ToLower(args[0])
	if !mood.Valid(name) {
		h.sendMessage(msg.Chat.ID, fmt.Sprintf("I don't know the mood %q. Send /mood to see the options.", name))
		return
	}
	note := strings.Join(args[1:], " ")

	today := time.Now().Format("2006-01-02")
	st.session.RecordMood(ctx, today, name, mood.Emoji(name), note)

	reply := mood.Phrase(name)
	if genres := mood.Music(name); len(genres) > 0 {
		reply += "\n\n🎵 For today: " + strings.Join(genres, ", ")
	}
	h.sendMessage(msg.Chat.ID, reply)
}

func (h *Handlers) handleMoodHistory(st *chatState, msg *tgbotapi.Message) {
	history := st.session.MoodHistory()
	if len(history) == 0 {
		h.sendMessage(msg.Chat.ID, "No mood entries yet. Log today with /mood 💛")
		return
	}
	var b strings.Builder
	b.WriteString("*Mood journal* 💭\n")
	for _, entry := range history {
		fmt.Fprintf(&b, "%s %s %s", entry.Date, entry.Emoji, entry.Mood)
		if entry.Note != "" {
			fmt.Fprintf(&b, " · %s", entry.Note)
		}
		b.WriteString("\n")
	}
	h.sendMessage(msg.Chat.ID, b.String())
}
