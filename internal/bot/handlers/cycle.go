package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lumiwell/lumi/internal/calendar"
	"github.com/lumiwell/lumi/internal/cycle"
	"github.com/lumiwell/lumi/internal/gate"
	"github.com/lumiwell/lumi/internal/models"
)

var colorEmoji = map[calendar.ColorClass]string{
	calendar.ColorDefault:        "⬜",
	calendar.ColorToday:          "🟦",
	calendar.ColorFlowLight:      "🌸",
	calendar.ColorFlowLightToday: "💮",
	calendar.ColorFlowMedium:     "🌺",
	calendar.ColorFlowIntense:    "🔴",
	calendar.ColorOvulation:      "🟣",
	calendar.ColorPMS:            "🟠",
}

// handleCycle renders the month calendar, defaulting to the current month.
// An optional YYYY-MM argument selects another month.
func (h *Handlers) handleCycle(st *chatState, msg *tgbotapi.Message) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if arg := strings.TrimSpace(msg.CommandArguments()); arg != "" {
		parsed, err := time.Parse("2006-01", arg)
		if err != nil {
			h.sendMessage(msg.Chat.ID, "Usage: /cycle [YYYY-MM]")
			return
		}
		year, month = parsed.Year(), parsed.Month()
	}

	// Other months are view-only unless the tier allows editing them.
	otherMonth := year != now.Year() || month != now.Month()
	interactive := !otherMonth || gate.Allowed(st.session.Tier(), gate.FeatureNextMonthCalendar)

	view := calendar.Render(year, month, st.session.DayStore(), now, interactive)

	var b strings.Builder
	fmt.Fprintf(&b, "*%s %d* 🌸\n", month, year)
	b.WriteString("`Su Mo Tu We Th Fr Sa`\n")
	for row := 0; row < calendar.GridCells/7; row++ {
		var line []string
		empty := true
		for col := 0; col < 7; col++ {
			cell := view.Cells[row*7+col]
			if cell.Day == 0 {
				line = append(line, "▫️")
				continue
			}
			empty = false
			line = append(line, colorEmoji[cell.Color])
		}
		if empty {
			continue
		}
		b.WriteString(strings.Join(line, "") + "\n")
	}
	b.WriteString("\n🌸 light · 🌺 medium · 🔴 intense · 🟣 ovulation · 🟠 PMS\n")

	var ovulation, pms []string
	for day := 1; day <= view.DaysInMonth; day++ {
		cell := view.Cells[view.FirstWeekdayOffset+day-1]
		if cell.OvulationBadge {
			ovulation = append(ovulation, strconv.Itoa(day))
		}
		if cell.PMSBadge {
			pms = append(pms, strconv.Itoa(day))
		}
	}
	if len(ovulation) > 0 {
		fmt.Fprintf(&b, "🥚 Ovulation: day %s\n", strings.Join(ovulation, ", "))
	}
	if len(pms) > 0 {
		fmt.Fprintf(&b, "💜 PMS: day %s\n", strings.Join(pms, ", "))
	}

	data := st.session.CycleSnapshot()
	if days, ok := cycle.DaysUntilNextPeriod(&data, now); ok {
		switch {
		case days == 0:
			b.WriteString("\nYour period is due today 💞\n")
		case days == 1:
			b.WriteString("\nYour period is due tomorrow 🌸\n")
		case days > 1:
			fmt.Fprintf(&b, "\n%d days until your next period 🌷\n", days)
		default:
			fmt.Fprintf(&b, "\nYour period is %d days late ⏳\n", -days)
		}
	}

	if gate.Allowed(st.session.Tier(), gate.FeatureCycleForecast) {
		if summary, ok := cycle.Forecast(&data); ok {
			fmt.Fprintf(&b, "💎 Fertile window %s to %s, ovulation around %s\n",
				summary.FertileStart.Format("Jan 2"),
				summary.FertileEnd.Format("Jan 2"),
				summary.Ovulation.Format("Jan 2"))
		}
	}

	if interactive {
		b.WriteString("\nTag a day with /day <YYYY-MM-DD>")
	} else {
		b.WriteString("\n" + gate.Advisory(st.session.Tier(), gate.FeatureNextMonthCalendar))
	}
	h.sendMessage(msg.Chat.ID, b.String())
}

func (h *Handlers) handleCycleConfig(ctx context.Context, st *chatState, msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		data := st.session.CycleSnapshot()
		h.sendMessage(msg.Chat.ID, fmt.Sprintf(
			"*Cycle settings* ⚙️\nCycle length: %d days\nFlow length: %d days\nUsual intensity: %s\nLast period start: %s\n\nUsage: /cycleconfig <cycle days> <flow days> <light|medium|intense> [YYYY-MM-DD]",
			data.CycleDurationDays, data.FlowDurationDays, data.DefaultFlowIntensity, orUnset(data.LastPeriodStart)))
		return
	}
	if len(args) < 3 {
		h.sendMessage(msg.Chat.ID, "Usage: /cycleconfig <cycle days> <flow days> <light|medium|intense> [YYYY-MM-DD]")
		return
	}

	cycleDays, err1 := strconv.Atoi(args[0])
	flowDays, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		h.sendMessage(msg.Chat.ID, "Cycle and flow lengths must be numbers.")
		return
	}
	lastStart := ""
	if len(args) > 3 {
		lastStart = args[3]
	}

	if err := st.session.SetCycleConfig(ctx, cycleDays, flowDays, models.FlowIntensity(args[2]), lastStart); err != nil {
		h.sendMessage(msg.Chat.ID, fmt.Sprintf("That didn't work: %v", err))
		return
	}
	if sched := st.sched; sched != nil {
		sched.Notify()
	}
	h.sendMessage(msg.Chat.ID, "Cycle settings saved ✨")
}

func (h *Handlers) handleDayOpen(st *chatState, msg *tgbotapi.Message) {
	date := strings.TrimSpace(msg.CommandArguments())
	if err := st.session.OpenDay(date); err != nil {
		h.sendMessage(msg.Chat.ID, "Usage: /day <YYYY-MM-DD>")
		return
	}
	st.openDay = date
	h.showDayBuffer(st, msg.Chat.ID)
}

func (h *Handlers) showDayBuffer(st *chatState, chatID int64) {
	tags, open := st.session.DayBuffer()
	if !open {
		h.sendMessage(chatID, "No day is being edited. Start with /day <YYYY-MM-DD>.")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*Editing %s* ✏️\n", st.openDay)
	if tags.Flow != "" {
		fmt.Fprintf(&b, "Flow: %s\n", tags.Flow)
	}
	if tags.Ovulation {
		b.WriteString("Ovulation 🥚\n")
	}
	if tags.PMS {
		b.WriteString("PMS 💜\n")
	}
	if tags.Empty() {
		b.WriteString("No tags yet.\n")
	}
	b.WriteString("\n/flow light|medium|intense · /ovulation · /pms\n/save · /remove · /cancel")
	h.sendMessage(chatID, b.String())
}

func (h *Handlers) handleDayFlow(st *chatState, msg *tgbotapi.Message) {
	intensity := models.FlowIntensity(strings.TrimSpace(msg.CommandArguments()))
	if !intensity.Valid() {
		h.sendMessage(msg.Chat.ID, "Usage: /flow light|medium|intense")
		return
	}
	if err := st.session.ToggleDayFlow(intensity); err != nil {
		h.sendMessage(msg.Chat.ID, "No day is being edited. Start with /day <YYYY-MM-DD>.")
		return
	}
	h.showDayBuffer(st, msg.Chat.ID)
}

func (h *Handlers) handleDayOvulation(st *chatState, msg *tgbotapi.Message) {
	if err := st.session.ToggleDayOvulation(); err != nil {
		h.sendMessage(msg.Chat.ID, "No day is being edited. Start with /day <YYYY-MM-DD>.")
		return
	}
	h.showDayBuffer(st, msg.Chat.ID)
}

func (h *Handlers) handleDayPMS(st *chatState, msg *tgbotapi.Message) {
	if err := st.session.ToggleDayPMS(); err != nil {
		h.sendMessage(msg.Chat.ID, "No day is being edited. Start with /day <YYYY-MM-DD>.")
		return
	}
	h.showDayBuffer(st, msg.Chat.ID)
}

func (h *Handlers) handleDaySave(ctx context.Context, st *chatState, msg *tgbotapi.Message) {
	if err := st.session.CommitDay(ctx); err != nil {
		h.sendMessage(msg.Chat.ID, "No day is being edited. Start with /day <YYYY-MM-DD>.")
		return
	}
	st.openDay = ""
	if sched := st.sched; sched != nil {
		sched.Notify()
	}
	h.sendMessage(msg.Chat.ID, "Saved 🌸 See it with /cycle.")
}

func (h *Handlers) handleDayRemove(ctx context.Context, st *chatState, msg *tgbotapi.Message) {
	if err := st.session.RemoveDay(ctx); err != nil {
		h.sendMessage(msg.Chat.ID, "No day is being edited. Start with /day <YYYY-MM-DD>.")
		return
	}
	st.openDay = ""
	h.sendMessage(msg.Chat.ID, "All tags cleared for that day 🗑️")
}

func (h *Handlers) handleDayCancel(st *chatState, msg *tgbotapi.Message) {
	st.session.DiscardDay()
	st.openDay = ""
	h.sendMessage(msg.Chat.ID, "Edit discarded.")
}

func orUnset(s string) string {
	if s == "" {
		return "not set"
	}
	return s
}
