package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lumiwell/lumi/internal/gate"
	"github.com/lumiwell/lumi/internal/models"
	"github.com/lumiwell/lumi/internal/recipes"
)

// handleRecipe suggests a dish for a meal period. The curated catalog serves
// everyone; premium users fall back to an AI suggestion for periods the
// catalog does not cover.
func (h *Handlers) handleRecipe(ctx context.Context, st *chatState, msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		var periods []string
		for _, p := range recipes.MealPeriods() {
			periods = append(periods, string(p))
		}
		h.sendMessage(msg.Chat.ID, "Usage: /recipe <period> [craving]\nPeriods: "+strings.Join(periods, ", "))
		return
	}

	period := recipes.MealPeriod(args[0])
	craving := strings.Join(args[1:], " ")

	recipe, ok := recipes.Suggest(period, craving)
	if !ok {
		if h.services.AI == nil || !st.session.User().IsPremium() {
			h.sendMessage(msg.Chat.ID, "I don't have a recipe for that period yet. Premium unlocks personalized AI suggestions 💎")
			return
		}
		suggested, err := h.services.AI.SuggestRecipe(ctx, period, craving)
		if err != nil {
			h.log.WithError(err).Warn("AI recipe suggestion failed")
			h.sendMessage(msg.Chat.ID, "I couldn't come up with a recipe right now. Try again in a moment 💛")
			return
		}
		recipe = *suggested
	}

	st.lastRecipe = &recipe
	h.sendMessage(msg.Chat.ID, formatRecipe(recipe, st.session.Tier()))
}

func formatRecipe(recipe models.Recipe, tier models.Tier) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s* 🍽️\n\n*Ingredients*\n", recipe.Title)
	for _, ing := range recipe.Ingredients {
		fmt.Fprintf(&b, "• %s\n", ing)
	}
	b.WriteString("\n*Steps*\n")
	for i, step := range recipe.Instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	if gate.Allowed(tier, gate.FeatureRecipeSave) {
		b.WriteString("\n💎 Add everything to your list with /ingredients")
	} else {
		b.WriteString("\n" + gate.Advisory(tier, gate.FeatureRecipeSave))
	}
	return b.String()
}

// handleIngredients adds the last suggested recipe's ingredients to the
// shopping list. Premium only; the session enforces the gate again.
func (h *Handlers) handleIngredients(ctx context.Context, st *chatState, msg *tgbotapi.Message) {
	if st.lastRecipe == nil {
		h.sendMessage(msg.Chat.ID, "Ask for a recipe first with /recipe 🍽️")
		return
	}
	added := 0
	for _, ing := range st.lastRecipe.Ingredients {
		ok, advisory := st.session.AddIngredient(ctx, ing)
		if !ok {
			h.sendMessage(msg.Chat.ID, advisory)
			return
		}
		added++
	}
	h.sendMessage(msg.Chat.ID, fmt.Sprintf("Added %d ingredients to your shopping list 🛒", added))
}
