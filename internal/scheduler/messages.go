package scheduler

import (
	"fmt"

	"github.com/lumiwell/lumi/internal/models"
)

// Title is the notification title for every reminder.
const Title = "Lumi 🌷"

// cycleCountdownMessages is indexed by days remaining until the next period.
// Selection is an exact integer match; anything outside [0,5] selects nothing.
var cycleCountdownMessages = map[int]string{
	5: "5 days until your period 💮 Take care of yourself and prepare gently.",
	4: "4 days until your period 🌷 A good moment to get organized and relax.",
	3: "3 days until your period 🌼 How about stocking up and minding your meals?",
	2: "2 days until your period 💗 Breathe deep, your body is getting ready.",
	1: "Your cycle should start tomorrow 🌸 Save a little time for yourself.",
	0: "Your cycle starts today 💞 Hydrate and rest, you are taking care of yourself.",
}

const (
	moodMessage = "You haven't logged your mood today 🌷 Open Lumi to update it and get your message of the day."
	mealMessage = "Shall we pick your next recipe together? 🍽️ Open Lumi and get inspired!"
)

// shoppingMessage names the single pending item, or the pending count.
func shoppingMessage(pending []models.ShoppingItem) string {
	if len(pending) == 0 {
		return ""
	}
	what := pending[0].Text
	if len(pending) > 1 {
		what = fmt.Sprintf("%d items", len(pending))
	}
	return fmt.Sprintf("You still need to buy %s. Mark it done if you already have it 💛", what)
}
