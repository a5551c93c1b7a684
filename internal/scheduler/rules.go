package scheduler

// Categories match the per-category notification toggles. The six meal
// prompts share the meals toggle.
const (
	CategoryShopping = "shopping"
	CategoryCycle    = "cycle"
	CategoryMood     = "mood"
	CategoryMeals    = "meals"
)

// Rule is one static reminder definition. Only the category's enabled flag is
// user-mutable; the times and tier requirements are fixed.
type Rule struct {
	ID          string
	Category    string
	Hour        int
	Minute      int
	PremiumOnly bool
}

// Rules is the full reminder table: shopping at 08:00, mood check-in at
// 10:00, the premium cycle countdown at 12:00, and six meal prompts.
func Rules() []Rule {
	return []Rule{
		{ID: "shopping", Category: CategoryShopping, Hour: 8, Minute: 0},
		{ID: "mood", Category: CategoryMood, Hour: 10, Minute: 0},
		{ID: "cycle", Category: CategoryCycle, Hour: 12, Minute: 0, PremiumOnly: true},
		{ID: "meal-breakfast", Category: CategoryMeals, Hour: 6, Minute: 45},
		{ID: "meal-morning-snack", Category: CategoryMeals, Hour: 8, Minute: 45},
		{ID: "meal-lunch", Category: CategoryMeals, Hour: 10, Minute: 45},
		{ID: "meal-afternoon-snack", Category: CategoryMeals, Hour: 14, Minute: 45},
		{ID: "meal-dinner", Category: CategoryMeals, Hour: 18, Minute: 45},
		{ID: "meal-evening-snack", Category: CategoryMeals, Hour: 20, Minute: 45},
	}
}
