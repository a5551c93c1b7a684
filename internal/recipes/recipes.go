// Package recipes holds the built-in recipe catalog. Every user gets these;
// the AI-personalized variants in internal/ai are premium only.
package recipes

import (
	"strings"

	"github.com/lumiwell/lumi/internal/models"
)

// MealPeriod is one slot of the daily meal planner.
type MealPeriod string

const (
	MealBreakfast      MealPeriod = "breakfast"
	MealMorningSnack   MealPeriod = "morning-snack"
	MealLunch          MealPeriod = "lunch"
	MealAfternoonSnack MealPeriod = "afternoon-snack"
	MealDinner         MealPeriod = "dinner"
	MealEveningSnack   MealPeriod = "evening-snack"
	MealDrinks         MealPeriod = "drinks"
)

// MealPeriods in display order.
func MealPeriods() []MealPeriod {
	return []MealPeriod{
		MealBreakfast, MealMorningSnack, MealLunch,
		MealAfternoonSnack, MealDinner, MealEveningSnack, MealDrinks,
	}
}

// Kind classifies what the user feels like eating.
type Kind string

const (
	KindSweet   Kind = "sweet"
	KindSavory  Kind = "savory"
	KindHealthy Kind = "healthy"
)

// InferKind maps free-text input to a Kind. Savory is the default when the
// text names neither sweet nor healthy.
func InferKind(input string) Kind {
	lower := strings.ToLower(input)
	switch {
	case strings.Contains(lower, "sweet"):
		return KindSweet
	case strings.Contains(lower, "healthy"):
		return KindHealthy
	default:
		return KindSavory
	}
}

// catalog only covers the periods with curated dishes. Other periods fall
// through to the AI suggestion for premium users.
var catalog = map[MealPeriod]map[Kind]models.Recipe{
	MealBreakfast: {
		KindSweet: {
			Title:        "Sweet Banana Pancakes",
			Ingredients:  []string{"1 ripe banana", "2 eggs", "1 spoon of honey", "Cinnamon to taste"},
			Instructions: []string{"Mash the banana", "Mix in the eggs and honey", "Cook in a skillet", "Dust with cinnamon"},
		},
		KindSavory: {
			Title:        "Herb Omelette",
			Ingredients:  []string{"3 eggs", "Chopped chives", "Salt and pepper", "1 spoon of olive oil"},
			Instructions: []string{"Beat the eggs", "Season with salt and pepper", "Cook in a skillet", "Top with chives"},
		},
		KindHealthy: {
			Title:        "Natural Açaí Bowl",
			Ingredients:  []string{"100g açaí", "1/2 banana", "Granola", "Mixed berries"},
			Instructions: []string{"Blend the açaí", "Slice the banana", "Assemble the bowl", "Finish with granola"},
		},
	},
	MealLunch: {
		KindSweet: {
			Title:        "Sweet and Sour Chicken",
			Ingredients:  []string{"Chicken breast", "Sweet and sour sauce", "Bell pepper", "Onion"},
			Instructions: []string{"Cut the chicken", "Sauté the vegetables", "Add the sauce", "Cook for 15 minutes"},
		},
		KindSavory: {
			Title:        "Mushroom Risotto",
			Ingredients:  []string{"Arborio rice", "Mushrooms", "Vegetable stock", "Parmesan cheese"},
			Instructions: []string{"Sauté the rice", "Add stock a ladle at a time", "Stir in the mushrooms", "Finish with cheese"},
		},
		KindHealthy: {
			Title:        "Full Garden Salad",
			Ingredients:  []string{"Mixed greens", "Chickpeas", "Cherry tomatoes", "Olive oil and lemon"},
			Instructions: []string{"Wash the greens", "Halve the tomatoes", "Toss everything together", "Dress with olive oil and lemon"},
		},
	},
}

// Suggest returns the curated recipe for the given period and free-text
// craving. The second return is false when the catalog has nothing for the
// period.
func Suggest(period MealPeriod, input string) (models.Recipe, bool) {
	kinds, ok := catalog[period]
	if !ok {
		return models.Recipe{}, false
	}
	recipe, ok := kinds[InferKind(input)]
	return recipe, ok
}
