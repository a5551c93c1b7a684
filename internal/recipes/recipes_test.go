package recipes

import "testing"

func TestInferKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"something sweet please", KindSweet},
		{"SWEET tooth", KindSweet},
		{"keep it healthy", KindHealthy},
		{"savory snack", KindSavory},
		{"whatever", KindSavory},
		{"", KindSavory},
	}
	for _, tt := range tests {
		if got := InferKind(tt.input); got != tt.want {
			t.Errorf("InferKind(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSuggestCoversCuratedPeriods(t *testing.T) {
	for _, period := range []MealPeriod{MealBreakfast, MealLunch} {
		for _, input := range []string{"sweet", "healthy", "anything"} {
			recipe, ok := Suggest(period, input)
			if !ok {
				t.Fatalf("Suggest(%s, %q) returned no recipe", period, input)
			}
			if recipe.Title == "" || len(recipe.Ingredients) == 0 || len(recipe.Instructions) == 0 {
				t.Fatalf("Suggest(%s, %q) returned incomplete recipe: %+v", period, input, recipe)
			}
		}
	}
}

func TestSuggestUnknownPeriod(t *testing.T) {
	if _, ok := Suggest(MealDrinks, "sweet"); ok {
		t.Fatal("drinks has no curated recipes, expected ok=false")
	}
}

func TestSuggestPicksByKind(t *testing.T) {
	sweet, _ := Suggest(MealBreakfast, "sweet")
	savory, _ := Suggest(MealBreakfast, "savory")
	if sweet.Title == savory.Title {
		t.Fatalf("sweet and savory breakfast resolved to the same dish %q", sweet.Title)
	}
}
