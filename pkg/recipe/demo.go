package recipe

import "wastenot/entities"

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// DemoRecipes is shown when the provider cannot be reached. It is never stored.
func DemoRecipes() []entities.Recipe {
	return []entities.Recipe{
		{
			ID:                  1,
			Title:               "Pasta with Tomato Sauce",
			Image:               "https://via.placeholder.com/300x200?text=Pasta",
			ReadyInMinutes:      intPtr(25),
			Servings:            intPtr(4),
			SpoonacularScore:    floatPtr(85),
			UsedIngredientCount: intPtr(3),
		},
		{
			ID:                  2,
			Title:               "Chicken Stir Fry",
			Image:               "https://via.placeholder.com/300x200?text=Stir+Fry",
			ReadyInMinutes:      intPtr(30),
			Servings:            intPtr(2),
			SpoonacularScore:    floatPtr(92),
			UsedIngredientCount: intPtr(4),
		},
		{
			ID:                  3,
			Title:               "Vegetable Soup",
			Image:               "https://via.placeholder.com/300x200?text=Soup",
			ReadyInMinutes:      intPtr(45),
			Servings:            intPtr(6),
			SpoonacularScore:    floatPtr(78),
			UsedIngredientCount: intPtr(5),
		},
	}
}
