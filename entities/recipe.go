// File: entities/recipe.go
package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type (
	// Recipe is a provider record kept verbatim. The typed fields are a view
	// over the raw payload; any of them may be absent.
	Recipe struct {
		ID                    int64                `json:"id"`
		Title                 string               `json:"title"`
		Image                 string               `json:"image,omitempty"`
		ReadyInMinutes        *int                 `json:"readyInMinutes,omitempty"`
		Servings              *int                 `json:"servings,omitempty"`
		SpoonacularScore      *float64             `json:"spoonacularScore,omitempty"`
		UsedIngredientCount   *int                 `json:"usedIngredientCount,omitempty"`
		MissedIngredientCount *int                 `json:"missedIngredientCount,omitempty"`
		SourceURL             string               `json:"sourceUrl,omitempty"`
		Summary               string               `json:"summary,omitempty"`
		ExtendedIngredients   []RecipeIngredient   `json:"extendedIngredients,omitempty"`
		AnalyzedInstructions  []RecipeInstructions `json:"analyzedInstructions,omitempty"`

		raw json.RawMessage
	}

	RecipeIngredient struct {
		Name     string  `json:"name"`
		Original string  `json:"original,omitempty"`
		Amount   float64 `json:"amount,omitempty"`
		Unit     string  `json:"unit,omitempty"`
	}

	RecipeInstructions struct {
		Name  string       `json:"name,omitempty"`
		Steps []RecipeStep `json:"steps"`
	}

	RecipeStep struct {
		Number int    `json:"number"`
		Step   string `json:"step"`
	}
)

// recipeView breaks the MarshalJSON/UnmarshalJSON recursion.
type recipeView Recipe

func (r *Recipe) UnmarshalJSON(data []byte) error {
	var view recipeView
	if err := json.Unmarshal(data, &view); err != nil {
		return fmt.Errorf("decode recipe: %w", err)
	}
	*r = Recipe(view)
	r.raw = append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	return nil
}

func (r Recipe) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	return json.Marshal(recipeView(r))
}

// Raw returns the provider payload as received, or nil for locally built recipes.
func (r Recipe) Raw() json.RawMessage {
	return r.raw
}

// Minutes reports readyInMinutes when the provider sent it.
func (r Recipe) Minutes() (int, bool) {
	if r.ReadyInMinutes == nil {
		return 0, false
	}
	return *r.ReadyInMinutes, true
}

// Instructions flattens the first analyzed instruction block into plain steps.
func (r Recipe) Instructions() []string {
	if len(r.AnalyzedInstructions) == 0 {
		return nil
	}
	steps := make([]string, 0, len(r.AnalyzedInstructions[0].Steps))
	for _, s := range r.AnalyzedInstructions[0].Steps {
		steps = append(steps, s.Step)
	}
	return steps
}

// Link points at the source page, falling back to the provider's recipe page.
func (r Recipe) Link() string {
	if r.SourceURL != "" {
		return r.SourceURL
	}
	return fmt.Sprintf("https://spoonacular.com/recipes/%s-%d", strings.ReplaceAll(r.Title, " ", "-"), r.ID)
}
