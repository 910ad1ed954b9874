package recipe

import (
	"context"
	"strings"

	"wastenot/entities"
	"wastenot/pkg/appstate"
	"wastenot/pkg/store"
)

type (
	RecipeRepository interface {
		ReplaceRecipes(ctx context.Context, recipes []entities.Recipe) error
		GetRecipes() []entities.Recipe
		GetAPIKey() string
		SaveAPIKey(ctx context.Context, apiKey string) error
	}

	recipeRepository struct {
		state *appstate.State
	}
)

func NewRecipeRepository(state *appstate.State) RecipeRepository {
	return &recipeRepository{state: state}
}

func (r *recipeRepository) ReplaceRecipes(ctx context.Context, recipes []entities.Recipe) error {
	return r.state.Update(ctx, func(snap *appstate.Snapshot) ([]string, error) {
		snap.Recipes = append([]entities.Recipe{}, recipes...)
		return []string{store.KeyRecipes}, nil
	})
}

func (r *recipeRepository) GetRecipes() []entities.Recipe {
	return r.state.Snapshot().Recipes
}

func (r *recipeRepository) GetAPIKey() string {
	return r.state.Snapshot().RecipeAPIKey
}

func (r *recipeRepository) SaveAPIKey(ctx context.Context, apiKey string) error {
	return r.state.Update(ctx, func(snap *appstate.Snapshot) ([]string, error) {
		snap.RecipeAPIKey = strings.TrimSpace(apiKey)
		return []string{store.KeyRecipeAPIKey}, nil
	})
}
