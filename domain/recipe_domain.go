package domain

import (
	"errors"
)

const (
	MaxSearchIngredients = 20
	RecipeResultCount    = 12

	SearchModeIngredients = "ingredients"
	SearchModeComplex     = "complex"
)

var (
	MessageSuccessSearchRecipes  = "recipes found"
	MessageSuccessGetRecipes     = "recipes retrieved successfully"
	MessageSuccessTestConnection = "recipe api key is valid"
	MessageDemoRecipes           = "error searching recipes, showing demo recipes"

	MessageFailedSearchRecipes  = "please enter at least one ingredient"
	MessageFailedGetRecipes     = "failed to retrieve recipes"
	MessageFailedTestConnection = "failed to connect to recipe api"
	MessageFailedMissingAPIKey  = "please configure your recipe api key in profile settings"

	ErrNoIngredients = errors.New("at least one ingredient is required")
	ErrMissingAPIKey = errors.New("recipe api key is not configured")
)

type (
	RecipeFilters struct {
		Cuisine    string `json:"cuisine"`
		Diet       string `json:"diet"`
		MaxMinutes int    `json:"max_ready_time" validate:"min=0"`
	}

	RecipeSearchRequest struct {
		Ingredients   []string `json:"ingredients"`
		FromInventory bool     `json:"from_inventory"`
		Mode          string   `json:"mode" validate:"omitempty,oneof=ingredients complex"`
		RecipeFilters
	}

	TestConnectionRequest struct {
		APIKey string `json:"api_key" validate:"required"`
	}

	RecipeResponse struct {
		ID                  int64    `json:"id"`
		Title               string   `json:"title"`
		Image               string   `json:"image,omitempty"`
		ReadyInMinutes      *int     `json:"ready_in_minutes"`
		Servings            *int     `json:"servings"`
		Score               *float64 `json:"score"`
		UsedIngredientCount *int     `json:"used_ingredient_count"`
		Ingredients         []string `json:"ingredients"`
		Instructions        []string `json:"instructions"`
		Link                string   `json:"link"`
	}

	RecipeSearchResponse struct {
		Recipes     []RecipeResponse `json:"recipes"`
		Total       int              `json:"total"`
		Ingredients []string         `json:"ingredients"`
		Demo        bool             `json:"demo"`
	}
)
