package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wastenot/domain"
	"wastenot/entities"
)

const (
	DefaultBaseURL = "https://api.spoonacular.com"
	DefaultTimeout = 30 * time.Second
)

type (
	// RecipeClient talks to the recipe provider. Every failure is reported
	// wrapped in domain.ErrProvider.
	RecipeClient interface {
		FindByIngredients(ctx context.Context, apiKey string, ingredients []string, filters domain.RecipeFilters) ([]entities.Recipe, error)
		ComplexSearch(ctx context.Context, apiKey string, params url.Values) ([]entities.Recipe, error)
		Information(ctx context.Context, apiKey string, id int64) (entities.Recipe, error)
	}

	recipeClient struct {
		baseURL    string
		httpClient *http.Client
	}
)

func NewRecipeClient(baseURL string, timeout time.Duration) RecipeClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &recipeClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func applyFilters(params url.Values, filters domain.RecipeFilters) {
	if filters.Cuisine != "" {
		params.Set("cuisine", filters.Cuisine)
	}
	if filters.Diet != "" {
		params.Set("diet", filters.Diet)
	}
	if filters.MaxMinutes > 0 {
		params.Set("maxReadyTime", strconv.Itoa(filters.MaxMinutes))
	}
}

func (c *recipeClient) FindByIngredients(ctx context.Context, apiKey string, ingredients []string, filters domain.RecipeFilters) ([]entities.Recipe, error) {
	params := url.Values{}
	params.Set("ingredients", strings.Join(ingredients, ","))
	params.Set("number", strconv.Itoa(domain.RecipeResultCount))
	params.Set("ranking", "2")
	applyFilters(params, filters)

	body, err := c.get(ctx, apiKey, "/recipes/findByIngredients", params)
	if err != nil {
		return nil, err
	}
	return decodeRecipes(body)
}

func (c *recipeClient) ComplexSearch(ctx context.Context, apiKey string, params url.Values) ([]entities.Recipe, error) {
	body, err := c.get(ctx, apiKey, "/recipes/complexSearch", params)
	if err != nil {
		return nil, err
	}
	return decodeRecipes(body)
}

func (c *recipeClient) Information(ctx context.Context, apiKey string, id int64) (entities.Recipe, error) {
	body, err := c.get(ctx, apiKey, fmt.Sprintf("/recipes/%d/information", id), url.Values{})
	if err != nil {
		return entities.Recipe{}, err
	}
	var recipe entities.Recipe
	if err := json.Unmarshal(body, &recipe); err != nil {
		return entities.Recipe{}, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	return recipe, nil
}

func (c *recipeClient) get(ctx context.Context, apiKey, path string, params url.Values) ([]byte, error) {
	params.Set("apiKey", apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrProvider, path, resp.Status)
	}
	return body, nil
}

// decodeRecipes accepts both a bare JSON array and a {"results": [...]} envelope.
func decodeRecipes(body []byte) ([]entities.Recipe, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var recipes []entities.Recipe
		if err := json.Unmarshal(trimmed, &recipes); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
		}
		return recipes, nil
	}

	var envelope struct {
		Results *[]entities.Recipe `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	if envelope.Results == nil {
		return nil, fmt.Errorf("%w: response has no results", domain.ErrProvider)
	}
	return *envelope.Results, nil
}
