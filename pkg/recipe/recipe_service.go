package recipe

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/sync/errgroup"

	"wastenot/domain"
	"wastenot/entities"
	"wastenot/pkg/appstate"
	"wastenot/pkg/expiry"
)

const enrichConcurrency = 4

type (
	RecipeService interface {
		FindByIngredients(ctx context.Context, ingredients []string, filters domain.RecipeFilters) ([]entities.Recipe, error)
		ComplexSearch(ctx context.Context, ingredients []string, filters domain.RecipeFilters) ([]entities.Recipe, error)
		Search(ctx context.Context, req domain.RecipeSearchRequest) (domain.RecipeSearchResponse, error)
		InventoryIngredients(ctx context.Context) ([]string, error)
		TestConnection(ctx context.Context, apiKey string) error
		GetStoredRecipes(ctx context.Context) ([]domain.RecipeResponse, error)
	}

	Config struct {
		APIKey     string
		SearchMode string
	}

	recipeService struct {
		state            *appstate.State
		recipeRepository RecipeRepository
		client           RecipeClient
		config           Config
		now              func() time.Time
	}
)

func NewRecipeService(state *appstate.State, recipeRepository RecipeRepository, client RecipeClient, config Config) RecipeService {
	if config.SearchMode != domain.SearchModeComplex {
		config.SearchMode = domain.SearchModeIngredients
	}
	return &recipeService{
		state:            state,
		recipeRepository: recipeRepository,
		client:           client,
		config:           config,
		now:              time.Now,
	}
}

// NormalizeIngredients trims names, drops blanks and keeps at most
// domain.MaxSearchIngredients entries.
func NormalizeIngredients(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, name)
		if len(out) == domain.MaxSearchIngredients {
			break
		}
	}
	return out
}

// apiKey prefers the key saved through TestConnection over the configured one.
func (s *recipeService) apiKey() string {
	if key := s.recipeRepository.GetAPIKey(); key != "" {
		return key
	}
	return s.config.APIKey
}

func (s *recipeService) prepare(ctx context.Context, ingredients []string) ([]string, string, error) {
	names := NormalizeIngredients(ingredients)
	if len(names) == 0 {
		return nil, "", fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrNoIngredients)
	}
	if err := s.state.Reload(ctx); err != nil {
		return nil, "", err
	}
	key := s.apiKey()
	if key == "" {
		return nil, "", fmt.Errorf("%w: %w", domain.ErrConfiguration, domain.ErrMissingAPIKey)
	}
	return names, key, nil
}

func (s *recipeService) FindByIngredients(ctx context.Context, ingredients []string, filters domain.RecipeFilters) ([]entities.Recipe, error) {
	names, key, err := s.prepare(ctx, ingredients)
	if err != nil {
		return nil, err
	}

	found, err := s.client.FindByIngredients(ctx, key, names, filters)
	if err != nil {
		return nil, err
	}
	recipes := s.enrich(ctx, key, found)

	if err := s.recipeRepository.ReplaceRecipes(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *recipeService) ComplexSearch(ctx context.Context, ingredients []string, filters domain.RecipeFilters) ([]entities.Recipe, error) {
	names, key, err := s.prepare(ctx, ingredients)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("number", strconv.Itoa(domain.RecipeResultCount))
	params.Set("addRecipeInformation", "true")
	params.Set("instructionsRequired", "true")
	params.Set("includeIngredients", strings.Join(names, ","))
	applyFilters(params, filters)

	recipes, err := s.client.ComplexSearch(ctx, key, params)
	if err != nil {
		return nil, err
	}
	if recipes == nil {
		recipes = []entities.Recipe{}
	}

	if err := s.recipeRepository.ReplaceRecipes(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// enrich fetches full information for each recipe. A failed lookup keeps the
// search record; output order matches input order.
func (s *recipeService) enrich(ctx context.Context, apiKey string, found []entities.Recipe) []entities.Recipe {
	out := make([]entities.Recipe, len(found))
	copy(out, found)

	var g errgroup.Group
	g.SetLimit(enrichConcurrency)
	for i := range found {
		i := i
		g.Go(func() error {
			detailed, err := s.client.Information(ctx, apiKey, found[i].ID)
			if err != nil {
				log.Warnf("recipe %d: keeping search result: %v", found[i].ID, err)
				return nil
			}
			out[i] = detailed
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (s *recipeService) Search(ctx context.Context, req domain.RecipeSearchRequest) (domain.RecipeSearchResponse, error) {
	ingredients := req.Ingredients
	if len(NormalizeIngredients(ingredients)) == 0 && req.FromInventory {
		fromInventory, err := s.InventoryIngredients(ctx)
		if err != nil {
			return domain.RecipeSearchResponse{}, err
		}
		ingredients = fromInventory
	}

	mode := req.Mode
	if mode == "" {
		mode = s.config.SearchMode
	}

	var (
		recipes []entities.Recipe
		err     error
	)
	if mode == domain.SearchModeComplex {
		recipes, err = s.ComplexSearch(ctx, ingredients, req.RecipeFilters)
	} else {
		recipes, err = s.FindByIngredients(ctx, ingredients, req.RecipeFilters)
	}

	names := NormalizeIngredients(ingredients)
	if errors.Is(err, domain.ErrProvider) {
		log.Warnf("recipe search failed, serving demo recipes: %v", err)
		demo := DemoRecipes()
		return domain.RecipeSearchResponse{
			Recipes:     ToRecipeResponses(demo),
			Total:       len(demo),
			Ingredients: names,
			Demo:        true,
		}, err
	}
	if err != nil {
		return domain.RecipeSearchResponse{}, err
	}

	return domain.RecipeSearchResponse{
		Recipes:     ToRecipeResponses(recipes),
		Total:       len(recipes),
		Ingredients: names,
	}, nil
}

// InventoryIngredients lists the names of items that have not expired, once each.
func (s *recipeService) InventoryIngredients(ctx context.Context) ([]string, error) {
	if err := s.state.Reload(ctx); err != nil {
		return nil, err
	}
	now := s.now()
	seen := map[string]bool{}
	names := []string{}
	for _, it := range s.state.Items() {
		name := strings.TrimSpace(it.Name)
		if name == "" || expiry.IsExpired(it.ExpiryDate.Time, now) {
			continue
		}
		if seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		names = append(names, name)
	}
	return names, nil
}

func (s *recipeService) TestConnection(ctx context.Context, apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrMissingAPIKey)
	}

	params := url.Values{}
	params.Set("query", "pasta")
	params.Set("number", "1")
	if _, err := s.client.ComplexSearch(ctx, apiKey, params); err != nil {
		return err
	}
	return s.recipeRepository.SaveAPIKey(ctx, apiKey)
}

func (s *recipeService) GetStoredRecipes(ctx context.Context) ([]domain.RecipeResponse, error) {
	if err := s.state.Reload(ctx); err != nil {
		return nil, err
	}
	return ToRecipeResponses(s.recipeRepository.GetRecipes()), nil
}

func ToRecipeResponse(r entities.Recipe) domain.RecipeResponse {
	ingredients := make([]string, 0, len(r.ExtendedIngredients))
	for _, ing := range r.ExtendedIngredients {
		if ing.Original != "" {
			ingredients = append(ingredients, ing.Original)
			continue
		}
		ingredients = append(ingredients, strings.TrimSpace(fmt.Sprintf("%g %s %s", ing.Amount, ing.Unit, ing.Name)))
	}
	instructions := r.Instructions()
	if instructions == nil {
		instructions = []string{}
	}
	return domain.RecipeResponse{
		ID:                  r.ID,
		Title:               r.Title,
		Image:               r.Image,
		ReadyInMinutes:      r.ReadyInMinutes,
		Servings:            r.Servings,
		Score:               r.SpoonacularScore,
		UsedIngredientCount: r.UsedIngredientCount,
		Ingredients:         ingredients,
		Instructions:        instructions,
		Link:                r.Link(),
	}
}

func ToRecipeResponses(recipes []entities.Recipe) []domain.RecipeResponse {
	out := make([]domain.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, ToRecipeResponse(r))
	}
	return out
}
