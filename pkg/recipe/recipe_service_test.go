package recipe

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastenot/domain"
	"wastenot/entities"
	"wastenot/pkg/appstate"
	"wastenot/pkg/store"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

type provider struct {
	calls int32
	mux   *http.ServeMux
}

func newProvider() *provider {
	return &provider{mux: http.NewServeMux()}
}

func (p *provider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&p.calls, 1)
	p.mux.ServeHTTP(w, r)
}

func (p *provider) Calls() int {
	return int(atomic.LoadInt32(&p.calls))
}

func newTestService(t *testing.T, p *provider, configKey string) (*recipeService, *appstate.State) {
	t.Helper()
	server := httptest.NewServer(p)
	t.Cleanup(server.Close)

	state := appstate.New(store.NewMemoryStore())
	s := NewRecipeService(
		state,
		NewRecipeRepository(state),
		NewRecipeClient(server.URL, 5*time.Second),
		Config{APIKey: configKey},
	).(*recipeService)
	s.now = func() time.Time { return testNow }
	return s, state
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, body)
}

func TestFindByIngredients_EnrichesInOrder(t *testing.T) {
	p := newProvider()
	p.mux.HandleFunc("/recipes/findByIngredients", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "milk,eggs", q.Get("ingredients"))
		assert.Equal(t, "12", q.Get("number"))
		assert.Equal(t, "2", q.Get("ranking"))
		assert.Equal(t, "italian", q.Get("cuisine"))
		assert.Equal(t, "secret", q.Get("apiKey"))
		writeJSON(w, `[{"id":1,"title":"Omelette","usedIngredientCount":2},{"id":2,"title":"Custard"}]`)
	})
	p.mux.HandleFunc("/recipes/1/information", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(20 * time.Millisecond)
		writeJSON(w, `{"id":1,"title":"Omelette","readyInMinutes":10,"sourceUrl":"https://example.com/omelette","analyzedInstructions":[{"steps":[{"number":1,"step":"Whisk."}]}]}`)
	})
	p.mux.HandleFunc("/recipes/2/information", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	s, state := newTestService(t, p, "secret")

	recipes, err := s.FindByIngredients(context.Background(), []string{" milk ", "", "eggs"}, domain.RecipeFilters{Cuisine: "italian"})
	require.NoError(t, err)
	require.Len(t, recipes, 2)

	assert.Equal(t, "Omelette", recipes[0].Title)
	minutes, ok := recipes[0].Minutes()
	assert.True(t, ok)
	assert.Equal(t, 10, minutes)
	assert.Equal(t, []string{"Whisk."}, recipes[0].Instructions())

	assert.Equal(t, "Custard", recipes[1].Title)
	_, ok = recipes[1].Minutes()
	assert.False(t, ok)
	assert.Equal(t, "https://spoonacular.com/recipes/Custard-2", recipes[1].Link())

	stored := state.Snapshot().Recipes
	require.Len(t, stored, 2)
	assert.Equal(t, int64(1), stored[0].ID)
}

func TestFindByIngredients_EmptyListMakesNoCall(t *testing.T) {
	p := newProvider()
	s, _ := newTestService(t, p, "secret")

	_, err := s.FindByIngredients(context.Background(), []string{" ", ""}, domain.RecipeFilters{})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, p.Calls())
}

func TestFindByIngredients_MissingKeyMakesNoCall(t *testing.T) {
	p := newProvider()
	s, _ := newTestService(t, p, "")

	_, err := s.FindByIngredients(context.Background(), []string{"milk"}, domain.RecipeFilters{})
	require.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Zero(t, p.Calls())
}

func TestFindByIngredients_MalformedBody(t *testing.T) {
	p := newProvider()
	p.mux.HandleFunc("/recipes/findByIngredients", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"oops":`)
	})
	s, _ := newTestService(t, p, "secret")

	_, err := s.FindByIngredients(context.Background(), []string{"milk"}, domain.RecipeFilters{})
	require.ErrorIs(t, err, domain.ErrProvider)
}

func TestNormalizeIngredients_TruncatesToLimit(t *testing.T) {
	raw := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		raw = append(raw, fmt.Sprintf("item%d", i))
	}

	got := NormalizeIngredients(raw)
	assert.Len(t, got, domain.MaxSearchIngredients)
	assert.Equal(t, "item19", got[len(got)-1])
}

func TestSearch_ProviderErrorFallsBackToDemo(t *testing.T) {
	p := newProvider()
	p.mux.HandleFunc("/recipes/findByIngredients", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	})
	s, state := newTestService(t, p, "secret")
	require.NoError(t, state.Update(context.Background(), func(snap *appstate.Snapshot) ([]string, error) {
		snap.Recipes = []entities.Recipe{{ID: 99, Title: "Kept"}}
		return []string{store.KeyRecipes}, nil
	}))

	res, err := s.Search(context.Background(), domain.RecipeSearchRequest{Ingredients: []string{"tomato"}})
	require.ErrorIs(t, err, domain.ErrProvider)
	assert.True(t, res.Demo)
	require.Len(t, res.Recipes, 3)
	assert.Equal(t, "Pasta with Tomato Sauce", res.Recipes[0].Title)
	assert.Equal(t, 25, *res.Recipes[0].ReadyInMinutes)

	stored := state.Snapshot().Recipes
	require.Len(t, stored, 1)
	assert.Equal(t, "Kept", stored[0].Title)
}

func TestSearch_ComplexModeFromInventory(t *testing.T) {
	p := newProvider()
	p.mux.HandleFunc("/recipes/complexSearch", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Milk,Eggs", q.Get("includeIngredients"))
		assert.Equal(t, "true", q.Get("addRecipeInformation"))
		assert.Equal(t, "30", q.Get("maxReadyTime"))
		writeJSON(w, `{"results":[{"id":7,"title":"Pancakes","servings":4}],"totalResults":1}`)
	})
	s, state := newTestService(t, p, "secret")
	require.NoError(t, state.Update(context.Background(), func(snap *appstate.Snapshot) ([]string, error) {
		snap.Items = []entities.Item{
			{ID: "a", Name: "Milk", ExpiryDate: entities.NewDate(testNow.Add(48 * time.Hour))},
			{ID: "b", Name: "Eggs", ExpiryDate: entities.NewDate(testNow.Add(72 * time.Hour))},
			{ID: "c", Name: "milk", ExpiryDate: entities.NewDate(testNow.Add(96 * time.Hour))},
			{ID: "d", Name: "Fish", ExpiryDate: entities.NewDate(testNow.Add(-time.Hour))},
		}
		return []string{store.KeyItems}, nil
	}))

	res, err := s.Search(context.Background(), domain.RecipeSearchRequest{
		FromInventory: true,
		Mode:          domain.SearchModeComplex,
		RecipeFilters: domain.RecipeFilters{MaxMinutes: 30},
	})
	require.NoError(t, err)
	assert.False(t, res.Demo)
	assert.Equal(t, []string{"Milk", "Eggs"}, res.Ingredients)
	require.Len(t, res.Recipes, 1)
	assert.Equal(t, "Pancakes", res.Recipes[0].Title)
	assert.Equal(t, 4, *res.Recipes[0].Servings)
	assert.Nil(t, res.Recipes[0].ReadyInMinutes)
}

func TestTestConnection_StoresKeyThatThenWins(t *testing.T) {
	var lastKey atomic.Value
	p := newProvider()
	p.mux.HandleFunc("/recipes/complexSearch", func(w http.ResponseWriter, r *http.Request) {
		lastKey.Store(r.URL.Query().Get("apiKey"))
		writeJSON(w, `{"results":[]}`)
	})
	p.mux.HandleFunc("/recipes/findByIngredients", func(w http.ResponseWriter, r *http.Request) {
		lastKey.Store(r.URL.Query().Get("apiKey"))
		writeJSON(w, `[]`)
	})
	s, state := newTestService(t, p, "from-config")
	ctx := context.Background()

	require.NoError(t, s.TestConnection(ctx, " stored-key "))
	assert.Equal(t, "stored-key", lastKey.Load())
	assert.Equal(t, "stored-key", state.Snapshot().RecipeAPIKey)

	_, err := s.FindByIngredients(ctx, []string{"rice"}, domain.RecipeFilters{})
	require.NoError(t, err)
	assert.Equal(t, "stored-key", lastKey.Load())
}

func TestTestConnection_RejectedKeyNotStored(t *testing.T) {
	p := newProvider()
	p.mux.HandleFunc("/recipes/complexSearch", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
	s, state := newTestService(t, p, "")

	err := s.TestConnection(context.Background(), "bad")
	require.ErrorIs(t, err, domain.ErrProvider)
	assert.Empty(t, state.Snapshot().RecipeAPIKey)

	require.ErrorIs(t, s.TestConnection(context.Background(), "  "), domain.ErrValidation)
}

func TestDecodeRecipes_Shapes(t *testing.T) {
	fromArray, err := decodeRecipes([]byte(` [{"id":1,"title":"A"}] `))
	require.NoError(t, err)
	require.Len(t, fromArray, 1)

	fromEnvelope, err := decodeRecipes([]byte(`{"results":[{"id":2,"title":"B","extra":{"kept":true}}]}`))
	require.NoError(t, err)
	require.Len(t, fromEnvelope, 1)
	assert.True(t, strings.Contains(string(fromEnvelope[0].Raw()), `"kept":true`))

	_, err = decodeRecipes([]byte(`{"status":"failure"}`))
	require.ErrorIs(t, err, domain.ErrProvider)
}

func TestGetStoredRecipes(t *testing.T) {
	p := newProvider()
	s, state := newTestService(t, p, "")
	require.NoError(t, state.Update(context.Background(), func(snap *appstate.Snapshot) ([]string, error) {
		snap.Recipes = DemoRecipes()[:1]
		return []string{store.KeyRecipes}, nil
	}))

	got, err := s.GetStoredRecipes(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://spoonacular.com/recipes/Pasta-with-Tomato-Sauce-1", got[0].Link)
	assert.Empty(t, got[0].Instructions)
}
