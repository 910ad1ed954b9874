package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastenot/internal/api/presenters"
	"wastenot/pkg/store"
)

type envelope struct {
	presenters.Response
	Data json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T, provider http.Handler) *fiber.App {
	t.Helper()
	t.Setenv("LOG_FILE", filepath.Join(t.TempDir(), "logs", "app.log"))
	t.Setenv("AWS_S3_BUCKET", "")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("RECIPE_API_KEY", "secret")
	t.Setenv("JWT_SECRET", "test-secret")
	if provider != nil {
		srv := httptest.NewServer(provider)
		t.Cleanup(srv.Close)
		t.Setenv("RECIPE_API_URL", srv.URL)
	}

	services, err := NewServices(context.Background(), store.NewMemoryStore())
	require.NoError(t, err)
	app, err := NewApp(services)
	require.NoError(t, err)
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body any, headers ...string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func inDays(n int) string {
	return time.Now().UTC().AddDate(0, 0, n).Format("2006-01-02")
}

func TestApp_Ping(t *testing.T) {
	app := newTestApp(t, nil)

	status, env := do(t, app, http.MethodGet, "/api/ping", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "success", env.Status)
}

func TestApp_ItemLifecycle(t *testing.T) {
	app := newTestApp(t, nil)

	status, env := do(t, app, http.MethodPost, "/api/v1/items", map[string]any{
		"name": "Milk", "category": "dairy", "quantity": 1, "unit": "l", "expiry_date": inDays(2),
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.ID)

	status, _ = do(t, app, http.MethodPost, "/api/v1/items", map[string]any{
		"name": "Bread", "category": "bakery", "quantity": 1, "expiry_date": inDays(-1),
	})
	require.Equal(t, http.StatusCreated, status)

	status, env = do(t, app, http.MethodGet, "/api/v1/items/expiring", nil)
	require.Equal(t, http.StatusOK, status)
	var expiring []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &expiring))
	require.Len(t, expiring, 1)
	assert.Equal(t, "Milk", expiring[0].Name)

	status, env = do(t, app, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, status)
	var stats struct {
		TotalItems   int `json:"total_items"`
		ExpiringSoon int `json:"expiring_soon"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 2, stats.TotalItems)

	status, _ = do(t, app, http.MethodPut, "/api/v1/items/"+created.ID, map[string]any{"quantity": 3})
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, app, http.MethodDelete, "/api/v1/items/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = do(t, app, http.MethodGet, "/api/v1/items/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "error", env.Status)
}

func TestApp_AddItemValidation(t *testing.T) {
	app := newTestApp(t, nil)

	status, env := do(t, app, http.MethodPost, "/api/v1/items", map[string]any{"category": "dairy"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, env.Error)
}

func TestApp_AnalyticsRejectsBadWindow(t *testing.T) {
	app := newTestApp(t, nil)

	status, _ := do(t, app, http.MethodGet, "/api/v1/analytics?days=400", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodGet, "/api/v1/analytics?days=30", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestApp_LoginAndMe(t *testing.T) {
	app := newTestApp(t, nil)

	status, _ := do(t, app, http.MethodGet, "/api/v1/users/me", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := do(t, app, http.MethodPost, "/api/v1/users/login", map[string]any{})
	require.Equal(t, http.StatusOK, status, env.Error)
	var login struct {
		Token string `json:"token"`
		User  struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)
	assert.Equal(t, "Demo User", login.User.Name)

	status, env = do(t, app, http.MethodGet, "/api/v1/users/me", nil, "Authorization", "Bearer "+login.Token)
	assert.Equal(t, http.StatusOK, status, env.Error)
}

func TestApp_RecipeSearch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/recipes/findByIngredients", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"id":7,"title":"Omelette"}]`)
	})
	mux.HandleFunc("/recipes/7/information", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":7,"title":"Omelette","readyInMinutes":10}`)
	})
	app := newTestApp(t, mux)

	status, env := do(t, app, http.MethodPost, "/api/v1/recipes/search", map[string]any{
		"ingredients": []string{"eggs"},
	})
	require.Equal(t, http.StatusOK, status, env.Error)
	var res struct {
		Recipes []struct {
			Title string `json:"title"`
		} `json:"recipes"`
		Demo bool `json:"demo"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.Len(t, res.Recipes, 1)
	assert.Equal(t, "Omelette", res.Recipes[0].Title)
	assert.False(t, res.Demo)

	status, env = do(t, app, http.MethodGet, "/api/v1/recipes", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), "Omelette")
}

func TestApp_RecipeSearchFallsBackToDemo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/recipes/findByIngredients", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusPaymentRequired)
	})
	app := newTestApp(t, mux)

	status, env := do(t, app, http.MethodPost, "/api/v1/recipes/search", map[string]any{
		"ingredients": []string{"eggs"},
	})
	assert.Equal(t, http.StatusBadGateway, status)
	var res struct {
		Recipes []json.RawMessage `json:"recipes"`
		Demo    bool              `json:"demo"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.True(t, res.Demo)
	assert.Len(t, res.Recipes, 3)
}

func TestApp_PreferencesAndClear(t *testing.T) {
	app := newTestApp(t, nil)

	status, env := do(t, app, http.MethodPut, "/api/v1/profile/preferences", map[string]any{"currency": "EUR"})
	require.Equal(t, http.StatusOK, status, env.Error)

	status, _ = do(t, app, http.MethodPut, "/api/v1/profile/preferences", map[string]any{"theme": map[string]any{"dark": true}})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = do(t, app, http.MethodGet, "/api/v1/profile/preferences", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), "EUR")

	status, _ = do(t, app, http.MethodDelete, "/api/v1/profile/data", nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = do(t, app, http.MethodGet, "/api/v1/profile/preferences", nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, string(env.Data), "EUR")
}

func TestApp_ImportThenExport(t *testing.T) {
	app := newTestApp(t, nil)

	status, env := do(t, app, http.MethodPost, "/api/v1/profile/import", map[string]any{
		"items": []map[string]any{
			{"id": "item_1", "name": "Rice", "category": "pantry", "quantity": 2, "unit": "kg", "expiryDate": inDays(30), "addedDate": inDays(-1)},
		},
	})
	require.Equal(t, http.StatusOK, status, env.Error)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile/export?format=csv", nil)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "wastenot_user_data")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Rice,pantry,2,kg")
}

func TestApp_BackupNeedsBucket(t *testing.T) {
	app := newTestApp(t, nil)

	status, env := do(t, app, http.MethodPost, "/api/v1/profile/backup", nil)
	assert.Equal(t, http.StatusPreconditionFailed, status)
	assert.Equal(t, "error", env.Status)
}

func TestLocation(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")
	assert.Equal(t, time.UTC, Location())

	t.Setenv("TIMEZONE", "Nowhere/Unknown")
	assert.Equal(t, time.UTC, Location())
}
