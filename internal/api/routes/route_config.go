package routes

import (
	"github.com/gofiber/fiber/v2"

	"wastenot/domain"
	"wastenot/internal/api/handlers"
	"wastenot/internal/api/presenters"
	"wastenot/internal/middleware"
	"wastenot/pkg/jwt"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	ItemHandler      handlers.ItemHandler
	AnalyticsHandler handlers.AnalyticsHandler
	RecipeHandler    handlers.RecipeHandler
	ProfileHandler   handlers.ProfileHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.User()
	c.Items()
	c.Analytics()
	c.Recipes()
	c.Profile()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessPing)
	})
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/login", c.UserHandler.Login)
		user.Post("/logout", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Logout)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Items() {
	items := c.App.Group("/api/v1/items")

	// fixed paths first so they are not taken as :id
	items.Get("/recent", c.ItemHandler.GetRecentItems)
	items.Get("/expiring", c.ItemHandler.GetExpiringItems)
	items.Post("/bulk-delete", c.ItemHandler.BulkDelete)

	items.Post("", c.ItemHandler.AddItem)
	items.Get("", c.ItemHandler.GetItems)
	items.Get("/:id", c.ItemHandler.GetItemDetails)
	items.Put("/:id", c.ItemHandler.UpdateItem)
	items.Delete("/:id", c.ItemHandler.DeleteItem)
}

func (c *Config) Analytics() {
	c.App.Get("/api/v1/dashboard", c.AnalyticsHandler.GetDashboardStats)

	analytics := c.App.Group("/api/v1/analytics")
	analytics.Get("", c.AnalyticsHandler.GetAnalytics)
	analytics.Get("/export", c.AnalyticsHandler.Export)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")
	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Post("/search", c.RecipeHandler.SearchRecipes)
	recipes.Post("/test-connection", c.RecipeHandler.TestConnection)
}

func (c *Config) Profile() {
	profile := c.App.Group("/api/v1/profile")
	profile.Get("/preferences", c.ProfileHandler.GetPreferences)
	profile.Put("/preferences", c.ProfileHandler.UpdatePreferences)
	profile.Get("/stats", c.ProfileHandler.GetStats)
	profile.Get("/export", c.ProfileHandler.Export)
	profile.Post("/import", c.ProfileHandler.Import)
	profile.Post("/backup", c.ProfileHandler.Backup)
	profile.Delete("/data", c.ProfileHandler.ClearData)
	profile.Get("/reminders", c.ProfileHandler.GetReminder)
	profile.Post("/reminders/send", c.ProfileHandler.SendReminder)
}
