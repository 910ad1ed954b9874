package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"wastenot/internal/api/handlers"
	"wastenot/internal/api/routes"
	"wastenot/internal/middleware"
	"wastenot/internal/utils"
	"wastenot/internal/utils/mailing"
	"wastenot/internal/utils/storage"
	"wastenot/pkg/analytics"
	"wastenot/pkg/appstate"
	"wastenot/pkg/item"
	"wastenot/pkg/jwt"
	"wastenot/pkg/recipe"
	"wastenot/pkg/reminder"
	"wastenot/pkg/store"
	"wastenot/pkg/transfer"
	"wastenot/pkg/user"
)

// Services holds everything built on top of one store.
type Services struct {
	State     *appstate.State
	JWT       jwt.JWTService
	Item      item.ItemService
	Analytics analytics.AnalyticsService
	Recipe    recipe.RecipeService
	Transfer  transfer.TransferService
	User      user.UserService
	Reminder  reminder.ReminderService
	S3        storage.AwsS3
}

// Location returns the configured TIMEZONE, falling back to UTC.
func Location() *time.Location {
	loc, err := time.LoadLocation(utils.GetConfig("TIMEZONE"))
	if err != nil {
		log.Warnf("unknown TIMEZONE %q, using UTC", utils.GetConfig("TIMEZONE"))
		return time.UTC
	}
	return loc
}

func NewServices(ctx context.Context, repo store.StoreRepository) (*Services, error) {
	loc := Location()
	state := appstate.New(repo)
	if err := state.Reload(ctx); err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	state.Subscribe(func(ctx context.Context, change appstate.Change) {
		log.Debugf("state updated: %v", change.Keys)
	})

	// utils
	s3, err := storage.NewAwsS3(ctx)
	if err != nil {
		return nil, err
	}
	var mailer mailing.Mailer
	if mailConfig := mailing.LoadMailConfig(); mailConfig.Enabled() {
		mailer = mailing.NewMailer(mailConfig)
	}

	// Repository
	itemRepository := item.NewItemRepository(state)
	recipeRepository := recipe.NewRecipeRepository(state)
	userRepository := user.NewUserRepository(state)

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"), jwt.DefaultTTL)
	recipeClient := recipe.NewRecipeClient(
		utils.GetConfig("RECIPE_API_URL"),
		time.Duration(utils.GetConfigInt("RECIPE_TIMEOUT_SECONDS", 30))*time.Second,
	)

	return &Services{
		State:     state,
		JWT:       jwtService,
		Item:      item.NewItemService(state, itemRepository),
		Analytics: analytics.NewAnalyticsService(state, loc),
		Recipe: recipe.NewRecipeService(state, recipeRepository, recipeClient, recipe.Config{
			APIKey:     utils.GetConfig("RECIPE_API_KEY"),
			SearchMode: utils.GetConfig("RECIPE_SEARCH_MODE"),
		}),
		Transfer: transfer.NewTransferService(state, loc),
		User:     user.NewUserService(state, userRepository, jwtService),
		Reminder: reminder.NewReminderService(state, mailer),
		S3:       s3,
	}, nil
}

func openLogFile() (io.Writer, error) {
	path := utils.GetConfig("LOG_FILE")
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	return file, nil
}

func NewApp(services *Services) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName: "WasteNot",
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	file, err := openLogFile()
	if err != nil {
		return nil, err
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   Location().String(),
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        30,
		Expiration: 1 * time.Second,
	}))

	// Handler
	userHandler := handlers.NewUserHandler(services.User, validator)
	itemHandler := handlers.NewItemHandler(services.Item, validator)
	analyticsHandler := handlers.NewAnalyticsHandler(services.Analytics, services.Transfer)
	recipeHandler := handlers.NewRecipeHandler(services.Recipe, validator)
	profileHandler := handlers.NewProfileHandler(
		services.User,
		services.Analytics,
		services.Transfer,
		services.Reminder,
		services.S3,
	)

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		ItemHandler:      itemHandler,
		AnalyticsHandler: analyticsHandler,
		RecipeHandler:    recipeHandler,
		ProfileHandler:   profileHandler,
		Middleware:       middlewares,
		JWTService:       services.JWT,
	}
	routesConfig.Setup()
	return app, nil
}

// StartReminders schedules the daily expiry reminder at REMINDER_TIME. The
// caller stops the returned scheduler.
func StartReminders(services *Services) (*reminder.Scheduler, error) {
	scheduler := reminder.NewScheduler(services.Reminder, Location())
	if err := scheduler.Schedule(utils.GetConfig("REMINDER_TIME")); err != nil {
		return nil, err
	}
	scheduler.Start()
	log.Infof("Next expiry reminder at %s", scheduler.Next().Format(time.RFC3339))
	return scheduler, nil
}
