package utils

import (
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/yaml.v2"
)

const DefaultConfigPath = "config.yaml"

type Config struct {
	// Server configuration
	AppPort  string `yaml:"APP_PORT"`
	AppURL   string `yaml:"APP_URL"`
	Timezone string `yaml:"TIMEZONE"`
	LogFile  string `yaml:"LOG_FILE"`

	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBPath     string `yaml:"DB_PATH"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Recipe API configuration
	RecipeAPIKey         string `yaml:"RECIPE_API_KEY"`
	RecipeAPIURL         string `yaml:"RECIPE_API_URL"`
	RecipeSearchMode     string `yaml:"RECIPE_SEARCH_MODE"`
	RecipeTimeoutSeconds string `yaml:"RECIPE_TIMEOUT_SECONDS"`

	// Reminders
	ReminderTime string `yaml:"REMINDER_TIME"`
}

func defaultConfig() Config {
	return Config{
		AppPort:              "8080",
		Timezone:             "UTC",
		LogFile:              "./logs/app.log",
		DBDriver:             "sqlite",
		DBPath:               "wastenot.db",
		DBPort:               "5432",
		JWTSecret:            "wastenot-dev-secret",
		SMTPPort:             "587",
		RecipeAPIURL:         "https://api.spoonacular.com",
		RecipeSearchMode:     "ingredients",
		RecipeTimeoutSeconds: "30",
		ReminderTime:         "08:00",
	}
}

var config = defaultConfig()

// LoadConfig reads the YAML file at path over the defaults. A missing or
// unreadable file leaves the defaults in place.
func LoadConfig(path string) {
	if path == "" {
		path = DefaultConfigPath
	}
	next := defaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		log.Warnf("Error reading YAML file %s: %s, using defaults", path, err)
		config = next
		return
	}

	err = yaml.Unmarshal(file, &next)
	if err != nil {
		log.Errorf("Error parsing YAML file %s: %s, using defaults", path, err)
		config = defaultConfig()
		return
	}
	config = next
}

// GetConfig returns the value for key. A non-empty environment variable of the
// same name wins over the file.
func GetConfig(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "TIMEZONE":
		return config.Timezone
	case "LOG_FILE":
		return config.LogFile
	case "DB_DRIVER":
		return config.DBDriver
	case "DB_PATH":
		return config.DBPath
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "RECIPE_API_KEY":
		return config.RecipeAPIKey
	case "RECIPE_API_URL":
		return config.RecipeAPIURL
	case "RECIPE_SEARCH_MODE":
		return config.RecipeSearchMode
	case "RECIPE_TIMEOUT_SECONDS":
		return config.RecipeTimeoutSeconds
	case "REMINDER_TIME":
		return config.ReminderTime
	default:
		return ""
	}
}

func GetConfigInt(key string, fallback int) int {
	n, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return fallback
	}
	return n
}
