package utils

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything the server reads from the environment
type Config struct {
	Port string

	StorageDriver string
	StoragePath   string
	MongoURI      string
	MongoDatabase string

	CheckoutDelay time.Duration
	LoginDelay    time.Duration

	AdminJWTSecret string

	EmailProvider    string
	PostmarkAPIToken string
	SendGridAPIKey   string
	EmailSender      string

	LogLevel string

	// EnvFileLoaded is false when no .env file was found
	EnvFileLoaded bool
}

// LoadConfig loads .env when present and reads the environment, applying
// defaults for anything unset.
func LoadConfig() (Config, error) {
	// Load environment variables from .env file
	loaded := godotenv.Load() == nil

	cfg := Config{
		Port:             getEnv("PORT", "8000"),
		StorageDriver:    strings.ToLower(getEnv("STORAGE_DRIVER", "file")),
		StoragePath:      getEnv("STORAGE_PATH", "storefront-data.json"),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDatabase:    getEnv("MONGO_DATABASE", "storefront"),
		AdminJWTSecret:   os.Getenv("ADMIN_JWT_SECRET"),
		EmailProvider:    strings.ToLower(os.Getenv("EMAIL_PROVIDER")),
		PostmarkAPIToken: os.Getenv("POSTMARK_API_TOKEN"),
		SendGridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		EmailSender:      os.Getenv("EMAIL_SENDER"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		EnvFileLoaded:    loaded,
	}

	var err error
	if cfg.CheckoutDelay, err = getDuration("CHECKOUT_DELAY", 1500*time.Millisecond); err != nil {
		return Config{}, err
	}
	if cfg.LoginDelay, err = getDuration("LOGIN_DELAY", 800*time.Millisecond); err != nil {
		return Config{}, err
	}

	if cfg.StorageDriver == "mongo" && cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("MONGO_URI is required when STORAGE_DRIVER=mongo")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}
