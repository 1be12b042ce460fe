package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabasePath    string
	DatabaseURL     string
	MigrationsPath  string
	SessionDuration time.Duration

	// Kid session tokens
	KidSessionSecret   string
	KidSessionDuration time.Duration

	// Google sign-in for parents
	GoogleClientID       string
	GoogleClientSecret   string
	OAuthRedirectBaseURL string

	// Weekly summary email (Amazon SES)
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string

	// Vocabulary word sources
	DatamuseBaseURL   string
	DictionaryBaseURL string
}

// Load reads configuration from environment variables with sensible
// defaults. A local .env file is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./learnloop.db"),
		DatabaseURL:     getEnv("DB_URL", ""),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		SessionDuration: 24 * time.Hour,

		KidSessionSecret:   getEnv("KID_SESSION_SECRET", "dev-only-kid-session-secret"),
		KidSessionDuration: 12 * time.Hour,

		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectBaseURL: getEnv("OAUTH_REDIRECT_BASE_URL", "http://localhost:8080"),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "LearnLoop"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),

		DatamuseBaseURL:   getEnv("DATAMUSE_BASE_URL", "https://api.datamuse.com"),
		DictionaryBaseURL: getEnv("DICTIONARY_BASE_URL", "https://api.dictionaryapi.dev"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
