package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// MongoDB
	MongoURI      string
	MongoDatabase string

	// Firebase (identity provider)
	FirebaseCredentialsFile string

	// Gemini (text generation)
	GeminiAPIKey string
	GeminiModel  string

	// Redis (optional response cache; empty disables caching)
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	// CORS
	AllowedOrigins []string

	// Insights
	InsightFetchLimit int
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "5000"),

		MongoURI:      getEnv("MONGODB_URI", ""),
		MongoDatabase: getEnv("MONGODB_DATABASE", "expense_tracker"),

		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      getEnvDuration("CACHE_TTL", time.Minute),

		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		InsightFetchLimit: getEnvInt("INSIGHT_FETCH_LIMIT", 100),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid.
// A missing Gemini key is deliberately not a startup error: the insights
// endpoint reports it per request instead.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.MongoURI == "" {
		errors = append(errors, "MONGODB_URI is required")
	} else if parsed, err := url.Parse(c.MongoURI); err != nil {
		errors = append(errors, fmt.Sprintf("invalid MongoDB URI '%s': %v", c.MongoURI, err))
	} else if parsed.Scheme != "mongodb" && parsed.Scheme != "mongodb+srv" {
		errors = append(errors, fmt.Sprintf("invalid MongoDB URI scheme '%s': must be 'mongodb' or 'mongodb+srv'", parsed.Scheme))
	}

	if c.MongoDatabase == "" {
		errors = append(errors, "MongoDB database name cannot be empty")
	}

	if c.FirebaseCredentialsFile == "" {
		errors = append(errors, "FIREBASE_CREDENTIALS_FILE is required")
	} else if _, err := os.Stat(c.FirebaseCredentialsFile); os.IsNotExist(err) {
		errors = append(errors, fmt.Sprintf("Firebase credentials file does not exist: %s", c.FirebaseCredentialsFile))
	}

	if c.GeminiModel == "" {
		errors = append(errors, "Gemini model name cannot be empty")
	}

	if c.InsightFetchLimit < 5 {
		errors = append(errors, fmt.Sprintf("invalid insight fetch limit %d: must be at least 5", c.InsightFetchLimit))
	} else if c.InsightFetchLimit > 1000 {
		errors = append(errors, fmt.Sprintf("invalid insight fetch limit %d: must be at most 1000", c.InsightFetchLimit))
	}

	if c.CacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at least 1 second", c.CacheTTL))
	}

	if len(c.AllowedOrigins) == 0 {
		errors = append(errors, "CORS allowed origins cannot be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
