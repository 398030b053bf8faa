package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Product sources and count cache backends.
const (
	SourcePostgres = "postgres"
	SourceMemory   = "memory"

	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// AppConfig is everything the server reads from the environment.
type AppConfig struct {
	Port           string
	AppEnv         string
	DatabaseURL    string
	RedisURL       string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string

	ProductSource     string
	CountCacheBackend string
	MetadataTTL       time.Duration
	SessionIdleTTL    time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// IsProduction reports whether APP_ENV is production.
func (c AppConfig) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsesRedis reports whether any component needs a Redis connection.
func (c AppConfig) UsesRedis() bool {
	return c.CountCacheBackend == CacheRedis || c.RateLimitRequests > 0
}

// Load reads the environment. Call godotenv.Load first to pick up .env.
func Load() AppConfig {
	return AppConfig{
		Port:           getEnv("PORT", "8081"),
		AppEnv:         getEnv("APP_ENV", "development"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       getDurationEnv("TOKEN_TTL", 24*time.Hour),
		AllowedOrigins: getListEnv("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:3001"}),

		ProductSource:     strings.ToLower(getEnv("PRODUCT_SOURCE", SourceMemory)),
		CountCacheBackend: strings.ToLower(getEnv("COUNT_CACHE", CacheMemory)),
		MetadataTTL:       getDurationEnv("METADATA_TTL", 5*time.Minute),
		SessionIdleTTL:    getDurationEnv("SESSION_IDLE_TTL", 2*time.Hour),

		RateLimitRequests: getIntEnv("RATE_LIMIT_REQUESTS", 0),
		RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return n
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func getListEnv(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
