package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Environment             string
	Port                    string
	SentimentAPIURL         string
	SentimentAPIKey         string
	SentimentTimeout        time.Duration
	BreakerFailureThreshold int
	BreakerOpenTimeout      time.Duration
	RateLimitRPS            int
	AllowedOrigins          []string
	ShutdownTimeout         time.Duration
}

func Load() *Config {
	return &Config{
		Environment:             getEnv("ENVIRONMENT", "development"),
		Port:                    getEnv("PORT", "8080"),
		SentimentAPIURL:         strings.TrimRight(getEnv("SENTIMENT_API_URL", "http://localhost:5000"), "/"),
		SentimentAPIKey:         getEnv("SENTIMENT_API_KEY", ""),
		SentimentTimeout:        getDuration("SENTIMENT_TIMEOUT", 10*time.Second),
		BreakerFailureThreshold: getPositiveInt("BREAKER_FAILURE_THRESHOLD", 5),
		BreakerOpenTimeout:      getDuration("BREAKER_OPEN_TIMEOUT", 30*time.Second),
		RateLimitRPS:            getPositiveInt("RATE_LIMIT_RPS", 100),
		AllowedOrigins:          splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ShutdownTimeout:         getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getPositiveInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration accepts Go duration strings ("15s") or a bare number of seconds.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
