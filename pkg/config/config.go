package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	Env                 string
	JWTSecret           string
	TokenTTL            time.Duration
	FeedCacheTTLSeconds int
	PostgresConnStr     string
	MongoURI            string
	MongoDatabase       string
	RedisAddr           string
	RedisPassword       string
}

// Load reads configuration from the environment, consulting a .env file
// first when one is present.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		Port:                getEnv("PORT", "8080"),
		Env:                 getEnv("ENV", "development"),
		JWTSecret:           getEnv("JWT_SECRET", "supersecretjwtkey"),
		TokenTTL:            time.Duration(getEnvInt("TOKEN_TTL_HOURS", 72)) * time.Hour,
		FeedCacheTTLSeconds: getEnvInt("FEED_CACHE_TTL_SECONDS", 60),
		PostgresConnStr:     getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:            getEnv("MONGO_URI", ""),
		MongoDatabase:       getEnv("MONGO_DATABASE", "fotogram"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}
