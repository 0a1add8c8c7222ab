package config

import (
	"context"
	"os"
	"strconv"
	"time"
)

// Compiled-in fallback so a bare checkout still boots. Anything beyond
// local development must set JWT_SECRET.
const insecureDefaultSecret = "your_jwt_secret_key"

type Config struct {
	Env  string
	Port int

	DBURL        string
	StoreBackend string // "postgres" or "memory"

	JWTSecret         string
	JWTSecretInsecure bool
	JWTAccessTTLHours int

	FrontendURL  string
	OTLPEndpoint string

	AdminEmail    string
	AdminPassword string
	AdminName     string
}

func Load() Config {
	secret := os.Getenv("JWT_SECRET")
	insecure := secret == ""

	if insecure {
		secret = insecureDefaultSecret
	}

	return Config{
		Env:  getEnv("APP_ENV", "dev"),
		Port: getEnvInt("PORT", 8080),

		DBURL:        buildDBURL(),
		StoreBackend: getEnv("STORE_BACKEND", "postgres"),

		JWTSecret:         secret,
		JWTSecretInsecure: insecure,
		JWTAccessTTLHours: getEnvInt("JWT_ACCESS_TTL_HOURS", 24),

		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:5000"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminName:     getEnv("ADMIN_NAME", "Platform Admin"),
	}
}

func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.JWTAccessTTLHours) * time.Hour
}

// DATABASE_URL wins; otherwise assemble from the individual DB_* pieces.
func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "learnhub")
	pass := getEnv("DB_PASSWORD", "learnhub")
	name := getEnv("DB_NAME", "learnhub")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			return fallback
		}

		return num
	}
	return fallback
}
