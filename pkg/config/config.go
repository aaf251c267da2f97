package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	MongoURI          string
	MongoDatabase     string
	MongoTransactions bool

	JWTSecret      string
	RequestTimeout time.Duration
	CORSOrigins    []string

	// AssetBackend selects where uploaded media lives: "cloudinary" or "s3".
	AssetBackend  string
	CloudinaryURL string
	S3Region      string
	S3Bucket      string
	S3AccessKey   string
	S3SecretKey   string
	S3Endpoint    string // Optional: MinIO, R2, DO Spaces

	SentryDSN string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	return &Config{
		Port:              getEnv("PORT", "8001"),
		Env:               getEnv("ENV", "development"),
		MongoURI:          getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase:     getEnv("MONGODB_DATABASE", "college_updates"),
		MongoTransactions: getEnvBool("MONGO_TRANSACTIONS", false),
		JWTSecret:         getEnv("JWT_SECRET", "supersecretjwtkey"),
		RequestTimeout:    getEnvDuration("REQUEST_TIMEOUT", time.Minute),
		CORSOrigins:       splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		AssetBackend:      strings.ToLower(getEnv("ASSET_BACKEND", "cloudinary")),
		CloudinaryURL:     getEnv("CLOUDINARY_URL", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Bucket:          getEnv("S3_BUCKET", "college-updates"),
		S3AccessKey:       getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:       getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
	}
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
