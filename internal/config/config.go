package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
}

type Log struct {
	Level  string
	Format string
}

// Config is built once at startup and shared by pointer. Nothing mutates it afterwards.
type Config struct {
	ServerPort      int
	DatabaseURL     string
	SaltRounds      int
	JWTSecretKey    string
	JWTExpiry       time.Duration
	MaxUploadSize   int64
	ShutdownTimeout time.Duration
	MinIO           MinIO
	Log             Log
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// ParseDuration accepts everything time.ParseDuration does plus a whole-day
// suffix such as "7d".
func ParseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(value)
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "images"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
	}
}

func LoadLog() Log {
	return Log{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "text"),
	}
}

// LoadConfig reads .env (if any) and the process environment. All missing or
// malformed required keys are reported together.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{
		ServerPort:    getEnvAsInt("SERVER_PORT", 8080),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecretKey:  os.Getenv("JWT_SECRET"),
		MaxUploadSize: parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
		MinIO:         LoadMinIO(),
		Log:           LoadLog(),
	}

	var errs []error

	if cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if cfg.JWTSecretKey == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}

	rounds := os.Getenv("SALT_ROUNDS")
	switch n, err := strconv.Atoi(rounds); {
	case rounds == "":
		errs = append(errs, errors.New("SALT_ROUNDS is required"))
	case err != nil || n < bcrypt.MinCost || n > bcrypt.MaxCost:
		errs = append(errs, fmt.Errorf("SALT_ROUNDS must be an integer in [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost))
	default:
		cfg.SaltRounds = n
	}

	expiry := os.Getenv("JWT_EXPIRY")
	switch d, err := ParseDuration(expiry); {
	case expiry == "":
		errs = append(errs, errors.New("JWT_EXPIRY is required"))
	case err != nil || d <= 0:
		errs = append(errs, fmt.Errorf("JWT_EXPIRY must be a positive duration, got %q", expiry))
	default:
		cfg.JWTExpiry = d
	}

	shutdown, err := ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil || shutdown <= 0 {
		shutdown = 10 * time.Second
	}
	cfg.ShutdownTimeout = shutdown

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}

	return cfg, nil
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 10 * 1024 * 1024
	}
	return size
}
