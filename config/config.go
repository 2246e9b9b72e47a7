package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backend selectors for recipe images.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration; empty RedisAddr disables redis-backed features
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// CORS allowed origins; empty means allow all
	CORSOrigins []string

	// Image storage
	StorageBackend string
	MediaRoot      string
	S3Bucket       string
}

// Load creates a new Config instance from environment variables, with
// sensitive values optionally sourced from Docker secret files.
func Load() (*Config, error) {
	// .env is optional; deployments provide real env vars or secrets.
	_ = godotenv.Load()

	cfg := &Config{
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         firstOf(os.Getenv("DB_USER"), readSecret("db_user"), "postgres"),
		DBPassword:     firstOf(os.Getenv("DB_PASSWORD"), readSecret("db_password")),
		DBName:         getEnv("DB_NAME", "recipebox"),
		DBSSLMode:      getEnv("DB_SSL_MODE", "disable"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  firstOf(os.Getenv("REDIS_PASSWORD"), readSecret("redis_password")),
		RedisDB:        0,
		JWTSecret:      firstOf(os.Getenv("JWT_SECRET"), readSecret("jwt_secret")),
		StorageBackend: getEnv("STORAGE_BACKEND", StorageLocal),
		MediaRoot:      getEnv("MEDIA_ROOT", "media"),
		S3Bucket:       os.Getenv("S3_BUCKET_NAME"),
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTSecret == "" {
		if IsProduction() {
			return fmt.Errorf("jwt_secret is required in production")
		}
		cfg.JWTSecret = "insecure-dev-secret"
	}

	switch cfg.StorageBackend {
	case StorageLocal:
	case StorageS3:
		if cfg.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET_NAME is required when STORAGE_BACKEND=s3")
		}
	default:
		return fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
