package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI       string
	MongoDatabase  string
	NATSURL        string
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
	HTTPPort       string
	RedisAddress   string
	JWTSecret      string
	AdminUID       string // the single identity allowed to use the panel
	AdminEmail     string // recipient of "listing created" notifications
}

func Load() (*Config, error) {
	// .env is optional; environment variables are the primary source.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env, relying on environment variables")
	}

	minioUseSSLStr := getEnv("MINIO_USE_SSL", "false")
	minioUseSSL, err := strconv.ParseBool(minioUseSSLStr)
	if err != nil {
		log.Printf("Warning: Invalid MINIO_USE_SSL value '%s', defaulting to false. Error: %v", minioUseSSLStr, err)
		minioUseSSL = false
	}

	cfg := &Config{
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "estate_admin"),
		NATSURL:        getEnv("NATS_URL", "nats://localhost:4222"),
		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "estate-images"),
		MinIOUseSSL:    minioUseSSL,
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		RedisAddress:   getEnv("REDIS_ADDRESS", "localhost:6379"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		AdminUID:       getEnv("ADMIN_UID", ""),
		AdminEmail:     getEnv("ADMIN_EMAIL", ""),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("FATAL: JWT_SECRET is not set. This is required for security.")
	}
	if cfg.AdminUID == "" {
		log.Fatal("FATAL: ADMIN_UID is not set. Exactly one identity must be authorized.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using fallback: %s", key, fallback)
	return fallback
}
