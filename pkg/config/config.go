package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort         string
	FirebaseProject    string
	FirebaseApiKey     string
	StorageBucket      string
	ServiceAccountJSON string
	ServiceAccountPath string
	Environment        string
	LogFile            string

	// FallbackAdminUID bootstraps the first admin while config/admins is absent.
	FallbackAdminUID   string
	SupportCounterpart string
	AdminCacheTTL      time.Duration
	MaxUploadBytes     int64
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		FirebaseProject:    getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:     getEnv("FIREBASE_API_KEY", ""),
		StorageBucket:      getEnv("FIREBASE_STORAGE_BUCKET", ""),
		ServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		ServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		Environment:        getEnv("ENVIRONMENT", "development"),
		LogFile:            getEnv("LOG_FILE", ""),
		FallbackAdminUID:   getEnv("FALLBACK_ADMIN_UID", ""),
		SupportCounterpart: getEnv("SUPPORT_COUNTERPART_ID", "support-admin"),
		AdminCacheTTL:      time.Duration(getEnvAsInt64("ADMIN_CACHE_TTL_SECONDS", 60)) * time.Second,
		MaxUploadBytes:     getEnvAsInt64("MAX_UPLOAD_BYTES", 10*1024*1024),
	}

	if config.StorageBucket == "" && config.FirebaseProject != "" {
		config.StorageBucket = config.FirebaseProject + ".appspot.com"
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
