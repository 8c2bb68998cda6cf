package config

import (
	"os"
	"path/filepath"
)

type Config struct {
	Port        string
	Environment string
	DataDir     string // root of the persisted state
	JWKSURL     string // identity provider's JWKS endpoint; empty = dev stub
	CORSOrigins string
	LogDir      string // empty = stdout only
	Debug       bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		DataDir:     getEnv("DATA_DIR", "data"),
		JWKSURL:     getEnv("JWKS_URL", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		LogDir:      getEnv("LOG_DIR", ""),
		Debug:       getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// DocumentPath is the location of the folders document.
func (c *Config) DocumentPath() string {
	return filepath.Join(c.DataDir, "folders.json")
}

// UploadDir is the flat blob storage area for uploaded files.
func (c *Config) UploadDir() string {
	return filepath.Join(c.DataDir, "uploads")
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
