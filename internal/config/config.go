package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

const EnvProduction = "production"

type Config struct {
	DatabaseURL        string
	SopTable           string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	S3Bucket           string
	Port               string
	Environment        string
	AllowedOrigins     []string
}

// Load reads configuration from the environment (plus an optional .env
// file) and validates it. All missing required keys are reported in a
// single error so the operator fixes them in one pass.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		SopTable:           os.Getenv("SOP_TABLE"),
		AWSRegion:          os.Getenv("AWS_REGION"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		S3Bucket:           os.Getenv("S3_BUCKET"),
		Port:               os.Getenv("PORT"),
		Environment:        os.Getenv("APP_ENV"),
		AllowedOrigins:     splitOrigins(os.Getenv("ALLOWED_ORIGINS")),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	var missing []string
	for key, val := range map[string]string{
		"DATABASE_URL":          cfg.DatabaseURL,
		"SOP_TABLE":             cfg.SopTable,
		"AWS_REGION":            cfg.AWSRegion,
		"AWS_ACCESS_KEY_ID":     cfg.AWSAccessKeyID,
		"AWS_SECRET_ACCESS_KEY": cfg.AWSSecretAccessKey,
		"S3_BUCKET":             cfg.S3Bucket,
	} {
		if val == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// PresenceFlags reports which keys are set without exposing any value.
func (c *Config) PresenceFlags() map[string]bool {
	return map[string]bool{
		"DATABASE_URL":          c.DatabaseURL != "",
		"SOP_TABLE":             c.SopTable != "",
		"AWS_REGION":            c.AWSRegion != "",
		"AWS_ACCESS_KEY_ID":     c.AWSAccessKeyID != "",
		"AWS_SECRET_ACCESS_KEY": c.AWSSecretAccessKey != "",
		"S3_BUCKET":             c.S3Bucket != "",
		"ALLOWED_ORIGINS":       len(c.AllowedOrigins) > 0,
	}
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
