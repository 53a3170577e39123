package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/xxxsen/common/logger"
)

type Config struct {
	Database    DatabaseConfig    `json:"database"`
	Port        int               `json:"port" env:"TASKPAD_PORT"`
	BasePath    string            `json:"base_path" env:"TASKPAD_BASE_PATH"`
	JWTSecret   string            `json:"jwt_secret" env:"TASKPAD_JWT_SECRET"`
	JWTTTLHours int               `json:"jwt_ttl_hours" env:"TASKPAD_JWT_TTL_HOURS"`
	CORSOrigin  string            `json:"cors_origin" env:"TASKPAD_CORS_ORIGIN"`
	AvatarStore AvatarStoreConfig `json:"avatar_store"`
	Cache       CacheConfig       `json:"cache"`
	CleanupCron string            `json:"cleanup_cron" env:"TASKPAD_CLEANUP_CRON"`
	LogConfig   logger.LogConfig  `json:"log_config"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn" env:"TASKPAD_DB_DSN"`
	Host     string `json:"host" env:"TASKPAD_DB_HOST"`
	Port     int    `json:"port" env:"TASKPAD_DB_PORT"`
	User     string `json:"user" env:"TASKPAD_DB_USER"`
	Password string `json:"password" env:"TASKPAD_DB_PASSWORD"`
	DBName   string `json:"db_name" env:"TASKPAD_DB_NAME"`
	SSLMode  string `json:"ssl_mode" env:"TASKPAD_DB_SSLMODE"`
}

type AvatarStoreConfig struct {
	Type string   `json:"type" env:"TASKPAD_AVATAR_STORE"`
	Dir  string   `json:"dir" env:"TASKPAD_AVATAR_DIR"`
	S3   S3Config `json:"s3"`
}

type S3Config struct {
	Endpoint  string `json:"endpoint"`
	SecretID  string `json:"secret_id"`
	SecretKey string `json:"secret_key"`
	Bucket    string `json:"bucket"`
	Region    string `json:"region"`
	Prefix    string `json:"prefix"`
	UseSSL    bool   `json:"use_ssl"`
}

type CacheConfig struct {
	IdentitySize       int `json:"identity_size"`
	IdentityTTLSeconds int `json:"identity_ttl_seconds"`
}

// Load reads the JSON config file, then lets environment variables
// override it so deployments can configure the service without a file
// rewrite.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()
		if err := json.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return applyDefaults(&cfg)
}

func applyDefaults(cfg *Config) (*Config, error) {
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database dsn or host is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 5000
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.AvatarStore.Type == "" {
		cfg.AvatarStore.Type = "db"
	}
	switch cfg.AvatarStore.Type {
	case "db":
	case "local":
		if cfg.AvatarStore.Dir == "" {
			return nil, fmt.Errorf("avatar_store.dir is required for local store")
		}
	case "s3":
		s3 := cfg.AvatarStore.S3
		if s3.Endpoint == "" || s3.Bucket == "" || s3.SecretID == "" || s3.SecretKey == "" {
			return nil, fmt.Errorf("avatar_store.s3 endpoint/bucket/secret_id/secret_key are required for s3 store")
		}
		if cfg.AvatarStore.S3.Region == "" {
			cfg.AvatarStore.S3.Region = "cn"
		}
	default:
		return nil, fmt.Errorf("avatar_store.type must be db, local or s3")
	}
	if cfg.Cache.IdentitySize == 0 {
		cfg.Cache.IdentitySize = 1024
	}
	if cfg.Cache.IdentityTTLSeconds == 0 {
		cfg.Cache.IdentityTTLSeconds = 60
	}
	if cfg.CleanupCron == "" {
		cfg.CleanupCron = "17 3 * * *"
	}
	return cfg, nil
}
