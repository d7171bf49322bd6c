package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Supported values for DB_DRIVER and STORAGE_BACKEND.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"

	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"5000"`
	DBDriver   string `env:"DB_DRIVER" envDefault:"mysql"`
	DSN        string `env:"DATABASE_DSN" envDefault:"user:password@tcp(localhost:3306)/taskboard?charset=utf8mb4&parseTime=True&loc=Local"`
	ResetDB    bool   `env:"RESET_DB" envDefault:"false"`

	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	RedisAddr string        `env:"REDIS_ADDR"`
	RedisPass string        `env:"REDIS_PASSWORD"`
	RedisDB   int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	Storage         StorageConfig
	DefaultPhotoURL string `env:"DEFAULT_PHOTO_URL" envDefault:"https://images.unsplash.com/photo-1500648767791-00dcc994a43e"`

	BodyLimit   string   `env:"BODY_LIMIT" envDefault:"10M"`
	CORSOrigins []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`
	SwaggerHost string   `env:"SWAGGER_HOST"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// StorageConfig selects and configures the photo blob store.
type StorageConfig struct {
	Backend   string `env:"STORAGE_BACKEND" envDefault:"local"`
	UploadDir string `env:"UPLOAD_DIR" envDefault:"uploads"`

	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`
	S3Prefix    string `env:"S3_PREFIX" envDefault:"photos/"`
}

// Load builds Config from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.Storage.Backend {
	case StorageLocal:
		if c.Storage.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR must not be empty")
		}
	case StorageS3:
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when STORAGE_BACKEND=s3")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.Storage.Backend)
	}
	return nil
}
