package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	AppEnv      string `envconfig:"APP_ENV" default:"dev"`
	ProdOrigins string `envconfig:"PROD_ORIGINS"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DBDSN         string `envconfig:"DB_DSN" required:"true"`
	DBAutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`

	JWTSecret         string        `envconfig:"JWT_SECRET" required:"true"`
	JWTAccessTokenTTL time.Duration `envconfig:"JWT_ACCESS_TOKEN_TTL" default:"2h"`

	// Exactly one of these is needed. A plaintext password is hashed at startup.
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`
	AdminPassword     string `envconfig:"ADMIN_PASSWORD"`
	BcryptCost        int    `envconfig:"BCRYPT_COST" default:"12"`

	// Optional; token revocation falls back to process memory when empty.
	RedisURL string `envconfig:"REDIS_URL"`

	StorageDriver     string `envconfig:"STORAGE_DRIVER" default:"local"`
	StorageLocalPath  string `envconfig:"STORAGE_LOCAL_PATH" default:"./data"`
	PublicFileBaseURL string `envconfig:"PUBLIC_FILE_BASE_URL" default:"/files"`
	MaxUploadBytes    int64  `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`

	S3Bucket          string `envconfig:"S3_BUCKET"`
	S3Region          string `envconfig:"S3_REGION" default:"eu-central-1"`
	S3Endpoint        string `envconfig:"S3_ENDPOINT"`
	S3AccessKeyID     string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle    bool   `envconfig:"S3_USE_PATH_STYLE"`
	S3PublicBaseURL   string `envconfig:"S3_PUBLIC_BASE_URL"`
}

// IsProduction reports whether APP_ENV selects the production profile.
func (c *Config) IsProduction() bool {
	return c.AppEnv == PROD_STRING
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the rules envconfig tags cannot express.
func (c *Config) Validate() error {
	// envconfig treats a variable set to "" as present.
	if c.DBDSN == "" {
		return errors.New("DB_DSN is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.AdminPasswordHash == "" && c.AdminPassword == "" {
		return errors.New("one of ADMIN_PASSWORD_HASH or ADMIN_PASSWORD is required")
	}
	if c.JWTAccessTokenTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TOKEN_TTL must be positive, got %s", c.JWTAccessTokenTTL)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost)
	}

	if c.IsProduction() && strings.TrimSpace(c.ProdOrigins) == "" {
		return errors.New("PROD_ORIGINS is required when APP_ENV=prod")
	}

	switch c.StorageDriver {
	case "local":
	case "s3":
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET is required when STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	return nil
}
