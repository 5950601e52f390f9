// Package config loads application settings from the environment, an
// optional .env file and an optional config.yaml, in that precedence order.
package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBSQLitePath   string
	MigrationsPath string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Attachments
	AttachmentDir      string
	AttachmentMaxBytes int64
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	config := &Config{
		Port: v.GetString("PORT"),
		Env:  v.GetString("ENV"),

		DBDriver:       v.GetString("DB_DRIVER"),
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBUser:         v.GetString("DB_USER"),
		DBPassword:     v.GetString("DB_PASSWORD"),
		DBName:         v.GetString("DB_NAME"),
		DBSSLMode:      v.GetString("DB_SSLMODE"),
		DBSQLitePath:   v.GetString("DB_SQLITE_PATH"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),

		JWTSecret: v.GetString("JWT_SECRET"),

		AttachmentDir:      v.GetString("ATTACHMENT_DIR"),
		AttachmentMaxBytes: v.GetInt64("ATTACHMENT_MAX_BYTES"),
	}

	// Parse JWT expiration duration
	expStr := v.GetString("JWT_EXPIRES_IN")
	expDur, err := time.ParseDuration(expStr)
	if err != nil || expDur <= 0 {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	if config.AttachmentMaxBytes <= 0 {
		config.AttachmentMaxBytes = DefaultAttachmentMaxBytes
	}

	appConfig = config
	return config, nil
}

// DefaultAttachmentMaxBytes caps uploaded attachments at 5 MiB.
const DefaultAttachmentMaxBytes int64 = 5 << 20

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "brewbooks")
	v.SetDefault("DB_PASSWORD", "brewbooks")
	v.SetDefault("DB_NAME", "brewbooks")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_SQLITE_PATH", "brewbooks.db")
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("JWT_SECRET", "fallback-secret-key-for-dev-only")
	v.SetDefault("JWT_EXPIRES_IN", "24h")
	v.SetDefault("ATTACHMENT_DIR", "storage/attachments")
	v.SetDefault("ATTACHMENT_MAX_BYTES", DefaultAttachmentMaxBytes)
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}
