package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration for the papers rendering/merge service.
type Config struct {
	Server ServerConfig
	Job    JobConfig
	S3     S3Config
	Sentry SentryConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Bearer is the required Authorization bearer token. Empty disables auth.
	Bearer string
}

// JobConfig bounds per-job resource usage.
type JobConfig struct {
	MaxAssetSize          Bytes
	MaxAssetsPerDocument  int
	CallbackTimeout       time.Duration
}

type S3Config struct {
	Bucket            string
	Region            string
	LocalstackEndpoint string
	AccessKey         string
	SecretKey         string
	ExpirationTime    time.Duration
}

type SentryConfig struct {
	DSN string
}

type LogConfig struct {
	Level string
}

// LoadConfig loads configuration from environment variables and an optional .env file.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("PAPERS_PORT", "8080")
	viper.SetDefault("PAPERS_MAX_ASSET_SIZE", "10000000")
	viper.SetDefault("PAPERS_MAX_ASSETS_PER_DOCUMENT", 20)
	viper.SetDefault("PAPERS_LOG_LEVEL", "info")
	viper.SetDefault("PAPERS_S3_EXPIRATION_TIME", 86400)

	maxAssetSize := ParseBytes(viper.GetString("PAPERS_MAX_ASSET_SIZE"), Bytes(10_000_000))

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("PAPERS_PORT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			Bearer:       os.Getenv("PAPERS_BEARER"),
		},
		Job: JobConfig{
			MaxAssetSize:         maxAssetSize,
			MaxAssetsPerDocument: viper.GetInt("PAPERS_MAX_ASSETS_PER_DOCUMENT"),
			CallbackTimeout:      30 * time.Second,
		},
		S3: S3Config{
			Bucket:             viper.GetString("PAPERS_S3_BUCKET"),
			Region:             viper.GetString("PAPERS_AWS_REGION"),
			LocalstackEndpoint: viper.GetString("PAPERS_LOCALSTACK_ENDPOINT"),
			AccessKey:          os.Getenv("PAPERS_AWS_ACCESS_KEY"),
			SecretKey:          os.Getenv("PAPERS_AWS_SECRET_KEY"),
			ExpirationTime:     time.Duration(viper.GetInt("PAPERS_S3_EXPIRATION_TIME")) * time.Second,
		},
		Sentry: SentryConfig{
			DSN: os.Getenv("SENTRY_DSN"),
		},
		Log: LogConfig{
			Level: viper.GetString("PAPERS_LOG_LEVEL"),
		},
	}

	if cfg.S3.Bucket == "" {
		log.Println("WARNING: PAPERS_S3_BUCKET is not set; uploads will fail")
	}
	if cfg.S3.LocalstackEndpoint == "" && cfg.S3.Region == "" {
		log.Println("WARNING: neither PAPERS_AWS_REGION nor PAPERS_LOCALSTACK_ENDPOINT set")
	}

	return cfg, nil
}

// IsDebugActive reports whether the configured log level string enables debug
// logging: any level string containing "debug", case-insensitively.
func (c *Config) IsDebugActive() bool {
	return strings.Contains(strings.ToLower(c.Log.Level), "debug")
}
