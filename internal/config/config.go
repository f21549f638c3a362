// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port            string `mapstructure:"PORT"`
	Env             string `mapstructure:"APP_ENV"`
	SessionSecret   string `mapstructure:"SESSION_SECRET"`
	SessionTTLHours int    `mapstructure:"SESSION_TTL_HOURS"`
	AWSRegion       string `mapstructure:"AWS_REGION"`
	DynamoEndpoint  string `mapstructure:"DYNAMO_ENDPOINT"`
	TablePrefix     string `mapstructure:"TABLE_PREFIX"`
	StorageBucket   string `mapstructure:"STORAGE_BUCKET"`
	DefaultImageURL string `mapstructure:"DEFAULT_IMAGE_URL"`
	RedisURL        string `mapstructure:"REDIS_URL"`
	AllowedOrigins  string `mapstructure:"ALLOWED_ORIGINS"`
	RequestTimeout  int    `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The config file is optional; environment variables and defaults cover
	// every key.
	_ = viper.ReadInConfig()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("SESSION_SECRET", "dev-secret-change-in-production")
	viper.SetDefault("SESSION_TTL_HOURS", 120)
	viper.SetDefault("AWS_REGION", "ap-southeast-1")
	viper.SetDefault("DYNAMO_ENDPOINT", "")
	viper.SetDefault("TABLE_PREFIX", "stuntcare_")
	viper.SetDefault("STORAGE_BUCKET", "stuntcare-media")
	viper.SetDefault("DEFAULT_IMAGE_URL", "")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 15)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if c.StorageBucket == "" {
		return errors.New("STORAGE_BUCKET is required")
	}
	if c.SessionTTLHours <= 0 {
		return errors.New("SESSION_TTL_HOURS must be positive")
	}

	isProduction := c.Env == "production" || c.Env == "prod"
	if isProduction {
		if c.SessionSecret == "dev-secret-change-in-production" {
			return errors.New("SESSION_SECRET must be changed from the default value in production")
		}
		if len(c.SessionSecret) < 32 {
			return errors.New("SESSION_SECRET must be at least 32 characters in production")
		}
		if c.AllowedOrigins == "*" {
			log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	} else if len(c.SessionSecret) < 32 {
		log.Println("WARNING: SESSION_SECRET is shorter than 32 characters. Consider using a stronger secret for production.")
	}

	return nil
}
