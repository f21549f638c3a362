package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:            "8080",
		Env:             "development",
		SessionSecret:   "dev-secret-change-in-production",
		SessionTTLHours: 120,
		AWSRegion:       "ap-southeast-1",
		TablePrefix:     "stuntcare_",
		StorageBucket:   "stuntcare-media",
	}
}

func TestValidateAcceptsDevelopmentDefaults(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing port", func(c *Config) { c.Port = "" }},
		{"missing secret", func(c *Config) { c.SessionSecret = "" }},
		{"missing bucket", func(c *Config) { c.StorageBucket = "" }},
		{"zero session ttl", func(c *Config) { c.SessionTTLHours = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateProductionSecretRules(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	assert.Error(t, cfg.Validate(), "default secret must be rejected in production")

	cfg.SessionSecret = "short"
	assert.Error(t, cfg.Validate(), "short secret must be rejected in production")

	cfg.SessionSecret = "0123456789abcdef0123456789abcdef"
	assert.NoError(t, cfg.Validate())
}
