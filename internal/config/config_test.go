package config_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/glossa/internal/config"
	"github.com/aretw0/glossa/pkg/domain"
	"github.com/aretw0/glossa/pkg/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), config.DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	assert.Equal(t, 0.8, cfg.Models.Resolvers.Threshold)
	assert.True(t, cfg.Models.Resolvers.TrainByDomain)
	assert.False(t, cfg.Models.Resolvers.ForceNER)
	assert.True(t, cfg.Models.Main.ForceNER)
	assert.True(t, cfg.Models.Main.CalculateSentiment)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := write(t, "glossa.yaml", `
languages: [en, fr]
expansion_limit: 500
store:
  driver: redis
  redis_addr: localhost:6379
  ttl: 24h
models:
  main:
    artifact: leon-main
    calculate_sentiment: false
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "fr"}, cfg.Languages)
	assert.Equal(t, 500, cfg.ExpansionLimit)
	assert.Equal(t, config.StoreRedis, cfg.Store.Driver)

	ttl, err := cfg.Store.TTLDuration()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ttl)

	assert.Equal(t, "leon-main", cfg.Models.Main.Artifact)
	assert.False(t, cfg.Models.Main.CalculateSentiment)
	assert.True(t, cfg.Models.Main.ForceNER, "keys not in the file keep their default")
	assert.Equal(t, domain.ModelResolvers, cfg.Models.Resolvers.Artifact)
}

func TestLoad_JSON(t *testing.T) {
	path := write(t, "glossa.json", `{
  "languages": ["it"],
  "models": {"resolvers": {"threshold": 0.6}}
}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"it"}, cfg.Languages)
	assert.Equal(t, 0.6, cfg.Models.Resolvers.Threshold)
	assert.True(t, cfg.Models.Resolvers.TrainByDomain)
}

func TestLoad_ParseError(t *testing.T) {
	_, err := config.Load(write(t, "glossa.yaml", "languages: [en"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		errMsg string
	}{
		{"no languages", func(c *config.Config) { c.Languages = nil }, "at least one language"},
		{"duplicate language", func(c *config.Config) { c.Languages = []string{"en", "en"} }, "listed twice"},
		{"unknown driver", func(c *config.Config) { c.Store.Driver = "s3" }, "unknown driver"},
		{"redis without address", func(c *config.Config) { c.Store.Driver = config.StoreRedis }, "redis_addr"},
		{"bad ttl", func(c *config.Config) { c.Store.TTL = "soon" }, "store.ttl"},
		{"threshold range", func(c *config.Config) { c.Models.Main.Threshold = 1.5 }, "outside [0, 1]"},
		{"negative expansion limit", func(c *config.Config) { c.ExpansionLimit = -1 }, "expansion_limit"},
		{"expansion limit above ceiling", func(c *config.Config) { c.ExpansionLimit = pattern.MaxLimit + 1 }, "expansion_limit"},
		{"shared artifact", func(c *config.Config) { c.Models.Main.Artifact = c.Models.Resolvers.Artifact }, "share the artifact"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	assert.NoError(t, config.Default().Validate())
}

func TestStoreConfig_Encryption(t *testing.T) {
	t.Setenv(config.EncryptionKeyEnv, "")
	key := base64.StdEncoding.EncodeToString(make([]byte, 32))

	enc, err := config.StoreConfig{}.Encryption()
	require.NoError(t, err)
	assert.Nil(t, enc, "no key means no encryption")

	enc, err = config.StoreConfig{EncryptionKey: key, FallbackKeys: []string{key}}.Encryption()
	require.NoError(t, err)
	require.NotNil(t, enc)
	assert.Len(t, enc.ActiveKey, 32)
	assert.Len(t, enc.FallbackKeys, 1)

	_, err = config.StoreConfig{EncryptionKey: "not base64!"}.Encryption()
	assert.ErrorContains(t, err, "store.encryption_key")

	_, err = config.StoreConfig{EncryptionKey: base64.StdEncoding.EncodeToString([]byte("short"))}.Encryption()
	assert.ErrorContains(t, err, "32 bytes")

	_, err = config.StoreConfig{FallbackKeys: []string{key}}.Encryption()
	assert.ErrorContains(t, err, "without an encryption key")

	t.Setenv(config.EncryptionKeyEnv, key)
	enc, err = config.StoreConfig{}.Encryption()
	require.NoError(t, err)
	assert.NotNil(t, enc, "the environment provides the key")
}
