// Package config reads the trainer configuration file (glossa.yaml or glossa.json).
package config

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/glossa/pkg/domain"
	"github.com/aretw0/glossa/pkg/pattern"
	"github.com/aretw0/glossa/pkg/persistence/middleware"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the project root.
const DefaultFile = "glossa.yaml"

// EncryptionKeyEnv provides the active key when store.encryption_key is empty,
// keeping secrets out of the project tree.
const EncryptionKeyEnv = "GLOSSA_ENCRYPTION_KEY"

// Store drivers.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config is the trainer configuration.
type Config struct {
	Languages      []string `yaml:"languages" json:"languages"`
	ExpansionLimit int      `yaml:"expansion_limit" json:"expansion_limit"`
	LogLevel       string   `yaml:"log_level" json:"log_level"`

	Store  StoreConfig  `yaml:"store" json:"store"`
	Models ModelsConfig `yaml:"models" json:"models"`
}

// StoreConfig selects where trained models are persisted.
type StoreConfig struct {
	Driver string `yaml:"driver" json:"driver"`
	// Dir is the artifact directory of the file driver.
	Dir string `yaml:"dir" json:"dir"`

	RedisAddr     string `yaml:"redis_addr" json:"redis_addr"`
	RedisPassword string `yaml:"redis_password" json:"redis_password"`
	RedisDB       int    `yaml:"redis_db" json:"redis_db"`
	Prefix        string `yaml:"prefix" json:"prefix"`
	// TTL is a Go duration ("24h"); empty means models never expire.
	TTL string `yaml:"ttl" json:"ttl"`

	// EncryptionKey is a base64 AES-256 key. When set, model corpora are sealed.
	EncryptionKey string `yaml:"encryption_key,omitempty" json:"encryption_key,omitempty"`
	// FallbackKeys are older base64 keys still accepted for decryption.
	FallbackKeys []string `yaml:"fallback_keys,omitempty" json:"fallback_keys,omitempty"`
}

// Encryption decodes the configured keys. It returns nil when encryption is off.
// The active key falls back to the EncryptionKeyEnv variable.
func (s StoreConfig) Encryption() (*middleware.EncryptionConfig, error) {
	active := s.EncryptionKey
	if active == "" {
		active = os.Getenv(EncryptionKeyEnv)
	}
	if active == "" {
		if len(s.FallbackKeys) > 0 {
			return nil, errors.New("store.fallback_keys: set without an encryption key")
		}
		return nil, nil
	}

	cfg := &middleware.EncryptionConfig{}
	var err error
	if cfg.ActiveKey, err = base64.StdEncoding.DecodeString(active); err != nil {
		return nil, fmt.Errorf("store.encryption_key: %w", err)
	}
	for i, k := range s.FallbackKeys {
		key, err := base64.StdEncoding.DecodeString(k)
		if err != nil {
			return nil, fmt.Errorf("store.fallback_keys[%d]: %w", i, err)
		}
		cfg.FallbackKeys = append(cfg.FallbackKeys, key)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("store encryption: %w", err)
	}
	return cfg, nil
}

// TTLDuration parses TTL.
func (s StoreConfig) TTLDuration() (time.Duration, error) {
	if s.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.TTL)
	if err != nil {
		return 0, fmt.Errorf("store.ttl: %w", err)
	}
	return d, nil
}

// ModelsConfig holds the settings of both trained models.
type ModelsConfig struct {
	Resolvers ModelConfig `yaml:"resolvers" json:"resolvers"`
	Main      ModelConfig `yaml:"main" json:"main"`
}

// ModelConfig is the artifact name and engine flags of one model.
type ModelConfig struct {
	Artifact             string `yaml:"artifact" json:"artifact"`
	domain.ModelSettings `yaml:",inline"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Languages:      []string{"en"},
		ExpansionLimit: pattern.DefaultLimit,
		LogLevel:       "info",
		Store: StoreConfig{
			Driver: StoreFile,
			Dir:    filepath.Join(".glossa", "models"),
		},
		Models: ModelsConfig{
			Resolvers: ModelConfig{
				Artifact:      domain.ModelResolvers,
				ModelSettings: domain.ModelSettings{Threshold: 0.8, TrainByDomain: true},
			},
			Main: ModelConfig{
				Artifact: domain.ModelMain,
				ModelSettings: domain.ModelSettings{
					Threshold:          0.8,
					TrainByDomain:      true,
					ForceNER:           true,
					CalculateSentiment: true,
				},
			},
		},
	}
}

// Load reads a configuration file (YAML or JSON, by extension) on top of Default.
// A missing file is not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Languages) == 0 {
		errs = append(errs, errors.New("languages: at least one language is required"))
	}
	seen := make(map[string]bool, len(c.Languages))
	for _, lang := range c.Languages {
		if lang == "" {
			errs = append(errs, errors.New("languages: empty language code"))
			continue
		}
		if seen[lang] {
			errs = append(errs, fmt.Errorf("languages: %q listed twice", lang))
		}
		seen[lang] = true
	}

	if c.ExpansionLimit < 0 || c.ExpansionLimit > pattern.MaxLimit {
		errs = append(errs, fmt.Errorf("expansion_limit: %d is outside [0, %d] (0 means %d)", c.ExpansionLimit, pattern.MaxLimit, pattern.DefaultLimit))
	}

	switch c.Store.Driver {
	case StoreFile, StoreMemory:
	case StoreRedis:
		if c.Store.RedisAddr == "" {
			errs = append(errs, errors.New("store.redis_addr: required by the redis driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.driver: unknown driver %q", c.Store.Driver))
	}
	if _, err := c.Store.TTLDuration(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Store.Encryption(); err != nil {
		errs = append(errs, err)
	}

	for name, m := range map[string]ModelConfig{domain.ModelResolvers: c.Models.Resolvers, domain.ModelMain: c.Models.Main} {
		if m.Threshold < 0 || m.Threshold > 1 {
			errs = append(errs, fmt.Errorf("models.%s.threshold: %v is outside [0, 1]", name, m.Threshold))
		}
	}
	if c.Models.Resolvers.Artifact != "" && c.Models.Resolvers.Artifact == c.Models.Main.Artifact {
		errs = append(errs, fmt.Errorf("models: resolvers and main share the artifact %q", c.Models.Main.Artifact))
	}

	return errors.Join(errs...)
}
