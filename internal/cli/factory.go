package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/glossa"
	"github.com/aretw0/glossa/internal/config"
	"github.com/aretw0/glossa/internal/logging"
	"github.com/aretw0/glossa/internal/metrics"
	"github.com/aretw0/glossa/pkg/adapters/file"
	"github.com/aretw0/glossa/pkg/adapters/memory"
	"github.com/aretw0/glossa/pkg/adapters/redis"
	"github.com/aretw0/glossa/pkg/domain"
	"github.com/aretw0/glossa/pkg/persistence/middleware"
	"github.com/aretw0/glossa/pkg/ports"
)

// Options are the flags shared by every command.
type Options struct {
	// Dir is the project root.
	Dir string
	// ConfigPath defaults to Dir/glossa.yaml.
	ConfigPath string
	// LogLevel overrides the configured level when set.
	LogLevel string
	// JSONLogs switches the logger to JSON lines.
	JSONLogs bool
	// Languages override the configured languages when set.
	Languages []string
}

// Env is a ready to use trainer with everything it was built from.
type Env struct {
	Trainer *glossa.Trainer
	Config  *config.Config
	Metrics *metrics.Collectors
	Logger  *slog.Logger

	closers []func() error
}

// Close releases the store connections.
func (e *Env) Close() error {
	var first error
	for _, c := range e.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Setup loads the configuration and builds a Trainer following CLI conventions.
func Setup(opts Options) (*Env, error) {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = filepath.Join(opts.Dir, config.DefaultFile)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if len(opts.Languages) > 0 {
		cfg.Languages = opts.Languages
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	env := &Env{
		Config:  cfg,
		Metrics: metrics.New(),
		Logger:  createLogger(cfg.LogLevel, opts.JSONLogs),
	}

	hooks := env.Metrics.Hooks()
	if logging.ParseLevel(cfg.LogLevel) <= slog.LevelDebug {
		hooks = hooks.Combine(createDebugHooks(env.Logger))
	}

	trainerOpts := []glossa.Option{
		glossa.WithLogger(env.Logger),
		glossa.WithLifecycleHooks(hooks),
		glossa.WithLanguages(cfg.Languages...),
		glossa.WithExpansionLimit(cfg.ExpansionLimit),
		glossa.WithModel(domain.ModelResolvers, glossa.Model{
			Artifact: cfg.Models.Resolvers.Artifact,
			Settings: cfg.Models.Resolvers.ModelSettings,
		}),
		glossa.WithModel(domain.ModelMain, glossa.Model{
			Artifact: cfg.Models.Main.Artifact,
			Settings: cfg.Models.Main.ModelSettings,
		}),
	}

	store, locker, closer, err := createStore(opts.Dir, cfg.Store)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		env.closers = append(env.closers, closer)
	}
	enc, err := cfg.Store.Encryption()
	if err != nil {
		_ = env.Close()
		return nil, err
	}
	if enc != nil {
		store = middleware.Chain(store, middleware.NewEncryptionMiddleware(*enc))
		env.Logger.Debug("Model encryption enabled", "fallback_keys", len(enc.FallbackKeys))
	}
	trainerOpts = append(trainerOpts, glossa.WithStore(store))
	if locker != nil {
		trainerOpts = append(trainerOpts, glossa.WithLocker(locker))
	}

	trainer, err := glossa.New(opts.Dir, trainerOpts...)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("error initializing trainer: %w", err)
	}
	env.Trainer = trainer
	return env, nil
}

// createStore picks the model store of the configured driver. The redis driver
// is shared between processes and gets a distributed locker; the others only
// need runs of this process serialized.
func createStore(dir string, cfg config.StoreConfig) (ports.ModelStore, ports.Locker, func() error, error) {
	switch cfg.Driver {
	case config.StoreMemory:
		return memory.NewStore(), memory.NewLocker(), nil, nil
	case config.StoreRedis:
		ttl, err := cfg.TTLDuration()
		if err != nil {
			return nil, nil, nil, err
		}
		prefix := cfg.Prefix
		if prefix == "" {
			prefix = redis.DefaultPrefix
		}
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redis.WithTTL(ttl), redis.WithPrefix(prefix))
		return store, redis.NewLocker(store.Client(), prefix), store.Close, nil
	default:
		modelDir := cfg.Dir
		if modelDir == "" {
			modelDir = glossa.DefaultModelDir
		}
		if !filepath.IsAbs(modelDir) {
			modelDir = filepath.Join(dir, modelDir)
		}
		return file.New(modelDir), memory.NewLocker(), nil, nil
	}
}

// projectExists reports whether dir looks like a project root.
func projectExists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "skills"))
	return err == nil && info.IsDir()
}
