package cli

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/brainboard/pkg/errors"
	"github.com/matzehuels/brainboard/pkg/store"
	"github.com/matzehuels/brainboard/pkg/store/file"
	"github.com/matzehuels/brainboard/pkg/store/mongo"
	"github.com/matzehuels/brainboard/pkg/store/postgres"
	"github.com/matzehuels/brainboard/pkg/store/redis"
	"github.com/matzehuels/brainboard/pkg/store/sqlite"
)

// Store backends accepted in [store] backend.
const (
	backendFile     = "file"
	backendSQLite   = "sqlite"
	backendRedis    = "redis"
	backendMongo    = "mongo"
	backendPostgres = "postgres"
	backendMemory   = "memory"
)

// Config is the contents of config.toml.
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// StoreConfig selects and configures the board store.
type StoreConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	SQLitePath    string `toml:"sqlite_path"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
	PostgresDSN   string `toml:"postgres_dsn"`
}

// ServerConfig configures brainboard serve.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `toml:"level"`
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{
		Store:  StoreConfig{Backend: backendFile},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info"},
	}
}

// configDir returns the config directory using XDG standard (~/.config/brainboard/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// loadConfig reads path over the defaults. An empty path means
// config.toml in configDir; a missing default file is not an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case backendFile, backendSQLite, backendRedis, backendMongo, backendPostgres, backendMemory:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log level")
	}
	return nil
}

// logLevel returns the configured level, or info if it does not parse.
func (c Config) logLevel() log.Level {
	level, err := log.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// remote reports whether opening the store needs a network round trip.
func (c StoreConfig) remote() bool {
	switch c.Backend {
	case backendRedis, backendMongo, backendPostgres:
		return true
	}
	return false
}

// openStore opens the configured backend, instrumented for metrics.
func openStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	var (
		s   store.Store
		err error
	)
	switch cfg.Backend {
	case backendFile, "":
		s, err = file.New(cfg.Dir)
	case backendSQLite:
		path := cfg.SQLitePath
		if path == "" {
			dir, derr := configDir()
			if derr == nil {
				path = filepath.Join(dir, sqlite.DefaultPath)
			}
		}
		s, err = sqlite.New(ctx, path)
	case backendRedis:
		s, err = redis.New(ctx, redis.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	case backendMongo:
		s, err = mongo.New(ctx, mongo.Config{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
	case backendPostgres:
		s, err = postgres.New(ctx, cfg.PostgresDSN)
	case backendMemory:
		s = store.NewMemory()
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, store.Storage(err, "open %s store", cfg.Backend)
	}
	backend := cfg.Backend
	if backend == "" {
		backend = backendFile
	}
	return store.Instrument(backend, s), nil
}
