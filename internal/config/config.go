// Package config resolves runtime settings from defaults, an optional YAML
// file, an optional .env file and TASKPAD_* environment variables, in that
// order of precedence from lowest to highest.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/taskpad/internal/storage"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Store           StoreConfig         `yaml:"store" mapstructure:"store"`
	Notifications   NotificationsConfig `yaml:"notifications" mapstructure:"notifications"`
	LogFile         string              `yaml:"log_file" mapstructure:"log_file"`
	RecheckMinutes  int                 `yaml:"recheck_minutes" mapstructure:"recheck_minutes"`
	SchedulerBuffer int                 `yaml:"scheduler_buffer" mapstructure:"scheduler_buffer"`
	Timezone        string              `yaml:"timezone" mapstructure:"timezone"`
}

type StoreConfig struct {
	Backend       string `yaml:"backend" mapstructure:"backend"`
	DBPath        string `yaml:"db_path" mapstructure:"db_path"`
	DataDir       string `yaml:"data_dir" mapstructure:"data_dir"`
	RedisAddr     string `yaml:"redis_addr" mapstructure:"redis_addr"`
	RedisPassword string `yaml:"redis_password" mapstructure:"redis_password"`
	RedisDB       int    `yaml:"redis_db" mapstructure:"redis_db"`
	RedisPrefix   string `yaml:"redis_prefix" mapstructure:"redis_prefix"`
}

type NotificationsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	Desktop bool `yaml:"desktop" mapstructure:"desktop"`
}

func Default() Config {
	dataDir := defaultDataDir()
	return Config{
		Store: StoreConfig{
			Backend:   string(storage.BackendSQLite),
			DBPath:    filepath.Join(dataDir, "taskpad.db"),
			DataDir:   dataDir,
			RedisAddr: "localhost:6379",
		},
		RecheckMinutes:  15,
		SchedulerBuffer: 64,
	}
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "taskpad")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskpad"
	}
	return filepath.Join(home, ".local", "share", "taskpad")
}

// DefaultPath is where Load looks when neither --config nor TASKPAD_CONFIG is
// given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "taskpad", "config.yaml")
}

// Load builds the effective configuration. An explicitly named file must
// exist; the default file is optional.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = strings.TrimSpace(os.Getenv("TASKPAD_CONFIG"))
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg = FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadFile overlays the keys present in the YAML file onto cfg; absent keys
// keep their current values.
func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

// FromEnv applies TASKPAD_* overrides. Unparseable values are ignored.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("TASKPAD_STORE"); ok {
		cfg.Store.Backend = v
	}
	if v, ok := getEnvString("TASKPAD_DB_PATH"); ok {
		cfg.Store.DBPath = v
	}
	if v, ok := getEnvString("TASKPAD_DATA_DIR"); ok {
		cfg.Store.DataDir = v
	}
	if v, ok := getEnvString("TASKPAD_REDIS_ADDR"); ok {
		cfg.Store.RedisAddr = v
	}
	if v, ok := getEnvString("TASKPAD_REDIS_PASSWORD"); ok {
		cfg.Store.RedisPassword = v
	}
	if v, ok := getEnvInt("TASKPAD_REDIS_DB"); ok && v >= 0 {
		cfg.Store.RedisDB = v
	}
	if v, ok := getEnvString("TASKPAD_REDIS_PREFIX"); ok {
		cfg.Store.RedisPrefix = v
	}
	if v, ok := getEnvBool("TASKPAD_NOTIFICATIONS"); ok {
		cfg.Notifications.Enabled = v
	}
	if v, ok := getEnvBool("TASKPAD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.Notifications.Desktop = v
	}
	if v, ok := getEnvString("TASKPAD_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvInt("TASKPAD_RECHECK_MINUTES"); ok && v > 0 {
		cfg.RecheckMinutes = v
	}
	if v, ok := getEnvInt("TASKPAD_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvString("TASKPAD_TIMEZONE"); ok {
		cfg.Timezone = v
	}
	return cfg
}

func (c Config) Validate() error {
	switch storage.Backend(strings.ToLower(c.Store.Backend)) {
	case storage.BackendSQLite, storage.BackendFile, storage.BackendRedis:
	default:
		return fmt.Errorf("%w: store.backend %q", ErrInvalid, c.Store.Backend)
	}
	if c.RecheckMinutes <= 0 {
		return fmt.Errorf("%w: recheck_minutes must be positive", ErrInvalid)
	}
	if c.SchedulerBuffer <= 0 {
		return fmt.Errorf("%w: scheduler_buffer must be positive", ErrInvalid)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone; empty means the system local zone.
func (c Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalid, c.Timezone, err)
	}
	return loc, nil
}

func (c Config) RecheckInterval() time.Duration {
	return time.Duration(c.RecheckMinutes) * time.Minute
}

func (c Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:       storage.Backend(strings.ToLower(c.Store.Backend)),
		SQLitePath:    c.Store.DBPath,
		Dir:           c.Store.DataDir,
		RedisAddr:     c.Store.RedisAddr,
		RedisPassword: c.Store.RedisPassword,
		RedisDB:       c.Store.RedisDB,
		RedisPrefix:   c.Store.RedisPrefix,
	}
}

// Marshal renders cfg as YAML, for `taskpad config` and for seeding a file.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
