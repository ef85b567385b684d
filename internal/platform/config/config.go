package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Storage string

const (
	StorageFile   Storage = "file"
	StorageSQLite Storage = "sqlite"
	StorageMemory Storage = "memory"
)

const (
	envHome     = "ZENSTREAK_HOME"
	envStorage  = "ZENSTREAK_STORAGE"
	envTimezone = "ZENSTREAK_TZ"
	envLogLevel = "ZENSTREAK_LOG_LEVEL"

	fileName = "config.yaml"
)

type Config struct {
	Home            string
	Storage         Storage
	Timezone        string
	Location        *time.Location
	LogLevel        string
	Journal         bool
	Hooks           bool
	DefaultType     string
	DefaultDuration float64
}

// Overrides carries values from command-line flags. Empty fields do not
// override anything.
type Overrides struct {
	Home      string
	Storage   string
	Verbose   bool
	Ephemeral bool
}

type fileConfig struct {
	Storage         string  `yaml:"storage"`
	Timezone        string  `yaml:"timezone"`
	LogLevel        string  `yaml:"log_level"`
	Journal         *bool   `yaml:"journal"`
	Hooks           *bool   `yaml:"hooks"`
	DefaultType     string  `yaml:"default_type"`
	DefaultDuration float64 `yaml:"default_duration"`
}

func New(home string) (Config, error) {
	if strings.TrimSpace(home) == "" {
		return Config{}, fmt.Errorf("home path is required")
	}
	return Config{
		Home:            home,
		Storage:         StorageFile,
		Location:        time.Local,
		LogLevel:        "info",
		Hooks:           true,
		DefaultType:     "mindfulness",
		DefaultDuration: 5,
	}, nil
}

// Load resolves configuration from flags, the environment (after applying a
// .env file in the working directory), and home/config.yaml, in that order
// of precedence.
func Load(o Overrides) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	home := firstNonEmpty(o.Home, os.Getenv(envHome))
	if home == "" {
		var err error
		home, err = DefaultHome()
		if err != nil {
			return Config{}, err
		}
	}
	cfg, err := New(home)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.applyFile(filepath.Join(home, fileName)); err != nil {
		return Config{}, err
	}

	if v := os.Getenv(envStorage); v != "" {
		cfg.Storage = Storage(v)
	}
	if v := os.Getenv(envTimezone); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if o.Storage != "" {
		cfg.Storage = Storage(o.Storage)
	}
	if o.Ephemeral {
		cfg.Storage = StorageMemory
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.resolve(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve user home: %w", err)
	}
	return filepath.Join(dir, ".zenstreak"), nil
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	if fc.Storage != "" {
		c.Storage = Storage(fc.Storage)
	}
	if fc.Timezone != "" {
		c.Timezone = fc.Timezone
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.Journal != nil {
		c.Journal = *fc.Journal
	}
	if fc.Hooks != nil {
		c.Hooks = *fc.Hooks
	}
	if fc.DefaultType != "" {
		c.DefaultType = fc.DefaultType
	}
	if fc.DefaultDuration != 0 {
		c.DefaultDuration = fc.DefaultDuration
	}
	return nil
}

func (c *Config) resolve() error {
	switch c.Storage {
	case StorageFile, StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("config: unsupported storage %q", string(c.Storage))
	}
	if c.DefaultDuration <= 0 {
		return fmt.Errorf("config: default_duration must be positive, got %s", strconv.FormatFloat(c.DefaultDuration, 'f', -1, 64))
	}
	c.Location = time.Local
	if c.Timezone != "" {
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
		}
		c.Location = loc
	}
	return nil
}

func (c Config) DataDir() string    { return filepath.Join(c.Home, "data") }
func (c Config) DBPath() string     { return filepath.Join(c.Home, "zenstreak.db") }
func (c Config) LogPath() string    { return filepath.Join(c.Home, "zenstreak.log") }
func (c Config) JournalDir() string { return filepath.Join(c.Home, "journal") }
func (c Config) HooksDir() string   { return filepath.Join(c.Home, "hooks") }
func (c Config) ConfigPath() string { return filepath.Join(c.Home, fileName) }
func (c Config) Persistent() bool   { return c.Storage != StorageMemory }

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
