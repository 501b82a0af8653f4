package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	DefaultConfigDir   = ".pegbot"
	DefaultConfigFile  = "config.yaml"
	DefaultCatalogFile = "catalog.yaml"
	DefaultPacksDir    = "packs"
	DefaultDBFile      = "pegbot.db"
	DefaultLogFile     = "audit.jsonl"
	DefaultBotName     = "pegbot"

	EnvPrefix = "PEGBOT"
)

// Catalog sources.
const (
	SourceFile = "file"
	SourceDB   = "db"
)

type Config struct {
	ConfigDir   string `mapstructure:"config_dir"`
	CatalogPath string `mapstructure:"catalog_path"`
	PacksDir    string `mapstructure:"packs_dir"`
	DBPath      string `mapstructure:"db_path"`
	LogPath     string `mapstructure:"audit_log"`
	Source      string `mapstructure:"source"`
	LogLevel    string `mapstructure:"log_level"`
	BotName     string `mapstructure:"bot_name"`

	// RequireKeywords overrides the catalog's own setting when set.
	RequireKeywords *bool `mapstructure:"require_keywords"`

	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string `mapstructure:"-"`
}

// Overrides are command-line values; non-empty fields win over the config
// file and environment.
type Overrides struct {
	ConfigFile  string
	CatalogPath string
	DBPath      string
	LogPath     string
	Source      string
	LogLevel    string
}

// Load resolves settings from defaults, an optional YAML config file,
// PEGBOT_* environment variables and overrides, in increasing precedence.
// The config directory is created if missing.
func Load(o Overrides) (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("config_dir", filepath.Join(homeDir, DefaultConfigDir))
	v.SetDefault("catalog_path", "")
	v.SetDefault("packs_dir", "")
	v.SetDefault("db_path", "")
	v.SetDefault("audit_log", "")
	v.SetDefault("source", SourceFile)
	v.SetDefault("log_level", "info")
	v.SetDefault("bot_name", DefaultBotName)
	if err := v.BindEnv("require_keywords"); err != nil {
		return nil, err
	}

	configFile := o.ConfigFile
	if configFile == "" {
		candidate := filepath.Join(v.GetString("config_dir"), DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file failed (%s): %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	cfg.ConfigFile = configFile

	cfg.applyOverrides(o)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := ensureDir(cfg.ConfigDir); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyOverrides(o Overrides) {
	if o.CatalogPath != "" {
		c.CatalogPath = o.CatalogPath
	}
	if o.DBPath != "" {
		c.DBPath = o.DBPath
	}
	if o.LogPath != "" {
		c.LogPath = o.LogPath
	}
	if o.Source != "" {
		c.Source = o.Source
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
}

func (c *Config) applyDefaults() {
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	if c.CatalogPath == "" {
		c.CatalogPath = filepath.Join(c.ConfigDir, DefaultCatalogFile)
	}
	if c.PacksDir == "" {
		c.PacksDir = filepath.Join(c.ConfigDir, DefaultPacksDir)
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.ConfigDir, DefaultDBFile)
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(c.ConfigDir, DefaultLogFile)
	}
	if c.BotName == "" {
		c.BotName = DefaultBotName
	}
}

func (c *Config) Validate() error {
	switch c.Source {
	case SourceFile, SourceDB:
	default:
		return fmt.Errorf("source must be %q or %q, got %q", SourceFile, SourceDB, c.Source)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}

	return nil
}

func ensureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0700)
	}
	return nil
}
