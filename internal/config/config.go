// Package config loads the CLI configuration from defaults, an optional
// config file, a .env file and COFIY_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "COFIY"

type Config struct {
	Data   DataConfig   `mapstructure:"data"`
	Log    LogConfig    `mapstructure:"log"`
	Export ExportConfig `mapstructure:"export"`
}

type DataConfig struct {
	Dir       string `mapstructure:"dir"`
	File      string `mapstructure:"file"`
	ReadOnly  bool   `mapstructure:"read_only"`
	DevSafety bool   `mapstructure:"dev_safety"`
}

type LogConfig struct {
	Verbose    bool   `mapstructure:"verbose"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type ExportConfig struct {
	Format string `mapstructure:"format"`
	Dir    string `mapstructure:"dir"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.file", "companies.json")
	v.SetDefault("data.read_only", false)
	v.SetDefault("data.dev_safety", true)
	v.SetDefault("log.verbose", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("export.format", "zip")
	v.SetDefault("export.dir", ".")
}

// Load reads the configuration. An empty path looks for cofiy.yaml in the
// working directory and is not an error when none exists; an explicit path
// must exist. envFile defaults to .env and is optional.
func Load(path, envFile string) (*Config, error) {
	v, err := newViper(path, envFile)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newViper(path, envFile string) (*viper.Viper, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		return v, nil
	}

	v.SetConfigName("cofiy")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

// Validate rejects values the CLI cannot act on.
func (c *Config) Validate() error {
	switch c.Export.Format {
	case "json", "zip":
	default:
		return fmt.Errorf("export.format must be json or zip, got %q", c.Export.Format)
	}
	if strings.TrimSpace(c.Data.Dir) == "" {
		return errors.New("data.dir must not be empty")
	}
	return nil
}
