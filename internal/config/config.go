// Package config loads ledger settings from defaults, an optional config
// file, a .env file and TCG_* environment variables, in rising priority.
package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/codyseavey/tcg-inventory/internal/database"
)

// EnvPrefix is prepended to every environment override, e.g. TCG_LOG_LEVEL
const EnvPrefix = "TCG"

// DefaultEnvFile is read from the working directory when present
const DefaultEnvFile = ".env"

// Config holds the runtime settings
type Config struct {
	LogLevel       string `mapstructure:"log_level" validate:"required,oneof=trace debug info warn error"`
	LogFormat      string `mapstructure:"log_format" validate:"required,oneof=text json"`
	JournalDSN     string `mapstructure:"journal_dsn"`
	JournalEnabled bool   `mapstructure:"journal_enabled"`
	QuoteCacheSize int    `mapstructure:"quote_cache_size" validate:"min=1"`
	StartingMoney  string `mapstructure:"starting_money" validate:"required"`
	Color          bool   `mapstructure:"color"`
}

// Money parses StartingMoney. Load has already rejected bad values.
func (c *Config) Money() decimal.Decimal {
	d, err := decimal.NewFromString(c.StartingMoney)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("journal_dsn", database.MemoryDSN)
	v.SetDefault("journal_enabled", true)
	v.SetDefault("quote_cache_size", 128)
	v.SetDefault("starting_money", "0")
	v.SetDefault("color", true)
}

// Load reads the configuration. configPath may be empty.
func Load(configPath string) (*Config, error) {
	return load(configPath, DefaultEnvFile)
}

func load(configPath, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(err, "load %s", envFile)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
