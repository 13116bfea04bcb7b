package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tistaharahap/PolymarketBTC15mAssistant/clob/types"
)

// TradingConfig is everything the session layer needs to authenticate and
// submit orders. Read once at session-init time.
type TradingConfig struct {
	Enabled       bool   `yaml:"enabled"`
	PrivateKey    string `yaml:"private_key"`
	FunderAddress string `yaml:"funder_address"`
	SignatureType int    `yaml:"signature_type"`
	APIBaseURL    string `yaml:"api_base_url"`
	ChainID       int    `yaml:"chain_id"`
	UseServerTime bool   `yaml:"use_server_time"`
}

// ServerConfig is the HTTP listener setup.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// LogConfig controls level and file rotation.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Config is the application configuration.
type Config struct {
	Trading TradingConfig `yaml:"trading"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

const defaultAPIBaseURL = "https://clob.polymarket.com"

// Load reads the YAML file at path when it exists and then applies
// environment overrides. An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Trading: TradingConfig{
			Enabled:    true,
			APIBaseURL: defaultAPIBaseURL,
			ChainID:    int(types.ChainPolygon),
		},
		Server: ServerConfig{Listen: ":8080"},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 5,
			MaxAgeDays: 14,
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config file %s", path)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TRADING_ENABLED"); v != "" {
		cfg.Trading.Enabled = parseBool(v, cfg.Trading.Enabled)
	}
	if v := os.Getenv("TRADING_PRIVATE_KEY"); v != "" {
		cfg.Trading.PrivateKey = v
	}
	if v := os.Getenv("TRADING_FUNDER_ADDRESS"); v != "" {
		cfg.Trading.FunderAddress = v
	}
	if v := os.Getenv("TRADING_SIGNATURE_TYPE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Trading.SignatureType = n
		}
	}
	if v := os.Getenv("TRADING_API_BASE_URL"); v != "" {
		cfg.Trading.APIBaseURL = v
	}
	if v := os.Getenv("TRADING_CHAIN_ID"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Trading.ChainID = n
		}
	}
	if v := os.Getenv("TRADING_USE_SERVER_TIME"); v != "" {
		cfg.Trading.UseServerTime = parseBool(v, cfg.Trading.UseServerTime)
	}
	if v := os.Getenv("SERVER_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

func parseBool(v string, fallback bool) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return fallback
}

// Validate checks the fields that would otherwise fail deep inside the
// session layer. A missing private key is allowed: the session manager
// handles that case with a soft null.
func (c *Config) Validate() error {
	switch types.SignatureType(c.Trading.SignatureType) {
	case types.SignatureTypeEOA, types.SignatureTypeMagic, types.SignatureTypeGnosisSafe:
	default:
		return errors.Errorf("invalid signature_type: %d", c.Trading.SignatureType)
	}
	switch types.Chain(c.Trading.ChainID) {
	case types.ChainPolygon, types.ChainAmoy:
	default:
		return errors.Errorf("unsupported chain_id: %d", c.Trading.ChainID)
	}
	if c.Trading.APIBaseURL == "" {
		return errors.New("api_base_url must not be empty")
	}
	return nil
}
