package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	API     APIConfig     `yaml:"api" mapstructure:"api"`
	Chat    ChatConfig    `yaml:"chat" mapstructure:"chat"`
	Compare CompareConfig `yaml:"compare" mapstructure:"compare"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// APIConfig configures the statistics backend client.
type APIConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst   int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// Timeout returns the transport timeout as a duration.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// ChatConfig configures the assistant session.
type ChatConfig struct {
	TypingIntervalMS int    `yaml:"typing_interval_ms" mapstructure:"typing_interval_ms"`
	ErrorNotice      string `yaml:"error_notice" mapstructure:"error_notice"`
}

// TypingInterval returns the typing indicator tick as a duration.
func (c ChatConfig) TypingInterval() time.Duration {
	return time.Duration(c.TypingIntervalMS) * time.Millisecond
}

// CompareConfig holds the initial selections.
type CompareConfig struct {
	DefaultPair    []string `yaml:"default_pair" mapstructure:"default_pair"`
	DefaultPlayers []string `yaml:"default_players" mapstructure:"default_players"`
}

// MetricsConfig points at an optional metric scale catalog.
type MetricsConfig struct {
	CatalogPath string `yaml:"catalog_path" mapstructure:"catalog_path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("STATCOMPARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("api.base_url", "http://localhost:5001")
	v.SetDefault("api.timeout_secs", 30)
	v.SetDefault("api.rate_limit", 0)
	v.SetDefault("api.rate_burst", 1)
	v.SetDefault("chat.typing_interval_ms", 500)
	v.SetDefault("chat.error_notice", "Error: Could not get response from server")
	v.SetDefault("compare.default_pair", []string{"UCDavis", "Conference Average"})
	v.SetDefault("compare.default_players", []string{"TY Johnson", "Sevilla, Connor"})
	v.SetDefault("metrics.catalog_path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings every command depends on.
func (c *Config) Validate() error {
	var errs []string

	if c.API.BaseURL == "" {
		errs = append(errs, "api.base_url is required")
	} else if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, "api.base_url must be an absolute URL")
	}
	if c.API.TimeoutSecs < 0 {
		errs = append(errs, "api.timeout_secs must be >= 0")
	}
	if c.API.RateLimit < 0 {
		errs = append(errs, "api.rate_limit must be >= 0")
	}
	if c.Chat.TypingIntervalMS <= 0 {
		errs = append(errs, "chat.typing_interval_ms must be > 0")
	}
	if n := len(c.Compare.DefaultPair); n != 0 && n != 2 {
		errs = append(errs, "compare.default_pair must name two entities")
	}
	if n := len(c.Compare.DefaultPlayers); n != 0 && n != 2 {
		errs = append(errs, "compare.default_players must name two players")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
