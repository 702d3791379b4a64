package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Geocode GeocodeConfig `yaml:"geocode" mapstructure:"geocode"`
	Rating  RatingConfig  `yaml:"rating" mapstructure:"rating"`
	Audit   AuditConfig   `yaml:"audit" mapstructure:"audit"`
	Dupe    DupeConfig    `yaml:"dupe" mapstructure:"dupe"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the MCP HTTP server.
type ServerConfig struct {
	Port    int    `yaml:"port" mapstructure:"port"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// GeocodeConfig configures the ZIP resolution client.
type GeocodeConfig struct {
	GoogleKey    string  `yaml:"google_api_key" mapstructure:"google_api_key"`
	TimeoutSecs  int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimit    float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	CachePath    string  `yaml:"cache_path" mapstructure:"cache_path"`
	CacheTTLMins int     `yaml:"cache_ttl_mins" mapstructure:"cache_ttl_mins"`
}

// RatingConfig configures the estimation tables.
type RatingConfig struct {
	OverridesPath string `yaml:"overrides_path" mapstructure:"overrides_path"`
}

// AuditConfig configures quote calculation traces.
type AuditConfig struct {
	Dir           string `yaml:"dir" mapstructure:"dir"`
	RetentionDays int    `yaml:"retention_days" mapstructure:"retention_days"`
}

// DupeConfig configures duplicate call detection.
type DupeConfig struct {
	WindowSecs int `yaml:"window_secs" mapstructure:"window_secs"`
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
	v.SetEnvPrefix("INSURANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Deployments set these exact names, without the prefix.
	_ = v.BindEnv("geocode.google_api_key", "GOOGLE_MAPS_API_KEY")
	_ = v.BindEnv("server.base_url", "SERVER_BASE_URL")
	_ = v.BindEnv("log.level", "INSURANCE_LOG_LEVEL", "LOG_LEVEL")

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("geocode.timeout_secs", 5)
	v.SetDefault("geocode.rate_limit", 10)
	v.SetDefault("geocode.cache_ttl_mins", 15)
	v.SetDefault("audit.dir", "quote_explanations")
	v.SetDefault("audit.retention_days", 7)
	v.SetDefault("dupe.window_secs", 300)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

// Validate checks the bounds a running service depends on. Called once
// after Load, before any command does work.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, "server.port must be between 1 and 65535")
	}
	if c.Geocode.TimeoutSecs <= 0 {
		problems = append(problems, "geocode.timeout_secs must be > 0")
	}
	if c.Geocode.RateLimit <= 0 {
		problems = append(problems, "geocode.rate_limit must be > 0")
	}
	if c.Geocode.CacheTTLMins <= 0 {
		problems = append(problems, "geocode.cache_ttl_mins must be > 0")
	}
	if c.Audit.RetentionDays <= 0 {
		problems = append(problems, "audit.retention_days must be > 0")
	}
	if c.Dupe.WindowSecs <= 0 {
		problems = append(problems, "dupe.window_secs must be > 0")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
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
