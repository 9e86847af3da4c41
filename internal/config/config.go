// Package config loads application settings from an optional yaml file, the
// environment and command-line flags.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Data source kinds
const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Data      DataConfig      `mapstructure:"data"`
	Weather   WeatherConfig   `mapstructure:"weather"`
	Recommend RecommendConfig `mapstructure:"recommend"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Port      string        `mapstructure:"port"`
	Mode      string        `mapstructure:"mode"` // gin mode: debug, release, test
	RateLimit float64       `mapstructure:"rate_limit"` // API requests per second per client
	RateBurst int           `mapstructure:"rate_burst"`
	Shutdown  time.Duration `mapstructure:"shutdown_timeout"`
}

// DataConfig says where the spot and congestion tables come from
type DataConfig struct {
	Source         string        `mapstructure:"source"` // csv or sqlite
	SpotsPath      string        `mapstructure:"spots_path"`
	CongestionPath string        `mapstructure:"congestion_path"`
	DBPath         string        `mapstructure:"db_path"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"` // 0 re-reads on every request
}

// WeatherConfig configures the OpenWeatherMap lookup
type WeatherConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Lang    string        `mapstructure:"lang"`
	Units   string        `mapstructure:"units"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RecommendConfig configures the least-crowded suggestion
type RecommendConfig struct {
	Slot string `mapstructure:"slot"`
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// Addr returns the listen address, accepting both "8080" and ":8080"
func (s ServerConfig) Addr() string {
	if strings.Contains(s.Port, ":") {
		return s.Port
	}
	return ":" + s.Port
}

// Option adjusts the viper instance before the config is read
type Option func(*viper.Viper) error

// WithFlag lets a command-line flag override key when the flag is set
func WithFlag(key string, flag *pflag.Flag) Option {
	return func(v *viper.Viper) error {
		if flag == nil {
			return nil
		}
		return v.BindPFlag(key, flag)
	}
}

// Load 加载配置. path may be empty, in which case ./config.yaml is used if present.
func Load(path string, opts ...Option) (*Config, error) {
	v := viper.New()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, eris.Wrapf(err, "config: open %s", path)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("QUIETSPOTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// the bare names predate the prefix and are still honoured
	if err := v.BindEnv("server.port", "QUIETSPOTS_SERVER_PORT", "PORT"); err != nil {
		return nil, eris.Wrap(err, "config: bind env")
	}
	if err := v.BindEnv("weather.api_key", "QUIETSPOTS_WEATHER_API_KEY", "OPENWEATHER_API_KEY"); err != nil {
		return nil, eris.Wrap(err, "config: bind env")
	}

	setDefaults(v)

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, eris.Wrap(err, "config: apply option")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.rate_limit", 10.0)
	v.SetDefault("server.rate_burst", 20)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("data.source", SourceCSV)
	v.SetDefault("data.spots_path", "spots.csv")
	v.SetDefault("data.congestion_path", "congestion.csv")
	v.SetDefault("data.db_path", "./data/spots.db")
	v.SetDefault("data.cache_ttl", time.Duration(0))
	v.SetDefault("weather.base_url", "https://api.openweathermap.org/data/2.5/weather")
	v.SetDefault("weather.lang", "ja")
	v.SetDefault("weather.units", "metric")
	v.SetDefault("weather.timeout", 10*time.Second)
	v.SetDefault("recommend.slot", "12:00")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Validate checks values that have a fixed set of choices
func (c *Config) Validate() error {
	switch c.Data.Source {
	case SourceCSV, SourceSQLite:
	default:
		return eris.Errorf("config: data.source must be %q or %q, got %q", SourceCSV, SourceSQLite, c.Data.Source)
	}
	if c.Data.CacheTTL < 0 {
		return eris.New("config: data.cache_ttl must not be negative")
	}
	if c.Server.RateLimit <= 0 || c.Server.RateBurst <= 0 {
		return eris.New("config: server.rate_limit and server.rate_burst must be positive")
	}
	if c.Recommend.Slot == "" {
		return eris.New("config: recommend.slot must not be empty")
	}
	return nil
}

// InitLogger initializes the global zap logger
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
