// Package config loads application configuration from file and environment.
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
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Analyze AnalyzeConfig `yaml:"analyze" mapstructure:"analyze"`
	Finance FinanceConfig `yaml:"finance" mapstructure:"finance"`
	Bid     BidConfig     `yaml:"bid" mapstructure:"bid"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // sqlite or postgres
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RatePerSecond  float64  `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst      int      `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// CatalogConfig configures the consumption rule catalog.
type CatalogConfig struct {
	// OverlayPath points to an optional YAML file that extends or replaces
	// the built-in rule groups.
	OverlayPath string `yaml:"overlay_path" mapstructure:"overlay_path"`
}

// AnalyzeConfig tunes the BOQ analysis pipeline.
type AnalyzeConfig struct {
	Workers          int `yaml:"workers" mapstructure:"workers"`                       // decomposition fan-out
	CrewSize         int `yaml:"crew_size" mapstructure:"crew_size"`                   // workers per day for timeline
	CriticalPathSize int `yaml:"critical_path_size" mapstructure:"critical_path_size"` // top-N items
}

// FinanceConfig holds the indirect-cost layering rates.
type FinanceConfig struct {
	OverheadRate    float64 `yaml:"overhead_rate" mapstructure:"overhead_rate"`
	ManagementRate  float64 `yaml:"management_rate" mapstructure:"management_rate"`
	ContingencyRate float64 `yaml:"contingency_rate" mapstructure:"contingency_rate"`
	TaxRate         float64 `yaml:"tax_rate" mapstructure:"tax_rate"`
}

// BidConfig tunes the bid recommendation engine.
type BidConfig struct {
	BaseCostRatio      float64 `yaml:"base_cost_ratio" mapstructure:"base_cost_ratio"`
	ComplexityPerReq   float64 `yaml:"complexity_per_req" mapstructure:"complexity_per_req"`
	DefaultBidRatio    float64 `yaml:"default_bid_ratio" mapstructure:"default_bid_ratio"`
	MinMarkup          float64 `yaml:"min_markup" mapstructure:"min_markup"`
	LargeProjectBudget float64 `yaml:"large_project_budget" mapstructure:"large_project_budget"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("TENDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "tender.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_per_second", 20.0)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("analyze.workers", 8)
	v.SetDefault("analyze.crew_size", 10)
	v.SetDefault("analyze.critical_path_size", 5)
	v.SetDefault("finance.overhead_rate", 0.10)
	v.SetDefault("finance.management_rate", 0.07)
	v.SetDefault("finance.contingency_rate", 0.05)
	v.SetDefault("finance.tax_rate", 0.07)
	v.SetDefault("bid.base_cost_ratio", 0.65)
	v.SetDefault("bid.complexity_per_req", 0.02)
	v.SetDefault("bid.default_bid_ratio", 0.85)
	v.SetDefault("bid.min_markup", 1.10)
	v.SetDefault("bid.large_project_budget", 50_000_000)

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
