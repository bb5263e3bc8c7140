package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Gate      GateConfig      `mapstructure:"gate"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Image     ImageConfig     `mapstructure:"image"`
	LogLevel  string          `mapstructure:"log_level"`
}

// AppConfig holds application metadata.
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// FetchConfig holds page-fetch settings.
type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	MaxBytes  int64         `mapstructure:"max_bytes"`
}

// LLMConfig holds LLM relay settings.
type LLMConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	RelayURL        string        `mapstructure:"relay_url"`
	APIKey          string        `mapstructure:"api_key"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxPromptTokens int           `mapstructure:"max_prompt_tokens"`
}

// PipelineConfig holds the coverage thresholds and scoring gates. These are
// empirically tuned policy, not fixed law, so every one of them is
// overridable.
type PipelineConfig struct {
	StructuredMinIngredients int     `mapstructure:"structured_min_ingredients"`
	QuickPathMinItems        int     `mapstructure:"quick_path_min_items"`
	QuickPathMinMultiSection int     `mapstructure:"quick_path_min_multi_section"`
	QuickPathMergeMax        int     `mapstructure:"quick_path_merge_max"`
	RegexMinItems            int     `mapstructure:"regex_min_items"`
	RegexMeasuredRatio       float64 `mapstructure:"regex_measured_ratio"`
	ListMeasuredRatio        float64 `mapstructure:"list_measured_ratio"`
	ListMinMeasuredItems     int     `mapstructure:"list_min_measured_items"`
	ConfidenceReject         int     `mapstructure:"confidence_reject"`
	VerificationReject       int     `mapstructure:"verification_reject"`
	VerificationWarn         int     `mapstructure:"verification_warn"`
}

// GateConfig holds the recipe-page gate settings.
type GateConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedDomains []string `mapstructure:"allowed_domains"`
	BlockedDomains []string `mapstructure:"blocked_domains"`
}

// CacheConfig holds the result cache bounds.
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	Capacity   int  `mapstructure:"capacity"`
	EvictBatch int  `mapstructure:"evict_batch"`
}

// RateLimitConfig holds API rate limit settings.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// ImageConfig holds ingredient image resolution settings.
type ImageConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// LoadConfig reads .env and environment variables into a Config.
func LoadConfig() (*Config, error) {
	// .env is optional in production.
	_ = godotenv.Load()

	setDefaults()

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("llm.relay_url", "LLM_RELAY_URL")
	viper.BindEnv("llm.api_key", "LLM_API_KEY")
	viper.BindEnv("llm.enabled", "LLM_ENABLED")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("gate.enabled", "GATE_ENABLED")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("image.base_url", "IMAGE_BASE_URL")
	viper.BindEnv("log_level", "LOG_LEVEL")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "grocery-parser")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	viper.SetDefault("fetch.timeout", "15s")
	viper.SetDefault("fetch.user_agent", "grocery-parser/1.0")
	viper.SetDefault("fetch.max_bytes", 5*1024*1024) // 5MB

	viper.SetDefault("llm.enabled", true)
	viper.SetDefault("llm.timeout", "60s")
	viper.SetDefault("llm.max_prompt_tokens", 1600)

	viper.SetDefault("pipeline.structured_min_ingredients", 3)
	viper.SetDefault("pipeline.quick_path_min_items", 10)
	viper.SetDefault("pipeline.quick_path_min_multi_section", 12)
	viper.SetDefault("pipeline.quick_path_merge_max", 12)
	viper.SetDefault("pipeline.regex_min_items", 12)
	viper.SetDefault("pipeline.regex_measured_ratio", 0.5)
	viper.SetDefault("pipeline.list_measured_ratio", 0.5)
	viper.SetDefault("pipeline.list_min_measured_items", 3)
	viper.SetDefault("pipeline.confidence_reject", 70)
	viper.SetDefault("pipeline.verification_reject", 30)
	viper.SetDefault("pipeline.verification_warn", 80)

	viper.SetDefault("gate.enabled", false)
	viper.SetDefault("gate.allowed_domains", []string{})
	viper.SetDefault("gate.blocked_domains", []string{})

	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.capacity", 50)
	viper.SetDefault("cache.evict_batch", 10)

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	viper.SetDefault("image.base_url", "https://img.grocery-parser.dev/ingredients")
}

func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	if config.LLM.Enabled && config.LLM.RelayURL == "" {
		return fmt.Errorf("llm relay url is required when llm is enabled")
	}
	if config.LLM.MaxPromptTokens <= 0 {
		return fmt.Errorf("invalid llm max prompt tokens")
	}

	if config.Cache.Enabled {
		if config.Cache.Capacity <= 0 {
			return fmt.Errorf("invalid cache capacity")
		}
		if config.Cache.EvictBatch <= 0 || config.Cache.EvictBatch > config.Cache.Capacity {
			return fmt.Errorf("invalid cache evict batch")
		}
	}

	p := config.Pipeline
	if p.StructuredMinIngredients <= 0 || p.QuickPathMinItems <= 0 || p.RegexMinItems <= 0 {
		return fmt.Errorf("pipeline thresholds must be positive")
	}
	if p.RegexMeasuredRatio <= 0 || p.RegexMeasuredRatio > 1 {
		return fmt.Errorf("invalid regex measured ratio")
	}
	if p.ListMeasuredRatio <= 0 || p.ListMeasuredRatio > 1 {
		return fmt.Errorf("invalid list measured ratio")
	}
	if p.ConfidenceReject < 0 || p.ConfidenceReject > 100 {
		return fmt.Errorf("invalid confidence threshold")
	}
	if p.VerificationReject < 0 || p.VerificationWarn > 100 || p.VerificationReject > p.VerificationWarn {
		return fmt.Errorf("invalid verification thresholds")
	}

	return nil
}
