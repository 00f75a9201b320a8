// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. MATCHER_EMBEDDING_PROVIDER.
	EnvPrefix = "MATCHER"
	// DefaultConfigName is looked up in the working directory when no path is given.
	DefaultConfigName = "matcher"
)

// Config represents the CLI configuration loaded from matcher.yaml, the
// environment and .env. All fields are optional.
type Config struct {
	Embedding   EmbeddingConfig `mapstructure:"embedding"`
	Redis       RedisConfig     `mapstructure:"redis"`
	DatabaseURL string          `mapstructure:"database-url"`
	Matching    MatchingConfig  `mapstructure:"matching"`
	Ranking     RankingConfig   `mapstructure:"ranking"`
	Outreach    OutreachConfig  `mapstructure:"outreach"`
}

// EmbeddingConfig selects and tunes the embedding provider.
type EmbeddingConfig struct {
	Provider     string `mapstructure:"provider" validate:"omitempty,oneof=gemini openai hashing"`
	Model        string `mapstructure:"model"`
	Dimension    int    `mapstructure:"dimension" validate:"gte=0"`
	BatchSize    int    `mapstructure:"batch-size" validate:"gte=0"`
	Concurrency  int    `mapstructure:"concurrency" validate:"gte=0"`
	BaseURL      string `mapstructure:"base-url" validate:"omitempty,url"`
	GeminiAPIKey string `mapstructure:"gemini-api-key"`
	OpenAIAPIKey string `mapstructure:"openai-api-key"`
}

// RedisConfig enables the shared embedding cache when Addr is set.
type RedisConfig struct {
	Addr string        `mapstructure:"addr" validate:"omitempty,hostname_port"`
	DB   int           `mapstructure:"db" validate:"gte=0"`
	TTL  time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

// MatchingConfig tunes resume-to-opportunity matching.
type MatchingConfig struct {
	TopN        int `mapstructure:"top-n" validate:"gte=0"`
	Concurrency int `mapstructure:"concurrency" validate:"gte=0"`
	// CorpusLimit caps the rows read from the database source
	CorpusLimit int `mapstructure:"corpus-limit" validate:"gte=0"`
}

// RankingConfig tunes weighted candidate ranking.
type RankingConfig struct {
	RulesPath      string             `mapstructure:"rules-path"`
	Weights        map[string]float64 `mapstructure:"weights" validate:"dive,keys,required,endkeys,gte=0"`
	RequiredSkills []string           `mapstructure:"required-skills" validate:"dive,required"`
	ReferenceYear  int                `mapstructure:"reference-year" validate:"omitempty,gte=1900,lte=2200"`
	Filter         string             `mapstructure:"filter"`
	TopN           int                `mapstructure:"top-n" validate:"gte=0"`
	Concurrency    int                `mapstructure:"concurrency" validate:"gte=0"`
}

// OutreachConfig describes the role named in outreach messages.
type OutreachConfig struct {
	Role     string `mapstructure:"role"`
	Company  string `mapstructure:"company"`
	Template string `mapstructure:"template"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Embedding: EmbeddingConfig{
			Provider:    "hashing",
			Dimension:   384,
			BatchSize:   32,
			Concurrency: 4,
		},
		Redis: RedisConfig{
			TTL: 7 * 24 * time.Hour,
		},
		Matching: MatchingConfig{
			TopN:        2,
			Concurrency: 8,
			CorpusLimit: 500,
		},
		Ranking: RankingConfig{
			RequiredSkills: []string{"Python", "AWS", "GCP", "React", "TypeScript", "System Design"},
			TopN:           10,
			Concurrency:    8,
		},
		Outreach: OutreachConfig{
			Role:     "Founding Engineer",
			Company:  "Probook AI",
			Template: "linkedin",
		},
	}
}

// Load reads configuration from path, or from matcher.yaml in the working
// directory when path is empty. A missing default file is not an error.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := bindProviderEnv(v); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so that environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("embedding.provider", d.Embedding.Provider)
	v.SetDefault("embedding.model", d.Embedding.Model)
	v.SetDefault("embedding.dimension", d.Embedding.Dimension)
	v.SetDefault("embedding.batch-size", d.Embedding.BatchSize)
	v.SetDefault("embedding.concurrency", d.Embedding.Concurrency)
	v.SetDefault("embedding.base-url", d.Embedding.BaseURL)
	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("redis.db", d.Redis.DB)
	v.SetDefault("redis.ttl", d.Redis.TTL)
	v.SetDefault("database-url", d.DatabaseURL)
	v.SetDefault("matching.top-n", d.Matching.TopN)
	v.SetDefault("matching.concurrency", d.Matching.Concurrency)
	v.SetDefault("matching.corpus-limit", d.Matching.CorpusLimit)
	v.SetDefault("ranking.rules-path", d.Ranking.RulesPath)
	v.SetDefault("ranking.required-skills", d.Ranking.RequiredSkills)
	v.SetDefault("ranking.reference-year", d.Ranking.ReferenceYear)
	v.SetDefault("ranking.filter", d.Ranking.Filter)
	v.SetDefault("ranking.top-n", d.Ranking.TopN)
	v.SetDefault("ranking.concurrency", d.Ranking.Concurrency)
	v.SetDefault("outreach.role", d.Outreach.Role)
	v.SetDefault("outreach.company", d.Outreach.Company)
	v.SetDefault("outreach.template", d.Outreach.Template)
}

// bindProviderEnv accepts the providers' conventional variable names as well as
// the prefixed ones.
func bindProviderEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"embedding.gemini-api-key": {"MATCHER_EMBEDDING_GEMINI_API_KEY", "GEMINI_API_KEY"},
		"embedding.openai-api-key": {"MATCHER_EMBEDDING_OPENAI_API_KEY", "OPENAI_API_KEY"},
		"redis.addr":               {"MATCHER_REDIS_ADDR", "REDIS_ADDR"},
		"database-url":             {"MATCHER_DATABASE_URL", "DATABASE_URL"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("binding %s environment variables: %w", key, err)
		}
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: %s failed %q validation", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	switch c.Embedding.Provider {
	case "gemini":
		if c.Embedding.GeminiAPIKey == "" {
			return fmt.Errorf("config error: embedding provider gemini requires an API key (GEMINI_API_KEY)")
		}
	case "openai":
		if c.Embedding.OpenAIAPIKey == "" && c.Embedding.BaseURL == "" {
			return fmt.Errorf("config error: embedding provider openai requires an API key (OPENAI_API_KEY)")
		}
	}
	return nil
}

// APIKey returns the key for the configured embedding provider.
func (c *Config) APIKey() string {
	switch c.Embedding.Provider {
	case "gemini":
		return c.Embedding.GeminiAPIKey
	case "openai":
		return c.Embedding.OpenAIAPIKey
	default:
		return ""
	}
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	result.Embedding.Provider = orString(result.Embedding.Provider, defaults.Embedding.Provider)
	result.Embedding.Model = orString(result.Embedding.Model, defaults.Embedding.Model)
	result.Embedding.BaseURL = orString(result.Embedding.BaseURL, defaults.Embedding.BaseURL)
	result.Embedding.GeminiAPIKey = orString(result.Embedding.GeminiAPIKey, defaults.Embedding.GeminiAPIKey)
	result.Embedding.OpenAIAPIKey = orString(result.Embedding.OpenAIAPIKey, defaults.Embedding.OpenAIAPIKey)
	result.Redis.Addr = orString(result.Redis.Addr, defaults.Redis.Addr)
	result.DatabaseURL = orString(result.DatabaseURL, defaults.DatabaseURL)
	result.Ranking.RulesPath = orString(result.Ranking.RulesPath, defaults.Ranking.RulesPath)
	result.Ranking.Filter = orString(result.Ranking.Filter, defaults.Ranking.Filter)
	result.Outreach.Role = orString(result.Outreach.Role, defaults.Outreach.Role)
	result.Outreach.Company = orString(result.Outreach.Company, defaults.Outreach.Company)
	result.Outreach.Template = orString(result.Outreach.Template, defaults.Outreach.Template)

	// Int fields: use default if zero
	result.Embedding.Dimension = orInt(result.Embedding.Dimension, defaults.Embedding.Dimension)
	result.Embedding.BatchSize = orInt(result.Embedding.BatchSize, defaults.Embedding.BatchSize)
	result.Embedding.Concurrency = orInt(result.Embedding.Concurrency, defaults.Embedding.Concurrency)
	result.Redis.DB = orInt(result.Redis.DB, defaults.Redis.DB)
	result.Matching.TopN = orInt(result.Matching.TopN, defaults.Matching.TopN)
	result.Matching.Concurrency = orInt(result.Matching.Concurrency, defaults.Matching.Concurrency)
	result.Matching.CorpusLimit = orInt(result.Matching.CorpusLimit, defaults.Matching.CorpusLimit)
	result.Ranking.ReferenceYear = orInt(result.Ranking.ReferenceYear, defaults.Ranking.ReferenceYear)
	result.Ranking.TopN = orInt(result.Ranking.TopN, defaults.Ranking.TopN)
	result.Ranking.Concurrency = orInt(result.Ranking.Concurrency, defaults.Ranking.Concurrency)

	if result.Redis.TTL == 0 {
		result.Redis.TTL = defaults.Redis.TTL
	}

	// Collections: an explicit empty value cannot be told apart from unset
	if len(result.Ranking.Weights) == 0 {
		result.Ranking.Weights = defaults.Ranking.Weights
	}
	if len(result.Ranking.RequiredSkills) == 0 {
		result.Ranking.RequiredSkills = defaults.Ranking.RequiredSkills
	}

	return result
}

func orString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
