package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         App         `mapstructure:"app"`
	AI          AI          `mapstructure:"ai"`
	Search      Search      `mapstructure:"search"`
	Generation  Generation  `mapstructure:"generation"`
	Translation Translation `mapstructure:"translation"`
	Store       Store       `mapstructure:"store"`
}

// App holds general application configuration
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	DataDir  string `mapstructure:"data_dir"`
}

// AI holds completion API configuration
type AI struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url" validate:"required,url"`
	Model       string  `mapstructure:"model" validate:"required"`
	MaxTokens   int     `mapstructure:"max_tokens" validate:"gt=0"`
	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	Timeout     string  `mapstructure:"timeout"`
}

// Search holds trend search backend configuration
type Search struct {
	MaxResults int             `mapstructure:"max_results" validate:"gt=0"`
	Language   string          `mapstructure:"language"`
	Providers  SearchProviders `mapstructure:"providers"`
}

// SearchProviders holds configuration for all search backends,
// ranked primary (serpapi), secondary (google), tertiary (newsapi).
type SearchProviders struct {
	SerpAPI SerpAPIConfig      `mapstructure:"serpapi"`
	Google  GoogleSearchConfig `mapstructure:"google"`
	NewsAPI NewsAPIConfig      `mapstructure:"newsapi"`
}

// SerpAPIConfig holds SerpAPI configuration
type SerpAPIConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// GoogleSearchConfig holds Google Custom Search configuration
type GoogleSearchConfig struct {
	APIKey   string `mapstructure:"api_key"`
	SearchID string `mapstructure:"search_id"`
}

// NewsAPIConfig holds NewsAPI configuration
type NewsAPIConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// Generation holds article generation defaults
type Generation struct {
	Author         string `mapstructure:"author"`
	Language       string `mapstructure:"language"`
	TargetWords    int    `mapstructure:"target_words" validate:"gt=0"`
	BatchDelay     string `mapstructure:"batch_delay"`
	ResearchOnline bool   `mapstructure:"research_online"`
}

// Translation holds translator configuration
type Translation struct {
	SourceLocale  string   `mapstructure:"source_locale" validate:"required"`
	TargetLocales []string `mapstructure:"target_locales"`
}

// Store holds document store configuration
type Store struct {
	Path string `mapstructure:"path" validate:"required"`
}

var globalConfig *Config

// Load loads the configuration from .env, config file, environment and
// defaults, in the usual viper precedence order.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists (for local development)
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".draftforge")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the cached configuration. Intended for tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.data_dir", ".draftforge")

	viper.SetDefault("ai.base_url", "https://api.openai.com/v1")
	viper.SetDefault("ai.model", "gpt-4o-mini")
	viper.SetDefault("ai.max_tokens", 4096)
	viper.SetDefault("ai.temperature", 0.7)
	viper.SetDefault("ai.timeout", "120s")

	viper.SetDefault("search.max_results", 10)
	viper.SetDefault("search.language", "en")

	viper.SetDefault("generation.author", "draftforge")
	viper.SetDefault("generation.language", "en")
	viper.SetDefault("generation.target_words", 2000)
	viper.SetDefault("generation.batch_delay", "5s")
	viper.SetDefault("generation.research_online", false)

	viper.SetDefault("translation.source_locale", "en")
	viper.SetDefault("translation.target_locales", []string{})

	viper.SetDefault("store.path", ".draftforge/articles.db")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("ai.api_key", []string{
		"OPENAI_API_KEY",
		"DRAFTFORGE_API_KEY",
	})

	bindEnvKeys("search.providers.serpapi.api_key", []string{
		"SERPAPI_API_KEY",
		"SERPAPI_KEY",
	})

	bindEnvKeys("search.providers.google.api_key", []string{
		"GOOGLE_CUSTOM_SEARCH_API_KEY",
		"GOOGLE_CSE_API_KEY",
	})

	bindEnvKeys("search.providers.google.search_id", []string{
		"GOOGLE_CUSTOM_SEARCH_ID",
		"GOOGLE_CSE_ID",
	})

	bindEnvKeys("search.providers.newsapi.api_key", []string{
		"NEWSAPI_API_KEY",
		"NEWS_API_KEY",
	})
}

// bindEnvKeys binds the first set environment variable from names to key.
func bindEnvKeys(key string, names []string) {
	for _, name := range names {
		if value := os.Getenv(name); value != "" {
			viper.Set(key, value)
			return
		}
	}
	_ = viper.BindEnv(append([]string{key}, names...)...)
}
