package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the prepmate service.
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Interview InterviewConfig `mapstructure:"interview"`
	Session   SessionConfig   `mapstructure:"session"`
	Patients  PatientsConfig  `mapstructure:"patients"`
	Research  ResearchConfig  `mapstructure:"research"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Listen   string `mapstructure:"listen"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// ProvidersConfig groups the external model endpoints.
type ProvidersConfig struct {
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
}

// OpenAIConfig describes an OpenAI-compatible chat completion endpoint.
// BaseURL makes OpenRouter and other compatible gateways usable unchanged.
type OpenAIConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	CompletionModel string        `mapstructure:"completion_model"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// EmbeddingConfig describes an OpenAI-compatible embeddings endpoint.
// Left empty, the chat endpoint's key and base URL are reused.
type EmbeddingConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// InterviewConfig carries the retrieval and windowing knobs of the
// interview pipeline.
type InterviewConfig struct {
	ChunkSize     int `mapstructure:"chunk_size"`
	ChunkOverlap  int `mapstructure:"chunk_overlap"`
	CVTopK        int `mapstructure:"cv_top_k"`
	JDTopK        int `mapstructure:"jd_top_k"`
	HistoryWindow int `mapstructure:"history_window"`
	ScoreWindow   int `mapstructure:"score_window"`
}

func (i InterviewConfig) Validate() error {
	if i.ChunkSize <= 0 {
		return fmt.Errorf("interview.chunk_size must be > 0")
	}
	if i.ChunkOverlap < 0 || i.ChunkOverlap >= i.ChunkSize {
		return fmt.Errorf("interview.chunk_overlap must be in [0, chunk_size)")
	}
	return nil
}

// SessionConfig selects the session store backend.
type SessionConfig struct {
	Store string        `mapstructure:"store"` // inmemory or redis
	TTL   time.Duration `mapstructure:"ttl"`
	Redis RedisConfig   `mapstructure:"redis"`
}

// RedisConfig contains connection settings for the optional redis-backed
// session snapshot store.
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Pass string `mapstructure:"pass"`
	DB   int    `mapstructure:"db"`
}

func (s SessionConfig) Validate() error {
	switch s.Store {
	case "", "inmemory":
		return nil
	case "redis":
		if strings.TrimSpace(s.Redis.Host) == "" || strings.TrimSpace(s.Redis.Port) == "" {
			return fmt.Errorf("session.redis.host/port required when session.store is redis")
		}
		return nil
	default:
		return fmt.Errorf("unsupported session.store: %s", s.Store)
	}
}

// PatientsConfig locates the JSON file backing the patient records API.
type PatientsConfig struct {
	DataFile string `mapstructure:"data_file"`
}

// ResearchConfig tunes the research assistant's evidence gathering.
type ResearchConfig struct {
	WikipediaResults int `mapstructure:"wikipedia_results"`
	ArxivResults     int `mapstructure:"arxiv_results"`
}

// LoadConfig loads config from file, falling back to defaults and
// PREPMATE_* environment variables when no file is present.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	viper.SetDefault("general.listen", ":8000")
	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("providers.openai.base_url", "https://api.openai.com/v1")
	viper.SetDefault("providers.openai.completion_model", "gpt-4o-mini")
	viper.SetDefault("providers.openai.temperature", 0.9)
	viper.SetDefault("providers.openai.timeout", 60*time.Second)
	viper.SetDefault("providers.embedding.model", "text-embedding-3-small")
	viper.SetDefault("interview.chunk_size", 800)
	viper.SetDefault("interview.chunk_overlap", 150)
	viper.SetDefault("interview.cv_top_k", 3)
	viper.SetDefault("interview.jd_top_k", 2)
	viper.SetDefault("interview.history_window", 3)
	viper.SetDefault("interview.score_window", 20)
	viper.SetDefault("session.store", "inmemory")
	viper.SetDefault("session.ttl", 48*time.Hour)
	viper.SetDefault("patients.data_file", "patients.json")
	viper.SetDefault("research.wikipedia_results", 1)
	viper.SetDefault("research.arxiv_results", 2)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("PREPMATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// a missing file is fine: defaults plus env cover every knob
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
	if err := config.Interview.Validate(); err != nil {
		panic(err)
	}
	if err := config.Session.Validate(); err != nil {
		panic(err)
	}
	return &config
}
