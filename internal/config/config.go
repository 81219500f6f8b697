package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "CURATOR_CONFIG"
	databasePathEnv   = "DATABASE_PATH"
	httpAddrEnv       = "HTTP_ADDR"
	openAIAPIKeyEnv   = "OPENAI_API_KEY"
	openAIModelEnv    = "OPENAI_MODEL"
	cohereAPIKeyEnv   = "COHERE_API_KEY"
	cohereModelEnv    = "COHERE_MODEL"
	targetLanguageEnv = "TARGET_LANGUAGE"
	logLevelEnv       = "LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Server     ServerConfig     `yaml:"server"`
	Completion CompletionConfig `yaml:"completion"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	Feeds      []FeedConfig     `yaml:"feeds"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// DatabaseConfig describes the sqlite database location.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig describes the admin HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// CompletionConfig groups the available text-completion providers.
type CompletionConfig struct {
	OpenAI OpenAIConfig `yaml:"openai"`
	Cohere CohereConfig `yaml:"cohere"`
}

// OpenAIConfig defines how to contact an OpenAI-compatible API.
type OpenAIConfig struct {
	Endpoint    string  `yaml:"endpoint"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"apiKey"`
	Temperature float64 `yaml:"temperature"`
}

// CohereConfig defines how to contact the Cohere Chat API.
type CohereConfig struct {
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"apiKey"`
	Temperature float64 `yaml:"temperature"`
}

// EnrichmentConfig tunes the pipeline stages.
type EnrichmentConfig struct {
	TargetLanguage   string   `yaml:"targetLanguage"`
	Vocabulary       []string `yaml:"vocabulary"`
	FallbackCategory string   `yaml:"fallbackCategory"`
	ChunkRunes       int      `yaml:"chunkRunes"`
	OverlapRunes     int      `yaml:"overlapRunes"`
}

// SchedulerConfig defines when feed ingestion and enrichment run.
type SchedulerConfig struct {
	CronExpression string `yaml:"cronExpression"`
	Enabled        bool   `yaml:"enabled"`
}

// FeedConfig describes one RSS/Atom source to discover articles from.
type FeedConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databasePathEnv); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(httpAddrEnv); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.Completion.OpenAI.APIKey = v
	}
	if v := os.Getenv(openAIModelEnv); v != "" {
		c.Completion.OpenAI.Model = v
	}
	if v := os.Getenv(cohereAPIKeyEnv); v != "" {
		c.Completion.Cohere.APIKey = v
	}
	if v := os.Getenv(cohereModelEnv); v != "" {
		c.Completion.Cohere.Model = v
	}
	if v := os.Getenv(targetLanguageEnv); v != "" {
		c.Enrichment.TargetLanguage = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Database.Path != "" {
		base.Database = override.Database
	}
	if override.Server.Addr != "" {
		base.Server = override.Server
	}

	if override.Completion.OpenAI.Endpoint != "" {
		base.Completion.OpenAI.Endpoint = override.Completion.OpenAI.Endpoint
	}
	if override.Completion.OpenAI.Model != "" {
		base.Completion.OpenAI.Model = override.Completion.OpenAI.Model
	}
	if override.Completion.OpenAI.APIKey != "" {
		base.Completion.OpenAI.APIKey = override.Completion.OpenAI.APIKey
	}
	if override.Completion.OpenAI.Temperature != 0 {
		base.Completion.OpenAI.Temperature = override.Completion.OpenAI.Temperature
	}
	if override.Completion.Cohere.Model != "" {
		base.Completion.Cohere.Model = override.Completion.Cohere.Model
	}
	if override.Completion.Cohere.APIKey != "" {
		base.Completion.Cohere.APIKey = override.Completion.Cohere.APIKey
	}
	if override.Completion.Cohere.Temperature != 0 {
		base.Completion.Cohere.Temperature = override.Completion.Cohere.Temperature
	}

	if override.Enrichment.TargetLanguage != "" {
		base.Enrichment.TargetLanguage = override.Enrichment.TargetLanguage
	}
	if len(override.Enrichment.Vocabulary) > 0 {
		base.Enrichment.Vocabulary = override.Enrichment.Vocabulary
	}
	if override.Enrichment.FallbackCategory != "" {
		base.Enrichment.FallbackCategory = override.Enrichment.FallbackCategory
	}
	if override.Enrichment.ChunkRunes > 0 {
		base.Enrichment.ChunkRunes = override.Enrichment.ChunkRunes
	}
	if override.Enrichment.OverlapRunes > 0 {
		base.Enrichment.OverlapRunes = override.Enrichment.OverlapRunes
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler = override.Scheduler
	}
	if len(override.Feeds) > 0 {
		base.Feeds = override.Feeds
	}
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Database: DatabaseConfig{Path: "curator.db"},
		Server:   ServerConfig{Addr: ":8080"},
		Completion: CompletionConfig{
			OpenAI: OpenAIConfig{
				Endpoint:    "https://api.openai.com/v1/chat/completions",
				Model:       "gpt-4o",
				Temperature: 0.2,
			},
			Cohere: CohereConfig{
				Model:       "command-r-plus",
				Temperature: 0.2,
			},
		},
		Enrichment: EnrichmentConfig{
			TargetLanguage: "Korean",
		},
		Scheduler: SchedulerConfig{CronExpression: "0 6 * * *"},
		Logging:   LoggingConfig{Level: "info"},
	}
}
