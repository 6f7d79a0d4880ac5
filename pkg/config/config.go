package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	GeneratorBuiltin = "builtin"
	GeneratorOpenAI  = "openai"
	GeneratorOllama  = "ollama"
	GeneratorGemini  = "gemini"

	MaxPages = 12
)

// Config is read from STORYTIME_* environment variables and an optional .env file.
type Config struct {
	DBPath    string `envconfig:"DB_PATH"`
	ExportDir string `envconfig:"EXPORT_DIR"`

	Generator string        `envconfig:"GENERATOR" default:"builtin"`
	AIBaseURL string        `envconfig:"AI_BASE_URL"`
	AIModel   string        `envconfig:"AI_MODEL"`
	AIAPIKey  string        `envconfig:"AI_API_KEY"`
	AITimeout time.Duration `envconfig:"AI_TIMEOUT" default:"90s"`
	Pages     int           `envconfig:"PAGES" default:"5"`

	User string `envconfig:"USER"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE"`
}

// Load reads the configuration and fills path defaults under the home directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("storytime", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills empty paths, the user and the model for the chosen generator.
func (c *Config) ApplyDefaults() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	dataDir := filepath.Join(homeDir, ".storytime")

	if c.DBPath == "" {
		c.DBPath = filepath.Join(dataDir, "stories.db")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(dataDir, "storytime.log")
	}
	if c.ExportDir == "" {
		c.ExportDir = filepath.Join(homeDir, "Downloads")
	}
	if c.User == "" {
		c.User = os.Getenv("USER")
	}
	if c.User == "" {
		c.User = "guest"
	}
	if c.AIModel == "" {
		c.AIModel = defaultModel(c.Generator)
	}
}

func defaultModel(generator string) string {
	switch generator {
	case GeneratorOpenAI:
		return "gpt-4o-mini"
	case GeneratorOllama:
		return "llama3.2"
	case GeneratorGemini:
		return "gemini-2.0-flash"
	}
	return ""
}

func (c *Config) Validate() error {
	c.Generator = strings.ToLower(strings.TrimSpace(c.Generator))
	switch c.Generator {
	case GeneratorBuiltin, GeneratorOllama:
	case GeneratorOpenAI, GeneratorGemini:
		if c.AIAPIKey == "" {
			return fmt.Errorf("generator %q requires STORYTIME_AI_API_KEY", c.Generator)
		}
	default:
		return fmt.Errorf("unknown generator %q (want builtin, openai, ollama or gemini)", c.Generator)
	}

	if c.Pages < 1 || c.Pages > MaxPages {
		return fmt.Errorf("pages must be between 1 and %d, got %d", MaxPages, c.Pages)
	}
	if c.AITimeout <= 0 {
		return fmt.Errorf("ai timeout must be positive, got %v", c.AITimeout)
	}
	return nil
}
