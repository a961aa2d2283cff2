package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/noahvandal/arxiv-digest/internal/fetcher"
	"github.com/noahvandal/arxiv-digest/internal/llm"
	"github.com/noahvandal/arxiv-digest/internal/summarizer"
)

type Config struct {
	Category string        `yaml:"category"`
	Schedule string        `yaml:"schedule"`
	OutDir   string        `yaml:"out_dir"`
	PageSize int           `yaml:"page_size"`
	LLM      LLMConfig     `yaml:"llm"`
	Summary  SummaryConfig `yaml:"summary"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
}

type SummaryConfig struct {
	MaxPages   int `yaml:"max_pages"`
	CharBudget int `yaml:"char_budget"`
}

// apiKeyEnvVars maps each provider to the env var its key falls back to.
var apiKeyEnvVars = map[string]string{
	"anthropic": "ANTHROPIC_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"google":    "GOOGLE_API_KEY",
	"groq":      "GROQ_API_KEY",
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = fetcher.DefaultPageSize
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "anthropic"
	}
	if cfg.Summary.MaxPages == 0 {
		cfg.Summary.MaxPages = summarizer.DefaultMaxPages
	}
	if cfg.Summary.CharBudget == 0 {
		cfg.Summary.CharBudget = summarizer.DefaultCharBudget
	}
}

// Resolve fills provider-dependent defaults after CLI overrides are applied:
// the provider's default model and the API key env var fallback.
func (cfg *Config) Resolve() {
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = llm.DefaultModel(cfg.LLM.Provider)
	}
	if cfg.LLM.APIKey == "" {
		if envVar, ok := apiKeyEnvVars[cfg.LLM.Provider]; ok {
			cfg.LLM.APIKey = os.Getenv(envVar)
		}
	}
}

// Validate checks the configuration is runnable.
func (cfg *Config) Validate() error {
	if cfg.Category == "" {
		return fmt.Errorf("config: category is required (e.g. cs.AI)")
	}
	supported := llm.Supported()
	found := false
	for _, p := range supported {
		if p == cfg.LLM.Provider {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config: %w: %q (supported: %s)",
			llm.ErrUnsupportedProvider, cfg.LLM.Provider, strings.Join(supported, ", "))
	}
	if cfg.LLM.APIKey == "" {
		envVar := apiKeyEnvVars[cfg.LLM.Provider]
		return fmt.Errorf("config: llm.api_key is required (set %s or pass -api-key)", envVar)
	}
	if cfg.PageSize < 0 {
		return fmt.Errorf("config: page_size must be positive")
	}
	return nil
}

// Load reads a config file, expands environment variables, and applies
// defaults. Validation happens separately so CLI flags can override file
// values first.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	setDefaults(&cfg)

	return &cfg, nil
}
