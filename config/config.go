// Package config loads service configuration from an optional YAML file with
// environment variable overrides. Missing file and missing variables degrade
// to defaults; the service always starts.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Model providers accepted by Config.Provider.
const (
	ProviderMock      = "mock"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// Config is the full service configuration.
type Config struct {
	// AppName namespaces session and artifact keys.
	AppName string `yaml:"app_name"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`

	// Provider selects the model backend; ProviderMock needs no credentials.
	Provider string `yaml:"provider"`
	// Model is the provider-specific model identifier.
	Model string `yaml:"model"`
	// OllamaHost overrides the local Ollama endpoint.
	OllamaHost string `yaml:"ollama_host"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the baseline configuration used when no file and no
// environment overrides are present.
func Default() Config {
	return Config{
		AppName:   "consultmesh",
		Host:      "0.0.0.0",
		Port:      8080,
		Provider:  ProviderMock,
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load reads path (when non-empty and present), then applies environment
// overrides on top. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return cfg, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Addr returns the host:port listen address.
func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func (c Config) validate() error {
	switch c.Provider {
	case ProviderMock, ProviderOpenAI, ProviderAnthropic, ProviderOllama:
	default:
		return fmt.Errorf("unknown model provider %q", c.Provider)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.AppName, "CONSULT_APP_NAME")
	setString(&cfg.Host, "CONSULT_HOST")
	setString(&cfg.Provider, "CONSULT_PROVIDER")
	setString(&cfg.Model, "CONSULT_MODEL")
	setString(&cfg.OllamaHost, "CONSULT_OLLAMA_HOST")
	setString(&cfg.LogLevel, "CONSULT_LOG_LEVEL")
	setString(&cfg.LogFormat, "CONSULT_LOG_FORMAT")

	// PORT follows the platform convention used by most container runtimes.
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}
