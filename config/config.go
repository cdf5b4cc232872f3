package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Store   StoreConfig   `yaml:"store"`
	LLM     LLMConfig     `yaml:"llm"`
	Extract ExtractConfig `yaml:"extract"`
	Minio   MinioConfig   `yaml:"minio"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

type StoreConfig struct {
	MaxDocuments int `yaml:"max_documents"` // 0 = unlimited
}

type LLMConfig struct {
	GroqAPIKey     string `yaml:"groq_api_key"`
	GroqBaseURL    string `yaml:"groq_base_url"`
	GoogleAPIKey   string `yaml:"google_api_key"`
	GeminiBaseURL  string `yaml:"gemini_base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type ExtractConfig struct {
	APIURL   string `yaml:"api_url"`
	APIToken string `yaml:"api_token"`
}

type MinioConfig struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	Bucket     string `yaml:"bucket"`
	UseSSL     bool   `yaml:"use_ssl"`
	ExpireDays int    `yaml:"expire_days"`
}

// Load reads the YAML config file, applies defaults and overlays
// credentials from the environment. A missing file is not an error:
// the service can run entirely from environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.LLM.GroqBaseURL == "" {
		cfg.LLM.GroqBaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.LLM.GeminiBaseURL == "" {
		cfg.LLM.GeminiBaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.LLM.TimeoutSeconds == 0 {
		cfg.LLM.TimeoutSeconds = 30
	}
	if cfg.Minio.ExpireDays == 0 {
		cfg.Minio.ExpireDays = 7
	}
	if cfg.Store.MaxDocuments < 0 {
		cfg.Store.MaxDocuments = 0
	}

	// Environment overrides for credentials
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.LLM.GroqAPIKey = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		cfg.LLM.GoogleAPIKey = v
	}
	if v := os.Getenv("EXTRACT_API_TOKEN"); v != "" {
		cfg.Extract.APIToken = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		cfg.Minio.AccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.Minio.SecretKey = v
	}

	return &cfg, nil
}

// HasLLMCredentials reports whether at least one provider key is configured
func (c *Config) HasLLMCredentials() bool {
	return c.LLM.GroqAPIKey != "" || c.LLM.GoogleAPIKey != ""
}
