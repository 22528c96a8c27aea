package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const DefaultFile = "motionkb.yaml"

type Config struct {
	Project   string          `yaml:"project" envconfig:"PROJECT" default:"motionkb"`
	Database  DatabaseConfig  `yaml:"database" envconfig:"DB"`
	Embedding EmbeddingConfig `yaml:"embedding" envconfig:"EMBEDDING"`
	Log       LogConfig       `yaml:"log" envconfig:"LOG"`
	Scenes    ScenesConfig    `yaml:"scenes" envconfig:"SCENES"`
	Knowledge KnowledgeConfig `yaml:"knowledge" envconfig:"KNOWLEDGE"`
	Metrics   MetricsConfig   `yaml:"metrics" envconfig:"METRICS"`
}

type DatabaseConfig struct {
	// URL, when set, takes precedence over the individual fields.
	URL      string `yaml:"url" envconfig:"URL"`
	Host     string `yaml:"host" envconfig:"HOST" default:"localhost"`
	Port     int    `yaml:"port" envconfig:"PORT" default:"5432"`
	User     string `yaml:"user" envconfig:"USER" default:"postgres"`
	Password string `yaml:"password" envconfig:"PASSWORD"`
	Name     string `yaml:"name" envconfig:"NAME" default:"motionkb"`
	SSLMode  string `yaml:"sslmode" envconfig:"SSLMODE" default:"disable"`
	// Disabled skips the vector store and serves offline fixtures.
	Disabled bool `yaml:"disabled" envconfig:"DISABLED"`
}

type EmbeddingConfig struct {
	Provider  string        `yaml:"provider" envconfig:"PROVIDER" default:"mock"`
	APIKey    string        `yaml:"api_key" envconfig:"API_KEY"`
	Model     string        `yaml:"model" envconfig:"MODEL" default:"text-embedding-3-small"`
	BaseURL   string        `yaml:"base_url" envconfig:"BASE_URL" default:"https://api.openai.com/v1"`
	Dimension int           `yaml:"dimension" envconfig:"DIMENSION" default:"1536"`
	Timeout   time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"30s"`
}

type LogConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Encoding string `yaml:"encoding" envconfig:"ENCODING" default:"console"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
}

type ScenesConfig struct {
	Paths   []string `yaml:"paths" envconfig:"PATHS" default:"scenes"`
	Rules   string   `yaml:"rules" envconfig:"RULES"`
	Exclude []string `yaml:"exclude" envconfig:"EXCLUDE"`
}

type KnowledgeConfig struct {
	Paths []string `yaml:"paths" envconfig:"PATHS"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr" envconfig:"ADDR"`
}

// Load reads an optional .env file, then environment variables, then the
// YAML file at path. Values present in the file win over the environment.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}

	switch strings.ToLower(cfg.Embedding.Provider) {
	case "mock", "openai":
	default:
		return fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Dimension <= 0 {
		return fmt.Errorf("embedding dimension must be positive, got %d", cfg.Embedding.Dimension)
	}

	if cfg.Database.URL == "" && !cfg.Database.Disabled {
		if strings.TrimSpace(cfg.Database.Host) == "" {
			return fmt.Errorf("database host is required")
		}
		if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
			return fmt.Errorf("invalid database port: %d", cfg.Database.Port)
		}
	}

	seen := make(map[string]struct{})
	for i, path := range cfg.Scenes.Paths {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("scene path %d is empty", i)
		}
		key := strings.ToLower(path)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("duplicate scene path: %s", path)
		}
		seen[key] = struct{}{}
	}

	return nil
}

// DSN returns the connection string for the vector store.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	if d.Password != "" {
		u.User = url.UserPassword(d.User, d.Password)
	} else if d.User != "" {
		u.User = url.User(d.User)
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{d.SSLMode}}.Encode()
	}
	return u.String()
}
