package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Cache   CacheConfig   `yaml:"cache"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int    `yaml:"port"`
	Host           string `yaml:"host"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// GetHost returns the server host, with ECS detection
func (c ServerConfig) GetHost() string {
	// On ECS/container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// Timeout returns the request timeout as a duration
func (c ServerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StorageConfig holds AWS storage configuration
type StorageConfig struct {
	CampaignBucket string `yaml:"campaign_bucket"`
	CampaignPrefix string `yaml:"campaign_prefix"`
	PersonTable    string `yaml:"person_table"`
	AuditTable     string `yaml:"audit_table"`
	AWSRegion      string `yaml:"aws_region"`
	AWSProfile     string `yaml:"aws_profile"`  // Empty string uses default credential chain (IAM role on ECS)
	AWSEndpoint    string `yaml:"aws_endpoint"` // LocalStack endpoint for local development
}

// GetAWSProfile returns the AWS profile, with environment variable override
func (c StorageConfig) GetAWSProfile() string {
	if envProfile := os.Getenv("AWS_PROFILE_OVERRIDE"); envProfile != "" {
		if envProfile == "none" || envProfile == "iam" {
			return "" // Use default credential chain (IAM role)
		}
		return envProfile
	}
	// On ECS/Lambda, don't use a profile - use IAM role
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return ""
	}
	return c.AWSProfile
}

// CacheConfig holds Redis cache configuration
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	RedisAddr  string `yaml:"redis_addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// TTL returns the cache entry lifetime as a duration
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// AuthConfig holds API key authentication configuration
type AuthConfig struct {
	Enabled bool     `yaml:"enabled"`
	APIKeys []string `yaml:"api_keys"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.TimeoutSeconds == 0 {
		cfg.Server.TimeoutSeconds = 30
	}
	if cfg.Storage.AWSRegion == "" {
		cfg.Storage.AWSRegion = "eu-west-2"
	}
	if cfg.Storage.CampaignPrefix == "" {
		cfg.Storage.CampaignPrefix = "campaigns/"
	}
	if cfg.Cache.RedisAddr == "" {
		cfg.Cache.RedisAddr = "localhost:6379"
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 300
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars on ECS.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("CAMPAIGN_BUCKET"); v != "" {
		cfg.Storage.CampaignBucket = v
	}
	if v := os.Getenv("CAMPAIGN_PREFIX"); v != "" {
		cfg.Storage.CampaignPrefix = v
	}
	if v := os.Getenv("PERSON_TABLE"); v != "" {
		cfg.Storage.PersonTable = v
	}
	if v := os.Getenv("AUDIT_TABLE"); v != "" {
		cfg.Storage.AuditTable = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.Storage.AWSRegion = v
	}
	if v := os.Getenv("AWS_ENDPOINT_URL"); v != "" {
		cfg.Storage.AWSEndpoint = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
		cfg.Cache.Enabled = true
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Cache.Password = v
	}
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil && ttl > 0 {
			cfg.Cache.TTLSeconds = ttl
		}
	}
	if v := os.Getenv("API_KEY"); v != "" {
		cfg.Auth.Enabled = true
		cfg.Auth.APIKeys = append(cfg.Auth.APIKeys, v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	return cfg, nil
}
