package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Transcription provider names
const (
	ProviderGroq       = "groq"
	ProviderAssemblyAI = "assemblyai"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig     `envconfig:"SERVER"`
	Database   DatabaseConfig   `envconfig:"DB"`
	Redis      RedisConfig      `envconfig:"REDIS"`
	Storage    StorageConfig    `envconfig:"STORAGE"`
	Groq       GroqConfig       `envconfig:"GROQ"`
	AssemblyAI AssemblyAIConfig `envconfig:"ASSEMBLYAI"`
	Pipeline   PipelineConfig   `envconfig:"PIPELINE"`
	Auth       AuthConfig       `envconfig:"AUTH"`
	Share      ShareConfig      `envconfig:"SHARE"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `split_words:"true" default:"8080"`
	Host            string        `split_words:"true" default:"0.0.0.0"`
	Environment     string        `split_words:"true" default:"development"`
	AllowedOrigins  []string      `split_words:"true" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `split_words:"true" default:"10s"`
	AppURL          string        `split_words:"true" default:"http://localhost:3000"`
	MaxUploadMB     int64         `split_words:"true" default:"500"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `split_words:"true" default:"localhost"`
	Port        string `split_words:"true" default:"5432"`
	User        string `split_words:"true" default:"postgres"`
	Password    string `split_words:"true" default:"postgres"`
	Name        string `split_words:"true" default:"meeting_insights"`
	SSLMode     string `split_words:"true" default:"disable"`
	MaxConns    int    `split_words:"true" default:"25"`
	MinConns    int    `split_words:"true" default:"5"`
	AutoMigrate bool   `split_words:"true" default:"false"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `split_words:"true" default:"false"`
	Host     string `split_words:"true" default:"localhost"`
	Port     string `split_words:"true" default:"6379"`
	Password string `split_words:"true"`
	DB       int    `split_words:"true" default:"0"`
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Endpoint  string `split_words:"true" default:"localhost:9000"`
	AccessKey string `split_words:"true" default:"minioadmin"`
	SecretKey string `split_words:"true" default:"minioadmin"`
	Bucket    string `split_words:"true" default:"recordings"`
	UseSSL    bool   `split_words:"true" default:"false"`
}

// GroqConfig holds Groq API configuration
type GroqConfig struct {
	APIKey             string  `split_words:"true"`
	BaseURL            string  `split_words:"true" default:"https://api.groq.com"`
	TranscriptionModel string  `split_words:"true" default:"whisper-large-v3"`
	SummaryModel       string  `split_words:"true" default:"llama-3.1-8b-instant"`
	Language           string  `split_words:"true" default:"en"`
	Temperature        float64 `split_words:"true" default:"0.1"`
	MaxTokens          int     `split_words:"true" default:"2000"`
}

// AssemblyAIConfig holds AssemblyAI configuration
type AssemblyAIConfig struct {
	APIKey string `split_words:"true"`
}

// PipelineConfig holds transcription and summarization run limits
type PipelineConfig struct {
	TranscriptionProvider string        `split_words:"true" default:"groq"`
	TranscriptionTimeout  time.Duration `split_words:"true" default:"5m"`
	SummarizationTimeout  time.Duration `split_words:"true" default:"2m"`
	RetryMaxElapsed       time.Duration `split_words:"true" default:"30s"`
	WatchdogEnabled       bool          `split_words:"true" default:"true"`
	WatchdogInterval      time.Duration `split_words:"true" default:"1m"`
	StaleAfter            time.Duration `split_words:"true" default:"15m"`
}

// AuthConfig holds API authentication configuration
type AuthConfig struct {
	// JWTSecret enables bearer-token auth on /v1/meetings when non-empty
	JWTSecret string        `split_words:"true"`
	Issuer    string        `split_words:"true" default:"meeting-insights"`
	TokenTTL  time.Duration `split_words:"true" default:"24h"`
}

// ShareConfig holds share link configuration
type ShareConfig struct {
	DefaultExpiryDays int `split_words:"true" default:"30"`
	MaxExpiryDays     int `split_words:"true" default:"365"`
}

// Load reads and validates configuration from environment variables.
// Nested sections are prefixed, e.g. GROQ_API_KEY or PIPELINE_STALE_AFTER.
func Load() (*Config, error) {
	config, err := Read()
	if err != nil {
		return nil, err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Read loads configuration without validating provider settings. Tools that
// only touch the database use it.
func Read() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{}
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch strings.ToLower(c.Pipeline.TranscriptionProvider) {
	case ProviderGroq:
		if c.Groq.APIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required")
		}
	case ProviderAssemblyAI:
		if c.AssemblyAI.APIKey == "" {
			return fmt.Errorf("ASSEMBLYAI_API_KEY is required when PIPELINE_TRANSCRIPTION_PROVIDER=assemblyai")
		}
		if c.Groq.APIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required for summarization")
		}
	default:
		return fmt.Errorf("unknown PIPELINE_TRANSCRIPTION_PROVIDER %q", c.Pipeline.TranscriptionProvider)
	}
	if c.Pipeline.TranscriptionTimeout <= 0 || c.Pipeline.SummarizationTimeout <= 0 {
		return fmt.Errorf("pipeline timeouts must be positive")
	}
	if c.Pipeline.WatchdogEnabled {
		// A live run must hit its own timeout before the watchdog may release it.
		longest := max(c.Pipeline.TranscriptionTimeout, c.Pipeline.SummarizationTimeout)
		if c.Pipeline.StaleAfter <= longest {
			return fmt.Errorf("PIPELINE_STALE_AFTER (%s) must exceed the longest pipeline timeout (%s)", c.Pipeline.StaleAfter, longest)
		}
		if c.Pipeline.WatchdogInterval <= 0 {
			return fmt.Errorf("PIPELINE_WATCHDOG_INTERVAL must be positive")
		}
	}
	if c.Share.DefaultExpiryDays <= 0 || c.Share.DefaultExpiryDays > c.Share.MaxExpiryDays {
		return fmt.Errorf("SHARE_DEFAULT_EXPIRY_DAYS must be between 1 and SHARE_MAX_EXPIRY_DAYS")
	}
	return nil
}

// IsProduction reports whether the server runs in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Addr returns the Redis address
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}
