package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Google    GoogleConfig
	Groq      GroqConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string `envconfig:"PORT" default:"8080"`
	Host            string `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"email_scheduler"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns int    `envconfig:"DB_MIN_CONNS" default:"5"`
	// AutoMigrate applies migrations on boot. Development convenience only;
	// production schema is managed with sql-migrate.
	AutoMigrate bool `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// GoogleConfig holds Google API credentials. The refresh token authorizes a
// single mailbox/calendar pair; AuthorizedEmail is that account's address.
type GoogleConfig struct {
	ClientID        string `envconfig:"GOOGLE_CLIENT_ID"`
	ClientSecret    string `envconfig:"GOOGLE_CLIENT_SECRET"`
	RefreshToken    string `envconfig:"GOOGLE_REFRESH_TOKEN"`
	AuthorizedEmail string `envconfig:"AUTHORIZED_EMAIL"`
}

// GroqConfig holds LLM provider configuration
type GroqConfig struct {
	APIKey  string `envconfig:"GROQ_API_KEY"`
	BaseURL string `envconfig:"GROQ_API_URL" default:"https://api.groq.com"`
	Model   string `envconfig:"GROQ_MODEL" default:"llama-3.1-70b-versatile"`
}

// SchedulerConfig holds scheduling and ingestion tuning knobs
type SchedulerConfig struct {
	BufferMinutes   int           `envconfig:"CONFLICT_BUFFER_MINUTES" default:"15"`
	FastPoll        time.Duration `envconfig:"INGEST_FAST_POLL" default:"10s"`
	SweepInterval   time.Duration `envconfig:"INGEST_SWEEP_INTERVAL" default:"300s"`
	DefaultAttendee string        `envconfig:"DEFAULT_ATTENDEE" default:""`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Groq.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	return nil
}

// HasGoogleCredentials reports whether the mailbox/calendar integration can
// be started. The HTTP surface stays up without it.
func (c *Config) HasGoogleCredentials() bool {
	return c.Google.ClientID != "" &&
		c.Google.ClientSecret != "" &&
		c.Google.RefreshToken != ""
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

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
