package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// The Odds API
	OddsAPIKey     string        `envconfig:"ODDS_API_KEY" required:"true"`
	OddsAPIBaseURL string        `envconfig:"ODDS_API_BASE_URL" default:"https://api.the-odds-api.com/v4"`
	OddsAPITimeout time.Duration `envconfig:"ODDS_API_TIMEOUT" default:"10s"`
	Sport          string        `envconfig:"SPORT" default:"americanfootball_nfl"`
	Bookmakers     string        `envconfig:"BOOKMAKERS" default:"fanduel"`
	MaxEventsScan  int           `envconfig:"MAX_EVENTS_PER_SCAN" default:"3"`

	// Stats API (player game logs and team defense totals)
	StatsAPIBaseURL string        `envconfig:"STATS_API_BASE_URL" default:"http://localhost:8091"`
	StatsAPIKey     string        `envconfig:"STATS_API_KEY" default:""`
	StatsAPITimeout time.Duration `envconfig:"STATS_API_TIMEOUT" default:"15s"`
	StatsNumGames   int           `envconfig:"STATS_NUM_GAMES" default:"7"`

	// Database
	DatabaseHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseName     string `envconfig:"DATABASE_NAME" default:"nfl_props"`
	DatabaseUser     string `envconfig:"DATABASE_USER" default:"props_user"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD" required:"true"`
	DatabaseSSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`

	// Redis
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Analysis
	MinEdge    float64 `envconfig:"MIN_EDGE" default:"3.0"`
	ParlayLegs int     `envconfig:"PARLAY_LEGS" default:"3"`
	RiskLevel  string  `envconfig:"RISK_LEVEL" default:"conservative"`
	RosterPath string  `envconfig:"ROSTER_PATH" default:""`

	// Scheduler
	EnableScheduler     bool          `envconfig:"ENABLE_SCHEDULER" default:"true"`
	InitialScanEnabled  bool          `envconfig:"INITIAL_SCAN_ENABLED" default:"true"`
	RankingsRefreshCron string        `envconfig:"RANKINGS_REFRESH_CRON" default:"0 3 * * *"`
	ScanInterval        time.Duration `envconfig:"SCAN_INTERVAL" default:"30m"`

	// API Rate Limiting
	APIRateLimit  int `envconfig:"API_RATE_LIMIT" default:"100"`
	APIBurstLimit int `envconfig:"API_BURST_LIMIT" default:"10"`

	// Caching TTL (in seconds)
	CacheTTLStats    int `envconfig:"CACHE_TTL_STATS" default:"3600"`    // 1 hour
	CacheTTLRankings int `envconfig:"CACHE_TTL_RANKINGS" default:"3600"` // 1 hour

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if in development mode
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.OddsAPIKey == "" {
		return fmt.Errorf("ODDS_API_KEY is required")
	}

	if c.DatabasePassword == "" {
		return fmt.Errorf("DATABASE_PASSWORD is required")
	}

	switch c.RiskLevel {
	case "conservative", "balanced", "aggressive":
	default:
		return fmt.Errorf("RISK_LEVEL must be conservative, balanced or aggressive, got %q", c.RiskLevel)
	}

	if c.ParlayLegs < 2 {
		return fmt.Errorf("PARLAY_LEGS must be at least 2, got %d", c.ParlayLegs)
	}

	return nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MustLoad loads configuration or panics on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
