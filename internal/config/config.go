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
	// Stats API
	StatsAPIKey  string        `envconfig:"STATS_API_KEY" required:"true"`
	StatsBaseURL string        `envconfig:"STATS_BASE_URL" default:"https://api.balldontlie.io/v1"`
	StatsTimeout time.Duration `envconfig:"STATS_TIMEOUT" default:"30s"`

	// Sun-time API
	SunBaseURL   string        `envconfig:"SUN_BASE_URL" default:"https://api.sunrise-sunset.org/json"`
	SunTimeout   time.Duration `envconfig:"SUN_TIMEOUT" default:"15s"`
	SunCallDelay time.Duration `envconfig:"SUN_CALL_DELAY" default:"500ms"`

	// Arena directory
	ArenaDirectoryURL string        `envconfig:"ARENA_DIRECTORY_URL" default:"https://en.wikipedia.org/wiki/List_of_NBA_arenas"`
	ScrapeDelay       time.Duration `envconfig:"SCRAPE_DELAY" default:"500ms"`

	// Stores
	DatabasePath  string `envconfig:"DATABASE_PATH" default:"final_project_sportsdata.db"`
	ArenaSeedPath string `envconfig:"ARENA_SEED_PATH" default:"nba_project.db"`
	ArenaCSVPath  string `envconfig:"ARENA_CSV_PATH" default:"arenas.csv"`

	// Ingestion
	PlayerIDs    []int `envconfig:"PLAYER_IDS" default:"15,46,53,57,73,89,101,130,133,250,251,290,324,367,375,450"`
	Seasons      []int `envconfig:"SEASONS" default:"2022,2023"`
	PageSize     int   `envconfig:"PAGE_SIZE" default:"25"`
	StatCap      int   `envconfig:"STAT_CAP" default:"25"`
	BackfillCap  int   `envconfig:"BACKFILL_CAP" default:"25"`
	SunCap       int   `envconfig:"SUN_CAP" default:"25"`
	SunBatchSize int   `envconfig:"SUN_BATCH_SIZE" default:"25"`

	// Orchestration
	TotalRuns      int           `envconfig:"TOTAL_RUNS" default:"8"`
	RunInterval    time.Duration `envconfig:"RUN_INTERVAL" default:"2s"`
	Daemon         bool          `envconfig:"DAEMON" default:"false"`
	CollectionCron string        `envconfig:"COLLECTION_CRON" default:"0 * * * *"`

	// Redis (optional response cache)
	RedisHost     string `envconfig:"REDIS_HOST" default:""`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Report outputs
	ReportTextPath  string `envconfig:"REPORT_TEXT_PATH" default:"sunset_analysis_results.txt"`
	ReportChartPath string `envconfig:"REPORT_CHART_PATH" default:"sunset_performance_visualizations.png"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"false"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if present
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.StatsAPIKey == "" {
		return fmt.Errorf("STATS_API_KEY is required")
	}
	if c.PageSize <= 0 || c.PageSize > 25 {
		return fmt.Errorf("PAGE_SIZE must be between 1 and 25")
	}
	if c.StatCap <= 0 {
		return fmt.Errorf("STAT_CAP must be positive")
	}
	if c.TotalRuns <= 0 {
		return fmt.Errorf("TOTAL_RUNS must be positive")
	}
	return nil
}

// RedisEnabled reports whether an optional Redis cache was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// MustLoad loads configuration or exits on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
