package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// State backends understood by STATE_BACKEND.
const (
	BackendGitHub   = "github"   // read from the GitHub contents API, write to STATE_FILE
	BackendFile     = "file"     // read and write STATE_FILE
	BackendRedis    = "redis"    // read and write one redis key
	BackendPostgres = "postgres" // read and write one bot_state row
)

// Run modes understood by RUN_MODE.
const (
	RunModeOnce     = "once"
	RunModeSchedule = "schedule"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	BotToken       string
	ChannelID      string
	CSVFilePath    string
	StateFile      string
	StateBackend   string
	StateName      string // row/key discriminator for shared stores
	TelegramAPIURL string
	RequestTimeout time.Duration

	GitHubToken      string
	GitHubRepository string // owner/name
	GitHubAPIURL     string
	GitHubRef        string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string

	DatabaseURL string

	RunMode           string
	CronSpec          string
	MessageConfigFile string
	MetricsAddr       string
	MetricsTextfile   string

	LogLevel    string
	Environment string
}

// Load reads configuration from environment variables and .env file (if present).
// Every returned error is a fatal startup condition.
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.BotToken = os.Getenv("BOT_TOKEN")
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set")
	}

	cfg.ChannelID = strings.TrimSpace(os.Getenv("CHANNEL_ID"))
	if cfg.ChannelID == "" {
		return nil, fmt.Errorf("CHANNEL_ID is not set")
	}

	cfg.CSVFilePath = getenvDefault("CSV_FILE_PATH", "quran_dataset.csv")
	info, err := os.Stat(cfg.CSVFilePath)
	if err != nil {
		return nil, fmt.Errorf("CSV file not found: %s: %w", cfg.CSVFilePath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("CSV file path %s is a directory", cfg.CSVFilePath)
	}

	cfg.StateFile = getenvDefault("STATE_FILE", "bot_state.json")
	cfg.StateName = getenvDefault("STATE_NAME", "default")
	cfg.TelegramAPIURL = strings.TrimRight(getenvDefault("TELEGRAM_API_URL", "https://api.telegram.org"), "/")
	cfg.RequestTimeout, err = time.ParseDuration(getenvDefault("REQUEST_TIMEOUT", "30s"))
	if err != nil || cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %q", os.Getenv("REQUEST_TIMEOUT"))
	}

	cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")
	cfg.GitHubRepository = os.Getenv("GITHUB_REPOSITORY")
	cfg.GitHubAPIURL = strings.TrimRight(getenvDefault("GITHUB_API_URL", "https://api.github.com"), "/")
	cfg.GitHubRef = os.Getenv("GITHUB_REF")

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		cfg.RedisDB, err = strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
	}
	cfg.RedisKey = getenvDefault("REDIS_KEY", "verse_bot:state")

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.StateBackend = strings.ToLower(getenvDefault("STATE_BACKEND", BackendGitHub))
	switch cfg.StateBackend {
	case BackendGitHub, BackendFile:
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required for STATE_BACKEND=redis")
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for STATE_BACKEND=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown STATE_BACKEND %q", cfg.StateBackend)
	}

	cfg.RunMode = strings.ToLower(getenvDefault("RUN_MODE", RunModeOnce))
	if cfg.RunMode != RunModeOnce && cfg.RunMode != RunModeSchedule {
		return nil, fmt.Errorf("unknown RUN_MODE %q", cfg.RunMode)
	}
	cfg.CronSpec = getenvDefault("CRON_SPEC", "0 * * * *") // Default: top of every hour
	if _, err := cron.ParseStandard(cfg.CronSpec); err != nil {
		return nil, fmt.Errorf("invalid CRON_SPEC: %w", err)
	}

	cfg.MessageConfigFile = os.Getenv("MESSAGE_CONFIG_FILE")
	cfg.MetricsAddr = os.Getenv("METRICS_ADDR")
	cfg.MetricsTextfile = os.Getenv("METRICS_TEXTFILE")

	cfg.LogLevel = strings.ToLower(getenvDefault("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(getenvDefault("ENVIRONMENT", "development"))

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
