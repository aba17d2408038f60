package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"logLevel"`
	Server      struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`
	Health struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"health"`
	Database struct {
		PostgresDSN         string        `mapstructure:"postgresDSN"`
		PostgresAutoMigrate bool          `mapstructure:"postgresAutoMigrate"`
		QueryTimeout        time.Duration `mapstructure:"queryTimeout"` // Per-query bound on dashboard fetches
	} `mapstructure:"database"`
	Dashboard struct {
		TrendDays int `mapstructure:"trendDays"` // Default trailing window for the daily trend
	} `mapstructure:"dashboard"`
	Executives struct {
		Seed []string `mapstructure:"seed"` // Names seeded when the table is empty
	} `mapstructure:"executives"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"metrics"`
	Summary struct {
		Enabled    bool     `mapstructure:"enabled"`
		Schedule   string   `mapstructure:"schedule"` // cron spec for the daily report
		Recipients []string `mapstructure:"recipients"`
		OpenAI     struct {
			APIKey      string  `mapstructure:"apiKey"`
			Model       string  `mapstructure:"model"`
			Temperature float32 `mapstructure:"temperature"`
			MaxTokens   int     `mapstructure:"maxTokens"`
		} `mapstructure:"openai"`
		Mail struct {
			SendGridAPIKey string `mapstructure:"sendGridAPIKey"`
			FromEmail      string `mapstructure:"fromEmail"`
			FromName       string `mapstructure:"fromName"`
		} `mapstructure:"mail"`
	} `mapstructure:"summary"`
	WorkerPools struct {
		Mailer MailerWorkerPoolConfig `mapstructure:"mailer"`
	} `mapstructure:"workerPools"`
}

// MailerWorkerPoolConfig holds configuration for the summary mailer pool
type MailerWorkerPoolConfig struct {
	PoolSize   int           `mapstructure:"poolSize"`   // Number of workers
	QueueSize  int           `mapstructure:"queueSize"`  // Task queue buffer size
	ExpiryTime time.Duration `mapstructure:"expiryTime"` // Idle worker expiry time
}

// LoadConfig reads configuration from file or environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("environment", "development")
	v.SetDefault("logLevel", "info")
	v.SetDefault("server.port", 8080)
	v.SetDefault("health.port", 2112)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("database.postgresAutoMigrate", true)
	v.SetDefault("database.queryTimeout", 5*time.Second)
	v.SetDefault("dashboard.trendDays", 7)

	// Daily summary defaults
	v.SetDefault("summary.enabled", false)
	v.SetDefault("summary.schedule", "0 19 * * *")
	v.SetDefault("summary.openai.model", "gpt-4o-mini")
	v.SetDefault("summary.openai.temperature", 0.7)
	v.SetDefault("summary.openai.maxTokens", 1200)
	v.SetDefault("summary.mail.fromName", "Sales Call Dashboard")

	// WorkerPools defaults
	v.SetDefault("workerPools.mailer.poolSize", 4)
	v.SetDefault("workerPools.mailer.queueSize", 256)
	v.SetDefault("workerPools.mailer.expiryTime", time.Minute)

	// Config file settings
	v.SetConfigName("default")
	v.SetConfigType("yaml")

	// Add lookup paths
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath("$HOME/.sales-call-dashboard")
	v.AddConfigPath("/etc/sales-call-dashboard")

	// Try to read from config file
	if err := v.ReadInConfig(); err != nil {
		// It's ok if config file is not found, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Map environment variables to config fields
	bindEnvs(v, Config{})

	// Read directly from ENV for critical values
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		v.Set("database.postgresDSN", dsn)
	}
	if lgLevel := os.Getenv("LOG_LEVEL"); lgLevel != "" {
		v.Set("logLevel", lgLevel)
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		v.Set("summary.openai.apiKey", key)
	}
	if key := os.Getenv("SENDGRID_API_KEY"); key != "" {
		v.Set("summary.mail.sendGridAPIKey", key)
	}

	// Unmarshal config
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &config, nil
}

// bindEnvs recursively binds environment variables to config struct fields
func bindEnvs(v *viper.Viper, cfg interface{}, parts ...string) {
	ifv := reflect.ValueOf(cfg)
	ift := reflect.TypeOf(cfg)
	for i := 0; i < ift.NumField(); i++ {
		fieldVal := ifv.Field(i)
		fieldType := ift.Field(i)

		tag := fieldType.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}

		path := append(parts, tag)
		key := strings.Join(path, ".")

		if fieldType.Type.Kind() == reflect.Struct {
			bindEnvs(v, fieldVal.Interface(), path...)
			continue
		}

		_ = v.BindEnv(key)
	}
}
