package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/factuurdesk/factuurdesk/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Cache      CacheConfig
	S3         S3Config
	Document   DocumentConfig `validate:"required"`
	Reports    ReportsConfig
	Sentry     SentryConfig
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host                   string
	Port                   int
	User                   string
	Password               string
	DBName                 string `mapstructure:"dbname"`
	SSLMode                string `mapstructure:"sslmode"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes"`
	AutoMigrate            bool   `mapstructure:"auto_migrate"`
}

type CacheConfig struct {
	Enabled bool
	// TTL of cached company settings
	SettingsTTL time.Duration `mapstructure:"settings_ttl"`
}

type S3Config struct {
	Enabled             bool
	Region              string
	Endpoint            string
	InvoiceBucketConfig InvoiceBucketConfig `mapstructure:"invoice"`
}

type InvoiceBucketConfig struct {
	Bucket                string
	KeyPrefix             string `mapstructure:"key_prefix"`
	PresignExpiryDuration string `mapstructure:"presign_expiry_duration"`
}

// DocumentConfig drives invoice document rendering
type DocumentConfig struct {
	// PaymentBaseURL is the domain the default "pay online" link is built on
	PaymentBaseURL string `mapstructure:"payment_base_url" validate:"required,url"`
	// LogoPaths are probed in order, the first readable image wins
	LogoPaths []string `mapstructure:"logo_paths"`
	// FetchRemoteLogo allows downloading the logo URL stored in the company settings
	FetchRemoteLogo bool `mapstructure:"fetch_remote_logo"`
}

type ReportsConfig struct {
	// Timezone used to determine "now" for aging reports
	Timezone string
}

type SentryConfig struct {
	Enabled     bool
	DSN         string
	Environment string
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type RateLimitConfig struct {
	// DocumentsPerSecond bounds how many invoice documents are rendered per second
	DocumentsPerSecond float64 `mapstructure:"documents_per_second"`
	Burst              int
}

func NewConfig() (*Configuration, error) {
	// values from a local .env file end up in the environment viper reads below
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/factuurdesk")

	setDefaults(v)

	// Set up environment variables support
	v.SetEnvPrefix("FACTUURDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime_minutes", 30)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.settings_ttl", 10*time.Minute)
	v.SetDefault("s3.invoice.presign_expiry_duration", "30m")
	v.SetDefault("document.payment_base_url", "https://factuurdesk.nl")
	v.SetDefault("document.logo_paths", DefaultLogoPaths)
	v.SetDefault("reports.timezone", "Europe/Amsterdam")
	v.SetDefault("rate_limit.documents_per_second", 5)
	v.SetDefault("rate_limit.burst", 10)
}

// DefaultLogoPaths are the candidate locations of the company logo, most specific first
var DefaultLogoPaths = []string{
	"assets/logo.png",
	"assets/images/logo.png",
	"public/logo.png",
	"assets/logo.jpg",
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts, tests or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Cache:      CacheConfig{Enabled: true, SettingsTTL: 10 * time.Minute},
		Document: DocumentConfig{
			PaymentBaseURL: "https://factuurdesk.nl",
			LogoPaths:      DefaultLogoPaths,
		},
		Reports:   ReportsConfig{Timezone: "Europe/Amsterdam"},
		RateLimit: RateLimitConfig{DocumentsPerSecond: 5, Burst: 10},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}

// Location returns the configured reporting timezone, falling back to UTC
func (c ReportsConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
