package config

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	S3        S3Config        `mapstructure:"s3"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
	Tracker   TrackerConfig   `mapstructure:"tracker"`
	Nutrition NutritionConfig `mapstructure:"nutrition"`
	Report    ReportConfig    `mapstructure:"report"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

type ServerConfig struct {
	Address        string          `mapstructure:"address"`
	Mode           string          `mapstructure:"mode"` // gin mode: debug, release, test
	AllowedOrigins []string        `mapstructure:"allowed_origins"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// DatabaseConfig selects the record store backend. URI and Name are used by
// mongo; DSN by postgres and sqlite.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // mongo, postgres, sqlite
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
	DSN    string `mapstructure:"dsn"`
}

type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// RedisConfig is only used to cache nutrition lookups.
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// TrackerConfig tunes the aggregation views.
type TrackerConfig struct {
	StreakWindowDays int           `mapstructure:"streak_window_days"`
	ChartDays        int           `mapstructure:"chart_days"`
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout"`
}

type NutritionConfig struct {
	Provider string        `mapstructure:"provider"` // mock or nutritionix
	Endpoint string        `mapstructure:"endpoint"`
	AppID    string        `mapstructure:"app_id"`
	AppKey   string        `mapstructure:"app_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type ReportConfig struct {
	Analyzer  string        `mapstructure:"analyzer"` // mock or http
	Endpoint  string        `mapstructure:"endpoint"`
	Timeout   time.Duration `mapstructure:"timeout"`
	MockDelay time.Duration `mapstructure:"mock_delay"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
	Endpoint    string `mapstructure:"endpoint"`
}

const defaultFetchTimeout = 3 * time.Second

var (
	mu      sync.Mutex
	current *viper.Viper
)

// Every key needs a default, even an empty one: AutomaticEnv only
// overrides keys viper already knows about when unmarshalling.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.rate_limit.requests", 100)
	v.SetDefault("server.rate_limit.window", "1m")
	v.SetDefault("database.driver", "mongo")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "lifetrack")
	v.SetDefault("database.dsn", "data/lifetrack.db")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "lifetrack-uploads")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.presign_expiry", "15m")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "24h")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "24h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("tracker.streak_window_days", 90)
	v.SetDefault("tracker.chart_days", 7)
	v.SetDefault("tracker.fetch_timeout", defaultFetchTimeout.String())
	v.SetDefault("nutrition.provider", "mock")
	v.SetDefault("nutrition.endpoint", "https://trackapi.nutritionix.com/v2/natural/nutrients")
	v.SetDefault("nutrition.app_id", "")
	v.SetDefault("nutrition.app_key", "")
	v.SetDefault("nutrition.timeout", "5s")
	v.SetDefault("report.analyzer", "mock")
	v.SetDefault("report.endpoint", "")
	v.SetDefault("report.timeout", "30s")
	v.SetDefault("report.mock_delay", "2s")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "lifetrack")
	v.SetDefault("tracing.endpoint", "http://localhost:14268/api/traces")
}

// LoadConfig reads configuration from file or environment variables.
// A .env file in the working directory is loaded into the environment first.
func LoadConfig(path string) (config Config, err error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, tracker.fetch_timeout -> TRACKER_FETCH_TIMEOUT
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		// Defaults and env vars only.
		err = nil
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	normalize(&config)

	mu.Lock()
	current = v
	mu.Unlock()

	return config, nil
}

// Watch re-reads the config file whenever it changes and hands the new
// values to onChange. It is a no-op when LoadConfig found no file.
func Watch(onChange func(Config, error)) {
	mu.Lock()
	v := current
	mu.Unlock()
	if v == nil || v.ConfigFileUsed() == "" {
		return
	}

	v.OnConfigChange(func(fsnotify.Event) {
		var cfg Config
		err := v.Unmarshal(&cfg)
		normalize(&cfg)
		onChange(cfg, err)
	})
	v.WatchConfig()
}

// normalize replaces values that would disable a bound with their defaults.
func normalize(cfg *Config) {
	if cfg.Tracker.FetchTimeout <= 0 {
		cfg.Tracker.FetchTimeout = defaultFetchTimeout
	}
}
