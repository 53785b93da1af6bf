package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tair/donation-tracker/pkg/database"
	"github.com/tair/donation-tracker/pkg/tracing"
)

// ServiceConfig identifies the running service
type ServiceConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// HTTPConfig holds the listener settings
type HTTPConfig struct {
	Port           string        `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	AllowedOrigins string        `mapstructure:"allowed_origins"`
}

// DBConfig holds the database connection settings
type DBConfig struct {
	Driver       string `mapstructure:"driver"`
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	Path         string `mapstructure:"path"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	LogQueries   bool   `mapstructure:"log_queries"`
}

// JWTConfig holds the token settings
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// TracingConfig holds the OpenTelemetry exporter settings
type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SampleRatio    float64 `mapstructure:"sample_ratio"`
}

// KafkaConfig holds the event publisher settings. Empty brokers disable publishing.
type KafkaConfig struct {
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
}

// RedisConfig holds the page cache settings. An empty address disables caching.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// Config is the complete service configuration
type Config struct {
	Service ServiceConfig `mapstructure:"service"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	DB      DBConfig      `mapstructure:"db"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	Tracing TracingConfig `mapstructure:"tracing"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

var defaults = map[string]interface{}{
	"service.name":            "donation-service",
	"service.version":         "1.0.0",
	"service.environment":     "development",
	"service.log_level":       "info",
	"http.port":               "8080",
	"http.request_timeout":    30 * time.Second,
	"http.allowed_origins":    "*",
	"db.driver":               database.DriverPostgres,
	"db.host":                 "localhost",
	"db.port":                 "5432",
	"db.user":                 "postgres",
	"db.password":             "postgres",
	"db.name":                 "donationdb",
	"db.sslmode":              "disable",
	"db.path":                 "donations.db",
	"db.max_open_conns":       25,
	"db.max_idle_conns":       5,
	"db.log_queries":          false,
	"jwt.secret":              "",
	"jwt.ttl":                 24 * time.Hour,
	"tracing.enabled":         true,
	"tracing.jaeger_endpoint": "http://localhost:14268/api/traces",
	"tracing.sample_ratio":    1.0,
	"kafka.brokers":           "",
	"kafka.topic":             "donation-lifecycle",
	"redis.addr":              "",
	"redis.password":          "",
	"redis.db":                0,
	"redis.cache_ttl":         5 * time.Minute,
}

// Load reads configuration from defaults, an optional config.yaml in dir and the
// environment, in increasing precedence. A .env file in dir is loaded into the
// environment first without overriding variables that are already set. Keys map to
// environment variables by upper-casing and replacing dots, e.g. db.host -> DB_HOST.
func Load(dir string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that have no usable default
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("config: jwt.secret (JWT_SECRET) is required")
	}
	switch c.DB.Driver {
	case database.DriverPostgres, database.DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported db.driver %q", c.DB.Driver)
	}
	if c.Tracing.SampleRatio < 0 {
		return errors.New("config: tracing.sample_ratio cannot be negative")
	}
	return nil
}

// Development reports whether the service runs in a development environment
func (c *Config) Development() bool {
	return strings.EqualFold(c.Service.Environment, "development")
}

// Database returns the connection settings for pkg/database
func (c *Config) Database() database.Config {
	return database.Config{
		Driver:       c.DB.Driver,
		Host:         c.DB.Host,
		Port:         c.DB.Port,
		User:         c.DB.User,
		Password:     c.DB.Password,
		DBName:       c.DB.Name,
		SSLMode:      c.DB.SSLMode,
		Path:         c.DB.Path,
		MaxOpenConns: c.DB.MaxOpenConns,
		MaxIdleConns: c.DB.MaxIdleConns,
		LogQueries:   c.DB.LogQueries,
	}
}

// TracerConfig returns the exporter settings for pkg/tracing
func (c *Config) TracerConfig() tracing.Config {
	return tracing.Config{
		Enabled:        c.Tracing.Enabled,
		ServiceName:    c.Service.Name,
		ServiceVersion: c.Service.Version,
		JaegerEndpoint: c.Tracing.JaegerEndpoint,
		SampleRatio:    c.Tracing.SampleRatio,
	}
}

// KafkaBrokers splits the comma separated broker list
func (c *Config) KafkaBrokers() []string {
	return splitList(c.Kafka.Brokers)
}

// Origins splits the comma separated CORS origin list
func (c *Config) Origins() []string {
	return splitList(c.HTTP.AllowedOrigins)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
