package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	JWT       JWTConfig
	Log       LogConfig
	RBAC      RBACConfig
	Incentive IncentiveConfig
	Budget    BudgetConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port string
}

type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	ShutdownTimeout  time.Duration
	RateLimitPerUser float64 // requests per second on write endpoints
	RateLimitBurst   int
}

type DatabaseConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	MaxRetries int
}

// DSN returns a libpq keyword/value connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

// URL returns the postgres:// form used by golang-migrate.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

type RedisConfig struct {
	Addr       string
	MaxRetries int
}

type KafkaConfig struct {
	Broker           string
	GroupID          string
	OutboxInterval   time.Duration
	ProjectCostTopic string
	MaxRetries       int
}

type JWTConfig struct {
	Secret string
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

type RBACConfig struct {
	ModelPath string
}

type IncentiveConfig struct {
	CalcConcurrency int
}

type BudgetConfig struct {
	CacheTTL time.Duration
}

// env names are shared with the docker-compose files, keep them stable.
var envBindings = map[string]string{
	"app.name":                   "APP_NAME",
	"app.env":                    "APP_ENV",
	"app.port":                   "PORT",
	"http.read_timeout":          "HTTP_READ_TIMEOUT",
	"http.write_timeout":         "HTTP_WRITE_TIMEOUT",
	"http.idle_timeout":          "HTTP_IDLE_TIMEOUT",
	"http.shutdown_timeout":      "HTTP_SHUTDOWN_TIMEOUT",
	"http.rate_limit_per_user":   "HTTP_RATE_LIMIT_PER_USER",
	"http.rate_limit_burst":      "HTTP_RATE_LIMIT_BURST",
	"database.host":              "DB_HOST",
	"database.port":              "DB_PORT",
	"database.user":              "DB_USER",
	"database.password":          "DB_PASSWORD",
	"database.name":              "DB_NAME",
	"database.sslmode":           "DB_SSLMODE",
	"database.max_retries":       "DB_MAX_RETRIES",
	"redis.addr":                 "REDIS_ADDR",
	"redis.max_retries":          "REDIS_MAX_RETRIES",
	"kafka.broker":               "KAFKA_BROKER",
	"kafka.group_id":             "KAFKA_GROUP_ID",
	"kafka.outbox_interval":      "KAFKA_OUTBOX_INTERVAL",
	"kafka.project_cost_topic":   "KAFKA_PROJECT_COST_TOPIC",
	"kafka.max_retries":          "KAFKA_MAX_RETRIES",
	"jwt.secret":                 "JWT_SECRET",
	"log.level":                  "LOG_LEVEL",
	"log.format":                 "LOG_FORMAT",
	"rbac.model_path":            "RBAC_MODEL_PATH",
	"incentive.calc_concurrency": "INCENTIVE_CALC_CONCURRENCY",
	"budget.cache_ttl":           "BUDGET_CACHE_TTL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "go-bakery")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3000")

	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("http.rate_limit_per_user", 5)
	v.SetDefault("http.rate_limit_burst", 10)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "bakery")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_retries", 5)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.max_retries", 5)

	v.SetDefault("kafka.group_id", "go-bakery-budget")
	v.SetDefault("kafka.outbox_interval", 3*time.Second)
	v.SetDefault("kafka.project_cost_topic", "construction.project.cost.v1")
	v.SetDefault("kafka.max_retries", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("incentive.calc_concurrency", 8)
	v.SetDefault("budget.cache_ttl", 10*time.Minute)
}

// Load reads configuration with the following priority (highest first):
// environment variables, config.toml, built-in defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			ShutdownTimeout:  v.GetDuration("http.shutdown_timeout"),
			RateLimitPerUser: v.GetFloat64("http.rate_limit_per_user"),
			RateLimitBurst:   v.GetInt("http.rate_limit_burst"),
		},
		Database: DatabaseConfig{
			Host:       v.GetString("database.host"),
			Port:       v.GetString("database.port"),
			User:       v.GetString("database.user"),
			Password:   v.GetString("database.password"),
			Name:       v.GetString("database.name"),
			SSLMode:    v.GetString("database.sslmode"),
			MaxRetries: v.GetInt("database.max_retries"),
		},
		Redis: RedisConfig{
			Addr:       v.GetString("redis.addr"),
			MaxRetries: v.GetInt("redis.max_retries"),
		},
		Kafka: KafkaConfig{
			Broker:           v.GetString("kafka.broker"),
			GroupID:          v.GetString("kafka.group_id"),
			OutboxInterval:   v.GetDuration("kafka.outbox_interval"),
			ProjectCostTopic: v.GetString("kafka.project_cost_topic"),
			MaxRetries:       v.GetInt("kafka.max_retries"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		RBAC: RBACConfig{
			ModelPath: v.GetString("rbac.model_path"),
		},
		Incentive: IncentiveConfig{
			CalcConcurrency: v.GetInt("incentive.calc_concurrency"),
		},
		Budget: BudgetConfig{
			CacheTTL: v.GetDuration("budget.cache_ttl"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c *Config) validate() error {
	if c.IsProduction() && len(c.JWT.Secret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters in production")
	}
	if c.Incentive.CalcConcurrency < 1 {
		return fmt.Errorf("INCENTIVE_CALC_CONCURRENCY must be positive, got %d", c.Incentive.CalcConcurrency)
	}
	if c.Budget.CacheTTL < 0 {
		return fmt.Errorf("BUDGET_CACHE_TTL must not be negative, got %s", c.Budget.CacheTTL)
	}
	return nil
}

// RequireKafka is checked by the worker and consumer processes only.
func (c *Config) RequireKafka() error {
	if c.Kafka.Broker == "" {
		return errors.New("KAFKA_BROKER is required")
	}
	return nil
}
