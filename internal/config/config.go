package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	Broker BrokerConfig
	Vision ModelProviderConfig
	Reason ModelProviderConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	BodyLimitMB  int64         `mapstructure:"body_limit_mb"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// RedisConfig holds the receipt cache settings. The cache is disabled when
// Addr is empty.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// JWTConfig holds bearer token settings for the audit and account endpoints.
// Auth is disabled when Secret is empty; parse/split are always public.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// S3Config holds the receipt image archive settings. Archiving is disabled
// when Bucket is empty.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BrokerConfig holds compute-network broker gateway settings.
type BrokerConfig struct {
	Endpoint    string        `mapstructure:"endpoint"`
	APIKey      string        `mapstructure:"api_key"`
	TimeoutSecs time.Duration `mapstructure:"timeout"`
}

// ModelProviderConfig holds settings for one metered inference provider.
type ModelProviderConfig struct {
	Provider string        `mapstructure:"provider"`
	Endpoint string        `mapstructure:"endpoint"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the TABSPLIT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TABSPLIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":4000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.body_limit_mb", 25)

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "tabsplit")
	v.SetDefault("db.password", "tabsplit_secret")
	v.SetDefault("db.name", "tabsplit_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Redis defaults (cache disabled unless addr is set)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "24h")

	// JWT defaults (auth disabled unless secret is set)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "tabsplit")

	// S3 defaults (archive disabled unless bucket is set)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Broker gateway defaults
	v.SetDefault("broker.endpoint", "http://localhost:8545")
	v.SetDefault("broker.api_key", "")
	v.SetDefault("broker.timeout", "30s")

	// Inference provider defaults (0G testnet official providers)
	v.SetDefault("vision.provider", "0x6D233D2610c32f630ED53E8a7Cbf759568041f8f")
	v.SetDefault("vision.endpoint", "")
	v.SetDefault("vision.model", "qwen2.5-vl-72b-instruct")
	v.SetDefault("vision.timeout", "120s")
	v.SetDefault("reason.provider", "0x3feE5a4dd5FDb8a32dDA97Bed899830605dBD9D3")
	v.SetDefault("reason.endpoint", "")
	v.SetDefault("reason.model", "deepseek-r1-70b")
	v.SetDefault("reason.timeout", "120s")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "TABSPLIT_SERVER_PORT",
		"server.read_timeout":  "TABSPLIT_SERVER_READ_TIMEOUT",
		"server.write_timeout": "TABSPLIT_SERVER_WRITE_TIMEOUT",
		"server.environment":   "TABSPLIT_SERVER_ENVIRONMENT",
		"server.body_limit_mb": "TABSPLIT_SERVER_BODY_LIMIT_MB",
		"db.host":              "TABSPLIT_DB_HOST",
		"db.port":              "TABSPLIT_DB_PORT",
		"db.user":              "TABSPLIT_DB_USER",
		"db.password":          "TABSPLIT_DB_PASSWORD",
		"db.name":              "TABSPLIT_DB_NAME",
		"db.sslmode":           "TABSPLIT_DB_SSLMODE",
		"db.max_open":          "TABSPLIT_DB_MAX_OPEN",
		"db.max_idle":          "TABSPLIT_DB_MAX_IDLE",
		"redis.addr":           "TABSPLIT_REDIS_ADDR",
		"redis.password":       "TABSPLIT_REDIS_PASSWORD",
		"redis.db":             "TABSPLIT_REDIS_DB",
		"redis.ttl":            "TABSPLIT_REDIS_TTL",
		"jwt.secret":           "TABSPLIT_JWT_SECRET",
		"jwt.issuer":           "TABSPLIT_JWT_ISSUER",
		"s3.region":            "TABSPLIT_S3_REGION",
		"s3.bucket":            "TABSPLIT_S3_BUCKET",
		"s3.endpoint":          "TABSPLIT_S3_ENDPOINT",
		"s3.access_key":        "TABSPLIT_S3_ACCESS_KEY",
		"s3.secret_key":        "TABSPLIT_S3_SECRET_KEY",
		"log.level":            "TABSPLIT_LOG_LEVEL",
		"log.format":           "TABSPLIT_LOG_FORMAT",
		"broker.endpoint":      "TABSPLIT_BROKER_ENDPOINT",
		"broker.api_key":       "TABSPLIT_BROKER_API_KEY",
		"broker.timeout":       "TABSPLIT_BROKER_TIMEOUT",
		"vision.provider":      "TABSPLIT_VISION_PROVIDER",
		"vision.endpoint":      "TABSPLIT_VISION_ENDPOINT",
		"vision.model":         "TABSPLIT_VISION_MODEL",
		"vision.timeout":       "TABSPLIT_VISION_TIMEOUT",
		"reason.provider":      "TABSPLIT_REASON_PROVIDER",
		"reason.endpoint":      "TABSPLIT_REASON_ENDPOINT",
		"reason.model":         "TABSPLIT_REASON_MODEL",
		"reason.timeout":       "TABSPLIT_REASON_TIMEOUT",
		"cors.allowed_origins": "TABSPLIT_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if TABSPLIT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TABSPLIT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		BodyLimitMB:  v.GetInt64("server.body_limit_mb"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Redis = RedisConfig{
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
		TTL:      v.GetDuration("redis.ttl"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Broker = BrokerConfig{
		Endpoint:    v.GetString("broker.endpoint"),
		APIKey:      v.GetString("broker.api_key"),
		TimeoutSecs: v.GetDuration("broker.timeout"),
	}
	cfg.Vision = ModelProviderConfig{
		Provider: v.GetString("vision.provider"),
		Endpoint: v.GetString("vision.endpoint"),
		Model:    v.GetString("vision.model"),
		Timeout:  v.GetDuration("vision.timeout"),
	}
	cfg.Reason = ModelProviderConfig{
		Provider: v.GetString("reason.provider"),
		Endpoint: v.GetString("reason.endpoint"),
		Model:    v.GetString("reason.model"),
		Timeout:  v.GetDuration("reason.timeout"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: strings.Split(v.GetString("cors.allowed_origins"), ","),
	}

	if cfg.Vision.Provider == "" || cfg.Reason.Provider == "" {
		return nil, fmt.Errorf("vision and reason providers must be configured")
	}

	return cfg, nil
}
