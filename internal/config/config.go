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
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Export ExportConfig
	Redis  RedisConfig
	Queue  QueueConfig
	Rate   RateLimitConfig
}

// ExportConfig holds PDF export settings.
type ExportConfig struct {
	// APIBaseURL is prefixed to logo references that are relative paths.
	APIBaseURL      string        `mapstructure:"api_base_url"`
	LogoTimeout     time.Duration `mapstructure:"logo_timeout"`
	LogoMaxBytes    int64         `mapstructure:"logo_max_bytes"`
	ArchiveToS3     bool          `mapstructure:"archive_to_s3"`
	MaxLogoUploadKB int64         `mapstructure:"max_logo_upload_kb"`

	// LogoAllowedHosts lists the hosts an absolute logo URL may point at.
	// Relative paths always resolve against APIBaseURL.
	LogoAllowedHosts []string `mapstructure:"logo_allowed_hosts"`
}

// RedisConfig holds logo cache settings. An empty Addr disables the cache.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	LogoTTL  time.Duration `mapstructure:"logo_ttl"`
}

// Enabled reports whether a Redis address is configured.
func (r *RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// QueueConfig holds export job worker settings.
type QueueConfig struct {
	PollIntervalSecs int           `mapstructure:"poll_interval_secs"`
	MaxAttempts      int           `mapstructure:"max_attempts"`
	Concurrency      int           `mapstructure:"concurrency"`
	ReaperSchedule   string        `mapstructure:"reaper_schedule"`
	StaleAfter       time.Duration `mapstructure:"stale_after"`

	// JobTimeout bounds one render and upload. StaleAfter must exceed it
	// or the reaper would requeue jobs that are still running.
	JobTimeout time.Duration `mapstructure:"job_timeout"`
}

// RateLimitConfig throttles synchronous exports per tenant. A zero
// PerSecond disables the limiter.
type RateLimitConfig struct {
	PerSecond float64 `mapstructure:"per_second"`
	Burst     int     `mapstructure:"burst"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// IsProduction reports whether the server runs in production.
func (s *ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
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

// JWTConfig holds JWT verification settings. Tokens are issued elsewhere.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the PACTLY_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PACTLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "pactly")
	v.SetDefault("db.password", "pactly_secret")
	v.SetDefault("db.name", "pactly_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "pactly")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "pactly-exports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Export defaults
	v.SetDefault("export.api_base_url", "http://localhost:8000")
	v.SetDefault("export.logo_timeout", "5s")
	v.SetDefault("export.logo_max_bytes", 2<<20)
	v.SetDefault("export.archive_to_s3", false)
	v.SetDefault("export.max_logo_upload_kb", 1024)
	v.SetDefault("export.logo_allowed_hosts", "")

	// Redis defaults (disabled)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.logo_ttl", "1h")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 5)
	v.SetDefault("queue.max_attempts", 3)
	v.SetDefault("queue.concurrency", 4)
	v.SetDefault("queue.reaper_schedule", "@every 1m")
	v.SetDefault("queue.stale_after", "10m")
	v.SetDefault("queue.job_timeout", "5m")

	// Rate limit defaults
	v.SetDefault("rate.per_second", 2)
	v.SetDefault("rate.burst", 5)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "PACTLY_SERVER_PORT",
		"server.read_timeout":       "PACTLY_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "PACTLY_SERVER_WRITE_TIMEOUT",
		"server.environment":        "PACTLY_SERVER_ENVIRONMENT",
		"db.host":                   "PACTLY_DB_HOST",
		"db.port":                   "PACTLY_DB_PORT",
		"db.user":                   "PACTLY_DB_USER",
		"db.password":               "PACTLY_DB_PASSWORD",
		"db.name":                   "PACTLY_DB_NAME",
		"db.sslmode":                "PACTLY_DB_SSLMODE",
		"db.max_open":               "PACTLY_DB_MAX_OPEN",
		"db.max_idle":               "PACTLY_DB_MAX_IDLE",
		"jwt.secret":                "PACTLY_JWT_SECRET",
		"jwt.issuer":                "PACTLY_JWT_ISSUER",
		"s3.region":                 "PACTLY_S3_REGION",
		"s3.bucket":                 "PACTLY_S3_BUCKET",
		"s3.endpoint":               "PACTLY_S3_ENDPOINT",
		"s3.access_key":             "PACTLY_S3_ACCESS_KEY",
		"s3.secret_key":             "PACTLY_S3_SECRET_KEY",
		"s3.presign_expiry":         "PACTLY_S3_PRESIGN_EXPIRY",
		"log.level":                 "PACTLY_LOG_LEVEL",
		"log.format":                "PACTLY_LOG_FORMAT",
		"cors.allowed_origins":      "PACTLY_CORS_ALLOWED_ORIGINS",
		"export.api_base_url":       "PACTLY_EXPORT_API_BASE_URL",
		"export.logo_timeout":       "PACTLY_EXPORT_LOGO_TIMEOUT",
		"export.logo_max_bytes":     "PACTLY_EXPORT_LOGO_MAX_BYTES",
		"export.archive_to_s3":      "PACTLY_EXPORT_ARCHIVE_TO_S3",
		"export.max_logo_upload_kb": "PACTLY_EXPORT_MAX_LOGO_UPLOAD_KB",
		"export.logo_allowed_hosts": "PACTLY_EXPORT_LOGO_ALLOWED_HOSTS",
		"redis.addr":                "PACTLY_REDIS_ADDR",
		"redis.password":            "PACTLY_REDIS_PASSWORD",
		"redis.db":                  "PACTLY_REDIS_DB",
		"redis.logo_ttl":            "PACTLY_REDIS_LOGO_TTL",
		"queue.poll_interval_secs":  "PACTLY_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_attempts":        "PACTLY_QUEUE_MAX_ATTEMPTS",
		"queue.concurrency":         "PACTLY_QUEUE_CONCURRENCY",
		"queue.reaper_schedule":     "PACTLY_QUEUE_REAPER_SCHEDULE",
		"queue.stale_after":         "PACTLY_QUEUE_STALE_AFTER",
		"queue.job_timeout":         "PACTLY_QUEUE_JOB_TIMEOUT",
		"rate.per_second":           "PACTLY_RATE_PER_SECOND",
		"rate.burst":                "PACTLY_RATE_BURST",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if PACTLY_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PACTLY_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
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
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitList(v.GetString("cors.allowed_origins"))}

	cfg.Export = ExportConfig{
		APIBaseURL:      strings.TrimRight(v.GetString("export.api_base_url"), "/"),
		LogoTimeout:     v.GetDuration("export.logo_timeout"),
		LogoMaxBytes:    v.GetInt64("export.logo_max_bytes"),
		ArchiveToS3:     v.GetBool("export.archive_to_s3"),
		MaxLogoUploadKB: v.GetInt64("export.max_logo_upload_kb"),

		LogoAllowedHosts: splitList(v.GetString("export.logo_allowed_hosts")),
	}
	cfg.Redis = RedisConfig{
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
		LogoTTL:  v.GetDuration("redis.logo_ttl"),
	}
	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxAttempts:      v.GetInt("queue.max_attempts"),
		Concurrency:      v.GetInt("queue.concurrency"),
		ReaperSchedule:   v.GetString("queue.reaper_schedule"),
		StaleAfter:       v.GetDuration("queue.stale_after"),
		JobTimeout:       v.GetDuration("queue.job_timeout"),
	}
	cfg.Rate = RateLimitConfig{
		PerSecond: v.GetFloat64("rate.per_second"),
		Burst:     v.GetInt("rate.burst"),
	}

	if err := cfg.Queue.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (q *QueueConfig) validate() error {
	switch {
	case q.PollIntervalSecs < 1:
		return fmt.Errorf("config: queue.poll_interval_secs must be at least 1, got %d", q.PollIntervalSecs)
	case q.MaxAttempts < 1:
		return fmt.Errorf("config: queue.max_attempts must be at least 1, got %d", q.MaxAttempts)
	case q.Concurrency < 1:
		return fmt.Errorf("config: queue.concurrency must be at least 1, got %d", q.Concurrency)
	case q.JobTimeout <= 0:
		return fmt.Errorf("config: queue.job_timeout must be positive, got %s", q.JobTimeout)
	case q.StaleAfter <= q.JobTimeout:
		return fmt.Errorf("config: queue.stale_after (%s) must exceed queue.job_timeout (%s)", q.StaleAfter, q.JobTimeout)
	}
	return nil
}

// splitList parses a comma-separated value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
