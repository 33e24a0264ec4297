package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

type LogConfig struct {
	Directory  string `mapstructure:"directory"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
}

type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // postgres / sqlite
	DSN    string             `mapstructure:"dsn"`
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// AuthConfig points at the hosted GoTrue-compatible auth API.
type AuthConfig struct {
	BaseUri     string `mapstructure:"base_uri"`
	ApiKey      string `mapstructure:"api_key"`
	RedirectUri string `mapstructure:"redirect_uri"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type S3Config struct {
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	AccessKeyID      string `mapstructure:"access_key_id"`
	SecretAccessKey  string `mapstructure:"secret_access_key"`
	CloudFrontDomain string `mapstructure:"cloudfront_domain"`
}

// Enabled reports whether uploads should go to a bucket instead of inline data URLs.
func (c S3Config) Enabled() bool {
	return strings.TrimSpace(c.Bucket) != ""
}

type SyncConfig struct {
	PhaseDelayMs  int `mapstructure:"phase_delay_ms"`
	ImportDelayMs int `mapstructure:"import_delay_ms"`
	LockTTLSecs   int `mapstructure:"lock_ttl_secs"`
}

func (c SyncConfig) PhaseDelay() time.Duration {
	return time.Duration(c.PhaseDelayMs) * time.Millisecond
}

func (c SyncConfig) ImportDelay() time.Duration {
	return time.Duration(c.ImportDelayMs) * time.Millisecond
}

func (c SyncConfig) LockTTL() time.Duration {
	return time.Duration(c.LockTTLSecs) * time.Second
}

// TrackingConfig selects the carrier processors used by the refresh worker.
// Carriers without a configured processor are left untouched unless Simulate
// is set, in which case the simulated processor drives them.
type TrackingConfig struct {
	Schedule                string `mapstructure:"schedule"`
	Simulate                bool   `mapstructure:"simulate"`
	SimulatedLatencyMs      int    `mapstructure:"simulated_latency_ms"`
	MondialRelayTrackingUri string `mapstructure:"mondial_relay_tracking_uri"`
	DHLApiBaseUri           string `mapstructure:"dhl_api_base_uri"`
	DHLApiKey               string `mapstructure:"dhl_api_key"`
}

func (c TrackingConfig) SimulatedLatency() time.Duration {
	return time.Duration(c.SimulatedLatencyMs) * time.Millisecond
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	CORS     CORSConfig     `mapstructure:"cors"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Redis    RedisConfig    `mapstructure:"redis"`
	S3       S3Config       `mapstructure:"s3"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Tracking TrackingConfig `mapstructure:"tracking"`
}

// LoadConfig reads .env, an optional config.yaml under path and the environment.
// Environment variables are the upper-cased keys with dots replaced by
// underscores, e.g. DATABASE_DSN or SYNC_PHASE_DELAY_MS.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.AddConfigPath(path)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.directory", "logs")
	v.SetDefault("log.filename", "packtrack-service.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.pool.max_open_conns", 10)
	v.SetDefault("database.pool.max_idle_conns", 5)
	v.SetDefault("database.pool.conn_max_lifetime_seconds", 300)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type", "Authorization", "X-Request-ID"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expire_hours", 24*7)
	v.SetDefault("auth.base_uri", "")
	v.SetDefault("auth.api_key", "")
	v.SetDefault("auth.redirect_uri", "")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "packtrack")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.cloudfront_domain", "")
	v.SetDefault("sync.phase_delay_ms", 900)
	v.SetDefault("sync.import_delay_ms", 600)
	v.SetDefault("sync.lock_ttl_secs", 120)
	v.SetDefault("tracking.schedule", "*/30 * * * *")
	v.SetDefault("tracking.simulate", false)
	v.SetDefault("tracking.simulated_latency_ms", 500)
	v.SetDefault("tracking.mondial_relay_tracking_uri", "")
	v.SetDefault("tracking.dhl_api_base_uri", "https://api-eu.dhl.com")
	v.SetDefault("tracking.dhl_api_key", "")
}
