package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port           int      `mapstructure:"port"`
		CorsOrigins    []string `mapstructure:"cors_origins"`
		RateLimitRPS   float64  `mapstructure:"rate_limit_rps"`
		RateLimitBurst int      `mapstructure:"rate_limit_burst"`
	} `mapstructure:"server"`

	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`

	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Cache struct {
		TTL time.Duration `mapstructure:"ttl"`
	} `mapstructure:"cache"`

	Storage struct {
		Endpoint  string `mapstructure:"endpoint"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
		Bucket    string `mapstructure:"bucket"`
		UseSSL    bool   `mapstructure:"use_ssl"`
		PublicURL string `mapstructure:"public_url"`
	} `mapstructure:"storage"`

	Jobs struct {
		Enabled                 bool          `mapstructure:"enabled"`
		StatsReconcileInterval  time.Duration `mapstructure:"stats_reconcile_interval"`
		DashboardWarmupInterval time.Duration `mapstructure:"dashboard_warmup_interval"`
	} `mapstructure:"jobs"`

	App struct {
		PublicBaseURL string `mapstructure:"public_base_url"`
	} `mapstructure:"app"`
}

// StorageEnabled reports whether avatar object storage is configured.
func (c *Config) StorageEnabled() bool {
	return c.Storage.Endpoint != ""
}

// Load reads .env, an optional config.yaml and the environment, in that
// order of increasing precedence. Nested keys map to env vars with dots
// replaced by underscores (database.url -> DATABASE_URL).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[Config] No .env file loaded: %v", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("configs")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Printf("[Config] No config file found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// every key needs a default so AutomaticEnv can bind it during Unmarshal
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.rate_limit_rps", 20.0)
	v.SetDefault("server.rate_limit_burst", 40)
	v.SetDefault("database.url", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.bucket", "avatars")
	v.SetDefault("storage.use_ssl", false)
	v.SetDefault("storage.public_url", "")
	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.stats_reconcile_interval", 15*time.Minute)
	v.SetDefault("jobs.dashboard_warmup_interval", time.Minute)
	v.SetDefault("app.public_base_url", "")
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return errors.New("database.url (DATABASE_URL) is required")
	}
	if c.Server.Port <= 0 {
		return errors.New("server.port must be positive")
	}
	if c.Server.RateLimitRPS <= 0 || c.Server.RateLimitBurst <= 0 {
		return errors.New("server rate limit values must be positive")
	}
	if c.Cache.TTL <= 0 {
		return errors.New("cache.ttl must be positive")
	}
	if c.Jobs.StatsReconcileInterval <= 0 || c.Jobs.DashboardWarmupInterval <= 0 {
		return errors.New("job intervals must be positive")
	}
	if c.StorageEnabled() && (c.Storage.AccessKey == "" || c.Storage.SecretKey == "") {
		return errors.New("storage credentials are required when storage.endpoint is set")
	}
	return nil
}
