package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Cron      CronConfig      `mapstructure:"cron"`
	Mail      MailConfig      `mapstructure:"mail"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

// CacheConfig selects the query-result cache backing the data-access layer.
// The calculation core never touches it.
type CacheConfig struct {
	Backend  string        `mapstructure:"backend"` // memory | redis
	TTL      time.Duration `mapstructure:"ttl"`
	RedisURL string        `mapstructure:"redis_url"`
}

type CronConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	ReportScan string `mapstructure:"report_scan"`
	CacheSweep string `mapstructure:"cache_sweep"`
}

type MailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// AnalyticsConfig carries the business thresholds behind validation and
// alerting. Defaults mirror internal/metrics.DefaultThresholds.
type AnalyticsConfig struct {
	FairConversionPct   float64 `mapstructure:"fair_conversion_pct"`
	HighPendingUSD      float64 `mapstructure:"high_pending_usd"`
	InactiveDays        int     `mapstructure:"inactive_days"`
	MaxReasonableUSD    float64 `mapstructure:"max_reasonable_usd"`
	OverInvoiceFactor   float64 `mapstructure:"over_invoice_factor"`
	DefaultWindowMonths int     `mapstructure:"default_window_months"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("IL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("cache.redis_url", "redis://localhost:6379/0")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.report_scan", "@every 1m")
	v.SetDefault("cron.cache_sweep", "@every 10m")
	v.SetDefault("mail.enabled", false)
	v.SetDefault("mail.smtp_port", 587)
	v.SetDefault("analytics.fair_conversion_pct", 80)
	v.SetDefault("analytics.high_pending_usd", 100000)
	v.SetDefault("analytics.inactive_days", 90)
	v.SetDefault("analytics.max_reasonable_usd", 1000000000)
	v.SetDefault("analytics.over_invoice_factor", 1.5)
	v.SetDefault("analytics.default_window_months", 6)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Normalized fills unset analytics fields with the shipped defaults.
func (a AnalyticsConfig) Normalized() AnalyticsConfig {
	out := a
	if out.FairConversionPct <= 0 {
		out.FairConversionPct = 80
	}
	if out.HighPendingUSD <= 0 {
		out.HighPendingUSD = 100000
	}
	if out.InactiveDays <= 0 {
		out.InactiveDays = 90
	}
	if out.MaxReasonableUSD <= 0 {
		out.MaxReasonableUSD = 1000000000
	}
	if out.OverInvoiceFactor <= 0 {
		out.OverInvoiceFactor = 1.5
	}
	if out.DefaultWindowMonths <= 0 {
		out.DefaultWindowMonths = 6
	}
	return out
}
