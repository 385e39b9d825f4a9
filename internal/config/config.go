package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Redis         RedisConfig         `toml:"redis"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Notifications NotificationsConfig `toml:"notifications"`
	Media         MediaConfig         `toml:"media"`
	Payments      PaymentsConfig      `toml:"payments"`
	Sweeper       SweeperConfig       `toml:"sweeper"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN собирает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, sslMode)
}

// RedisConfig настройки Redis для очереди задач (asynq)
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// NotificationsConfig настройки пайплайна напоминаний
type NotificationsConfig struct {
	QuietHoursStart     string `toml:"quiet_hours_start"` // "HH:MM"
	QuietHoursEnd       string `toml:"quiet_hours_end"`   // "HH:MM"
	MaxAttempts         int    `toml:"max_attempts"`
	RetryBackoffSeconds []int  `toml:"retry_backoff_seconds"`
	DefaultWindowHours  int    `toml:"default_window_hours"`
	SimulateDelivery    bool   `toml:"simulate_delivery"`
	EnqueueInterval     string `toml:"enqueue_interval"` // cron spec

	SMTP SMTPConfig       `toml:"smtp"`
	SMS  SMSGatewayConfig `toml:"sms"`
}

// SMTPConfig настройки почтового канала
type SMTPConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	User      string `toml:"user"`
	Password  string `toml:"password"`
	FromEmail string `toml:"from_email"`
}

// SMSGatewayConfig настройки SMS-шлюза
type SMSGatewayConfig struct {
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	From    string `toml:"from"`
	Timeout int    `toml:"timeout"` // секунды
}

// MediaConfig настройки медиа-пайплайна
type MediaConfig struct {
	VirusScanEnabled       bool           `toml:"virus_scan_enabled"`
	VirusScanScript        string         `toml:"virus_scan_script"`
	VirusScanTimeout       int            `toml:"virus_scan_timeout"`      // секунды
	TranscodeTimeout       int            `toml:"transcode_timeout"`       // секунды
	ThumbnailTimeout       int            `toml:"thumbnail_timeout"`       // секунды
	MaxAttempts            int            `toml:"max_attempts"`
	RetryBackoffSeconds    []int          `toml:"retry_backoff_seconds"`
	StorageDir             string         `toml:"storage_dir"`
	VideoProfiles          []VideoProfile `toml:"video_profiles"`
	AudioBitrate           string         `toml:"audio_bitrate"`
	ThumbnailWidth         int            `toml:"thumbnail_width"`
	ThumbnailHeight        int            `toml:"thumbnail_height"`
	ThumbnailSecondsOffset int            `toml:"thumbnail_seconds_offset"`
}

// VideoProfile параметры одной видео-рендиции
type VideoProfile struct {
	Resolution string `toml:"resolution"` // "1080p"
	Bitrate    string `toml:"bitrate"`    // "4M"
}

// PaymentsConfig настройки платежного контура (Stripe)
type PaymentsConfig struct {
	StripeSecretKey     string `toml:"stripe_secret_key"`
	StripeWebhookSecret string `toml:"stripe_webhook_secret"`
	Currency            string `toml:"currency"`
	DefaultDepositCents int64  `toml:"default_deposit_cents"`
}

// SweeperConfig настройки уборщика истекших резерваций
type SweeperConfig struct {
	Interval       string `toml:"interval"` // cron spec
	BatchSize      int    `toml:"batch_size"`
	HoldTTLMinutes int    `toml:"hold_ttl_minutes"`
}

// Load читает конфигурацию из TOML файла и применяет значения по умолчанию
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "elderly-booking"
	}
	if c.Notifications.QuietHoursStart == "" {
		c.Notifications.QuietHoursStart = "21:00"
	}
	if c.Notifications.QuietHoursEnd == "" {
		c.Notifications.QuietHoursEnd = "08:00"
	}
	if c.Notifications.MaxAttempts == 0 {
		c.Notifications.MaxAttempts = 3
	}
	if len(c.Notifications.RetryBackoffSeconds) == 0 {
		c.Notifications.RetryBackoffSeconds = []int{60, 300, 900}
	}
	if c.Notifications.DefaultWindowHours == 0 {
		c.Notifications.DefaultWindowHours = 24
	}
	if c.Notifications.EnqueueInterval == "" {
		c.Notifications.EnqueueInterval = "@every 1m"
	}
	if c.Media.MaxAttempts == 0 {
		c.Media.MaxAttempts = 5
	}
	if len(c.Media.RetryBackoffSeconds) == 0 {
		c.Media.RetryBackoffSeconds = []int{60, 180, 600}
	}
	if c.Media.VirusScanTimeout == 0 {
		c.Media.VirusScanTimeout = 300
	}
	if c.Media.TranscodeTimeout == 0 {
		c.Media.TranscodeTimeout = 900
	}
	if c.Media.ThumbnailTimeout == 0 {
		c.Media.ThumbnailTimeout = 120
	}
	if len(c.Media.VideoProfiles) == 0 {
		c.Media.VideoProfiles = []VideoProfile{
			{Resolution: "1080p", Bitrate: "4M"},
			{Resolution: "720p", Bitrate: "2M"},
		}
	}
	if c.Media.AudioBitrate == "" {
		c.Media.AudioBitrate = "128k"
	}
	if c.Media.ThumbnailWidth == 0 {
		c.Media.ThumbnailWidth = 640
	}
	if c.Media.ThumbnailHeight == 0 {
		c.Media.ThumbnailHeight = 360
	}
	if c.Media.ThumbnailSecondsOffset == 0 {
		c.Media.ThumbnailSecondsOffset = 3
	}
	if c.Payments.Currency == "" {
		c.Payments.Currency = "usd"
	}
	if c.Payments.DefaultDepositCents == 0 {
		c.Payments.DefaultDepositCents = 1000
	}
	if c.Sweeper.Interval == "" {
		c.Sweeper.Interval = "@every 1m"
	}
	if c.Sweeper.BatchSize == 0 {
		c.Sweeper.BatchSize = 100
	}
	if c.Sweeper.HoldTTLMinutes == 0 {
		c.Sweeper.HoldTTLMinutes = 15
	}
}
