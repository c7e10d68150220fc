package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	// Server Configuration
	Server ServerConfig
	Logger LoggerConfig
	TUI    TUIConfig

	// Environment Configuration
	Environment EnvironmentConfig

	// Panel Configuration
	Panel PanelConfig

	// Storage Configuration
	Postgres PostgresConfig
	SQLite   SQLiteConfig
	Redis    RedisConfig

	// Messaging Configuration
	NATS      NATSConfig
	WebSocket WebSocketConfig

	// Monitoring & Notification Configuration
	Discord  DiscordConfig
	Telegram TelegramConfig
	Alert    AlertConfig
	Tracing  TracingConfig
}

// ServerConfig is the configuration for the HTTP server
type ServerConfig struct {
	Host string `env:"PANEL_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PANEL_PORT" envDefault:"8080" validate:"min=1,max=65535"`
	Mode string `env:"PANEL_MODE" envDefault:"release" validate:"oneof=debug release test"`
	// CORSOrigins may hold "*" or "*.example.com" wildcards.
	CORSOrigins []string `env:"PANEL_CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

// TUIConfig is the configuration for the terminal frontend
type TUIConfig struct {
	// LogFile receives the logs, the terminal itself belongs to the UI.
	// Empty means the XDG state directory.
	LogFile string `env:"PANEL_TUI_LOG"`
}

// PanelConfig drives the polling loop of one user session.
type PanelConfig struct {
	UserID                int64         `env:"PANEL_USER_ID" envDefault:"2" validate:"gt=0"`
	PollInterval          time.Duration `env:"PANEL_POLL_INTERVAL" envDefault:"2s" validate:"gte=1s"`
	Source                string        `env:"PANEL_SOURCE" envDefault:"http" validate:"oneof=http postgres sqlite"`
	BaseURL               string        `env:"PANEL_BASE_URL" envDefault:"http://localhost:9090" validate:"omitempty,url"`
	RequestTimeout        time.Duration `env:"PANEL_REQUEST_TIMEOUT" envDefault:"5s" validate:"gt=0"`
	ToastDuration         time.Duration `env:"PANEL_TOAST_DURATION" envDefault:"3500ms" validate:"gt=0"`
	SuppressInitialToasts bool          `env:"PANEL_SUPPRESS_INITIAL_TOASTS" envDefault:"false"`
	// Timezone zone-less backend timestamps are read in.
	Timezone string `env:"PANEL_TIMEZONE" envDefault:"Local"`
}

// PostgresConfig is the configuration for the notifications database
type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD"`
	DBName   string `env:"POSTGRES_DB" envDefault:"builders"`
	SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable" validate:"oneof=disable require verify-ca verify-full"`
}

// SQLiteConfig is the configuration for the embedded notifications store
type SQLiteConfig struct {
	Path        string        `env:"SQLITE_PATH" envDefault:"data/panel.db"`
	BusyTimeout time.Duration `env:"SQLITE_BUSY_TIMEOUT" envDefault:"5s"`
	Migrate     bool          `env:"SQLITE_MIGRATE" envDefault:"true"`
}

// RedisConfig is the configuration for Redis
// Note: Only standalone mode is supported
type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED" envDefault:"false"`
	Host     string `env:"REDIS_HOST" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	UseTLS   bool   `env:"REDIS_USE_TLS" envDefault:"false"`

	// Connection pool settings
	MaxRetries      int           `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	MinIdleConns    int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	PoolSize        int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	PoolTimeout     time.Duration `env:"REDIS_POOL_TIMEOUT" envDefault:"4s"`
	ConnMaxIdleTime time.Duration `env:"REDIS_CONN_MAX_IDLE_TIME" envDefault:"5m"`
	ConnMaxLifetime time.Duration `env:"REDIS_CONN_MAX_LIFETIME" envDefault:"30m"`
	ConnectTimeout  time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"5s"`
}

// NATSConfig is the configuration for the event export
type NATSConfig struct {
	Enabled       bool          `env:"NATS_ENABLED" envDefault:"false"`
	URL           string        `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	SubjectPrefix string        `env:"NATS_SUBJECT_PREFIX" envDefault:"panel"`
	Name          string        `env:"NATS_CLIENT_NAME" envDefault:"builders-panel"`
	ReconnectWait time.Duration `env:"NATS_RECONNECT_WAIT" envDefault:"2s"`
	MaxReconnects int           `env:"NATS_MAX_RECONNECTS" envDefault:"60"`
}

// WebSocketConfig is the configuration for WebSocket connections
type WebSocketConfig struct {
	PingInterval          time.Duration `env:"WS_PING_INTERVAL" envDefault:"30s"`
	PongWait              time.Duration `env:"WS_PONG_WAIT" envDefault:"60s"`
	WriteWait             time.Duration `env:"WS_WRITE_WAIT" envDefault:"10s"`
	MaxMessageSize        int64         `env:"WS_MAX_MESSAGE_SIZE" envDefault:"512"`
	ReadBufferSize        int           `env:"WS_READ_BUFFER_SIZE" envDefault:"1024"`
	WriteBufferSize       int           `env:"WS_WRITE_BUFFER_SIZE" envDefault:"1024"`
	MaxConnections        int           `env:"WS_MAX_CONNECTIONS" envDefault:"1000"`
	MaxConnectionsPerUser int           `env:"WS_MAX_CONNECTIONS_PER_USER" envDefault:"10"`
	ConnectsPerMinute     int           `env:"WS_CONNECTS_PER_MINUTE" envDefault:"20"`
	// AllowedOrigins empty accepts any origin.
	AllowedOrigins []string `env:"WS_ALLOWED_ORIGINS" envSeparator:","`
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level        string `env:"LOGGER_LEVEL" envDefault:"info"`
	Mode         string `env:"LOGGER_MODE" envDefault:"production"`
	Encoding     string `env:"LOGGER_ENCODING" envDefault:"json" validate:"oneof=json console"`
	ColorEnabled bool   `env:"LOGGER_COLOR_ENABLED" envDefault:"true"`
}

// EnvironmentConfig is the configuration for environment-aware features
type EnvironmentConfig struct {
	Name string `env:"ENV" envDefault:"production"`
}

// DiscordConfig is the configuration for Discord webhook notifications
type DiscordConfig struct {
	WebhookID    string `env:"DISCORD_WEBHOOK_ID"`
	WebhookToken string `env:"DISCORD_WEBHOOK_TOKEN"`
}

// Configured reports whether both webhook parts are set.
func (c DiscordConfig) Configured() bool {
	return c.WebhookID != "" && c.WebhookToken != ""
}

// TelegramConfig is the configuration for the Telegram escalation chat
type TelegramConfig struct {
	BotToken string        `env:"TELEGRAM_BOT_TOKEN"`
	ChatID   int64         `env:"TELEGRAM_CHAT_ID"`
	ThreadID int           `env:"TELEGRAM_THREAD_ID"`
	APIURL   string        `env:"TELEGRAM_API_URL" envDefault:"https://api.telegram.org" validate:"url"`
	Timeout  time.Duration `env:"TELEGRAM_TIMEOUT" envDefault:"10s"`
}

// Configured reports whether both the token and the chat are set.
func (c TelegramConfig) Configured() bool {
	return c.BotToken != "" && c.ChatID != 0
}

// AlertConfig throttles escalation of failure notifications.
type AlertConfig struct {
	Enabled bool          `env:"ALERT_ENABLED" envDefault:"false"`
	Every   time.Duration `env:"ALERT_EVERY" envDefault:"30s" validate:"gt=0"`
	Burst   int           `env:"ALERT_BURST" envDefault:"3" validate:"gte=1"`
}

// TracingConfig enables OpenTelemetry spans. Without an endpoint spans are
// recorded for log correlation only and never exported.
type TracingConfig struct {
	Enabled     bool    `env:"OTEL_ENABLED" envDefault:"false"`
	Endpoint    string  `env:"PANEL_OTLP_ENDPOINT" validate:"omitempty,url"`
	ServiceName string  `env:"PANEL_SERVICE_NAME" envDefault:"builders-panel"`
	SampleRatio float64 `env:"PANEL_TRACE_SAMPLE_RATIO" envDefault:"1" validate:"gte=0,lte=1"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config.Load.Parse: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct tags and the cross-field rules the tags cannot express.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config.Validate: %w", err)
	}
	if cfg.Panel.PollInterval%time.Second != 0 {
		return fmt.Errorf("config.Validate: PANEL_POLL_INTERVAL must be whole seconds, got %s", cfg.Panel.PollInterval)
	}
	if cfg.Panel.Source == "http" && cfg.Panel.BaseURL == "" {
		return fmt.Errorf("config.Validate: PANEL_BASE_URL is required for the http source")
	}
	if cfg.Alert.Enabled && !cfg.Discord.Configured() && !cfg.Telegram.Configured() {
		return fmt.Errorf("config.Validate: ALERT_ENABLED requires a Discord webhook or a Telegram chat")
	}
	if cfg.Panel.Source == "sqlite" && cfg.SQLite.Path == "" {
		return fmt.Errorf("config.Validate: SQLITE_PATH is required for the sqlite source")
	}
	if _, err := cfg.Panel.Location(); err != nil {
		return fmt.Errorf("config.Validate: PANEL_TIMEZONE: %w", err)
	}
	return nil
}

// Location resolves Timezone.
func (c PanelConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
