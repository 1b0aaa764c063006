package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env      string `env:"ENV" env-required:"true"`
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	NATS     NATSConfig
	JWT      JWTConfig
	Gemini   GeminiConfig
	Reminder ReminderConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"5000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type PostgresConfig struct {
	Host           string        `env:"POSTGRES_HOST" env-required:"true"`
	Port           int           `env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `env:"POSTGRES_USERNAME" env-required:"true"`
	Password       string        `env:"POSTGRES_PASSWORD" env-required:"true"`
	Database       string        `env:"POSTGRES_DATABASE" env-required:"true"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

// Redis backs the sound preference store and chat history. Both degrade to
// defaults when it is unreachable, so the URL is optional.
type RedisConfig struct {
	URL         string        `env:"REDIS_URL" env-default:""`
	PingTimeout time.Duration `env:"REDIS_PING_TIMEOUT" env-default:"5s"`
}

// NATS carries fired reminder triggers. Optional: without it fired reminders
// are logged instead of published.
type NATSConfig struct {
	URL     string `env:"NATS_URL" env-default:""`
	Subject string `env:"NATS_REMINDER_SUBJECT" env-default:"chronicle.reminders"`
}

type JWTConfig struct {
	Issuer          string        `env:"JWT_ISSUER" env-default:"chronicle"`
	SigningKey      string        `env:"JWT_SIGNING_KEY" env-required:"true"`
	AccessTokenTTL  time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TOKEN_TTL" env-default:"720h"`
}

type GeminiConfig struct {
	APIKey  string        `env:"GEMINI_API_KEY" env-default:""`
	Model   string        `env:"GEMINI_MODEL" env-default:"gemini-2.5-flash"`
	Timeout time.Duration `env:"GEMINI_TIMEOUT" env-default:"60s"`
}

type ReminderConfig struct {
	// RehydrateTimeout bounds the startup reload of pending triggers.
	RehydrateTimeout time.Duration `env:"REMINDER_REHYDRATE_TIMEOUT" env-default:"10s"`
}
