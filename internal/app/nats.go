package app

import (
	"github.com/nats-io/nats.go"

	"github.com/saikiran-1508/chronicle/internal/config"
)

var globalNATSConn *nats.Conn

// ConnectNATS is non-fatal: without a broker, fired reminders are logged by
// the fallback notifier instead of published.
func ConnectNATS() {
	cfg := config.Global().NATS
	if cfg.URL == "" {
		globalLogger.Warn().Msg("nats not configured, reminders will be logged only")
		return
	}

	conn, err := nats.Connect(cfg.URL)
	if err != nil {
		globalLogger.Warn().
			Err(err).
			Msg("failed to connect to nats, continuing without it")
		return
	}

	globalNATSConn = conn
	globalLogger.Info().
		Str("url", cfg.URL).
		Msg("connected to nats")
}

func DisconnectNATS() {
	if globalNATSConn == nil {
		return
	}
	globalNATSConn.Close()
	globalLogger.Info().Msg("disconnected from nats")
}
