package reminder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Notification is the payload delivered when a trigger fires.
type Notification struct {
	TaskID         string  `json:"taskId"`
	Title          string  `json:"title"`
	Body           string  `json:"body"`
	Sound          string  `json:"sound"`
	CustomSoundURI *string `json:"customSoundUri,omitempty"`
	FireAt         string  `json:"fireAt"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type natsNotifier struct {
	logger  zerolog.Logger
	conn    *nats.Conn
	subject string
}

// NewNATSNotifier publishes fired triggers to a NATS subject for downstream
// delivery (push gateway, websocket fan-out, whatever is subscribed).
func NewNATSNotifier(logger zerolog.Logger, conn *nats.Conn, subject string) Notifier {
	return &natsNotifier{
		logger:  logger,
		conn:    conn,
		subject: subject,
	}
}

func (p *natsNotifier) Notify(_ context.Context, n Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	err = p.conn.Publish(p.subject, data)
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	p.logger.Info().
		Str("task_id", n.TaskID).
		Str("subject", p.subject).
		Msg("published reminder notification")
	return nil
}

type logNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier is the fallback when no NATS connection is configured.
func NewLogNotifier(logger zerolog.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (p *logNotifier) Notify(_ context.Context, n Notification) error {
	p.logger.Info().
		Str("task_id", n.TaskID).
		Str("title", n.Title).
		Str("body", n.Body).
		Str("sound", n.Sound).
		Msg("reminder fired")
	return nil
}
