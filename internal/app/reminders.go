package app

import (
	"context"

	"github.com/saikiran-1508/chronicle/internal/config"
	"github.com/saikiran-1508/chronicle/internal/prefs"
	"github.com/saikiran-1508/chronicle/internal/reminder"
	"github.com/saikiran-1508/chronicle/internal/services"
)

var (
	globalReminderEngine *reminder.Engine
	globalSoundStore     *prefs.Store
)

func StartReminderEngine() {
	cfg := config.Global()

	var kv prefs.KV
	if globalRedisClient != nil {
		kv = prefs.NewRedisKV(globalRedisClient)
	}
	globalSoundStore = prefs.New(globalLogger, kv)

	notifier := reminder.NewLogNotifier(globalLogger)
	if globalNATSConn != nil {
		notifier = reminder.NewNATSNotifier(globalLogger, globalNATSConn, cfg.NATS.Subject)
	}

	globalReminderEngine = reminder.NewEngine(globalLogger, notifier, globalSoundStore)
	globalReminderEngine.Start()

	// Triggers do not survive a restart on their own; rebuild them from
	// the tasks table. Reminders are best-effort, so a failed reload is
	// logged and the engine starts with an empty trigger set.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Reminder.RehydrateTimeout)
	defer cancel()

	taskService := services.NewTaskService(globalLogger, globalPostgresPool)
	err := globalReminderEngine.Rehydrate(ctx, taskService)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to rehydrate reminder triggers, starting without them")
	}
}

func StopReminderEngine() {
	globalReminderEngine.Stop()
}
