// Package reminder owns local reminder triggers: at most one pending
// one-shot notification per task, created when a task gains a future start
// time with reminders enabled, replaced when the start time moves, cancelled
// when reminders are disabled or the task goes away. Scheduling is a
// best-effort convenience: every failure here is logged, never surfaced.
package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"github.com/saikiran-1508/chronicle/internal/models"
	"github.com/saikiran-1508/chronicle/internal/prefs"
	"github.com/saikiran-1508/chronicle/internal/timeutil"
)

const notificationTitle = "Task Reminder"

const notifyTimeout = 10 * time.Second

type trigger struct {
	job    *gocron.Job
	fireAt time.Time
}

type Engine struct {
	logger    zerolog.Logger
	scheduler *gocron.Scheduler
	notifier  Notifier
	sounds    *prefs.Store

	mu   sync.Mutex
	jobs map[string]*trigger
}

func NewEngine(logger zerolog.Logger, notifier Notifier, sounds *prefs.Store) *Engine {
	return &Engine{
		logger:    logger,
		scheduler: gocron.NewScheduler(time.Local),
		notifier:  notifier,
		sounds:    sounds,
		jobs:      make(map[string]*trigger),
	}
}

func (e *Engine) Start() {
	e.scheduler.StartAsync()
	e.logger.Info().Msg("started reminder engine")
}

func (e *Engine) Stop() {
	e.scheduler.Stop()
	e.logger.Info().Msg("stopped reminder engine")
}

// Schedule registers a one-shot trigger for the task, replacing any existing
// one. It returns false without touching existing triggers when fireAtISO
// does not parse or is not strictly in the future.
func (e *Engine) Schedule(taskID, userID, title, fireAtISO string) bool {
	fireAt, err := timeutil.ParseLocal(fireAtISO)
	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("task_id", taskID).
			Msg("unparseable reminder fire time, skipping")
		return false
	}
	if !fireAt.After(time.Now()) {
		e.logger.Warn().
			Str("task_id", taskID).
			Str("fire_at", fireAtISO).
			Msg("reminder fire time is in the past, skipping")
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// One live trigger per task, enforced here rather than relying on the
	// scheduler's own de-duplication.
	e.removeLocked(taskID)

	job, err := e.scheduler.
		Every(1).
		Day().
		StartAt(fireAt).
		LimitRunsTo(1).
		Tag(taskID).
		Do(func() {
			e.fire(taskID, userID, title, fireAt)
		})
	if err != nil {
		e.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to register reminder trigger")
		return false
	}

	e.jobs[taskID] = &trigger{job: job, fireAt: fireAt}
	e.logger.Info().
		Str("task_id", taskID).
		Time("fire_at", fireAt).
		Msg("scheduled reminder trigger")
	return true
}

// Cancel removes the task's trigger. No-op when none exists.
func (e *Engine) Cancel(taskID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.removeLocked(taskID) {
		e.logger.Info().
			Str("task_id", taskID).
			Msg("cancelled reminder trigger")
	}
}

// Pending reports whether a trigger is live for the task and when it fires.
func (e *Engine) Pending(taskID string) (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.jobs[taskID]
	if !ok {
		return time.Time{}, false
	}
	return t.fireAt, true
}

// SyncTask is the single reschedule path for every task mutation: it cancels
// the trigger when reminders are off or there is nothing to fire at, and
// replaces it otherwise. Callers never schedule directly.
func (e *Engine) SyncTask(task *models.Task) {
	if task.Status == models.StatusCompleted ||
		!task.ReminderEnabled ||
		task.StartTime == nil || *task.StartTime == "" {
		e.Cancel(task.ID)
		return
	}

	if !e.Schedule(task.ID, task.UserID, task.Title, *task.StartTime) {
		e.Cancel(task.ID)
	}
}

// TaskLister yields tasks that may need a live trigger.
type TaskLister interface {
	ListReminderTasks(ctx context.Context) ([]*models.Task, error)
}

// Rehydrate rebuilds triggers from storage after a restart. Past start times
// fall out naturally through Schedule's precondition.
func (e *Engine) Rehydrate(ctx context.Context, lister TaskLister) error {
	tasks, err := lister.ListReminderTasks(ctx)
	if err != nil {
		return err
	}

	scheduled := 0
	for _, task := range tasks {
		if task.StartTime == nil {
			continue
		}
		if e.Schedule(task.ID, task.UserID, task.Title, *task.StartTime) {
			scheduled++
		}
	}

	e.logger.Info().
		Int("candidates", len(tasks)).
		Int("scheduled", scheduled).
		Msg("rehydrated reminder triggers")
	return nil
}

func (e *Engine) fire(taskID, userID, title string, fireAt time.Time) {
	e.mu.Lock()
	e.removeLocked(taskID)
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	n := Notification{
		TaskID: taskID,
		Title:  notificationTitle,
		Body:   "Time to start: " + title,
		Sound:  prefs.DefaultSound,
		FireAt: timeutil.FormatLocal(fireAt),
	}
	if e.sounds != nil {
		// Resolve the sound at fire time so a preference change after
		// scheduling still applies.
		n.Sound = e.sounds.SelectedSound(ctx, userID)
		n.CustomSoundURI = e.sounds.CustomSoundURI(ctx, userID)
	}

	err := e.notifier.Notify(ctx, n)
	if err != nil {
		e.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to deliver reminder notification")
	}
}

func (e *Engine) removeLocked(taskID string) bool {
	_, ok := e.jobs[taskID]
	if !ok {
		return false
	}

	// RemoveByTag errors when the scheduler has already dropped the job;
	// cancellation stays idempotent either way.
	_ = e.scheduler.RemoveByTag(taskID)
	delete(e.jobs, taskID)
	return true
}
