package services

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/saikiran-1508/chronicle/internal/models"
	"github.com/saikiran-1508/chronicle/internal/timeutil"
)

const (
	defaultStartClock  = "00:00"
	defaultFinishClock = "23:59"
)

// ReminderSyncer is the reminder engine as the orchestrator sees it.
type ReminderSyncer interface {
	SyncTask(task *models.Task)
}

type submissionServiceImpl struct {
	logger    zerolog.Logger
	tasks     TaskService
	reminders ReminderSyncer

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewSubmissionService(
	logger zerolog.Logger,
	tasks TaskService,
	reminders ReminderSyncer,
) SubmissionService {
	return &submissionServiceImpl{
		logger:    logger,
		tasks:     tasks,
		reminders: reminders,
		inFlight:  make(map[string]struct{}),
	}
}

func (s *submissionServiceImpl) Submit(ctx context.Context, params SubmitTaskParams) (*models.Task, error) {
	if !s.acquire(params.UserID) {
		s.logger.Warn().
			Str("user_id", params.UserID).
			Msg("rejected concurrent task submission")
		return nil, ErrSubmissionInFlight
	}
	defer s.release(params.UserID)

	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}

	startTime, err := resolveTimestamp(params.StartTime, params.StartDate, params.StartClock, defaultStartClock)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("invalid start time fields")
		return nil, ErrInvalidTimestamp
	}
	finishBy, err := resolveTimestamp(params.FinishBy, params.FinishDate, params.FinishClock, defaultFinishClock)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("invalid finish time fields")
		return nil, ErrInvalidTimestamp
	}

	task, err := s.tasks.CreateTask(ctx, CreateTaskParams{
		UserID:          params.UserID,
		Title:           params.Title,
		Description:     params.Description,
		Status:          params.Status,
		StartTime:       startTime,
		FinishBy:        finishBy,
		DueDate:         finishBy,
		ReminderEnabled: params.ReminderEnabled,
	})
	if err != nil {
		return nil, err
	}

	// Reminder scheduling is best-effort: the task exists regardless of
	// the trigger outcome.
	if task.ReminderEnabled && task.StartTime != nil {
		s.reminders.SyncTask(task)
	}

	return task, nil
}

func (s *submissionServiceImpl) acquire(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, busy := s.inFlight[userID]
	if busy {
		return false
	}
	s.inFlight[userID] = struct{}{}
	return true
}

func (s *submissionServiceImpl) release(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, userID)
}

// resolveTimestamp normalizes a pre-composed ISO timestamp when one was sent,
// and otherwise composes one from the form's separate date and clock fields.
// A missing date means "no timestamp"; a clock with no date is dropped too.
func resolveTimestamp(iso *string, date, clock, defaultClock string) (*string, error) {
	if iso != nil && strings.TrimSpace(*iso) != "" {
		t, err := timeutil.ParseLocal(*iso)
		if err != nil {
			return nil, err
		}
		normalized := timeutil.FormatLocal(t)
		return &normalized, nil
	}

	if strings.TrimSpace(date) == "" {
		return nil, nil
	}

	composed, err := timeutil.ComposeLocal(date, clock, defaultClock)
	if err != nil {
		return nil, err
	}
	return &composed, nil
}
