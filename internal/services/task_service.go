package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/saikiran-1508/chronicle/internal/models"
	"github.com/saikiran-1508/chronicle/internal/timeutil"
)

// maxTitleLength mirrors the title column's VARCHAR(100) bound.
const maxTitleLength = 100

type taskServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len(title) > maxTitleLength {
		return nil, ErrTitleTooLong
	}

	status := params.Status
	if status == "" {
		status = models.StatusPending
	}
	if !models.ValidStatus(status) {
		return nil, ErrInvalidTaskStatus
	}

	now := time.Now()
	task := &models.Task{
		ID:              uuid.NewString(),
		UserID:          params.UserID,
		Title:           title,
		Description:     strings.TrimSpace(params.Description),
		Status:          status,
		StartTime:       params.StartTime,
		FinishBy:        params.FinishBy,
		DueDate:         params.DueDate,
		ReminderEnabled: params.ReminderEnabled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   user_id,
                   title,
                   description,
                   status,
                   start_time,
                   finish_by,
                   due_date,
                   reminder_enabled,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`
	_, err := s.pgPool.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Status,
		task.StartTime,
		task.FinishBy,
		task.DueDate,
		task.ReminderEnabled,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("created task")
	return task, nil
}

// taskColumns lists the task row plus note enrichment: note count and the
// latest note's content as a preview.
const taskColumns = `
t.id,
t.title,
t.description,
t.status,
t.start_time,
t.finish_by,
t.due_date,
t.reminder_enabled,
t.created_at,
t.updated_at,
(SELECT COUNT(*) FROM notes n WHERE n.task_id = t.id),
(SELECT n.content FROM notes n WHERE n.task_id = t.id ORDER BY n.created_at DESC LIMIT 1)`

func scanTask(row pgx.Row, task *models.Task) error {
	return row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.StartTime,
		&task.FinishBy,
		&task.DueDate,
		&task.ReminderEnabled,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.NotesCount,
		&task.LatestNote,
	)
}

func (s *taskServiceImpl) GetTaskByID(ctx context.Context, userID, taskID string) (*models.Task, error) {
	const selectTaskByIDQuery = `
SELECT ` + taskColumns + `
FROM tasks t
WHERE t.id = $1 AND t.user_id = $2
`
	task := &models.Task{UserID: userID}
	err := scanTask(s.pgPool.QueryRow(
		ctx,
		selectTaskByIDQuery,
		taskID,
		userID,
	), task)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("task_id", taskID).
				Str("user_id", userID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to select task")
		return nil, err
	}

	return task, nil
}

func (s *taskServiceImpl) GetTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error) {
	const selectTasksByUserIDQuery = `
SELECT ` + taskColumns + `
FROM tasks t
WHERE t.user_id = $1
ORDER BY t.created_at DESC
`
	rows, err := s.pgPool.Query(
		ctx,
		selectTasksByUserIDQuery,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select tasks by user id")
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{UserID: userID}
		err = scanTask(rows, task)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("selected tasks by user id")
	return tasks, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	// Validate every supplied field before touching storage: an edit gets
	// the same scrutiny as a create.
	var title string
	if params.Title != nil {
		title = strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		if len(title) > maxTitleLength {
			return nil, ErrTitleTooLong
		}
	}
	if params.Status != nil && !models.ValidStatus(*params.Status) {
		return nil, ErrInvalidTaskStatus
	}

	startTime, err := normalizeTimestampEdit(params.StartTime)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("task_id", params.ID).
			Msg("invalid start time edit")
		return nil, ErrInvalidTimestamp
	}
	finishBy, err := normalizeTimestampEdit(params.FinishBy)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("task_id", params.ID).
			Msg("invalid finish by edit")
		return nil, ErrInvalidTimestamp
	}
	dueDate, err := normalizeTimestampEdit(params.DueDate)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("task_id", params.ID).
			Msg("invalid due date edit")
		return nil, ErrInvalidTimestamp
	}

	task, err := s.GetTaskByID(ctx, params.UserID, params.ID)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		task.Title = title
	}
	if params.Description != nil {
		task.Description = strings.TrimSpace(*params.Description)
	}
	if params.Status != nil {
		task.Status = *params.Status
	}
	if params.StartTime != nil {
		task.StartTime = startTime
	}
	if params.FinishBy != nil {
		task.FinishBy = finishBy
	}
	if params.DueDate != nil {
		task.DueDate = dueDate
	}
	if params.ReminderEnabled != nil {
		task.ReminderEnabled = *params.ReminderEnabled
	}
	task.UpdatedAt = time.Now()

	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    description = $2,
    status = $3,
    start_time = $4,
    finish_by = $5,
    due_date = $6,
    reminder_enabled = $7,
    updated_at = $8
WHERE id = $9 AND user_id = $10
`
	_, err = s.pgPool.Exec(
		ctx,
		updateTaskQuery,
		task.Title,
		task.Description,
		task.Status,
		task.StartTime,
		task.FinishBy,
		task.DueDate,
		task.ReminderEnabled,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, taskID string) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND user_id = $2
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteTaskQuery,
		taskID,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Str("task_id", taskID).
			Str("user_id", userID).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.logger.Info().
		Str("task_id", taskID).
		Str("user_id", userID).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) CountTasksByStatus(ctx context.Context, userID string) (*models.TaskStats, error) {
	const countTasksQuery = `
SELECT COUNT(*),
       COUNT(*) FILTER (WHERE status = 'pending'),
       COUNT(*) FILTER (WHERE status = 'in-progress'),
       COUNT(*) FILTER (WHERE status = 'completed')
FROM tasks
WHERE user_id = $1
`
	stats := &models.TaskStats{}
	err := s.pgPool.QueryRow(
		ctx,
		countTasksQuery,
		userID,
	).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.InProgress,
		&stats.Completed,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to count tasks")
		return nil, err
	}

	return stats, nil
}

func (s *taskServiceImpl) ListReminderTasks(ctx context.Context) ([]*models.Task, error) {
	const selectReminderTasksQuery = `
SELECT id, user_id, title, status, start_time, reminder_enabled
FROM tasks
WHERE reminder_enabled AND start_time IS NOT NULL AND status <> 'completed'
`
	rows, err := s.pgPool.Query(ctx, selectReminderTasksQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select reminder tasks")
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{}
		err = rows.Scan(
			&task.ID,
			&task.UserID,
			&task.Title,
			&task.Status,
			&task.StartTime,
			&task.ReminderEnabled,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan reminder task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	return tasks, nil
}

// normalizeTimestampEdit validates a timestamp from a partial update. A nil
// pointer leaves the field unchanged, an empty string clears it, and anything
// else must parse as a local timestamp and is stored normalized.
func normalizeTimestampEdit(s *string) (*string, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}

	t, err := timeutil.ParseLocal(*s)
	if err != nil {
		return nil, err
	}
	normalized := timeutil.FormatLocal(t)
	return &normalized, nil
}
