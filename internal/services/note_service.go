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
)

type noteServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewNoteService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) NoteService {
	return &noteServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *noteServiceImpl) GetNotesByTaskID(ctx context.Context, userID, taskID string) ([]*models.Note, error) {
	const selectTaskOwnerQuery = `
SELECT 1 FROM tasks WHERE id = $1 AND user_id = $2
`
	var one int
	err := s.pgPool.QueryRow(
		ctx,
		selectTaskOwnerQuery,
		taskID,
		userID,
	).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("task_id", taskID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to check task owner")
		return nil, err
	}

	const selectNotesQuery = `
SELECT id, content, created_at
FROM notes
WHERE task_id = $1
ORDER BY created_at
`
	rows, err := s.pgPool.Query(
		ctx,
		selectNotesQuery,
		taskID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to select notes")
		return nil, err
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note := &models.Note{TaskID: taskID}
		err = rows.Scan(
			&note.ID,
			&note.Content,
			&note.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan note")
			return nil, err
		}
		notes = append(notes, note)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	return notes, nil
}

func (s *noteServiceImpl) AddNote(ctx context.Context, params AddNoteParams) (*models.Note, *models.Task, error) {
	content := strings.TrimSpace(params.Content)
	if content == "" {
		return nil, nil, ErrNoteContentRequired
	}

	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var completedTask *models.Task
	if params.MarkComplete {
		// A note may mark its task completed; the note and the status
		// flip land atomically.
		const completeTaskQuery = `
UPDATE tasks
SET status = $1, updated_at = $2
WHERE id = $3 AND user_id = $4
RETURNING title, description, start_time, finish_by, due_date, reminder_enabled, created_at
`
		completedTask = &models.Task{
			ID:        params.TaskID,
			UserID:    params.UserID,
			Status:    models.StatusCompleted,
			UpdatedAt: time.Now(),
		}
		err = tx.QueryRow(
			ctx,
			completeTaskQuery,
			completedTask.Status,
			completedTask.UpdatedAt,
			completedTask.ID,
			completedTask.UserID,
		).Scan(
			&completedTask.Title,
			&completedTask.Description,
			&completedTask.StartTime,
			&completedTask.FinishBy,
			&completedTask.DueDate,
			&completedTask.ReminderEnabled,
			&completedTask.CreatedAt,
		)
	} else {
		const selectTaskOwnerQuery = `
SELECT 1 FROM tasks WHERE id = $1 AND user_id = $2
`
		var one int
		err = tx.QueryRow(
			ctx,
			selectTaskOwnerQuery,
			params.TaskID,
			params.UserID,
		).Scan(&one)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("task_id", params.TaskID).
				Msg("task not found")
			return nil, nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", params.TaskID).
			Msg("failed to fetch task for note")
		return nil, nil, err
	}

	note := &models.Note{
		ID:        uuid.NewString(),
		TaskID:    params.TaskID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	const insertNoteQuery = `
INSERT INTO notes (id, task_id, content, created_at)
VALUES ($1, $2, $3, $4)
`
	_, err = tx.Exec(
		ctx,
		insertNoteQuery,
		note.ID,
		note.TaskID,
		note.Content,
		note.CreatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", note.TaskID).
			Msg("failed to insert note")
		return nil, nil, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return nil, nil, err
	}

	s.logger.Info().
		Str("note_id", note.ID).
		Str("task_id", note.TaskID).
		Bool("mark_complete", params.MarkComplete).
		Msg("added note")
	return note, completedTask, nil
}
