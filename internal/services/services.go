package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/saikiran-1508/chronicle/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")

	ErrTaskNotFound      = errors.New("task not found")
	ErrTitleRequired     = errors.New("title is required")
	ErrTitleTooLong      = errors.New("title must be 100 characters or fewer")
	ErrInvalidTaskStatus = errors.New("status must be pending, in-progress, or completed")
	ErrInvalidTimestamp  = errors.New("invalid timestamp")

	ErrNoteContentRequired = errors.New("note content is required")

	ErrMessageRequired = errors.New("message is required")
	ErrAIUnavailable   = errors.New("AI service is not configured")

	ErrSubmissionInFlight = errors.New("submission already in flight")
)

type AuthService interface {
	// Login authenticates the user by email and password.
	//
	// It deletes all sessions with the same user ID, creates a new
	// session and generates a new JWT token pair.
	//
	// It returns ErrUserNotFound if the user with the given email
	// doesn't exist or ErrUserPasswordMismatch if the given password
	// doesn't match the user's password.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Refresh updates the session with the given refresh token.
	//
	// It returns ErrSessionNotFound if the session with the given
	// refresh token doesn't exist or ErrSessionExpired if the
	// session is expired.
	Refresh(ctx context.Context, params RefreshParams) (*LoginResult, error)

	// Register a user with the given email and password.
	//
	// It returns ErrUserAlreadyExists if the user with the given
	// email already exists.
	Register(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Logout invalidates all sessions with the given user ID.
	Logout(ctx context.Context, userID string) error

	// ParseJWTToken parses the given JWT token and returns the registered
	// claims or jwt.ErrTokenExpired if the token is expired.
	ParseJWTToken(token string) (*jwt.RegisteredClaims, error)
}

type SessionService interface {
	GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error)
}

type TaskService interface {
	// CreateTask stores a new task. Title must already be validated and
	// timestamps composed by the submission orchestrator.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// GetTaskByID returns the task with note enrichment, scoped to the
	// owning user. It returns ErrTaskNotFound when absent.
	GetTaskByID(ctx context.Context, userID, taskID string) (*models.Task, error)

	// GetTasksByUserID returns the user's tasks, newest first, with note
	// enrichment. An empty result is not an error.
	GetTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error)

	// UpdateTask applies the non-nil fields and returns the updated task.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask removes the task and, via cascade, its notes.
	DeleteTask(ctx context.Context, userID, taskID string) error

	// CountTasksByStatus aggregates the user's task counts for the
	// profile stats block.
	CountTasksByStatus(ctx context.Context, userID string) (*models.TaskStats, error)

	// ListReminderTasks returns every task across users with reminders
	// enabled and a start time set, for trigger rehydration at startup.
	ListReminderTasks(ctx context.Context) ([]*models.Task, error)
}

type NoteService interface {
	// GetNotesByTaskID returns the task's notes in chronological order.
	GetNotesByTaskID(ctx context.Context, userID, taskID string) ([]*models.Note, error)

	// AddNote appends a progress note. When MarkComplete is set the task
	// is flipped to completed in the same transaction; the returned task
	// is non-nil only in that case so the caller can re-sync reminders.
	AddNote(ctx context.Context, params AddNoteParams) (*models.Note, *models.Task, error)
}

type ProfileService interface {
	// GetProfile returns the user's profile, creating a default one on
	// first read.
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)

	// UpdateProfile applies the non-nil fields. Blank values fall back
	// to the defaults rather than erroring.
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*models.Profile, error)
}

type AIService interface {
	// RecommendForTask asks the language model for recommendations based
	// on the task and its notes.
	RecommendForTask(ctx context.Context, userID, taskID string) (string, error)

	// Chat answers a user message with the user's task list as context
	// and records the exchange in the per-user history.
	Chat(ctx context.Context, params ChatParams) (string, error)
}

type SubmissionService interface {
	// Submit validates the creation form, composes timestamps, creates
	// the task and best-effort schedules its reminder. At most one
	// submission per user may be in flight; a concurrent second call
	// returns ErrSubmissionInFlight.
	Submit(ctx context.Context, params SubmitTaskParams) (*models.Task, error)
}

type LoginParams struct {
	Email       string
	Password    string
	Fingerprint string
}

type LoginResult struct {
	UserID                string
	SessionID             string
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

type RefreshParams struct {
	RefreshToken string
	Fingerprint  string
}

type CreateTaskParams struct {
	UserID          string
	Title           string
	Description     string
	Status          string
	StartTime       *string
	FinishBy        *string
	DueDate         *string
	ReminderEnabled bool
}

type UpdateTaskParams struct {
	ID              string
	UserID          string
	Title           *string
	Description     *string
	Status          *string
	StartTime       *string
	FinishBy        *string
	DueDate         *string
	ReminderEnabled *bool
}

type AddNoteParams struct {
	TaskID       string
	UserID       string
	Content      string
	MarkComplete bool
}

type UpdateProfileParams struct {
	UserID string
	Name   *string
	Avatar *string
}

type ChatParams struct {
	UserID  string
	Message string
	// History overrides the stored conversation when provided.
	History []ChatMessage
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SubmitTaskParams carries the creation form. Timestamps arrive either as
// pre-composed local ISO strings (StartTime/FinishBy) or as the form's
// separate date and clock fields; the composed form wins when both are set.
type SubmitTaskParams struct {
	UserID          string
	Title           string
	Description     string
	Status          string
	StartTime       *string
	FinishBy        *string
	StartDate       string
	StartClock      string
	FinishDate      string
	FinishClock     string
	ReminderEnabled bool
}
