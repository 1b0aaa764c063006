package models

import (
	"time"

	"github.com/saikiran-1508/chronicle/internal/timeutil"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"

	// StatusOverdue is a display-only value, never stored.
	StatusOverdue = "overdue"
)

func ValidStatus(status string) bool {
	return status == StatusPending ||
		status == StatusInProgress ||
		status == StatusCompleted
}

type Task struct {
	ID              string
	UserID          string
	Title           string
	Description     string
	Status          string
	StartTime       *string
	FinishBy        *string
	DueDate         *string
	ReminderEnabled bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Enrichment fields filled by the task service, not stored columns.
	NotesCount int
	LatestNote *string
}

// DisplayAt derives the status shown to the user from the stored status and
// the current wall-clock time. The stored status is never mutated here: a
// task whose finish_by has passed stays "pending" in the database but is
// displayed as overdue until it is completed.
func (t *Task) DisplayAt(now time.Time) (status string, overdue bool) {
	status = t.Status
	if t.Status == StatusCompleted {
		return status, false
	}

	if t.FinishBy != nil {
		finishBy, err := timeutil.ParseLocal(*t.FinishBy)
		if err == nil && finishBy.Before(now) {
			return StatusOverdue, true
		}
	}

	if t.Status == StatusPending && t.StartTime != nil {
		startTime, err := timeutil.ParseLocal(*t.StartTime)
		if err == nil && !startTime.After(now) {
			status = StatusInProgress
		}
	}
	return status, false
}
