package models

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestDisplayAt(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.Local)

	cases := []struct {
		name        string
		task        Task
		wantStatus  string
		wantOverdue bool
	}{
		{
			name:        "no timestamps stays pending",
			task:        Task{Status: StatusPending},
			wantStatus:  StatusPending,
			wantOverdue: false,
		},
		{
			name: "past finish and not completed is overdue",
			task: Task{
				Status:   StatusPending,
				FinishBy: strPtr("2026-06-14T18:00:00"),
			},
			wantStatus:  StatusOverdue,
			wantOverdue: true,
		},
		{
			name: "past finish while in progress is overdue",
			task: Task{
				Status:   StatusInProgress,
				FinishBy: strPtr("2026-06-15T11:59:00"),
			},
			wantStatus:  StatusOverdue,
			wantOverdue: true,
		},
		{
			name: "completed is never overdue",
			task: Task{
				Status:   StatusCompleted,
				FinishBy: strPtr("2020-01-01T00:00:00"),
			},
			wantStatus:  StatusCompleted,
			wantOverdue: false,
		},
		{
			name:        "no finish by is never overdue",
			task:        Task{Status: StatusInProgress},
			wantStatus:  StatusInProgress,
			wantOverdue: false,
		},
		{
			name: "future finish is not overdue",
			task: Task{
				Status:   StatusPending,
				FinishBy: strPtr("2026-06-16T09:00:00"),
			},
			wantStatus:  StatusPending,
			wantOverdue: false,
		},
		{
			name: "pending with started clock shows in progress",
			task: Task{
				Status:    StatusPending,
				StartTime: strPtr("2026-06-15T09:00:00"),
			},
			wantStatus:  StatusInProgress,
			wantOverdue: false,
		},
		{
			name: "pending with future start stays pending",
			task: Task{
				Status:    StatusPending,
				StartTime: strPtr("2026-06-15T15:00:00"),
			},
			wantStatus:  StatusPending,
			wantOverdue: false,
		},
		{
			// Inverted range: overdue wins over the start promotion, so
			// the task is never shown as in-progress.
			name: "inverted range goes straight to overdue",
			task: Task{
				Status:    StatusPending,
				StartTime: strPtr("2026-06-15T10:00:00"),
				FinishBy:  strPtr("2026-06-15T08:00:00"),
			},
			wantStatus:  StatusOverdue,
			wantOverdue: true,
		},
		{
			name: "unparseable finish by is ignored",
			task: Task{
				Status:   StatusPending,
				FinishBy: strPtr("not-a-date"),
			},
			wantStatus:  StatusPending,
			wantOverdue: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, overdue := tc.task.DisplayAt(now)
			if status != tc.wantStatus || overdue != tc.wantOverdue {
				t.Fatalf("DisplayAt = (%q, %v), want (%q, %v)",
					status, overdue, tc.wantStatus, tc.wantOverdue)
			}
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{StatusPending, StatusInProgress, StatusCompleted} {
		if !ValidStatus(status) {
			t.Errorf("ValidStatus(%q) = false", status)
		}
	}
	for _, status := range []string{"", StatusOverdue, "archived", "Pending"} {
		if ValidStatus(status) {
			t.Errorf("ValidStatus(%q) = true", status)
		}
	}
}
