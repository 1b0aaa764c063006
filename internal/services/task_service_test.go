package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestUpdateTask_RejectsInvalidInputBeforeStorage(t *testing.T) {
	// A nil pool would panic on any query; validation must reject first.
	tasks := NewTaskService(zerolog.Nop(), nil)

	longTitle := strings.Repeat("x", 101)
	cases := []struct {
		name    string
		params  UpdateTaskParams
		wantErr error
	}{
		{
			name:    "blank title",
			params:  UpdateTaskParams{Title: strPtr("   ")},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "overlong title",
			params:  UpdateTaskParams{Title: &longTitle},
			wantErr: ErrTitleTooLong,
		},
		{
			name:    "unknown status",
			params:  UpdateTaskParams{Status: strPtr("archived")},
			wantErr: ErrInvalidTaskStatus,
		},
		{
			name:    "display-only status",
			params:  UpdateTaskParams{Status: strPtr("overdue")},
			wantErr: ErrInvalidTaskStatus,
		},
		{
			name:    "unparseable start time",
			params:  UpdateTaskParams{StartTime: strPtr("whenever")},
			wantErr: ErrInvalidTimestamp,
		},
		{
			name:    "unparseable finish by",
			params:  UpdateTaskParams{FinishBy: strPtr("15/02/2026")},
			wantErr: ErrInvalidTimestamp,
		},
		{
			name:    "unparseable due date",
			params:  UpdateTaskParams{DueDate: strPtr("soon")},
			wantErr: ErrInvalidTimestamp,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.params.ID = "t1"
			tc.params.UserID = "u1"
			_, err := tasks.UpdateTask(context.Background(), tc.params)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("UpdateTask err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreateTask_RejectsOverlongTitle(t *testing.T) {
	tasks := NewTaskService(zerolog.Nop(), nil)

	_, err := tasks.CreateTask(context.Background(), CreateTaskParams{
		UserID: "u1",
		Title:  strings.Repeat("x", 101),
	})
	if !errors.Is(err, ErrTitleTooLong) {
		t.Fatalf("CreateTask err = %v, want ErrTitleTooLong", err)
	}
}

func TestNormalizeTimestampEdit(t *testing.T) {
	cases := []struct {
		name    string
		in      *string
		want    *string
		wantErr bool
	}{
		{name: "nil leaves field alone", in: nil, want: nil},
		{name: "empty clears field", in: strPtr("  "), want: nil},
		{
			name: "minute precision normalized to seconds",
			in:   strPtr("2026-02-15T09:30"),
			want: strPtr("2026-02-15T09:30:00"),
		},
		{
			name: "full timestamp passes through",
			in:   strPtr("2026-02-15T09:30:00"),
			want: strPtr("2026-02-15T09:30:00"),
		},
		{name: "garbage rejected", in: strPtr("whenever"), wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizeTimestampEdit(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatal("normalizeTimestampEdit succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			switch {
			case tc.want == nil && got != nil:
				t.Fatalf("got %q, want nil", *got)
			case tc.want != nil && (got == nil || *got != *tc.want):
				t.Fatalf("got %v, want %q", got, *tc.want)
			}
		})
	}
}

func strPtr(s string) *string { return &s }
