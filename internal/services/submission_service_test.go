package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/saikiran-1508/chronicle/internal/models"
)

type stubTaskService struct {
	TaskService

	mu       sync.Mutex
	created  []CreateTaskParams
	createFn func(params CreateTaskParams) (*models.Task, error)
}

func (s *stubTaskService) CreateTask(_ context.Context, params CreateTaskParams) (*models.Task, error) {
	s.mu.Lock()
	s.created = append(s.created, params)
	s.mu.Unlock()

	if s.createFn != nil {
		return s.createFn(params)
	}

	task := &models.Task{
		ID:              "task-1",
		UserID:          params.UserID,
		Title:           params.Title,
		Status:          models.StatusPending,
		StartTime:       params.StartTime,
		FinishBy:        params.FinishBy,
		ReminderEnabled: params.ReminderEnabled,
	}
	return task, nil
}

func (s *stubTaskService) createCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.created)
}

type stubSyncer struct {
	mu     sync.Mutex
	synced []*models.Task
}

func (s *stubSyncer) SyncTask(task *models.Task) {
	s.mu.Lock()
	s.synced = append(s.synced, task)
	s.mu.Unlock()
}

func (s *stubSyncer) syncCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.synced)
}

func newTestSubmission() (SubmissionService, *stubTaskService, *stubSyncer) {
	tasks := &stubTaskService{}
	syncer := &stubSyncer{}
	return NewSubmissionService(zerolog.Nop(), tasks, syncer), tasks, syncer
}

func TestSubmit_EmptyTitleMakesNoStorageCall(t *testing.T) {
	submit, tasks, _ := newTestSubmission()

	_, err := submit.Submit(context.Background(), SubmitTaskParams{
		UserID: "u1",
		Title:  "   ",
	})
	if !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("err = %v, want ErrTitleRequired", err)
	}
	if tasks.createCount() != 0 {
		t.Fatal("CreateTask was called for an invalid form")
	}
}

func TestSubmit_ComposesTimestampsWithDefaults(t *testing.T) {
	submit, tasks, _ := newTestSubmission()

	_, err := submit.Submit(context.Background(), SubmitTaskParams{
		UserID:     "u1",
		Title:      "Write report",
		StartDate:  "2026-02-15",
		FinishDate: "2026-02-20",
	})
	if err != nil {
		t.Fatal(err)
	}

	params := tasks.created[0]
	if params.StartTime == nil || *params.StartTime != "2026-02-15T00:00:00" {
		t.Fatalf("start time = %v, want 2026-02-15T00:00:00", params.StartTime)
	}
	if params.FinishBy == nil || *params.FinishBy != "2026-02-20T23:59:00" {
		t.Fatalf("finish by = %v, want 2026-02-20T23:59:00", params.FinishBy)
	}
}

func TestSubmit_PreComposedTimestampPassedThrough(t *testing.T) {
	submit, tasks, syncer := newTestSubmission()

	iso := "2026-02-15T09:00:00"
	_, err := submit.Submit(context.Background(), SubmitTaskParams{
		UserID:          "u1",
		Title:           "Write report",
		StartTime:       &iso,
		ReminderEnabled: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	params := tasks.created[0]
	if params.StartTime == nil || *params.StartTime != iso {
		t.Fatalf("start time = %v, want %q", params.StartTime, iso)
	}
	if syncer.syncCount() != 1 {
		t.Fatalf("reminder sync count = %d, want 1", syncer.syncCount())
	}
	if got := *syncer.synced[0].StartTime; got != iso {
		t.Fatalf("synced start time = %q, want %q", got, iso)
	}
}

func TestSubmit_InvalidTimestampRejected(t *testing.T) {
	submit, tasks, _ := newTestSubmission()

	_, err := submit.Submit(context.Background(), SubmitTaskParams{
		UserID:    "u1",
		Title:     "Write report",
		StartDate: "someday",
	})
	if !errors.Is(err, ErrInvalidTimestamp) {
		t.Fatalf("err = %v, want ErrInvalidTimestamp", err)
	}
	if tasks.createCount() != 0 {
		t.Fatal("CreateTask was called for an invalid timestamp")
	}
}

func TestSubmit_ReminderDisabledNeverSchedules(t *testing.T) {
	submit, _, syncer := newTestSubmission()

	_, err := submit.Submit(context.Background(), SubmitTaskParams{
		UserID:    "u1",
		Title:     "Write report",
		StartDate: "2026-02-15",
	})
	if err != nil {
		t.Fatal(err)
	}
	if syncer.syncCount() != 0 {
		t.Fatal("reminder sync called with reminders disabled")
	}
}

func TestSubmit_StorageFailureSkipsReminder(t *testing.T) {
	submit, tasks, syncer := newTestSubmission()
	tasks.createFn = func(CreateTaskParams) (*models.Task, error) {
		return nil, errors.New("insert failed")
	}

	_, err := submit.Submit(context.Background(), SubmitTaskParams{
		UserID:          "u1",
		Title:           "Write report",
		StartDate:       "2026-02-15",
		ReminderEnabled: true,
	})
	if err == nil {
		t.Fatal("Submit succeeded despite storage failure")
	}
	if syncer.syncCount() != 0 {
		t.Fatal("reminder sync called after failed creation")
	}
}

func TestSubmit_ConcurrentSecondSubmitRejected(t *testing.T) {
	tasks := &stubTaskService{}
	syncer := &stubSyncer{}
	submit := NewSubmissionService(zerolog.Nop(), tasks, syncer)

	started := make(chan struct{})
	unblock := make(chan struct{})
	tasks.createFn = func(params CreateTaskParams) (*models.Task, error) {
		close(started)
		<-unblock
		return &models.Task{ID: "task-1", UserID: params.UserID, Title: params.Title}, nil
	}

	firstDone := make(chan error, 1)
	go func() {
		_, err := submit.Submit(context.Background(), SubmitTaskParams{
			UserID: "u1",
			Title:  "Write report",
		})
		firstDone <- err
	}()

	<-started
	_, err := submit.Submit(context.Background(), SubmitTaskParams{
		UserID: "u1",
		Title:  "Write report again",
	})
	if !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("second submit err = %v, want ErrSubmissionInFlight", err)
	}

	close(unblock)
	if err := <-firstDone; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if tasks.createCount() != 1 {
		t.Fatalf("CreateTask called %d times, want 1", tasks.createCount())
	}

	// The guard releases once the first submission completes.
	if _, err := submit.Submit(context.Background(), SubmitTaskParams{
		UserID: "u1",
		Title:  "Third task",
	}); err != nil {
		t.Fatalf("submit after release failed: %v", err)
	}
}
