package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/saikiran-1508/chronicle/internal/models"
	"github.com/saikiran-1508/chronicle/internal/prefs"
	"github.com/saikiran-1508/chronicle/internal/timeutil"
)

type captureNotifier struct {
	mu    sync.Mutex
	fired []Notification
	ch    chan Notification
}

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{ch: make(chan Notification, 8)}
}

func (n *captureNotifier) Notify(_ context.Context, notification Notification) error {
	n.mu.Lock()
	n.fired = append(n.fired, notification)
	n.mu.Unlock()
	n.ch <- notification
	return nil
}

func newTestEngine() (*Engine, *captureNotifier) {
	notifier := newCaptureNotifier()
	sounds := prefs.New(zerolog.Nop(), nil)
	return NewEngine(zerolog.Nop(), notifier, sounds), notifier
}

func futureISO(d time.Duration) string {
	return time.Now().Add(d).Format("2006-01-02T15:04:05")
}

func TestSchedule_PastFireTimeIsRejected(t *testing.T) {
	engine, _ := newTestEngine()

	if engine.Schedule("t1", "u1", "Write report", "2020-01-01T09:00:00") {
		t.Fatal("Schedule accepted a past fire time")
	}
	if _, ok := engine.Pending("t1"); ok {
		t.Fatal("a trigger is registered after a rejected schedule")
	}
}

func TestSchedule_UnparseableFireTimeIsRejected(t *testing.T) {
	engine, _ := newTestEngine()

	if engine.Schedule("t1", "u1", "Write report", "soon") {
		t.Fatal("Schedule accepted an unparseable fire time")
	}
}

func TestSchedule_RegistersOneTrigger(t *testing.T) {
	engine, _ := newTestEngine()

	fireAt := futureISO(time.Hour)
	if !engine.Schedule("t1", "u1", "Write report", fireAt) {
		t.Fatal("Schedule rejected a future fire time")
	}

	pending, ok := engine.Pending("t1")
	if !ok {
		t.Fatal("no trigger registered")
	}
	want, _ := timeutil.ParseLocal(fireAt)
	if !pending.Equal(want) {
		t.Fatalf("pending fire time = %s, want %s", pending, want)
	}
}

func TestSchedule_SecondCallReplacesTheFirst(t *testing.T) {
	engine, _ := newTestEngine()

	first := futureISO(time.Hour)
	second := futureISO(2 * time.Hour)
	if !engine.Schedule("t1", "u1", "Write report", first) {
		t.Fatal("first Schedule failed")
	}
	if !engine.Schedule("t1", "u1", "Write report", second) {
		t.Fatal("second Schedule failed")
	}

	pending, ok := engine.Pending("t1")
	if !ok {
		t.Fatal("no trigger registered")
	}
	want, _ := timeutil.ParseLocal(second)
	if !pending.Equal(want) {
		t.Fatalf("pending fire time = %s, want the second call's %s", pending, want)
	}
}

func TestCancel_IsIdempotent(t *testing.T) {
	engine, _ := newTestEngine()

	engine.Cancel("never-scheduled")

	engine.Schedule("t1", "u1", "Write report", futureISO(time.Hour))
	engine.Cancel("t1")
	engine.Cancel("t1")

	if _, ok := engine.Pending("t1"); ok {
		t.Fatal("trigger survived cancellation")
	}
}

func TestSyncTask(t *testing.T) {
	start := futureISO(time.Hour)

	cases := []struct {
		name        string
		task        models.Task
		wantPending bool
	}{
		{
			name: "enabled future start schedules",
			task: models.Task{
				ID: "t1", UserID: "u1", Title: "Write report",
				Status: models.StatusPending, ReminderEnabled: true, StartTime: &start,
			},
			wantPending: true,
		},
		{
			name: "disabled reminder cancels",
			task: models.Task{
				ID: "t1", UserID: "u1", Title: "Write report",
				Status: models.StatusPending, ReminderEnabled: false, StartTime: &start,
			},
			wantPending: false,
		},
		{
			name: "no start time cancels",
			task: models.Task{
				ID: "t1", UserID: "u1", Title: "Write report",
				Status: models.StatusPending, ReminderEnabled: true,
			},
			wantPending: false,
		},
		{
			name: "completed task cancels",
			task: models.Task{
				ID: "t1", UserID: "u1", Title: "Write report",
				Status: models.StatusCompleted, ReminderEnabled: true, StartTime: &start,
			},
			wantPending: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine, _ := newTestEngine()
			// Seed an existing trigger so cancel paths have something
			// to remove.
			engine.Schedule("t1", "u1", "Write report", futureISO(30*time.Minute))

			engine.SyncTask(&tc.task)

			_, pending := engine.Pending("t1")
			if pending != tc.wantPending {
				t.Fatalf("pending = %v, want %v", pending, tc.wantPending)
			}
		})
	}
}

func TestSyncTask_PastStartTimeCancelsExistingTrigger(t *testing.T) {
	engine, _ := newTestEngine()
	engine.Schedule("t1", "u1", "Write report", futureISO(time.Hour))

	past := "2020-01-01T09:00:00"
	engine.SyncTask(&models.Task{
		ID: "t1", UserID: "u1", Title: "Write report",
		Status: models.StatusPending, ReminderEnabled: true, StartTime: &past,
	})

	if _, ok := engine.Pending("t1"); ok {
		t.Fatal("stale trigger survived a sync to a past start time")
	}
}

type stubLister struct {
	tasks []*models.Task
	err   error
}

func (s *stubLister) ListReminderTasks(context.Context) ([]*models.Task, error) {
	return s.tasks, s.err
}

func TestRehydrate_SchedulesFutureSkipsPast(t *testing.T) {
	engine, _ := newTestEngine()

	future := futureISO(time.Hour)
	past := "2020-01-01T09:00:00"
	err := engine.Rehydrate(context.Background(), &stubLister{tasks: []*models.Task{
		{ID: "t1", UserID: "u1", Title: "Write report", StartTime: &future},
		{ID: "t2", UserID: "u1", Title: "Old task", StartTime: &past},
		{ID: "t3", UserID: "u1", Title: "No start"},
	}})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := engine.Pending("t1"); !ok {
		t.Fatal("future start time was not rescheduled")
	}
	for _, taskID := range []string{"t2", "t3"} {
		if _, ok := engine.Pending(taskID); ok {
			t.Fatalf("task %s got a trigger it should not have", taskID)
		}
	}
}

func TestRehydrate_ListerFailureLeavesNoTriggers(t *testing.T) {
	engine, _ := newTestEngine()

	err := engine.Rehydrate(context.Background(), &stubLister{err: errors.New("connection refused")})
	if err == nil {
		t.Fatal("Rehydrate swallowed the lister error")
	}
	if _, ok := engine.Pending("t1"); ok {
		t.Fatal("trigger registered despite a failed reload")
	}
}

func TestFire_DeliversPayloadAndClearsTrigger(t *testing.T) {
	engine, notifier := newTestEngine()
	engine.Start()
	defer engine.Stop()

	fireAt := futureISO(2 * time.Second)
	if !engine.Schedule("t1", "u1", "Write report", fireAt) {
		t.Fatal("Schedule failed")
	}

	select {
	case n := <-notifier.ch:
		if n.TaskID != "t1" {
			t.Fatalf("fired task id = %q, want %q", n.TaskID, "t1")
		}
		if n.Title != "Task Reminder" {
			t.Fatalf("fired title = %q", n.Title)
		}
		if n.Body != "Time to start: Write report" {
			t.Fatalf("fired body = %q", n.Body)
		}
		if n.Sound != prefs.DefaultSound {
			t.Fatalf("fired sound = %q", n.Sound)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("trigger never fired")
	}

	if _, ok := engine.Pending("t1"); ok {
		t.Fatal("trigger still pending after firing")
	}
}
