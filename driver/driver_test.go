package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/sporadisk/punchclock/client/toggl"
	"github.com/sporadisk/punchclock/message"
	"github.com/sporadisk/punchclock/schedule"
	"github.com/sporadisk/punchclock/workday"
)

var plan = workday.Plan{
	MorningStart:   workday.ClockTime{Hour: 8},
	MorningEnd:     workday.ClockTime{Hour: 12},
	AfternoonStart: workday.ClockTime{Hour: 13},
	AfternoonEnd:   workday.ClockTime{Hour: 17},
}

// Monday 19 October 2026.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2026, time.October, 19, hour, minute, 0, 0, time.UTC)
}

type fakeTracker struct {
	begins   int
	stops    int
	beginErr error
	running  *toggl.TimeEntry
	adopted  *toggl.TimeEntry
}

func (f *fakeTracker) Begin(context.Context) error { f.begins++; return f.beginErr }
func (f *fakeTracker) Stop(context.Context) error  { f.stops++; return nil }

func (f *fakeTracker) CurrentEntry(context.Context) (*toggl.TimeEntry, error) {
	return f.running, nil
}

func (f *fakeTracker) Adopt(entry *toggl.TimeEntry) { f.adopted = entry }

func newDriver(t *testing.T, tracker Tracker, now time.Time, logs io.Writer) *Driver {
	t.Helper()
	s := schedule.New()
	err := s.Weekly(plan, tracker.Begin, tracker.Stop, now)
	if err != nil {
		t.Fatalf("Weekly: %s", err.Error())
	}
	return &Driver{
		Plan:         plan,
		Scheduler:    s,
		Tracker:      tracker,
		Logger:       slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Now:          func() time.Time { return now },
		PollInterval: 5 * time.Millisecond,
	}
}

func runBriefly(t *testing.T, d *Driver) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err := d.Run(ctx)
	if err != nil {
		t.Errorf("Run: %s", err.Error())
	}
}

func TestRunStartupDecision(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		begins int
		logged string
	}{
		{name: "weekday morning", now: mondayAt(9, 0), begins: 1, logged: "inside working hours"},
		{name: "weekday afternoon", now: mondayAt(15, 30), begins: 1, logged: "inside working hours"},
		{name: "lunch break", now: mondayAt(12, 30), begins: 0, logged: "outside working hours"},
		{name: "evening", now: mondayAt(20, 0), begins: 0, logged: "outside working hours"},
		{name: "saturday", now: mondayAt(9, 0).AddDate(0, 0, 5), begins: 0, logged: "weekend"},
		{name: "sunday", now: mondayAt(9, 0).AddDate(0, 0, 6), begins: 0, logged: "weekend"},
	}

	for _, te := range tests {
		t.Run(te.name, func(t *testing.T) {
			var logs bytes.Buffer
			tracker := &fakeTracker{}
			d := newDriver(t, tracker, te.now, &logs)

			runBriefly(t, d)

			if tracker.begins != te.begins {
				t.Errorf("expected %d begins, got %d", te.begins, tracker.begins)
			}
			if !strings.Contains(logs.String(), te.logged) {
				t.Errorf("expected %q in logs:\n%s", te.logged, logs.String())
			}
		})
	}
}

func TestRunWeekendReturnsWithoutLooping(t *testing.T) {
	var logs bytes.Buffer
	tracker := &fakeTracker{}
	saturday := mondayAt(9, 0).AddDate(0, 0, 5)
	d := newDriver(t, tracker, saturday, &logs)

	// A context that never ends: Run must still return on its own.
	done := make(chan error, 1)
	go func() { done <- d.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %s", err.Error())
		}
	case <-time.After(2 * time.Second):
		t.Errorf("Run did not return on a weekend")
		return
	}

	if len(d.Scheduler.Jobs()) != 20 {
		t.Errorf("schedule should still hold 20 triggers, got %d", len(d.Scheduler.Jobs()))
	}
	if tracker.begins != 0 || tracker.stops != 0 {
		t.Errorf("no action expected on a weekend, got %d begins / %d stops", tracker.begins, tracker.stops)
	}
}

func TestTickFiresDueTriggers(t *testing.T) {
	var logs bytes.Buffer
	tracker := &fakeTracker{}
	clock := mondayAt(7, 0)
	d := newDriver(t, tracker, clock, &logs)
	d.Now = func() time.Time { return clock }

	tr := d.Tick(context.Background())
	if tr.Ran() != 0 {
		t.Errorf("nothing should be due at 07:00, got %d", tr.Ran())
	}

	clock = mondayAt(8, 0)
	tr = d.Tick(context.Background())
	if tr.Ran() != 1 || tr.Failed() != 0 {
		t.Errorf("expected 1 successful trigger, got %d ran / %d failed", tr.Ran(), tr.Failed())
	}
	if tracker.begins != 1 {
		t.Errorf("expected 1 begin, got %d", tracker.begins)
	}

	clock = mondayAt(12, 1)
	tr = d.Tick(context.Background())
	if tr.Ran() != 1 || tracker.stops != 1 {
		t.Errorf("expected the morning stop, got %d ran / %d stops", tr.Ran(), tracker.stops)
	}
}

func TestTickLogsFailuresAndContinues(t *testing.T) {
	var logs bytes.Buffer
	tracker := &fakeTracker{beginErr: errors.New("remote down")}
	clock := mondayAt(7, 0)
	d := newDriver(t, tracker, clock, &logs)
	d.Now = func() time.Time { return clock }

	clock = mondayAt(8, 0)
	tr := d.Tick(context.Background())
	if tr.Failed() != 1 {
		t.Errorf("expected 1 failure, got %d", tr.Failed())
	}
	if !strings.Contains(logs.String(), "level=ERROR") || !strings.Contains(logs.String(), "remote down") {
		t.Errorf("expected the failure to be logged:\n%s", logs.String())
	}

	clock = mondayAt(12, 0)
	tr = d.Tick(context.Background())
	if tr.Ran() != 1 || tracker.stops != 1 {
		t.Errorf("loop should continue after a failure, got %d ran / %d stops", tr.Ran(), tracker.stops)
	}
}

func TestRunAdoptsRunningEntry(t *testing.T) {
	var logs bytes.Buffer
	running := &toggl.TimeEntry{ID: 9, Duration: -1, Description: "Deep work"}
	tracker := &fakeTracker{running: running}
	d := newDriver(t, tracker, mondayAt(20, 0), &logs)
	d.AdoptRunning = true

	runBriefly(t, d)

	if tracker.adopted != running {
		t.Errorf("expected the running entry to be adopted")
	}
}

// togglStub records the requests of the two time entry calls.
type togglStub struct {
	mu         sync.Mutex
	requests   []string
	createCode int
}

func (s *togglStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, _ := io.ReadAll(r.Body)
	s.requests = append(s.requests, r.Method+" "+r.URL.Path+" "+string(body))

	if r.Method == http.MethodPost {
		if s.createCode != 0 && s.createCode != http.StatusOK {
			w.WriteHeader(s.createCode)
			fmt.Fprint(w, "internal error")
			return
		}
		fmt.Fprint(w, `{"id":31,"workspace_id":5,"description":"x","start":"2026-10-19T09:00:00Z","duration":-1}`)
		return
	}
	fmt.Fprint(w, `{}`)
}

func newTogglClient(t *testing.T, srv *httptest.Server, now time.Time) *toggl.Client {
	t.Helper()
	fs := afero.NewMemMapFs()
	err := afero.WriteFile(fs, "start_messages.txt", []byte("Standup prep\nCode review\n"), 0644)
	if err != nil {
		t.Fatalf("afero.WriteFile: %s", err.Error())
	}
	store, err := message.NewStore(fs, "start_messages.txt", "end_messages.txt", nil)
	if err != nil {
		t.Fatalf("message.NewStore: %s", err.Error())
	}

	c := &toggl.Client{
		Endpoint:    srv.URL,
		Email:       "worker@example.com",
		Password:    "secret",
		WorkspaceID: 5,
		Messages:    store,
		Rand:        rand.New(rand.NewPCG(11, 12)),
		Now:         func() time.Time { return now },
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	err = c.Init()
	if err != nil {
		t.Fatalf("c.Init: %s", err.Error())
	}
	return c
}

func TestRunStartsEntryAgainstAPI(t *testing.T) {
	stub := &togglStub{}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	now := mondayAt(9, 0)
	c := newTogglClient(t, srv, now)

	var logs bytes.Buffer
	d := newDriver(t, c, now, &logs)
	runBriefly(t, d)

	stub.mu.Lock()
	defer stub.mu.Unlock()
	if len(stub.requests) != 1 {
		t.Errorf("expected exactly one request, got %d: %q", len(stub.requests), stub.requests)
		return
	}
	req := stub.requests[0]
	if !strings.HasPrefix(req, "POST /workspaces/5/time_entries ") {
		t.Errorf("unexpected request %q", req)
	}
	if !strings.Contains(req, `"description":"Standup prep"`) && !strings.Contains(req, `"description":"Code review"`) {
		t.Errorf("description not drawn from the start pool: %q", req)
	}
	if c.Current() == nil || c.Current().ID != 31 {
		t.Errorf("expected entry 31 to be tracked, got %+v", c.Current())
	}
}

func TestRunSurvivesCreateFailure(t *testing.T) {
	stub := &togglStub{createCode: http.StatusInternalServerError}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	now := mondayAt(9, 0)
	c := newTogglClient(t, srv, now)

	var logs bytes.Buffer
	d := newDriver(t, c, now, &logs)
	runBriefly(t, d)

	if c.Current() != nil {
		t.Errorf("tracked entry should stay empty, got %+v", c.Current())
	}
	out := logs.String()
	if !strings.Contains(out, "starting entry failed") || !strings.Contains(out, "resp 500") {
		t.Errorf("expected the failure to be logged:\n%s", out)
	}
	if !strings.Contains(out, "shutting down") {
		t.Errorf("loop should keep running until cancelled:\n%s", out)
	}
}
