//go:build !gcloud

package taskqueue

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestPrimindTasksClient_RegisterReminder(t *testing.T) {
	scheduleAt := time.Date(2026, 1, 19, 8, 30, 0, 0, time.UTC)

	var received PrimindTaskRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tasks/reminders" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(PrimindTaskResponse{
			Name:         "tasks/b-1",
			ScheduleTime: scheduleAt.Format(time.RFC3339),
			CreateTime:   scheduleAt.Add(-time.Hour).Format(time.RFC3339),
		})
	}))
	defer srv.Close()

	client := NewPrimindTasksClient(srv.URL, "reminders", 1)
	resp, err := client.RegisterReminder(context.Background(), &ReminderTask{
		ScheduleAt:   scheduleAt,
		BookingID:    "b-1",
		ProviderID:   "p-1",
		ProviderName: "Dr. Test",
		Date:         "2026-01-19",
		StartTime:    "09:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Name != "tasks/b-1" {
		t.Errorf("Name = %s, want tasks/b-1", resp.Name)
	}
	if !resp.ScheduleTime.Equal(scheduleAt) {
		t.Errorf("ScheduleTime = %v, want %v", resp.ScheduleTime, scheduleAt)
	}
	if received.Task.ScheduleTime != "2026-01-19T08:30:00Z" {
		t.Errorf("request scheduleTime = %s", received.Task.ScheduleTime)
	}

	body, err := base64.StdEncoding.DecodeString(received.Task.HTTPRequest.Body)
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	var task ReminderTask
	if err := json.Unmarshal(body, &task); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if task.BookingID != "b-1" || task.ProviderName != "Dr. Test" || task.StartTime != "09:00" {
		t.Errorf("unexpected task payload: %+v", task)
	}
}

func TestPrimindTasksClient_RetriesThenFails(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewPrimindTasksClient(srv.URL, "default", 2)
	_, err := client.RegisterReminder(context.Background(), &ReminderTask{BookingID: "b-1"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("server called %d times, want 2", got)
	}
}

func TestPrimindTasksClient_DefaultQueueURL(t *testing.T) {
	tests := []struct {
		name      string
		queueName string
		want      string
	}{
		{name: "empty", queueName: "", want: "http://tasks/tasks"},
		{name: "default", queueName: "default", want: "http://tasks/tasks"},
		{name: "named", queueName: "reminders", want: "http://tasks/tasks/reminders"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewPrimindTasksClient("http://tasks", tt.queueName, 0)
			if got := c.tasksURL(); got != tt.want {
				t.Errorf("tasksURL() = %s, want %s", got, tt.want)
			}
		})
	}
}
