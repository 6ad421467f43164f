package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"calchat/internal/calendar"
	"calchat/internal/chat"
)

// recordedRequest captures what the fake server saw.
type recordedRequest struct {
	Method    string
	Path      string
	Body      map[string]string
	RequestID string
}

func newTestServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *[]recordedRequest) {
	t.Helper()
	var seen []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path, RequestID: r.Header.Get("X-Request-ID")}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&rec.Body)
		}
		seen = append(seen, rec)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, &seen
}

func TestFetchMonth(t *testing.T) {
	c, seen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"2024-05-01": "Buy milk"}`))
	})

	tasks, err := c.FetchMonth(context.Background(), calendar.Month{Year: 2024, Month: time.May})
	if err != nil {
		t.Fatalf("FetchMonth() error = %v", err)
	}
	if tasks["2024-05-01"] != "Buy milk" || len(tasks) != 1 {
		t.Errorf("tasks = %v", tasks)
	}

	if len(*seen) != 1 {
		t.Fatalf("requests = %d, want 1", len(*seen))
	}
	req := (*seen)[0]
	if req.Method != http.MethodGet || req.Path != "/tasks/month/2024/05" {
		t.Errorf("request = %s %s, want GET /tasks/month/2024/05", req.Method, req.Path)
	}
	if req.RequestID == "" {
		t.Error("X-Request-ID header was not set")
	}
}

func TestCreateAndUpdateTask(t *testing.T) {
	c, seen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
		}
		_, _ = w.Write([]byte(`{"message": "ok"}`))
	})

	ctx := context.Background()
	if err := c.CreateTask(ctx, "2024-05-01", "X"); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if err := c.UpdateTask(ctx, "2024-05-01", "Y"); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}

	want := []struct {
		method, path, task string
	}{
		{http.MethodPost, "/tasks/2024-05-01", "X"},
		{http.MethodPut, "/tasks/2024-05-01", "Y"},
	}
	if len(*seen) != len(want) {
		t.Fatalf("requests = %d, want %d", len(*seen), len(want))
	}
	for i, w := range want {
		got := (*seen)[i]
		if got.Method != w.method || got.Path != w.path || got.Body["task"] != w.task {
			t.Errorf("request %d = %s %s %v, want %s %s task=%q", i, got.Method, got.Path, got.Body, w.method, w.path, w.task)
		}
	}
}

func TestCreateTask_EmptyTextIsSent(t *testing.T) {
	c, seen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	if err := c.CreateTask(context.Background(), "2024-05-01", ""); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	task, ok := (*seen)[0].Body["task"]
	if !ok || task != "" {
		t.Errorf("body = %v, want task key with empty value", (*seen)[0].Body)
	}
}

func TestGetTask(t *testing.T) {
	c, seen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"task": "Dentist"}`))
	})

	text, err := c.GetTask(context.Background(), "2024-05-03")
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if text != "Dentist" {
		t.Errorf("GetTask() = %q", text)
	}
	if (*seen)[0].Path != "/tasks/2024-05-03" {
		t.Errorf("path = %s", (*seen)[0].Path)
	}
}

func TestChat(t *testing.T) {
	c, seen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"role": "assistant", "text": "pong"}`))
	})

	reply, err := c.Chat(context.Background(), "ping")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if reply.Role != chat.RoleAssistant || reply.Text != "pong" {
		t.Errorf("reply = %+v", reply)
	}
	req := (*seen)[0]
	if req.Method != http.MethodPost || req.Path != "/chat" || req.Body["message"] != "ping" {
		t.Errorf("request = %+v", req)
	}
}

func TestStatusError(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "No task found for this date"}`))
	})

	err := c.UpdateTask(context.Background(), "2024-05-01", "Y")
	if err == nil {
		t.Fatal("UpdateTask() should fail on 404")
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error %T is not *StatusError", err)
	}
	if se.Code != http.StatusNotFound || !strings.Contains(se.Body, "No task found") {
		t.Errorf("StatusError = %+v", se)
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound() = false, want true")
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := New(url)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = c.Chat(context.Background(), "hello")
	if err == nil {
		t.Fatal("Chat() against a closed server should fail")
	}
	var se *StatusError
	if errors.As(err, &se) {
		t.Errorf("network failure should not be a StatusError: %v", err)
	}
}

func TestDecodeError(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	if _, err := c.FetchMonth(context.Background(), calendar.Month{Year: 2024, Month: time.May}); err == nil {
		t.Error("FetchMonth() should fail on invalid JSON")
	}
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := New(srv.URL, WithTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	err = c.CreateTask(context.Background(), "2024-05-01", "X")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"default", "", DefaultBaseURL, false},
		{"trailing slash", "http://example.com:9000/", "http://example.com:9000", false},
		{"https", "https://tasks.example.com", "https://tasks.example.com", false},
		{"bad scheme", "ftp://example.com", "", true},
		{"no scheme", "localhost:8000", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if err == nil && c.BaseURL() != tt.want {
				t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), tt.want)
			}
		})
	}
}
