package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stellarlinkco/wordbench/internal/store"
	"github.com/stellarlinkco/wordbench/internal/task"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("WORDBENCH_API_KEY", "")
	t.Setenv("WORDBENCH_DISABLE_AUTH", "true")
	t.Setenv("WORDBENCH_CORS_ORIGINS", "")

	db, err := store.NewStore(":memory:")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	s, err := NewServer(db, task.DefaultRegistry())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s, db
}

func doRequest(s *Server, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	s.router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(s, http.MethodGet, "/api/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", w.Code, http.StatusOK)
	}
}

func TestListTasks(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(s, http.MethodGet, "/api/tasks")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", w.Code, http.StatusOK)
	}

	var out []struct {
		Name    string `json:"name"`
		Samples int    `json:"samples"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("tasks: got %d want 2", len(out))
	}
	if out[1].Name != "word-usage-original" || out[1].Samples != 10 {
		t.Fatalf("original task: got %+v", out[1])
	}
}

func TestLeaderboard_RequiresTask(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(s, http.MethodGet, "/api/leaderboard")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want %d", w.Code, http.StatusBadRequest)
	}
}

func TestLeaderboard_ReturnsRuns(t *testing.T) {
	s, db := newTestServer(t)

	run := &store.Run{
		Model:      "gpt-4o",
		Provider:   "openai",
		Task:       "word-usage",
		TargetWord: "delve",
		UsageRate:  0.8,
		Hits:       8,
		Samples:    10,
	}
	if err := db.SaveRun(context.Background(), run, nil); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	w := doRequest(s, http.MethodGet, "/api/leaderboard?task=word-usage")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", w.Code, http.StatusOK)
	}

	var out []store.Run
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 1 || out[0].Model != "gpt-4o" {
		t.Fatalf("runs: got %+v", out)
	}
}

func TestTranscripts_InvalidID(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(s, http.MethodGet, "/api/runs/abc/transcripts")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want %d", w.Code, http.StatusBadRequest)
	}
}

func TestTranscripts_ReturnsTriples(t *testing.T) {
	s, db := newTestServer(t)

	run := &store.Run{
		Model:      "gpt-4o",
		Provider:   "openai",
		Task:       "word-usage",
		TargetWord: "delve",
		UsageRate:  1.0,
		Hits:       1,
		Samples:    1,
	}
	transcripts := []store.Transcript{
		{SampleID: "delve-01", Prompt: "p", Response: "Let's delve in.", Score: 1.0, MatchedForm: "delve"},
	}
	if err := db.SaveRun(context.Background(), run, transcripts); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	w := doRequest(s, http.MethodGet, "/api/runs/1/transcripts")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", w.Code, http.StatusOK)
	}

	var out []store.Transcript
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 1 || out[0].Score != 1.0 {
		t.Fatalf("transcripts: got %+v", out)
	}
}

func TestAuth_MissingConfigFails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("WORDBENCH_API_KEY", "")
	t.Setenv("WORDBENCH_DISABLE_AUTH", "")

	db, err := store.NewStore(":memory:")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer db.Close()

	if _, err := NewServer(db, task.DefaultRegistry()); err == nil {
		t.Fatalf("expected auth configuration error")
	}
}

func TestAuth_APIKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("WORDBENCH_API_KEY", "secret")
	t.Setenv("WORDBENCH_DISABLE_AUTH", "")

	db, err := store.NewStore(":memory:")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer db.Close()

	s, err := NewServer(db, task.DefaultRegistry())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	w := doRequest(s, http.MethodGet, "/api/health")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no key: got %d want %d", w.Code, http.StatusUnauthorized)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-API-Key", "secret")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("with key: got %d want %d", w.Code, http.StatusOK)
	}
}
