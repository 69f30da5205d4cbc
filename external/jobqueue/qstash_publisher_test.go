package jobqueue

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gridironpool/survivor-league/internal/platform/resilience"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestQStashPublisher_Enqueue(t *testing.T) {
	var gotPath, gotAuth, gotDedup, gotDelay, gotForward string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotDedup = r.Header.Get("Upstash-Deduplication-Id")
		gotDelay = r.Header.Get("Upstash-Delay")
		gotForward = r.Header.Get("Upstash-Forward-X-Internal-Job-Token")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:          srv.URL,
		Token:            "qstash-token",
		TargetBaseURL:    "https://api.survivor-pool.example.com",
		InternalJobToken: "job-secret",
		CircuitBreaker:   resilience.CircuitBreakerConfig{Enabled: false},
	}, discardLogger())

	err := publisher.Enqueue(context.Background(),
		"/v1/internal/jobs/refresh-scores", map[string]string{"source": "test"},
		90*time.Second, "refresh-scores-123")
	if err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/v2/publish/") {
		t.Fatalf("unexpected publish path: %s", gotPath)
	}
	if !strings.HasSuffix(gotPath, "/v1/internal/jobs/refresh-scores") {
		t.Fatalf("expected target path in publish url, got %s", gotPath)
	}
	if gotAuth != "Bearer qstash-token" {
		t.Fatalf("unexpected Authorization header: %s", gotAuth)
	}
	if gotDedup != "refresh-scores-123" {
		t.Fatalf("unexpected deduplication id: %s", gotDedup)
	}
	if gotDelay != "90s" {
		t.Fatalf("unexpected delay header: %s", gotDelay)
	}
	if gotForward != "job-secret" {
		t.Fatalf("unexpected forwarded job token: %s", gotForward)
	}
}

func TestQStashPublisher_Enqueue_RequiresPath(t *testing.T) {
	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:        "https://qstash.example.com",
		TargetBaseURL:  "https://api.survivor-pool.example.com",
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	}, discardLogger())

	if err := publisher.Enqueue(context.Background(), "  ", nil, 0, ""); err == nil {
		t.Fatalf("expected error for empty job path")
	}
}

func TestQStashPublisher_Enqueue_CircuitOpensOnServerFaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       srv.URL,
		TargetBaseURL: "https://api.survivor-pool.example.com",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
		},
	}, discardLogger())

	for i := 0; i < 2; i++ {
		if err := publisher.Enqueue(context.Background(), "/v1/internal/jobs/refresh-scores", nil, 0, ""); err == nil {
			t.Fatalf("expected error from failing qstash")
		}
	}

	err := publisher.Enqueue(context.Background(), "/v1/internal/jobs/refresh-scores", nil, 0, "")
	if err == nil || !strings.Contains(err.Error(), "temporarily unavailable") {
		t.Fatalf("expected circuit rejection, got %v", err)
	}
}
