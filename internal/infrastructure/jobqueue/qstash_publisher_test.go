package jobqueue

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/slapshotlabs/scoresync/internal/platform/resilience"
)

func TestQStashPublisher_Enqueue_SetsUpstashHeaders(t *testing.T) {
	t.Parallel()

	var captured atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		captured.Store(map[string]string{
			"path":     r.URL.Path,
			"auth":     r.Header.Get("Authorization"),
			"method":   r.Header.Get("Upstash-Method"),
			"retries":  r.Header.Get("Upstash-Retries"),
			"delay":    r.Header.Get("Upstash-Delay"),
			"dedup":    r.Header.Get("Upstash-Deduplication-Id"),
			"fwdToken": r.Header.Get("Upstash-Forward-X-Internal-Job-Token"),
			"body":     string(body),
		})
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:          server.URL,
		Token:            "qstash-token",
		TargetBaseURL:    "https://scoresync.example.com",
		Retries:          3,
		InternalJobToken: "internal-token",
	}, nil)

	err := publisher.Enqueue(
		context.Background(),
		"/v1/internal/jobs/sync-scores",
		map[string]any{"date": "2025-09-21"},
		5*time.Minute,
		"sync-scores-2025-09-21-20250921T041500Z",
	)
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	got, _ := captured.Load().(map[string]string)
	if got == nil {
		t.Fatalf("request never reached the fake qstash server")
	}
	if got["path"] != "/v2/publish/https://scoresync.example.com/v1/internal/jobs/sync-scores" {
		t.Fatalf("unexpected publish path: %s", got["path"])
	}
	if got["auth"] != "Bearer qstash-token" {
		t.Fatalf("unexpected authorization header: %s", got["auth"])
	}
	if got["method"] != "POST" {
		t.Fatalf("unexpected Upstash-Method: %s", got["method"])
	}
	if got["retries"] != "3" {
		t.Fatalf("unexpected Upstash-Retries: %s", got["retries"])
	}
	if got["delay"] != "300s" {
		t.Fatalf("unexpected Upstash-Delay: %s", got["delay"])
	}
	if got["dedup"] != "sync-scores-2025-09-21-20250921T041500Z" {
		t.Fatalf("unexpected Upstash-Deduplication-Id: %s", got["dedup"])
	}
	if got["fwdToken"] != "internal-token" {
		t.Fatalf("unexpected forwarded internal token: %s", got["fwdToken"])
	}
	if !strings.Contains(got["body"], `"date":"2025-09-21"`) {
		t.Fatalf("payload missing date: %s", got["body"])
	}
}

func TestQStashPublisher_Enqueue_RejectsEmptyPath(t *testing.T) {
	t.Parallel()

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       "https://qstash.upstash.io",
		Token:         "qstash-token",
		TargetBaseURL: "https://scoresync.example.com",
	}, nil)

	if err := publisher.Enqueue(context.Background(), "   ", nil, 0, ""); err == nil {
		t.Fatalf("expected error for empty job path")
	}
}

func TestQStashPublisher_Enqueue_NonRetryableStatusFails(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid destination"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       server.URL,
		Token:         "qstash-token",
		TargetBaseURL: "https://scoresync.example.com",
	}, nil)

	err := publisher.Enqueue(context.Background(), "/v1/internal/jobs/sync-scores", nil, 0, "")
	if err == nil {
		t.Fatalf("expected error for 400 response")
	}
	if !strings.Contains(err.Error(), "status=400") {
		t.Fatalf("expected status in error, got: %v", err)
	}
}

func TestQStashPublisher_CircuitBreakerOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       server.URL,
		Token:         "qstash-token",
		TargetBaseURL: "https://scoresync.example.com",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, nil)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := publisher.Enqueue(ctx, "/v1/internal/jobs/sync-scores", nil, 0, ""); err == nil {
			t.Fatalf("expected error on attempt %d", i+1)
		}
	}

	err := publisher.Enqueue(ctx, "/v1/internal/jobs/sync-scores", nil, 0, "")
	if err == nil {
		t.Fatalf("expected circuit breaker rejection")
	}
	if !strings.Contains(err.Error(), "temporarily unavailable") {
		t.Fatalf("expected breaker rejection, got: %v", err)
	}
	if got := requests.Load(); got != 2 {
		t.Fatalf("expected 2 upstream requests, got %d", got)
	}
}

func TestNormalizeDelay(t *testing.T) {
	t.Parallel()

	if got := normalizeDelay(0); got != "0s" {
		t.Fatalf("unexpected zero delay: %s", got)
	}
	if got := normalizeDelay(-time.Minute); got != "0s" {
		t.Fatalf("unexpected negative delay: %s", got)
	}
	if got := normalizeDelay(90 * time.Second); got != "90s" {
		t.Fatalf("unexpected delay: %s", got)
	}
}

func TestBuildQStashCurlPreview_MasksSecrets(t *testing.T) {
	t.Parallel()

	preview := buildQStashCurlPreview(
		"https://qstash.upstash.io/v2/publish/https://scoresync.example.com/v1/internal/jobs/sync-scores",
		"/v1/internal/jobs/sync-scores",
		"300s",
		3,
		"sync-scores-2025-09-21-20250921T041500Z",
		`{"date":"2025-09-21"}`,
		true,
	)

	if strings.Contains(preview, "qstash-token") || strings.Contains(preview, "internal-token") {
		t.Fatalf("preview leaked a secret: %s", preview)
	}
	for _, want := range []string{
		"Authorization: Bearer ***",
		"Upstash-Forward-X-Internal-Job-Token: ***",
		"Upstash-Delay: 300s",
		"Upstash-Retries: 3",
		"Upstash-Deduplication-Id: sync-scores-2025-09-21-20250921T041500Z",
		`'{"date":"2025-09-21"}'`,
	} {
		if !strings.Contains(preview, want) {
			t.Fatalf("preview missing %q: %s", want, preview)
		}
	}
}
