package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestFetchAthletes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/athletes" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("season"); got != "2026" {
			t.Errorf("Expected season=2026, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": "p1", "name": "Arjun Rao", "skill": "Batter", "base_price": 200, "country": "India", "rating": 88, "original_team": "Chepauk Chargers", "stats": {"matches": 112, "runs": 3240}},
			{"name": "Dev Malhotra", "skill": "WK-Batter", "rating": 84, "country": "India"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "2026", 5*time.Second, ClientConfig{})
	records, err := client.FetchAthletes(context.Background())
	if err != nil {
		t.Fatalf("FetchAthletes failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].ID != "p1" || records[0].Role != "Batter" || records[0].Stats == nil {
		t.Errorf("First record mis-decoded: %+v", records[0])
	}
	if records[1].ID != "" {
		t.Errorf("Second record should have no ID, got %q", records[1].ID)
	}
}

func TestFetchAthletes_EmptyFeedIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "2026", 5*time.Second, ClientConfig{})
	if _, err := client.FetchAthletes(context.Background()); !errors.Is(err, ErrEmptyFeed) {
		t.Fatalf("Expected ErrEmptyFeed, got %v", err)
	}
}

func TestFetchAthletes_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"oops": true`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "2026", 5*time.Second, ClientConfig{})
	if _, err := client.FetchAthletes(context.Background()); err == nil {
		t.Fatal("Expected decode error, got nil")
	}
}

func TestFetchAthletes_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[{"id": "p1", "name": "Arjun Rao", "skill": "Batter", "rating": 88}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "2026", 5*time.Second, ClientConfig{MaxRetries: 3, RetryDelayBase: time.Millisecond})
	records, err := client.FetchAthletes(context.Background())
	if err != nil {
		t.Fatalf("FetchAthletes should succeed on the third attempt: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected 1 record, got %d", len(records))
	}
	if calls.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", calls.Load())
	}
}

func TestFetchAthletes_GivesUpAfterMaxRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "2026", 5*time.Second, ClientConfig{MaxRetries: 2, RetryDelayBase: time.Millisecond})
	if _, err := client.FetchAthletes(context.Background()); err == nil {
		t.Fatal("Expected error after exhausting retries")
	}
}
