package middleware

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"huddle/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
}

func TestIdempotencyReplaysSuccess(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	var calls int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"attempt":%d}`, calls)
	})
	handler := Idempotency(store, "Idempotency-Key")(next)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/rooms/room-a/book", nil)
		req.Header.Set("Idempotency-Key", "retry-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("attempt %d status = %d", i, rec.Code)
		}
		if body := rec.Body.String(); body != `{"attempt":1}` {
			t.Fatalf("attempt %d body = %s", i, body)
		}
	}

	if calls != 1 {
		t.Errorf("handler ran %d times, want 1", calls)
	}
}

func TestIdempotencyDoesNotCacheRejections(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	var calls int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	handler := Idempotency(store, "Idempotency-Key")(next)

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/rooms/room-a/book", nil)
		req.Header.Set("Idempotency-Key", "retry-456")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send(); code != http.StatusConflict {
		t.Fatalf("first attempt status = %d", code)
	}
	if code := send(); code != http.StatusCreated {
		t.Fatalf("retry after rejection status = %d", code)
	}
	if calls != 2 {
		t.Errorf("handler ran %d times, want 2", calls)
	}
}

func TestIdempotencySkipsWithoutKey(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	var calls int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})
	handler := Idempotency(store, "Idempotency-Key")(next)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}
	if calls != 2 {
		t.Errorf("handler ran %d times, want 2", calls)
	}
}

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute, DefaultKeyExtractor, testLogger())
	defer limiter.Stop()

	if !limiter.Allow("user:alice") || !limiter.Allow("user:alice") {
		t.Fatal("requests under the limit were rejected")
	}
	if limiter.Allow("user:alice") {
		t.Fatal("request over the limit was allowed")
	}
	if !limiter.Allow("user:bob") {
		t.Fatal("another user's bucket was affected")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute, DefaultKeyExtractor, testLogger())
	defer limiter.Stop()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimit(limiter)(next)

	send := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
		if user != "" {
			req.Header.Set("X-User", user)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("alice"); code != http.StatusOK {
		t.Fatalf("first request status = %d", code)
	}
	if code := send("alice"); code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d", code)
	}
	if code := send("bob"); code != http.StatusOK {
		t.Fatalf("other user's request status = %d", code)
	}
}

func TestDefaultKeyExtractor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User", "alice")
	if got := DefaultKeyExtractor(req); got != "user:alice" {
		t.Errorf("identity key = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	if got := DefaultKeyExtractor(req); got != "ip:10.1.2.3" {
		t.Errorf("address key = %q", got)
	}
}

func TestContentTypeValidation(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := ContentTypeValidation(testLogger())(next)

	tests := []struct {
		name        string
		method      string
		body        string
		contentType string
		wantStatus  int
	}{
		{name: "json body accepted", method: http.MethodPost, body: "{}", contentType: "application/json", wantStatus: http.StatusOK},
		{name: "json with charset accepted", method: http.MethodPost, body: "{}", contentType: "application/json; charset=utf-8", wantStatus: http.StatusOK},
		{name: "text body rejected", method: http.MethodPost, body: "hello", contentType: "text/plain", wantStatus: http.StatusUnsupportedMediaType},
		{name: "missing content type rejected", method: http.MethodPost, body: "{}", wantStatus: http.StatusUnsupportedMediaType},
		{name: "body-less put passes", method: http.MethodPut, wantStatus: http.StatusOK},
		{name: "get passes", method: http.MethodGet, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, "/api/v1/rooms/room-a/book", body)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	handler := Recovery(testLogger())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestRequestTimeout(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
			t.Error("handler context never canceled")
		}
	})
	handler := RequestTimeout(10 * time.Millisecond)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}
