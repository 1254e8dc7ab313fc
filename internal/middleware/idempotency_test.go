package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newIdempotentRequest(method, key, body string) *http.Request {
	req := httptest.NewRequest(method, "/api/test", bytes.NewReader([]byte(body)))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	req.RemoteAddr = "192.168.1.1:12345"
	return req
}

func TestNewIdempotencyStore_Defaults(t *testing.T) {
	t.Parallel()
	store := NewIdempotencyStore(IdempotencyConfig{})
	defer store.Stop()

	if store.ttl != 24*time.Hour {
		t.Errorf("expected default TTL 24h, got %v", store.ttl)
	}
	if store.replays == nil {
		t.Error("replay map should be initialized")
	}
}

func TestIdempotencyStore_StopDoesNotHang(t *testing.T) {
	t.Parallel()
	store := NewIdempotencyStore(IdempotencyConfig{
		TTL:     time.Hour,
		Cleanup: time.Millisecond,
	})

	time.Sleep(10 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		store.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("Stop did not return within timeout")
	}
}

func TestReplayKey_Fingerprint(t *testing.T) {
	t.Parallel()

	base := replayKey("user:1", "idem-key", "POST", "/api/test", []byte(`{"a":1}`))

	if again := replayKey("user:1", "idem-key", "POST", "/api/test", []byte(`{"a":1}`)); again != base {
		t.Error("identical requests should hash to the same key")
	}

	variants := map[string]string{
		"caller": replayKey("user:2", "idem-key", "POST", "/api/test", []byte(`{"a":1}`)),
		"key":    replayKey("user:1", "other-key", "POST", "/api/test", []byte(`{"a":1}`)),
		"method": replayKey("user:1", "idem-key", "PATCH", "/api/test", []byte(`{"a":1}`)),
		"path":   replayKey("user:1", "idem-key", "POST", "/api/other", []byte(`{"a":1}`)),
		"body":   replayKey("user:1", "idem-key", "POST", "/api/test", []byte(`{"a":2}`)),
	}
	for field, key := range variants {
		if key == base {
			t.Errorf("changing the %s should change the key", field)
		}
	}

	if empty := replayKey("user:1", "idem-key", "POST", "/api/test", nil); len(empty) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(empty))
	}
}

func TestIdempotency_IgnoresNonMutatingMethods(t *testing.T) {
	t.Parallel()
	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Hour})
	defer store.Stop()

	middleware := Idempotency(store)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		handler := &captureHandler{}
		req := httptest.NewRequest(method, "/api/test", nil)
		req.Header.Set("Idempotency-Key", "test-key")
		rr := httptest.NewRecorder()

		middleware(handler).ServeHTTP(rr, req)

		if !handler.called {
			t.Errorf("%s: handler should be called", method)
		}
		if rr.Header().Get("X-Idempotency-Replayed") != "" {
			t.Errorf("%s should never be replayed", method)
		}
	}
}

func TestIdempotency_NoKey_RunsEveryTime(t *testing.T) {
	t.Parallel()
	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Hour})
	defer store.Stop()

	callCount := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		w.WriteHeader(http.StatusCreated)
	})
	middleware := Idempotency(store)

	middleware(handler).ServeHTTP(httptest.NewRecorder(), newIdempotentRequest(http.MethodPost, "", `{}`))
	middleware(handler).ServeHTTP(httptest.NewRecorder(), newIdempotentRequest(http.MethodPost, "", `{}`))

	if callCount != 2 {
		t.Errorf("expected handler called twice without a key, got %d", callCount)
	}
}

func TestIdempotency_FirstRequest_RunsAndRecords(t *testing.T) {
	t.Parallel()
	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Hour})
	defer store.Stop()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Custom", "value")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"123"}`))
	})
	rr := httptest.NewRecorder()

	Idempotency(store)(handler).ServeHTTP(rr, newIdempotentRequest(http.MethodPost, "unique-key", `{}`))

	if rr.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, rr.Code)
	}
	if rr.Body.String() != `{"id":"123"}` {
		t.Errorf("expected body %q, got %q", `{"id":"123"}`, rr.Body.String())
	}
	if rr.Header().Get("X-Idempotency-Replayed") != "" {
		t.Error("first request must not be marked replayed")
	}
}

func TestIdempotency_Retry_ReplaysRecordedResponse(t *testing.T) {
	t.Parallel()
	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Hour})
	defer store.Stop()

	callCount := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		w.Header().Set("Content-Type", "application/json")
		w.Header().Add("X-Multi", "value1")
		w.Header().Add("X-Multi", "value2")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"123"}`))
	})
	middleware := Idempotency(store)

	middleware(handler).ServeHTTP(httptest.NewRecorder(), newIdempotentRequest(http.MethodPost, "same-key", `{}`))

	rr := httptest.NewRecorder()
	middleware(handler).ServeHTTP(rr, newIdempotentRequest(http.MethodPost, "same-key", `{}`))

	if callCount != 1 {
		t.Errorf("expected handler called once, got %d", callCount)
	}
	if rr.Code != http.StatusCreated {
		t.Errorf("expected replayed status %d, got %d", http.StatusCreated, rr.Code)
	}
	if rr.Body.String() != `{"id":"123"}` {
		t.Errorf("expected replayed body %q, got %q", `{"id":"123"}`, rr.Body.String())
	}
	if rr.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("retry should carry the X-Idempotency-Replayed header")
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected recorded Content-Type, got %q", rr.Header().Get("Content-Type"))
	}
	if vals := rr.Header().Values("X-Multi"); len(vals) != 2 {
		t.Errorf("expected 2 X-Multi values, got %d", len(vals))
	}
}

func TestIdempotency_ScopedPerUser(t *testing.T) {
	t.Parallel()
	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Hour})
	defer store.Stop()

	callCount := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		w.WriteHeader(http.StatusOK)
	})
	middleware := Idempotency(store)

	for _, userID := range []string{"user:A", "user:B"} {
		req := newIdempotentRequest(http.MethodPost, "shared-key", `{}`)
		req = req.WithContext(context.WithValue(req.Context(), UserIDKey, userID))
		middleware(handler).ServeHTTP(httptest.NewRecorder(), req)
	}

	if callCount != 2 {
		t.Errorf("same key from different users should run twice, got %d", callCount)
	}
}

func TestIdempotency_ScopedPerAddressWhenAnonymous(t *testing.T) {
	t.Parallel()
	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Hour})
	defer store.Stop()

	callCount := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		w.WriteHeader(http.StatusOK)
	})
	middleware := Idempotency(store)

	for _, addr := range []string{"10.0.0.1:12345", "10.0.0.2:54321"} {
		req := newIdempotentRequest(http.MethodPost, "shared-key", `{}`)
		req.RemoteAddr = addr
		middleware(handler).ServeHTTP(httptest.NewRecorder(), req)
	}

	if callCount != 2 {
		t.Errorf("same key from different addresses should run twice, got %d", callCount)
	}
}

func TestIdempotency_ConcurrentRetryWaitsForOwner(t *testing.T) {
	t.Parallel()
	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Hour})
	defer store.Stop()

	var callCount int32
	started := make(chan struct{})
	release := make(chan struct{})

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&callCount, 1)
		close(started)
		<-release
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"done"}`))
	})
	middleware := Idempotency(store)

	var wg sync.WaitGroup
	results := make([]*httptest.ResponseRecorder, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = httptest.NewRecorder()
		middleware(handler).ServeHTTP(results[0], newIdempotentRequest(http.MethodPost, "inflight-key", `{}`))
	}()

	<-started

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1] = httptest.NewRecorder()
		middleware(handler).ServeHTTP(results[1], newIdempotentRequest(http.MethodPost, "inflight-key", `{}`))
	}()

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if atomic.LoadInt32(&callCount) != 1 {
		t.Errorf("expected handler called once, got %d", callCount)
	}
	for i, rr := range results {
		if rr.Code != http.StatusCreated {
			t.Errorf("request %d: expected status %d, got %d", i, http.StatusCreated, rr.Code)
		}
	}
	if results[1].Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("waiting retry should be marked replayed")
	}
}

func TestIdempotencyStore_Prune(t *testing.T) {
	t.Parallel()
	store := NewIdempotencyStore(IdempotencyConfig{
		TTL:     100 * time.Millisecond,
		Cleanup: time.Hour,
	})
	defer store.Stop()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	middleware := Idempotency(store)

	middleware(handler).ServeHTTP(httptest.NewRecorder(), newIdempotentRequest(http.MethodPost, "prune-test", `{}`))

	store.mu.RLock()
	count := len(store.replays)
	store.mu.RUnlock()
	if count != 1 {
		t.Fatalf("expected 1 entry, got %d", count)
	}

	// Not yet expired, prune keeps it
	store.prune()
	store.mu.RLock()
	count = len(store.replays)
	store.mu.RUnlock()
	if count != 1 {
		t.Errorf("expected 1 entry before expiry, got %d", count)
	}

	time.Sleep(150 * time.Millisecond)

	store.prune()
	store.mu.RLock()
	count = len(store.replays)
	store.mu.RUnlock()
	if count != 0 {
		t.Errorf("expected 0 entries after expiry, got %d", count)
	}
}

func TestIdempotency_ExpiredEntry_ProcessesAgain(t *testing.T) {
	t.Parallel()
	store := NewIdempotencyStore(IdempotencyConfig{
		TTL:     50 * time.Millisecond,
		Cleanup: time.Hour,
	})
	defer store.Stop()

	callCount := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("response"))
	})
	middleware := Idempotency(store)

	middleware(handler).ServeHTTP(httptest.NewRecorder(), newIdempotentRequest(http.MethodPost, "expire-test", `{}`))

	time.Sleep(100 * time.Millisecond)

	rr := httptest.NewRecorder()
	middleware(handler).ServeHTTP(rr, newIdempotentRequest(http.MethodPost, "expire-test", `{}`))

	if callCount != 2 {
		t.Errorf("expected handler to run again after expiry, got %d calls", callCount)
	}
	if rr.Header().Get("X-Idempotency-Replayed") != "" {
		t.Error("request after expiry is fresh, not replayed")
	}
}

func TestReplayRecorder_TeesResponse(t *testing.T) {
	t.Parallel()
	rr := httptest.NewRecorder()
	rec := &replayRecorder{ResponseWriter: rr, status: http.StatusOK}

	rec.WriteHeader(http.StatusCreated)
	_, _ = rec.Write([]byte("part1"))
	_, _ = rec.Write([]byte("part2"))

	if rec.status != http.StatusCreated {
		t.Errorf("expected captured status %d, got %d", http.StatusCreated, rec.status)
	}
	if rr.Code != http.StatusCreated {
		t.Errorf("expected forwarded status %d, got %d", http.StatusCreated, rr.Code)
	}
	if rec.body.String() != "part1part2" {
		t.Errorf("expected captured body %q, got %q", "part1part2", rec.body.String())
	}
	if rr.Body.String() != "part1part2" {
		t.Errorf("expected forwarded body %q, got %q", "part1part2", rr.Body.String())
	}
}

func TestIdempotency_HandlerSeesOriginalBody(t *testing.T) {
	t.Parallel()
	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Hour})
	defer store.Stop()

	var received []byte
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})

	body := `{"key":"value","nested":{"a":1}}`
	Idempotency(store)(handler).ServeHTTP(httptest.NewRecorder(), newIdempotentRequest(http.MethodPost, "body-test", body))

	if string(received) != body {
		t.Errorf("expected body %q, got %q", body, string(received))
	}
}

func TestIdempotency_PATCHRetry_Replays(t *testing.T) {
	t.Parallel()
	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Hour})
	defer store.Stop()

	callCount := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("patched"))
	})
	middleware := Idempotency(store)

	middleware(handler).ServeHTTP(httptest.NewRecorder(), newIdempotentRequest(http.MethodPatch, "patch-key", `{}`))

	rr := httptest.NewRecorder()
	middleware(handler).ServeHTTP(rr, newIdempotentRequest(http.MethodPatch, "patch-key", `{}`))

	if callCount != 1 {
		t.Errorf("expected handler called once for PATCH retry, got %d", callCount)
	}
	if rr.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("PATCH retry should be replayed")
	}
}
