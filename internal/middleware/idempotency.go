package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"
)

// IdempotencyStore remembers the outcome of mutating requests so a retried
// POST or PATCH carrying the same Idempotency-Key replays the original
// response instead of running the handler twice. Entries live in memory and
// expire after the configured TTL.
type IdempotencyStore struct {
	mu      sync.RWMutex
	replays map[string]*replay
	ttl     time.Duration
	quit    chan struct{}
}

// replay is one recorded response. While the first request is still running,
// pending is true and ready is open; retries block on ready until the owner
// records the outcome.
type replay struct {
	status  int
	header  http.Header
	body    []byte
	expires time.Time
	pending bool
	ready   chan struct{}
}

// IdempotencyConfig holds configuration for idempotency middleware
type IdempotencyConfig struct {
	TTL     time.Duration // How long recorded responses stay replayable (default 24h)
	Cleanup time.Duration // Prune interval for expired entries (default 1h)
}

// NewIdempotencyStore creates a new idempotency store
func NewIdempotencyStore(cfg IdempotencyConfig) *IdempotencyStore {
	if cfg.TTL == 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Cleanup == 0 {
		cfg.Cleanup = time.Hour
	}

	store := &IdempotencyStore{
		replays: make(map[string]*replay),
		ttl:     cfg.TTL,
		quit:    make(chan struct{}),
	}

	go store.pruneLoop(cfg.Cleanup)

	return store
}

// Stop stops the prune goroutine
func (s *IdempotencyStore) Stop() {
	close(s.quit)
}

func (s *IdempotencyStore) pruneLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.prune()
		case <-s.quit:
			return
		}
	}
}

func (s *IdempotencyStore) prune() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, entry := range s.replays {
		if !entry.pending && entry.expires.Before(now) {
			delete(s.replays, key)
		}
	}
}

// claim resolves a key against the store. When a live entry exists it is
// returned with owned=false; otherwise a fresh pending entry is installed
// and owned=true tells the caller it must finish it after handling.
func (s *IdempotencyStore) claim(key string) (entry *replay, owned bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.replays[key]; ok {
		if existing.pending || existing.expires.After(time.Now()) {
			return existing, false
		}
	}

	entry = &replay{pending: true, ready: make(chan struct{})}
	s.replays[key] = entry
	return entry, true
}

// finish records the response on a claimed entry and releases any retries
// blocked on it
func (s *IdempotencyStore) finish(entry *replay, status int, header http.Header, body []byte) {
	s.mu.Lock()
	entry.status = status
	entry.header = header.Clone()
	entry.body = body
	entry.expires = time.Now().Add(s.ttl)
	entry.pending = false
	s.mu.Unlock()
	close(entry.ready)
}

// replayKey fingerprints a request: same caller, key, method, path and body
// hash to the same entry, anything else is a distinct request
func replayKey(caller, clientKey, method, path string, body []byte) string {
	h := sha256.New()
	for _, part := range []string{caller, clientKey, method, path} {
		h.Write([]byte(part))
	}
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// replayRecorder tees the response so it can be stored for later replay
type replayRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *replayRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *replayRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func writeReplay(w http.ResponseWriter, entry *replay) {
	for key, vals := range entry.header {
		for _, val := range vals {
			w.Header().Add(key, val)
		}
	}
	w.Header().Set("X-Idempotency-Replayed", "true")
	w.WriteHeader(entry.status)
	_, _ = w.Write(entry.body)
}

// Idempotency returns middleware that replays recorded responses for POST
// and PATCH requests carrying an Idempotency-Key header. Other methods and
// keyless requests pass through untouched.
func Idempotency(store *IdempotencyStore) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPatch {
				next.ServeHTTP(w, r)
				return
			}

			clientKey := r.Header.Get("Idempotency-Key")
			if clientKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			// The body is part of the fingerprint; restore it for the handler
			body, err := io.ReadAll(r.Body)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			key := replayKey(callerKey(r), clientKey, r.Method, r.URL.Path, body)

			entry, owned := store.claim(key)
			if !owned {
				if entry.pending {
					<-entry.ready
				}
				writeReplay(w, entry)
				return
			}

			rec := &replayRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			store.finish(entry, rec.status, rec.Header(), rec.body.Bytes())
		})
	}
}
