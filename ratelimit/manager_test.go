package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/quietwire/discordrl/routes"
)

func testManager(t *testing.T, doer *fakeDoer, clock *fakeClock) *Manager {
	t.Helper()
	m := &Manager{
		opts:      DefaultOptions(),
		backoff:   newTestBackoff(),
		clock:     clock,
		token:     "test-token",
		handlers:  map[string]*bucketHandler{},
		hashes:    map[string]string{},
		events:    make(chan Event, 16),
		stopSweep: make(chan struct{}),
		client:    doer,
	}
	t.Cleanup(func() { _ = m.Shutdown(context.Background()) })
	return m
}

type zeroBackoff struct{}

func (zeroBackoff) Next(_ int) time.Duration { return 0 }

func newTestBackoff() *zeroBackoff { return &zeroBackoff{} }

func TestInterpretHeaders_AppliesOffset(t *testing.T) {
	m := testManager(t, &fakeDoer{}, newFakeClock())
	m.opts.Offset = 100
	now := m.clock.Now()

	t.Run("reset-after gets the offset added", func(t *testing.T) {
		h := http.Header{}
		h.Set("X-RateLimit-Reset-After", "2")
		_, _, reset, _, _ := m.interpretHeaders(h, now)
		want := now.Add(2*time.Second + 100*time.Millisecond)
		if !reset.Equal(want) {
			t.Fatalf("reset = %v, want %v", reset, want)
		}
	})

	t.Run("retry-after without Via is seconds plus offset", func(t *testing.T) {
		h := http.Header{}
		h.Set("Retry-After", "1")
		_, _, _, retryAfter, _ := m.interpretHeaders(h, now)
		want := time.Second + 100*time.Millisecond
		if retryAfter != want {
			t.Fatalf("retryAfter = %v, want %v", retryAfter, want)
		}
	})

	t.Run("retry-after with non-Cloudflare Via is ms plus offset", func(t *testing.T) {
		h := http.Header{}
		h.Set("Retry-After", "2")
		h.Set("Via", "1.1 proxy")
		_, _, _, retryAfter, _ := m.interpretHeaders(h, now)
		want := 2*time.Millisecond + 100*time.Millisecond
		if retryAfter != want {
			t.Fatalf("retryAfter = %v, want %v", retryAfter, want)
		}
	})
}

func TestQueueRequest_ColdSuccess(t *testing.T) {
	doer := &fakeDoer{steps: []func(*http.Request) (*http.Response, error){
		func(r *http.Request) (*http.Response, error) {
			h := http.Header{}
			h.Set("X-RateLimit-Bucket", "abc123")
			h.Set("X-RateLimit-Limit", "5")
			h.Set("X-RateLimit-Remaining", "4")
			h.Set("X-RateLimit-Reset-After", "10")
			return jsonResponse(200, h, `{"id":"1"}`)
		},
	}}
	m := testManager(t, doer, newFakeClock())

	route, endpoint := routes.GetCurrentUser()
	resp, err := m.QueueRequest(context.Background(), route, Request{Method: "GET", Endpoint: endpoint})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Decoded == nil {
		t.Fatalf("expected decoded JSON body")
	}
}

func TestQueueRequest_429Retried(t *testing.T) {
	calls := 0
	doer := &fakeDoer{steps: []func(*http.Request) (*http.Response, error){
		func(r *http.Request) (*http.Response, error) {
			calls++
			h := http.Header{}
			h.Set("Retry-After", "1")
			h.Set("X-RateLimit-Global", "false")
			return jsonResponse(http.StatusTooManyRequests, h, `{"message":"rate limited","retry_after":1.0}`)
		},
		func(r *http.Request) (*http.Response, error) {
			calls++
			h := http.Header{}
			h.Set("X-RateLimit-Limit", "5")
			h.Set("X-RateLimit-Remaining", "4")
			return jsonResponse(200, h, `{"id":"1"}`)
		},
	}}
	clock := newFakeClock()
	m := testManager(t, doer, clock)

	route, endpoint := routes.GetCurrentUser()
	_, err := m.QueueRequest(context.Background(), route, Request{Method: "GET", Endpoint: endpoint})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls)
	}
}

func TestQueueRequest_GlobalRateLimit(t *testing.T) {
	doer := &fakeDoer{steps: []func(*http.Request) (*http.Response, error){
		func(r *http.Request) (*http.Response, error) {
			h := http.Header{}
			h.Set("Retry-After", "30")
			h.Set("X-RateLimit-Global", "true")
			return jsonResponse(http.StatusTooManyRequests, h, `{"message":"global rate limited","global":true,"retry_after":30}`)
		},
		func(r *http.Request) (*http.Response, error) {
			h := http.Header{}
			h.Set("X-RateLimit-Limit", "5")
			h.Set("X-RateLimit-Remaining", "4")
			return jsonResponse(200, h, `{"id":"1"}`)
		},
	}}
	clock := newFakeClock()
	m := testManager(t, doer, clock)

	route, endpoint := routes.GetCurrentUser()
	_, err := m.QueueRequest(context.Background(), route, Request{Method: "GET", Endpoint: endpoint})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.globalMu.Lock()
	until := m.globalUntil
	m.globalMu.Unlock()
	if until.IsZero() {
		t.Fatalf("expected global gate to have been set at some point")
	}
}

func TestQueueRequest_HashMigration(t *testing.T) {
	doer := &fakeDoer{steps: []func(*http.Request) (*http.Response, error){
		func(r *http.Request) (*http.Response, error) {
			h := http.Header{}
			h.Set("X-RateLimit-Bucket", "learned-hash")
			h.Set("X-RateLimit-Limit", "5")
			h.Set("X-RateLimit-Remaining", "4")
			return jsonResponse(200, h, `{"id":"1"}`)
		},
	}}
	m := testManager(t, doer, newFakeClock())

	route, endpoint := routes.GetCurrentUser()
	before := m.getOrCreateHandler(route, "GET")
	if before.hash != before.id {
		t.Fatalf("fresh handler should be keyed by its own id")
	}

	_, err := m.QueueRequest(context.Background(), route, Request{Method: "GET", Endpoint: endpoint})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after := m.getOrCreateHandler(route, "GET")
	if after.hash != "learned-hash" {
		t.Fatalf("expected handler to migrate to the learned hash, got %q", after.hash)
	}

	select {
	case evt := <-m.Events():
		if _, ok := evt.(DebugEvent); !ok {
			t.Fatalf("expected a DebugEvent for the hash migration, got %T", evt)
		}
	default:
		t.Fatalf("expected a DebugEvent to have been emitted for the hash migration")
	}
}

func TestQueueRequest_TimeoutRetried(t *testing.T) {
	calls := 0
	doer := &fakeDoer{steps: []func(*http.Request) (*http.Response, error){
		func(r *http.Request) (*http.Response, error) {
			calls++
			return nil, &fakeTimeoutError{msg: "context deadline exceeded"}
		},
		func(r *http.Request) (*http.Response, error) {
			calls++
			h := http.Header{}
			h.Set("X-RateLimit-Limit", "5")
			h.Set("X-RateLimit-Remaining", "4")
			return jsonResponse(200, h, `{"id":"1"}`)
		},
	}}
	m := testManager(t, doer, newFakeClock())
	m.opts.Retries = 1

	route, endpoint := routes.GetCurrentUser()
	_, err := m.QueueRequest(context.Background(), route, Request{Method: "GET", Endpoint: endpoint})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected a retry after the abort, got %d calls", calls)
	}
}

func TestQueueRequest_NonTimeoutTransportErrorNotRetried(t *testing.T) {
	calls := 0
	connRefused := errors.New("dial tcp: connection refused")
	doer := &fakeDoer{steps: []func(*http.Request) (*http.Response, error){
		func(r *http.Request) (*http.Response, error) {
			calls++
			return nil, connRefused
		},
	}}
	m := testManager(t, doer, newFakeClock())
	m.opts.Retries = 3

	route, endpoint := routes.GetCurrentUser()
	_, err := m.QueueRequest(context.Background(), route, Request{Method: "GET", Endpoint: endpoint})
	if !errors.Is(err, connRefused) {
		t.Fatalf("expected the raw transport error to propagate, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected no retry for a non-timeout transport error, got %d calls", calls)
	}
}

func TestQueueRequest_5xxExhaustsRetries(t *testing.T) {
	calls := 0
	doer := &fakeDoer{steps: []func(*http.Request) (*http.Response, error){
		func(r *http.Request) (*http.Response, error) {
			calls++
			return jsonResponse(http.StatusInternalServerError, nil, "")
		},
		func(r *http.Request) (*http.Response, error) {
			calls++
			return jsonResponse(http.StatusInternalServerError, nil, "")
		},
	}}
	m := testManager(t, doer, newFakeClock())
	m.opts.Retries = 1

	route, endpoint := routes.GetCurrentUser()
	_, err := m.QueueRequest(context.Background(), route, Request{Method: "GET", Endpoint: endpoint})
	if err == nil {
		t.Fatalf("expected an error after retries are exhausted")
	}
	if _, ok := err.(*HTTPError); !ok {
		t.Fatalf("expected *HTTPError, got %T: %v", err, err)
	}
	if calls != 2 {
		t.Fatalf("expected initial attempt + 1 retry = 2 calls, got %d", calls)
	}
}

func TestQueueRequest_4xxAPIError(t *testing.T) {
	doer := &fakeDoer{steps: []func(*http.Request) (*http.Response, error){
		func(r *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusNotFound, nil, `{"message":"Unknown User","code":10013}`)
		},
	}}
	m := testManager(t, doer, newFakeClock())

	route, endpoint := routes.GetUser("175928847299117063")
	_, err := m.QueueRequest(context.Background(), route, Request{Method: "GET", Endpoint: endpoint})
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != 10013 || apiErr.Message != "Unknown User" {
		t.Fatalf("unexpected decoded error: %+v", apiErr)
	}
}

func TestQueueRequest_MultipartUpload(t *testing.T) {
	var seenContentType string
	doer := &fakeDoer{steps: []func(*http.Request) (*http.Response, error){
		func(r *http.Request) (*http.Response, error) {
			seenContentType = r.Header.Get("Content-Type")
			h := http.Header{}
			h.Set("X-RateLimit-Limit", "5")
			h.Set("X-RateLimit-Remaining", "4")
			return jsonResponse(200, h, `{"id":"1"}`)
		},
	}}
	m := testManager(t, doer, newFakeClock())

	route, endpoint := routes.CreateMessage("1234")
	_, err := m.QueueRequest(context.Background(), route, Request{
		Method:   "POST",
		Endpoint: endpoint,
		Data:     map[string]string{"content": "hi"},
		Files:    []RequestFile{{Name: "a.png", Content: []byte("binary")}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seenContentType == "" || seenContentType[:19] != "multipart/form-data" {
		t.Fatalf("expected a multipart content type, got %q", seenContentType)
	}
}

func TestQueueRequest_MissingTokenConfigurationError(t *testing.T) {
	doer := &fakeDoer{steps: []func(*http.Request) (*http.Response, error){
		func(r *http.Request) (*http.Response, error) {
			t.Fatalf("transport should not be reached when auth is misconfigured")
			return nil, nil
		},
	}}
	m := testManager(t, doer, newFakeClock())
	m.SetToken("")

	route, endpoint := routes.GetCurrentUser()
	_, err := m.QueueRequest(context.Background(), route, Request{Method: "GET", Endpoint: endpoint})
	if _, ok := err.(*ConfigurationError); !ok {
		t.Fatalf("expected *ConfigurationError, got %T: %v", err, err)
	}
}

func TestFIFOOrdering(t *testing.T) {
	order := make(chan int, 10)
	var seq int
	doer := &fakeDoer{steps: []func(*http.Request) (*http.Response, error){
		func(r *http.Request) (*http.Response, error) {
			seq++
			order <- seq
			h := http.Header{}
			return jsonResponse(200, h, `{}`)
		},
	}}
	m := testManager(t, doer, newFakeClock())
	route, endpoint := routes.GetCurrentUser()

	h := m.getOrCreateHandler(route, "GET")
	release := h.queue.enter()

	done := make(chan struct{})
	go func() {
		_, _ = m.QueueRequest(context.Background(), route, Request{Method: "GET", Endpoint: endpoint})
		close(done)
	}()

	select {
	case <-done:
		t.Fatalf("second request completed before the first releases the queue")
	case <-time.After(10 * time.Millisecond):
	}

	release()
	<-done
}
