/*
 * Copyright (c) 2024. Veteran Software
 *
 *  Discord API Wrapper - A custom wrapper for the Discord REST API developed for a proprietary project.
 *
 *  This program is free software: you can redistribute it and/or modify it under the terms of the GNU General Public
 *  License as published by the Free Software Foundation, either version 3 of the License, or (at your option) any later version.
 *
 *  This program is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for more details.
 *
 *  You should have received a copy of the GNU General Public License along with this program.
 *  If not, see <http://www.gnu.org/licenses/>.
 */

package ratelimit

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/httpclient"

	"github.com/quietwire/discordrl/logging"
)

// httpDoer is the seam between Manager and its transport, so tests can
// substitute a fake without standing up a real listener.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Manager is the dispatcher: component set D/E/G wired together. One
// Manager owns one bucket map, one global-limit gate and one sweeper.
type Manager struct {
	opts Options

	client  httpDoer
	backoff heimdall.Backoff
	clock   Clock

	tokenMu sync.RWMutex
	token   string

	handlersMu sync.Mutex
	handlers   map[string]*bucketHandler // keyed by hash+major
	hashes     map[string]string         // method+route -> learned hash

	globalMu    sync.Mutex
	globalUntil time.Time

	events chan Event

	stopSweep chan struct{}
	sweepOnce sync.Once
}

// NewManager constructs a Manager from opts, filling in spec.md §6
// defaults and falling back to the DISCORD_TOKEN environment variable
// when opts.Token is empty.
func NewManager(opts Options) *Manager {
	opts = opts.withDefaults()
	if opts.Token == "" {
		opts.Token = os.Getenv("DISCORD_TOKEN")
	}

	backoff := heimdall.NewExponentialBackoff(500*time.Millisecond, 25*time.Second, 2.0, 2*time.Millisecond)

	m := &Manager{
		opts:      opts,
		backoff:   backoff,
		clock:     NewSystemClock(),
		token:     opts.Token,
		handlers:  map[string]*bucketHandler{},
		hashes:    map[string]string{},
		events:    make(chan Event, 64),
		stopSweep: make(chan struct{}),
	}

	m.client = httpclient.NewClient(
		httpclient.WithHTTPTimeout(opts.Timeout),
	)

	go m.sweepLoop()

	return m
}

// Events exposes the Manager's diagnostic stream. The channel is never
// closed by Shutdown; callers simply stop reading from it.
func (m *Manager) Events() <-chan Event {
	return m.events
}

func (m *Manager) SetToken(token string) {
	m.tokenMu.Lock()
	defer m.tokenMu.Unlock()
	m.token = token
}

func (m *Manager) Token() string {
	m.tokenMu.RLock()
	defer m.tokenMu.RUnlock()
	return m.token
}

// unknownHash synthesizes the placeholder hash for a route before one has
// been learned: an unlearned route gets its own synthetic per-route
// bucket so two never-before-seen endpoints don't serialize behind each
// other like they share a hash.
func unknownHash(route string) string {
	return "unknown:" + route
}

func (m *Manager) customLimitFor(route string) *CustomLimit {
	for i := range m.opts.CustomLimits {
		if strings.HasSuffix(route, m.opts.CustomLimits[i].Suffix) {
			return &m.opts.CustomLimits[i]
		}
	}
	return nil
}

func (m *Manager) getOrCreateHandler(route RouteIdentifier, method string) *bucketHandler {
	m.handlersMu.Lock()
	defer m.handlersMu.Unlock()

	hash, known := m.hashes[method+" "+route.Route]
	key := unknownHash(method + " " + route.Route)
	if known {
		key = hash
	}
	if route.MajorParameter != "" {
		key += ":" + route.MajorParameter
	}

	h, ok := m.handlers[key]
	if !ok {
		h = newBucketHandler(key, m.customLimitFor(route.Route))
		m.handlers[key] = h
	}
	return h
}

// migrateHash re-keys a handler's slot in the map once the server teaches
// us its real bucket hash, so future requests to the same route land on
// the same handler (and therefore the same queue/state) as any other
// route that happens to share the hash.
func (m *Manager) migrateHash(route RouteIdentifier, method, newHash, traceID string) {
	if newHash == "" {
		return
	}

	m.handlersMu.Lock()
	defer m.handlersMu.Unlock()

	routeKey := method + " " + route.Route
	existing, known := m.hashes[routeKey]
	if known && existing == newHash {
		return
	}
	m.hashes[routeKey] = newHash
	m.emit(DebugEvent{TraceID: traceID, Message: "bucket hash migration for " + routeKey + ": " + existing + " -> " + newHash})

	oldKey := unknownHash(routeKey)
	if route.MajorParameter != "" {
		oldKey += ":" + route.MajorParameter
	}
	newKey := newHash
	if route.MajorParameter != "" {
		newKey += ":" + route.MajorParameter
	}
	if newKey == oldKey {
		return
	}

	if h, ok := m.handlers[oldKey]; ok {
		delete(m.handlers, oldKey)
		h.hash = newHash
		h.id = newKey
		m.handlers[newKey] = h
	}
}

// awaitGlobal blocks while a global rate limit is in effect.
func (m *Manager) awaitGlobal(ctx context.Context) error {
	for {
		m.globalMu.Lock()
		until := m.globalUntil
		m.globalMu.Unlock()

		now := m.clock.Now()
		if until.IsZero() || !now.Before(until) {
			return nil
		}
		if err := m.clock.Sleep(ctx, until.Sub(now)); err != nil {
			return err
		}
	}
}

// setGlobal extends the global gate to at least now+d. A shorter delay
// than one already in effect never shortens it - the latest expiry wins.
func (m *Manager) setGlobal(d time.Duration) {
	until := m.clock.Now().Add(d)

	m.globalMu.Lock()
	defer m.globalMu.Unlock()
	if until.After(m.globalUntil) {
		m.globalUntil = until
	}
}

// QueueRequest is the package's single entry point: assemble the request,
// find its bucket and let the bucket gate and dispatch it.
func (m *Manager) QueueRequest(ctx context.Context, route RouteIdentifier, req Request) (*Response, error) {
	prep, err := m.assemble(req)
	if err != nil {
		return nil, err
	}

	h := m.getOrCreateHandler(route, req.Method)
	return h.push(ctx, m, route, req.Method, prep)
}

// interpretHeaders reads Discord's rate-limit headers off a response and
// reports how long to wait before retrying, if at all. retryAfter honors
// the Via-header-dependent unit rule: seconds without a Via header (or
// with a Cloudflare one), milliseconds otherwise. offset is added to both
// reset and retryAfter (spec.md §4.D) to absorb clock skew and network
// jitter between this client and Discord's edge.
func (m *Manager) interpretHeaders(headers http.Header, now time.Time) (limit, remaining int, reset time.Time, retryAfter time.Duration, isGlobal bool) {
	offset := time.Duration(m.opts.Offset) * time.Millisecond

	limit, _ = strconv.Atoi(headers.Get("X-RateLimit-Limit"))
	remaining, _ = strconv.Atoi(headers.Get("X-RateLimit-Remaining"))
	isGlobal = headers.Get("X-RateLimit-Global") == "true"

	if ra := headers.Get("Retry-After"); ra != "" {
		if f, err := strconv.ParseFloat(ra, 64); err == nil {
			via := headers.Get("Via")
			if via == "" || strings.Contains(strings.ToLower(via), "cloudflare") {
				retryAfter = time.Duration(f*float64(time.Second)) + offset
			} else {
				retryAfter = time.Duration(f*float64(time.Millisecond)) + offset
			}
		}
	}

	if resetAfter := headers.Get("X-RateLimit-Reset-After"); resetAfter != "" {
		if f, err := strconv.ParseFloat(resetAfter, 64); err == nil {
			reset = now.Add(time.Duration(f*float64(time.Second)) + offset)
			return
		}
	}

	// No Reset-After: fall back to the response's own Date header as the
	// "now" anchor, matching the teacher's checkReset behavior. Absent
	// that too, the spec's documented decision is reset = now (never
	// limited from this response alone).
	if dateHdr := headers.Get("Date"); dateHdr != "" {
		if t, err := http.ParseTime(dateHdr); err == nil {
			if resetEpoch := headers.Get("X-RateLimit-Reset"); resetEpoch != "" {
				if f, err2 := strconv.ParseFloat(resetEpoch, 64); err2 == nil {
					serverNow := t
					reset = now.Add(time.Unix(int64(f), 0).Sub(serverNow) + offset)
					return
				}
			}
		}
	}

	reset = now
	return
}

type decodedAPIError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// isAbortErr reports whether err is the Send state's abort-timer firing -
// a context deadline or a net.Error reporting Timeout() - as opposed to
// any other transport failure (DNS, connection refused, a reset). Only
// the former is retryable.
func isAbortErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

// makeRequest is the Send -> Receive -> Classify state machine: issue one
// attempt, classify the outcome, and recurse with an incremented retry
// count for the paths spec.md marks retryable.
func (m *Manager) makeRequest(ctx context.Context, h *bucketHandler, route RouteIdentifier, method string, prep *preparedRequest, traceID string, retries int) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, prep.Method, prep.URL, bytes.NewReader(prep.Body))
	if err != nil {
		return nil, err
	}
	httpReq.Header = prep.Header

	logging.Traceln(traceID, method, prep.URL, "attempt", retries)

	resp, err := m.client.Do(httpReq)
	if err != nil {
		if !isAbortErr(err) {
			// A transport failure that isn't a timeout (DNS, connection
			// refused, a reset mid-read) is not retryable - it surfaces
			// as whatever the transport raised.
			return nil, err
		}
		if retries < m.opts.Retries {
			if werr := m.clock.Sleep(ctx, m.backoff.Next(retries+1)); werr != nil {
				return nil, werr
			}
			return m.makeRequest(ctx, h, route, method, prep, traceID, retries+1)
		}
		return nil, &TimeoutError{Method: method, URL: prep.URL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	now := m.clock.Now()
	limit, remaining, reset, retryAfter, isGlobal := m.interpretHeaders(resp.Header, now)
	if hash := resp.Header.Get("X-RateLimit-Bucket"); hash != "" {
		m.migrateHash(route, method, hash, traceID)
	}
	h.observe(limit, remaining, reset, now)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		m.emit(DebugEvent{TraceID: traceID, Message: "429 received for " + method + " " + route.Route})
		if isGlobal {
			m.setGlobal(retryAfter)
		}
		if werr := m.clock.Sleep(ctx, retryAfter); werr != nil {
			return nil, werr
		}
		// 429s are retried without incrementing the retry counter - the
		// server told us exactly how long to wait, it isn't a failure.
		return m.makeRequest(ctx, h, route, method, prep, traceID, retries)

	case resp.StatusCode >= 500:
		if retries < m.opts.Retries {
			if werr := m.clock.Sleep(ctx, m.backoff.Next(retries+1)); werr != nil {
				return nil, werr
			}
			return m.makeRequest(ctx, h, route, method, prep, traceID, retries+1)
		}
		return nil, &HTTPError{StatusText: resp.Status, Status: resp.StatusCode, Method: method, URL: prep.URL}

	case resp.StatusCode >= 400:
		apiErr := &APIError{Status: resp.StatusCode, Method: method, URL: prep.URL}
		var decoded decodedAPIError
		if len(body) > 0 && sonic.Unmarshal(body, &decoded) == nil {
			apiErr.Message = decoded.Message
			apiErr.Code = decoded.Code
		}
		return nil, apiErr

	default:
		return parseResponse(resp.Header.Get("Content-Type"), body), nil
	}
}

// sweepLoop periodically removes handlers that have gone idle, so a bot
// that hits thousands of distinct major-parameter buckets (one per
// channel/guild) doesn't hold onto them forever.
func (m *Manager) sweepLoop() {
	ticker := time.NewTicker(m.opts.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.stopSweep:
			return
		}
	}
}

func (m *Manager) sweep() {
	now := m.clock.Now()

	m.handlersMu.Lock()
	defer m.handlersMu.Unlock()

	for key, h := range m.handlers {
		if h.inactive(now, m.opts.SweepInterval) {
			delete(m.handlers, key)
		}
	}
}

// Shutdown stops the sweeper. It does not close Events(); callers simply
// stop reading from it.
func (m *Manager) Shutdown(_ context.Context) error {
	m.sweepOnce.Do(func() { close(m.stopSweep) })
	return nil
}
