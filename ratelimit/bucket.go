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
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// requestQueue is a FIFO gate: goroutines call enter() in submission order
// and are released in that same order, one at a time. A plain sync.Mutex
// doesn't guarantee this - the runtime is free to hand a newly-blocked
// goroutine the lock ahead of one that's been waiting longer.
type requestQueue struct {
	mu      sync.Mutex
	waiters []chan struct{}
}

// enter blocks until it is this caller's turn and returns a release func
// that must be called exactly once to let the next waiter through.
func (q *requestQueue) enter() func() {
	q.mu.Lock()
	ticket := make(chan struct{})
	first := len(q.waiters) == 0
	q.waiters = append(q.waiters, ticket)
	q.mu.Unlock()

	if !first {
		<-ticket
	}

	return func() {
		q.mu.Lock()
		q.waiters = q.waiters[1:]
		if len(q.waiters) > 0 {
			next := q.waiters[0]
			q.mu.Unlock()
			close(next)
			return
		}
		q.mu.Unlock()
	}
}

func (q *requestQueue) empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiters) == 0
}

func (q *requestQueue) length() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiters)
}

// bucketHandler owns one bucket's header-learned state plus, optionally,
// a client-side CustomLimit override. One handler serializes every request
// sharing its (hash, majorParameter) pair.
type bucketHandler struct {
	id   string // handler key: hash (or the synthesized per-route key before a hash is known), plus ":"+majorParameter when present
	hash string

	mu        sync.Mutex
	limit     int
	remaining int
	reset     time.Time // zero value means "never learned" (spec's reset = -1)
	lastUsed  time.Time

	queue *requestQueue

	customLimit     *CustomLimit
	customRemaining int
	customLastReset time.Time
}

func newBucketHandler(id string, custom *CustomLimit) *bucketHandler {
	h := &bucketHandler{
		id:          id,
		hash:        id,
		queue:       &requestQueue{},
		customLimit: custom,
	}
	if custom != nil {
		h.customRemaining = custom.Requests
	}
	return h
}

// limited reports whether the server-taught window says this bucket is
// exhausted right now.
func (h *bucketHandler) limited(now time.Time) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.remaining <= 0 && now.Before(h.reset)
}

// inactive reports whether this handler has been idle long enough to be
// safely swept: no queued waiters, not limited, and no use inside the window.
func (h *bucketHandler) inactive(now time.Time, idleAfter time.Duration) bool {
	if !h.queue.empty() {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.remaining <= 0 && now.Before(h.reset) {
		return false
	}
	return now.Sub(h.lastUsed) > idleAfter
}

// customWait returns how long to sleep for the client-side override, 0 if
// it doesn't apply right now. Resets its own window independently of the
// server-reported one.
func (h *bucketHandler) customWait(now time.Time) time.Duration {
	if h.customLimit == nil {
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.customLastReset.IsZero() || now.After(h.customLastReset.Add(h.customLimit.Reset)) {
		h.customLastReset = now
		h.customRemaining = h.customLimit.Requests
	}

	if h.customRemaining <= 0 {
		return h.customLastReset.Add(h.customLimit.Reset).Sub(now)
	}

	h.customRemaining--
	return 0
}

func (h *bucketHandler) observe(limit, remaining int, reset time.Time, now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.limit = limit
	h.remaining = remaining
	if !reset.IsZero() {
		h.reset = reset
	}
	h.lastUsed = now
}

// push is the bucket's half of QueueRequest: gate on the FIFO queue, wait
// out any known exhaustion (server-side and client-side), then delegate to
// the manager for the actual send/retry state machine.
func (h *bucketHandler) push(ctx context.Context, m *Manager, route RouteIdentifier, method string, prep *preparedRequest) (*Response, error) {
	release := h.queue.enter()
	defer release()

	traceID := uuid.NewString()

	if err := m.awaitGlobal(ctx); err != nil {
		return nil, err
	}

	now := m.clock.Now()
	if wait := h.customWait(now); wait > 0 {
		m.emit(RatelimitedEvent{
			TraceID: traceID, TimeToReset: wait, Limit: h.customLimit.Requests,
			Method: method, Hash: h.hash, Route: route.Route, MajorParameter: route.MajorParameter,
		})
		if err := m.clock.Sleep(ctx, wait); err != nil {
			return nil, err
		}
	}

	now = m.clock.Now()
	if h.limited(now) {
		h.mu.Lock()
		wait := h.reset.Sub(now)
		limit := h.limit
		h.mu.Unlock()

		m.emit(RatelimitedEvent{
			TraceID: traceID, TimeToReset: wait, Limit: limit,
			Method: method, Hash: h.hash, Route: route.Route, MajorParameter: route.MajorParameter,
		})
		if err := m.clock.Sleep(ctx, wait); err != nil {
			return nil, err
		}
	}

	return m.makeRequest(ctx, h, route, method, prep, traceID, 0)
}
