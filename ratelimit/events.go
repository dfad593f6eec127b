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
	"time"

	"github.com/quietwire/discordrl/logging"
)

// Event - component F. The outer layer subscribes to Manager.Events() and
// type-switches on the concrete event it receives.
type Event interface {
	isEvent()
}

// RatelimitedEvent - emitted whenever a bucket is locally known to be
// exhausted and the dispatcher is about to sleep until its reset.
type RatelimitedEvent struct {
	TraceID        string
	TimeToReset    time.Duration
	Limit          int
	Method         string
	Hash           string
	Route          string
	MajorParameter string
}

func (RatelimitedEvent) isEvent() {}

// DebugEvent - a free-form diagnostic observation: a 429 hit, a bucket
// hash migration, a global rate limit engaging.
type DebugEvent struct {
	TraceID string
	Message string
}

func (DebugEvent) isEvent() {}

// emit delivers ev to any subscriber without blocking the request path,
// and mirrors it into the package logger. A full event channel drops the
// event rather than stall a dispatch.
func (m *Manager) emit(ev Event) {
	switch e := ev.(type) {
	case RatelimitedEvent:
		logging.Warnln(logging.LogPrefixDiscord, "ratelimited:", e.Method, e.Route, "wait", e.TimeToReset)
	case DebugEvent:
		logging.Debugln(logging.LogPrefixDiscord, e.Message)
	}

	select {
	case m.events <- ev:
	default:
	}
}
