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
	"fmt"
	"runtime"
	"time"
)

// repoURL appears in the mandatory User-Agent header.
const repoURL = "https://github.com/quietwire/discordrl"

// CustomLimit - a client-side override for a bucket whose documented
// rate limit is stricter than what the server's headers alone
// communicate in time to prevent a burst ban (e.g. reactions). Carried
// over from the teacher's customRateLimit mechanism; see DESIGN.md.
type CustomLimit struct {
	// Suffix matches against RouteIdentifier.Route; the first match wins.
	Suffix   string
	Requests int
	Reset    time.Duration
}

// Options - component 6's external interface, with spec.md §6 defaults.
type Options struct {
	UserAgentAppendix string
	// Offset - clamped to >= 0 at construction time, in milliseconds.
	Offset        int
	Retries       int
	Timeout       time.Duration
	Version       int
	APIBase       string
	CDNBase       string
	Token         string
	SweepInterval time.Duration
	CustomLimits  []CustomLimit
}

// DefaultOptions - spec.md §6 defaults.
func DefaultOptions() Options {
	return Options{
		UserAgentAppendix: fmt.Sprintf("go/%s", runtime.Version()),
		Offset:            100,
		Retries:           1,
		Timeout:           15 * time.Second,
		Version:           7,
		APIBase:           "https://discord.com/api",
		CDNBase:           "https://cdn.discordapp.com",
		SweepInterval:     5 * time.Minute,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()

	if o.UserAgentAppendix == "" {
		o.UserAgentAppendix = d.UserAgentAppendix
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	if o.Retries == 0 {
		o.Retries = d.Retries
	}
	if o.Timeout == 0 {
		o.Timeout = d.Timeout
	}
	if o.Version == 0 {
		o.Version = d.Version
	}
	if o.APIBase == "" {
		o.APIBase = d.APIBase
	}
	if o.CDNBase == "" {
		o.CDNBase = d.CDNBase
	}
	if o.SweepInterval == 0 {
		o.SweepInterval = d.SweepInterval
	}

	return o
}

func (m *Manager) userAgent() string {
	return fmt.Sprintf("DiscordBot (%s, %d) %s", repoURL, m.opts.Version, m.opts.UserAgentAppendix)
}

// CDNBase returns the configured CDN host, defaults already applied -
// lets a facade build CDN URLs against the same host the dispatcher
// was configured with instead of assuming Discord's production CDN.
func (m *Manager) CDNBase() string {
	return m.opts.CDNBase
}
