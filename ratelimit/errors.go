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

// Package ratelimit is the dispatcher: it serializes requests through
// per-bucket queues honoring Discord's token-bucket headers, retries
// recoverable failures and surfaces the two structured error kinds
// below (component C).
package ratelimit

import "fmt"

// ConfigurationError - the request requires auth but no token is set.
// Raised synchronously from assembly, never from the network.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return e.Msg
}

// TimeoutError - the abort-timer fired and retries are exhausted.
// Propagated verbatim (wrapped) from the transport.
type TimeoutError struct {
	Method string
	URL    string
	Err    error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("discordrl: timed out: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// HTTPError - a 5xx response survived all retries.
type HTTPError struct {
	StatusText string
	Status     int
	Method     string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("discordrl: http %d (%s): %s %s", e.Status, e.StatusText, e.Method, e.URL)
}

// APIError - a non-429 4xx response, carrying Discord's decoded error body.
type APIError struct {
	Message string
	Code    int
	Status  int
	Method  string
	URL     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discordrl: api error %d (http %d): %s: %s %s", e.Code, e.Status, e.Message, e.Method, e.URL)
}
