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
	"strings"

	"github.com/bytedance/sonic"
)

// Response - component A's output. Raw always carries the body bytes;
// Decoded is populated only when the Content-Type was application/json.
type Response struct {
	ContentType string
	Raw         []byte
	Decoded     any
}

// parseResponse - component A: decode as JSON (UTF-8) when Content-Type
// begins with application/json, otherwise hand back the raw bytes. A
// missing Content-Type falls to the byte branch.
func parseResponse(contentType string, body []byte) *Response {
	r := &Response{ContentType: contentType, Raw: body}

	if strings.HasPrefix(contentType, "application/json") && len(body) > 0 {
		var v any
		if err := sonic.Unmarshal(body, &v); err == nil {
			r.Decoded = v
		}
	}

	return r
}
