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
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bytedance/sonic"

	"github.com/quietwire/discordrl/routes"
	"github.com/quietwire/discordrl/utilities"
)

// RouteIdentifier - component 3: the generalized route plus the literal
// major-parameter ID used for bucket keying. Identical to routes.Identifier;
// aliased here so callers needn't import the routes package directly.
type RouteIdentifier = routes.Identifier

// QueryParam - one (name, value) pair. A nil Value is dropped at assembly
// time, matching "null/undefined values are dropped" in the data model.
type QueryParam struct {
	Name  string
	Value *string
}

// Str builds a QueryParam with a present value - a small convenience since
// most callers have a concrete string, not a pointer.
func Str(name, value string) QueryParam {
	return QueryParam{Name: name, Value: &value}
}

// RequestFile - one multipart file attachment.
type RequestFile struct {
	Name    string
	Content []byte
}

// Request - component 3's logical request: everything the assembler needs
// to build an HTTP call, independent of rate-limit bookkeeping.
type Request struct {
	Method   string
	Endpoint string
	Query    []QueryParam
	Headers  http.Header
	Data     any
	Files    []RequestFile
	// Auth - nil defaults to true, matching "auth defaults to true".
	Auth   *bool
	Reason string
}

func (r Request) wantsAuth() bool {
	return r.Auth == nil || *r.Auth
}

// preparedRequest - component B's output: URL plus everything makeRequest
// needs to build a fresh *http.Request on every attempt.
type preparedRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

func buildQuery(params []QueryParam) string {
	values := url.Values{}
	for _, p := range params {
		if p.Value == nil {
			continue
		}
		values.Add(p.Name, *p.Value)
	}
	return values.Encode()
}

func buildJSONBody(data any) ([]byte, error) {
	return sonic.Marshal(data)
}

func buildMultipartBody(data any, files []RequestFile) (body []byte, contentType string, err error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if data != nil {
		payload, marshalErr := sonic.Marshal(data)
		if marshalErr != nil {
			return nil, "", marshalErr
		}
		if err = w.WriteField("payload_json", string(payload)); err != nil {
			return nil, "", err
		}
	}

	for _, f := range files {
		part, createErr := w.CreateFormFile(f.Name, f.Name)
		if createErr != nil {
			return nil, "", createErr
		}
		if _, err = part.Write(f.Content); err != nil {
			return nil, "", err
		}
	}

	if err = w.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}

// assemble - component B: turns a Request into a URL and fully-buffered
// HTTP options, per the header merge order spec.md §4.B requires: caller
// headers, then body-type headers, then the mandatory headers last so
// they can never be overridden.
func (m *Manager) assemble(req Request) (*preparedRequest, error) {
	endpoint := req.Endpoint
	qs := buildQuery(req.Query)

	reqURL := m.opts.APIBase + "/v" + strconv.Itoa(m.opts.Version) + endpoint
	if qs != "" {
		reqURL += "?" + qs
	}

	header := http.Header{}
	for k, v := range req.Headers {
		header[k] = append([]string(nil), v...)
	}

	var body []byte
	switch {
	case len(req.Files) > 0:
		b, contentType, err := buildMultipartBody(req.Data, req.Files)
		if err != nil {
			return nil, err
		}
		body = b
		header.Set("Content-Type", contentType)
	case req.Data != nil:
		b, err := buildJSONBody(req.Data)
		if err != nil {
			return nil, err
		}
		body = b
		header.Set("Content-Type", "application/json")
	}

	header.Set("User-Agent", m.userAgent())
	header.Set("X-RateLimit-Precision", "millisecond")

	if req.wantsAuth() {
		token := m.Token()
		if token == "" {
			return nil, &ConfigurationError{Msg: fmt.Sprintf("discordrl: %s: request requires auth but no token is set", utilities.FuncName())}
		}
		header.Set("Authorization", "Bot "+token)
	}

	if req.Reason != "" {
		header.Set("X-Audit-Log-Reason", url.QueryEscape(req.Reason))
	}

	return &preparedRequest{
		Method: req.Method,
		URL:    reqURL,
		Header: header,
		Body:   body,
	}, nil
}
