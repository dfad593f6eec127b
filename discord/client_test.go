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

package discord_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/quietwire/discordrl/discord"
	"github.com/quietwire/discordrl/ratelimit"
)

func TestGetCurrentUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v7/users/@me" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("X-RateLimit-Limit", "5")
		w.Header().Set("X-RateLimit-Remaining", "4")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"175928847299117063","username":"quietwire","discriminator":"0001","bot":false}`))
	}))
	defer srv.Close()

	c := discord.New(ratelimit.Options{APIBase: srv.URL, Token: "x", Timeout: 2 * time.Second})
	defer func() { _ = c.Close() }()

	u, err := c.GetCurrentUser(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Username != "quietwire" {
		t.Fatalf("unexpected username: %q", u.Username)
	}
}

func TestInviteURL(t *testing.T) {
	u := discord.InviteURL("123456789012345678", "8")
	if !strings.Contains(u, "client_id=123456789012345678") || !strings.Contains(u, "permissions=8") {
		t.Fatalf("unexpected invite url: %s", u)
	}
}

func TestClient_CDN_UsesConfiguredBase(t *testing.T) {
	c := discord.New(ratelimit.Options{APIBase: "http://example.invalid", CDNBase: "https://cdn.example.test", Token: "x"})
	defer func() { _ = c.Close() }()

	url := c.CDN().DefaultUserAvatar(0)
	if url != "https://cdn.example.test/embed/avatars/0.png" {
		t.Fatalf("unexpected CDN url: %s", url)
	}
}

func TestCreateWebhook_RejectsBadName(t *testing.T) {
	c := discord.New(ratelimit.Options{APIBase: "http://example.invalid", Token: "x"})
	defer func() { _ = c.Close() }()

	_, err := c.CreateWebhook(context.Background(), "1234", "clyde", nil, "")
	if err == nil {
		t.Fatalf("expected an error for a prohibited webhook name")
	}
}
