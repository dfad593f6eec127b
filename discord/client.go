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

// Package discord is a thin REST facade over the ratelimit dispatcher:
// a deliberately small set of representative endpoints (not the full
// Discord surface - see SPEC_FULL.md's Non-goals) exercising the JSON,
// multipart and audit-log-reason request shapes.
package discord

import (
	"context"

	log "github.com/veteran-software/nowlive-logging"

	"github.com/quietwire/discordrl/cdn"
	"github.com/quietwire/discordrl/ratelimit"
)

// Client wraps a *ratelimit.Manager with typed, decoded-response calls.
type Client struct {
	manager *ratelimit.Manager
}

// New builds a Client from ratelimit options, applying library defaults
// for anything left zero-valued except Offset: a zero Offset stays 0 (a
// negative one is clamped to 0), so the 100ms default applies only when
// starting from ratelimit.DefaultOptions().
func New(opts ratelimit.Options) *Client {
	return &Client{manager: ratelimit.NewManager(opts)}
}

// CDN returns a cdn.Builder targeting the same CDN host this client's
// manager was configured with, so a custom Options.CDNBase (proxy,
// test double, regional mirror) is honored by URL building too instead
// of only by the dispatcher.
func (c *Client) CDN() cdn.Builder {
	return cdn.NewBuilder(c.manager.CDNBase())
}

// Close stops the underlying manager's background sweeper.
func (c *Client) Close() error {
	return c.manager.Shutdown(context.Background())
}

func logErr(err error) error {
	if err != nil {
		log.Errorln(log.Discord, log.FuncName(), err)
	}
	return err
}
