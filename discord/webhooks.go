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

package discord

import (
	"context"
	"errors"
	"strings"

	"github.com/vincent-petithory/dataurl"

	"github.com/quietwire/discordrl/ratelimit"
	"github.com/quietwire/discordrl/routes"
	"github.com/quietwire/discordrl/snowflake"
	"github.com/quietwire/discordrl/utilities"
)

// Webhook - the fields this facade cares about.
type Webhook struct {
	ID        snowflake.ID `json:"id"`
	ChannelID snowflake.ID `json:"channel_id"`
	Name      string       `json:"name"`
	Token     string       `json:"token"`
}

type createWebhookPayload struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// CreateWebhook - POST /channels/{channelID}/webhooks. avatar may be nil.
//
// Webhook names cannot be empty, exceed 80 characters, or contain "clyde"
// or "discord".
func (c *Client) CreateWebhook(ctx context.Context, channelID snowflake.ID, name string, avatar *dataurl.DataURL, reason string) (*Webhook, error) {
	if len(name) < 1 || len(name) > 80 ||
		strings.Contains(strings.ToLower(name), "clyde") ||
		strings.Contains(strings.ToLower(name), "discord") {
		return nil, errors.New("discord: webhook name is invalid or contains a prohibited phrase")
	}

	payload := createWebhookPayload{Name: name}
	if avatar != nil {
		payload.Avatar = avatar.String()
	}

	id, endpoint := routes.CreateWebhook(channelID)

	resp, err := c.manager.QueueRequest(ctx, id, ratelimit.Request{
		Method:   "POST",
		Endpoint: endpoint,
		Data:     payload,
		Reason:   reason,
	})
	if err != nil {
		return nil, logErr(err)
	}

	m, ok := resp.Decoded.(map[string]any)
	if !ok {
		return nil, errors.New("discord: unexpected webhook payload shape")
	}

	w := &Webhook{}
	if v, ok := m["id"].(string); ok {
		w.ID = snowflake.ID(v)
	}
	if v, ok := m["channel_id"].(string); ok {
		w.ChannelID = snowflake.ID(v)
	}
	if v, ok := m["name"].(string); ok {
		w.Name = v
	}
	if v, ok := m["token"].(string); ok {
		w.Token = v
	}

	return w, nil
}

// ExecuteWebhook - POST /webhooks/{webhookID}/{webhookToken}.
func (c *Client) ExecuteWebhook(ctx context.Context, webhookID snowflake.ID, webhookToken string, payload CreateMessagePayload) error {
	id, endpoint := routes.ExecuteWebhook(webhookID, webhookToken)

	_, err := c.manager.QueueRequest(ctx, id, ratelimit.Request{
		Method:   "POST",
		Endpoint: endpoint,
		Data:     payload,
		Auth:     utilities.ToPtr(false), // authorized by the token in the URL, not a bot token
	})
	return logErr(err)
}
