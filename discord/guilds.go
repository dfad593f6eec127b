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
	"fmt"

	"github.com/quietwire/discordrl/ratelimit"
	"github.com/quietwire/discordrl/routes"
	"github.com/quietwire/discordrl/snowflake"
)

// Guild - the fields this facade cares about.
type Guild struct {
	ID   snowflake.ID `json:"id"`
	Name string       `json:"name"`
	Icon *string      `json:"icon"`
}

// GetGuild - GET /guilds/{guildID}.
func (c *Client) GetGuild(ctx context.Context, guildID snowflake.ID) (*Guild, error) {
	id, endpoint := routes.GetGuild(guildID)

	resp, err := c.manager.QueueRequest(ctx, id, ratelimit.Request{
		Method:   "GET",
		Endpoint: endpoint,
	})
	if err != nil {
		return nil, logErr(err)
	}

	m, ok := resp.Decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("discord: unexpected guild payload shape")
	}

	g := &Guild{}
	if v, ok := m["id"].(string); ok {
		g.ID = snowflake.ID(v)
	}
	if v, ok := m["name"].(string); ok {
		g.Name = v
	}
	if v, ok := m["icon"].(string); ok {
		g.Icon = &v
	}

	return g, nil
}

// AddGuildMemberRole - PUT /guilds/{guildID}/members/{userID}/roles/{roleID}.
func (c *Client) AddGuildMemberRole(ctx context.Context, guildID, userID, roleID snowflake.ID, reason string) error {
	id, endpoint := routes.AddGuildMemberRole(guildID, userID, roleID)

	_, err := c.manager.QueueRequest(ctx, id, ratelimit.Request{
		Method:   "PUT",
		Endpoint: endpoint,
		Reason:   reason,
	})
	return logErr(err)
}
