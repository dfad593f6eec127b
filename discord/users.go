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

// User - the fields this facade cares about; not Discord's full object.
type User struct {
	ID            snowflake.ID `json:"id"`
	Username      string       `json:"username"`
	Discriminator string       `json:"discriminator"`
	Avatar        *string      `json:"avatar"`
	Bot           bool         `json:"bot"`
}

// GetCurrentUser - GET /users/@me.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	id, endpoint := routes.GetCurrentUser()

	resp, err := c.manager.QueueRequest(ctx, id, ratelimit.Request{
		Method:   "GET",
		Endpoint: endpoint,
	})
	if err != nil {
		return nil, logErr(err)
	}

	return decodeUser(resp)
}

// GetUser - GET /users/{userID}.
func (c *Client) GetUser(ctx context.Context, userID snowflake.ID) (*User, error) {
	id, endpoint := routes.GetUser(userID)

	resp, err := c.manager.QueueRequest(ctx, id, ratelimit.Request{
		Method:   "GET",
		Endpoint: endpoint,
	})
	if err != nil {
		return nil, logErr(err)
	}

	return decodeUser(resp)
}

func decodeUser(resp *ratelimit.Response) (*User, error) {
	m, ok := resp.Decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("discord: unexpected user payload shape")
	}

	u := &User{}
	if v, ok := m["id"].(string); ok {
		u.ID = snowflake.ID(v)
	}
	if v, ok := m["username"].(string); ok {
		u.Username = v
	}
	if v, ok := m["discriminator"].(string); ok {
		u.Discriminator = v
	}
	if v, ok := m["bot"].(bool); ok {
		u.Bot = v
	}
	if v, ok := m["avatar"].(string); ok {
		u.Avatar = &v
	}

	return u, nil
}
