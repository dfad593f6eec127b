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

	"github.com/quietwire/discordrl/ratelimit"
	"github.com/quietwire/discordrl/routes"
	"github.com/quietwire/discordrl/snowflake"
)

// MessageAttachment - one file to upload alongside a message.
type MessageAttachment struct {
	Filename string
	Content  []byte
}

// CreateMessagePayload - the JSON body sent under "payload_json" when
// attachments are present, or as the whole body otherwise.
type CreateMessagePayload struct {
	Content string `json:"content,omitempty"`
	TTS     bool   `json:"tts,omitempty"`
}

// CreateMessage - POST /channels/{channelID}/messages, JSON-only body.
func (c *Client) CreateMessage(ctx context.Context, channelID snowflake.ID, payload CreateMessagePayload) error {
	id, endpoint := routes.CreateMessage(channelID)

	_, err := c.manager.QueueRequest(ctx, id, ratelimit.Request{
		Method:   "POST",
		Endpoint: endpoint,
		Data:     payload,
	})
	return logErr(err)
}

// CreateMessageWithFiles - POST /channels/{channelID}/messages, multipart
// body carrying payload_json plus one or more attachments.
func (c *Client) CreateMessageWithFiles(ctx context.Context, channelID snowflake.ID, payload CreateMessagePayload, files []MessageAttachment) error {
	id, endpoint := routes.CreateMessage(channelID)

	reqFiles := make([]ratelimit.RequestFile, len(files))
	for i, f := range files {
		reqFiles[i] = ratelimit.RequestFile{Name: f.Filename, Content: f.Content}
	}

	_, err := c.manager.QueueRequest(ctx, id, ratelimit.Request{
		Method:   "POST",
		Endpoint: endpoint,
		Data:     payload,
		Files:    reqFiles,
	})
	return logErr(err)
}

// BulkDeleteMessages - POST /channels/{channelID}/messages/bulk-delete,
// with an audit-log reason attached to the request.
func (c *Client) BulkDeleteMessages(ctx context.Context, channelID snowflake.ID, messageIDs []snowflake.ID, reason string) error {
	id, endpoint := routes.BulkDeleteMessages(channelID)

	_, err := c.manager.QueueRequest(ctx, id, ratelimit.Request{
		Method:   "POST",
		Endpoint: endpoint,
		Data:     map[string][]snowflake.ID{"messages": messageIDs},
		Reason:   reason,
	})
	return logErr(err)
}
