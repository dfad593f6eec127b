/*
 * Copyright (c) 2022-2024. Veteran Software
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

// Package routes is the route catalog: a closed table of endpoint
// templates keyed by logical name, generalized for bucket keying.
//
// Each entry replaces every ID in its bucket template with a placeholder
// and reports the major parameter (guild, channel or webhook ID) separately, since
// that's what the dispatcher uses to key a handler - see
// github.com/quietwire/discordrl/ratelimit.
package routes

import (
	"fmt"

	"github.com/quietwire/discordrl/snowflake"
)

// Identifier - a generalized route paired with the major-parameter ID
// that partitions its rate-limit bucket on the server.
type Identifier struct {
	// Route is the generalized template with placeholders for every ID,
	// major ones included, e.g. "/channels/{channelID}/messages/{messageID}".
	// The literal major ID travels separately in MajorParameter.
	Route string
	// MajorParameter is the literal ID substituted for this call's major
	// segment, or the empty string for routes with no major parameter.
	MajorParameter string
}

//goland:noinspection SpellCheckingInspection
const (
	getGlobalApplicationCommandsTmpl = "/applications/%s/commands"
	getGlobalApplicationCommandTmpl  = "/applications/%s/commands/%s"
	createInteractionResponseTmpl    = "/interactions/%s/%s/callback"
	getGuildAuditLogTmpl             = "/guilds/{guildID}/audit-logs"
	getChannelTmpl                   = "/channels/{channelID}"
	createMessageTmpl                = "/channels/{channelID}/messages"
	getChannelMessageTmpl            = "/channels/{channelID}/messages/{messageID}"
	crosspostMessageTmpl             = "/channels/{channelID}/messages/{messageID}/crosspost"
	deleteAllReactionsTmpl           = "/channels/{channelID}/messages/{messageID}/reactions"
	createReactionTmpl               = "/channels/{channelID}/messages/{messageID}/reactions/{emoji}/@me"
	bulkDeleteMessagesTmpl           = "/channels/{channelID}/messages/bulk-delete"
	getPinnedMessagesTmpl            = "/channels/{channelID}/pins"
	triggerTypingIndicatorTmpl       = "/channels/{channelID}/typing"
	listGuildEmojisTmpl              = "/guilds/{guildID}/emojis"
	createGuildTmpl                  = "/guilds"
	getGuildTmpl                     = "/guilds/{guildID}"
	getGuildChannelsTmpl             = "/guilds/{guildID}/channels"
	getGuildPreviewTmpl              = "/guilds/{guildID}/preview"
	listGuildMembersTmpl             = "/guilds/{guildID}/members"
	getGuildMemberTmpl               = "/guilds/{guildID}/members/{userID}"
	addGuildMemberRoleTmpl           = "/guilds/{guildID}/members/{userID}/roles/{roleID}"
	getCurrentUserTmpl               = "/users/@me"
	getUserTmpl                      = "/users/{userID}"
	createWebhookTmpl                = "/channels/{channelID}/webhooks"
	getWebhookTmpl                   = "/webhooks/{webhookID}"
	executeWebhookTmpl               = "/webhooks/{webhookID}/{webhookToken}"
)

// GetCurrentUser - GET /users/@me. No major parameter.
func GetCurrentUser() (Identifier, string) {
	return Identifier{Route: getCurrentUserTmpl}, getCurrentUserTmpl
}

// GetUser - GET /users/{user.id}. No major parameter.
func GetUser(userID snowflake.ID) (Identifier, string) {
	return Identifier{Route: getUserTmpl}, fmt.Sprintf("/users/%s", userID)
}

// GetGuild - GET /guilds/{guild.id}. Major parameter is the guild ID.
func GetGuild(guildID snowflake.ID) (Identifier, string) {
	return Identifier{Route: getGuildTmpl, MajorParameter: guildID.String()},
		fmt.Sprintf("/guilds/%s", guildID)
}

// GetGuildChannels - GET /guilds/{guild.id}/channels. Major parameter is the guild ID.
func GetGuildChannels(guildID snowflake.ID) (Identifier, string) {
	return Identifier{Route: getGuildChannelsTmpl, MajorParameter: guildID.String()},
		fmt.Sprintf("/guilds/%s/channels", guildID)
}

// GetChannel - GET /channels/{channel.id}. Major parameter is the channel ID.
func GetChannel(channelID snowflake.ID) (Identifier, string) {
	return Identifier{Route: getChannelTmpl, MajorParameter: channelID.String()},
		fmt.Sprintf("/channels/%s", channelID)
}

// CreateMessage - POST /channels/{channel.id}/messages. Major parameter is the channel ID.
func CreateMessage(channelID snowflake.ID) (Identifier, string) {
	return Identifier{Route: createMessageTmpl, MajorParameter: channelID.String()},
		fmt.Sprintf("/channels/%s/messages", channelID)
}

// GetChannelMessage - GET /channels/{channel.id}/messages/{message.id}. Major parameter is the channel ID.
func GetChannelMessage(channelID, messageID snowflake.ID) (Identifier, string) {
	return Identifier{Route: getChannelMessageTmpl, MajorParameter: channelID.String()},
		fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
}

// CrosspostMessage - POST /channels/{channel.id}/messages/{message.id}/crosspost.
func CrosspostMessage(channelID, messageID snowflake.ID) (Identifier, string) {
	return Identifier{Route: crosspostMessageTmpl, MajorParameter: channelID.String()},
		fmt.Sprintf("/channels/%s/messages/%s/crosspost", channelID, messageID)
}

// CreateReaction - PUT .../reactions/{emoji}/@me. Major parameter is the channel ID.
func CreateReaction(channelID, messageID snowflake.ID, emoji string) (Identifier, string) {
	return Identifier{Route: createReactionTmpl, MajorParameter: channelID.String()},
		fmt.Sprintf("/channels/%s/messages/%s/reactions/%s/@me", channelID, messageID, emoji)
}

// BulkDeleteMessages - POST /channels/{channel.id}/messages/bulk-delete.
func BulkDeleteMessages(channelID snowflake.ID) (Identifier, string) {
	return Identifier{Route: bulkDeleteMessagesTmpl, MajorParameter: channelID.String()},
		fmt.Sprintf("/channels/%s/messages/bulk-delete", channelID)
}

// GetPinnedMessages - GET /channels/{channel.id}/pins.
func GetPinnedMessages(channelID snowflake.ID) (Identifier, string) {
	return Identifier{Route: getPinnedMessagesTmpl, MajorParameter: channelID.String()},
		fmt.Sprintf("/channels/%s/pins", channelID)
}

// TriggerTypingIndicator - POST /channels/{channel.id}/typing.
func TriggerTypingIndicator(channelID snowflake.ID) (Identifier, string) {
	return Identifier{Route: triggerTypingIndicatorTmpl, MajorParameter: channelID.String()},
		fmt.Sprintf("/channels/%s/typing", channelID)
}

// ListGuildEmojis - GET /guilds/{guild.id}/emojis.
func ListGuildEmojis(guildID snowflake.ID) (Identifier, string) {
	return Identifier{Route: listGuildEmojisTmpl, MajorParameter: guildID.String()},
		fmt.Sprintf("/guilds/%s/emojis", guildID)
}

// ListGuildMembers - GET /guilds/{guild.id}/members.
func ListGuildMembers(guildID snowflake.ID) (Identifier, string) {
	return Identifier{Route: listGuildMembersTmpl, MajorParameter: guildID.String()},
		fmt.Sprintf("/guilds/%s/members", guildID)
}

// GetGuildMember - GET /guilds/{guild.id}/members/{user.id}.
func GetGuildMember(guildID, userID snowflake.ID) (Identifier, string) {
	return Identifier{Route: getGuildMemberTmpl, MajorParameter: guildID.String()},
		fmt.Sprintf("/guilds/%s/members/%s", guildID, userID)
}

// AddGuildMemberRole - PUT /guilds/{guild.id}/members/{user.id}/roles/{role.id}.
func AddGuildMemberRole(guildID, userID, roleID snowflake.ID) (Identifier, string) {
	return Identifier{Route: addGuildMemberRoleTmpl, MajorParameter: guildID.String()},
		fmt.Sprintf("/guilds/%s/members/%s/roles/%s", guildID, userID, roleID)
}

// GetGuildPreview - GET /guilds/{guild.id}/preview.
func GetGuildPreview(guildID snowflake.ID) (Identifier, string) {
	return Identifier{Route: getGuildPreviewTmpl, MajorParameter: guildID.String()},
		fmt.Sprintf("/guilds/%s/preview", guildID)
}

// CreateGuild - POST /guilds. No major parameter.
func CreateGuild() (Identifier, string) {
	return Identifier{Route: createGuildTmpl}, createGuildTmpl
}

// GetGuildAuditLog - GET /guilds/{guild.id}/audit-logs.
func GetGuildAuditLog(guildID snowflake.ID) (Identifier, string) {
	return Identifier{Route: getGuildAuditLogTmpl, MajorParameter: guildID.String()},
		fmt.Sprintf("/guilds/%s/audit-logs", guildID)
}

// CreateWebhook - POST /channels/{channel.id}/webhooks. Major parameter is the channel ID.
func CreateWebhook(channelID snowflake.ID) (Identifier, string) {
	return Identifier{Route: createWebhookTmpl, MajorParameter: channelID.String()},
		fmt.Sprintf("/channels/%s/webhooks", channelID)
}

// GetWebhook - GET /webhooks/{webhook.id}. Major parameter is the webhook ID.
func GetWebhook(webhookID snowflake.ID) (Identifier, string) {
	return Identifier{Route: getWebhookTmpl, MajorParameter: webhookID.String()},
		fmt.Sprintf("/webhooks/%s", webhookID)
}

// ExecuteWebhook - POST /webhooks/{webhook.id}/{webhook.token}. Major parameter is the webhook ID.
func ExecuteWebhook(webhookID snowflake.ID, webhookToken string) (Identifier, string) {
	return Identifier{Route: executeWebhookTmpl, MajorParameter: webhookID.String()},
		fmt.Sprintf("/webhooks/%s/%s", webhookID, webhookToken)
}

// GetGlobalApplicationCommands - GET /applications/{application.id}/commands. No major parameter:
// application-scoped routes aren't bucketed by guild/channel/webhook.
func GetGlobalApplicationCommands(applicationID snowflake.ID) (Identifier, string) {
	route := fmt.Sprintf(getGlobalApplicationCommandsTmpl, "{applicationID}")
	return Identifier{Route: route}, fmt.Sprintf("/applications/%s/commands", applicationID)
}

// CreateInteractionResponse - POST /interactions/{interaction.id}/{interaction.token}/callback.
// Interaction callbacks aren't bound to a guild/channel/webhook major parameter.
func CreateInteractionResponse(interactionID snowflake.ID, interactionToken string) (Identifier, string) {
	route := fmt.Sprintf(createInteractionResponseTmpl, "{interactionID}", "{interactionToken}")
	return Identifier{Route: route}, fmt.Sprintf("/interactions/%s/%s/callback", interactionID, interactionToken)
}
