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

import "github.com/quietwire/discordrl/oauth2"

// InviteURL builds the "add this bot to a server" link for applicationID,
// requesting the bot and applications.commands scopes and (optionally)
// a pre-selected permissions integer.
func InviteURL(applicationID, permissions string) string {
	return oauth2.AuthorizeURL(applicationID, []oauth2.Scopes{oauth2.Bot, oauth2.ApplicationsCommands}, permissions)
}
