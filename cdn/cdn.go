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

// Package cdn builds URLs against Discord's CDN. Pure string formatting
// over a closed set of extensions and sizes - no network calls, no
// rate limiting: the CDN is unauthenticated and unthrottled.
package cdn

import (
	"fmt"
	"strings"

	"github.com/quietwire/discordrl/snowflake"
)

// Extension - an allowed CDN image extension.
type Extension string

//goland:noinspection GoUnusedConst
const (
	WebP Extension = "webp"
	PNG  Extension = "png"
	JPG  Extension = "jpg"
	JPEG Extension = "jpeg"
	GIF  Extension = "gif"
)

var validExtensions = map[Extension]struct{}{
	WebP: {}, PNG: {}, JPG: {}, JPEG: {}, GIF: {},
}

var validSizes = map[int]struct{}{
	16: {}, 32: {}, 64: {}, 128: {}, 256: {}, 512: {}, 1024: {}, 2048: {}, 4096: {},
}

// ValidationError - an invalid extension or size was requested.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// DefaultBaseURL is used by every builder below unless a Builder is
// constructed with a different one - see NewBuilder.
const DefaultBaseURL = "https://cdn.discordapp.com"

func validate(extension Extension, size int) error {
	if _, ok := validExtensions[extension]; !ok {
		return &ValidationError{Msg: fmt.Sprintf("cdn: unsupported extension %q", extension)}
	}
	if size != 0 {
		if _, ok := validSizes[size]; !ok {
			return &ValidationError{Msg: fmt.Sprintf("cdn: unsupported size %d", size)}
		}
	}
	return nil
}

func withSize(url string, size int) string {
	if size == 0 {
		return url
	}
	return fmt.Sprintf("%s?size=%d", url, size)
}

// Builder builds CDN URLs against a configurable base - production code
// gets DefaultBaseURL, but a Manager constructed against a different
// CDNBase (see ratelimit.Options) builds against that one instead so the
// facade and the dispatcher always agree on which CDN host to use.
type Builder struct {
	base string
}

// NewBuilder constructs a Builder against base, falling back to
// DefaultBaseURL when base is empty.
func NewBuilder(base string) Builder {
	if base == "" {
		base = DefaultBaseURL
	}
	return Builder{base: base}
}

// UserAvatar - builds a user avatar URL. When dynamic is true and the hash
// indicates an animated avatar (it starts with "a_"), the extension is
// forced to gif regardless of the extension requested.
func (b Builder) UserAvatar(userID snowflake.ID, avatarHash string, extension Extension, size int, dynamic bool) (string, error) {
	if dynamic && strings.HasPrefix(avatarHash, "a_") {
		extension = GIF
	}
	if err := validate(extension, size); err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/avatars/%s/%s.%s", b.base, userID, avatarHash, extension)
	return withSize(url, size), nil
}

// DefaultUserAvatar - builds the URL for one of Discord's default avatars.
// Default avatars are always PNG and have no size variants.
func (b Builder) DefaultUserAvatar(index int) string {
	return fmt.Sprintf("%s/embed/avatars/%d.png", b.base, index)
}

// GuildIcon - builds a guild icon URL.
func (b Builder) GuildIcon(guildID snowflake.ID, iconHash string, extension Extension, size int) (string, error) {
	if err := validate(extension, size); err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/icons/%s/%s.%s", b.base, guildID, iconHash, extension)
	return withSize(url, size), nil
}

// Emoji - builds a custom emoji URL. Emoji images have no size/extension
// restriction beyond the shared closed set; animated emojis use GIF.
func (b Builder) Emoji(emojiID snowflake.ID, extension Extension, size int) (string, error) {
	if err := validate(extension, size); err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/emojis/%s.%s", b.base, emojiID, extension)
	return withSize(url, size), nil
}
