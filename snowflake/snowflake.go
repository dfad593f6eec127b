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

// Package snowflake implements Discord's Twitter-snowflake-derived ID format.
//
// A Snowflake is the major-parameter currency the dispatcher keys buckets
// on: guild, channel and webhook IDs are all Snowflakes.
package snowflake

import (
	"strconv"
	"time"
)

var discordEpoch int64 = 1420070400000

// ID - a Discord Snowflake. Always transmitted as a string over the wire
// to avoid integer overflow in languages without 64-bit integers.
type ID string

// Parts - a breakdown of the data encoded in a Snowflake.
type Parts struct {
	Timestamp         int64
	InternalWorkerID  int64
	InternalProcessID int64
	Increment         int64
}

// String - converts a Snowflake into its string form.
func (s ID) String() string {
	return string(s)
}

// IsEmpty - true when the Snowflake carries no ID.
func (s ID) IsEmpty() bool {
	return s == ""
}

func (s ID) toBinary() string {
	var b []byte

	for _, c := range s {
		b = strconv.AppendInt(b, int64(c), 2)
	}

	return string(b)
}

// Parse - breaks down a Snowflake into its constituent parts.
func (s ID) Parse() Parts {
	bin := s.toBinary()

	tStamp, _ := strconv.ParseInt(safeSlice(bin, 0, 42), 2, 64)
	worker, _ := strconv.ParseInt(safeSlice(bin, 42, 47), 2, 64)
	process, _ := strconv.ParseInt(safeSlice(bin, 47, 52), 2, 64)
	incr, _ := strconv.ParseInt(safeSlice(bin, 52, 64), 2, 64)

	return Parts{
		Timestamp:         tStamp + discordEpoch,
		InternalWorkerID:  worker,
		InternalProcessID: process,
		Increment:         incr,
	}
}

// safeSlice clamps a binary-string slice so short IDs (as used in tests
// and fixtures) don't panic on out-of-range bounds.
func safeSlice(s string, lo, hi int) string {
	if lo > len(s) {
		lo = len(s)
	}
	if hi > len(s) {
		hi = len(s)
	}
	if lo > hi {
		lo = hi
	}
	return s[lo:hi]
}

// Timestamp - extracts the creation time encoded in a Snowflake.
func (s ID) Timestamp() time.Time {
	return time.UnixMilli(s.Parse().Timestamp)
}
