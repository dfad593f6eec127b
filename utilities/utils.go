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

// Package utilities holds small generic helpers shared across the module.
package utilities

import (
	"fmt"
	"runtime"
)

//goland:noinspection GoUnusedExportedFunction
func FuncName() string {
	pc, _, line, _ := runtime.Caller(1)
	return fmt.Sprintf("(%s:L%d)", runtime.FuncForPC(pc).Name(), line)
}

//goland:noinspection GoUnusedExportedFunction
func ToPtr[T any](p T) *T {
	return &p
}
