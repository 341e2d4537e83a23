// This file is part of GopherApple.
//
// GopherApple is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherApple is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherApple.  If not, see <https://www.gnu.org/licenses/>.

// Package version records the version number of the project.
package version

// The name to use when referring to the application.
const ApplicationName = "GopherApple"

// set with the -ldflags "-X" mechanism by the makefile. empty for a build
// straight from the source tree.
var number string

// Version returns the version string and whether this is a numbered release
// version.
func Version() (string, bool) {
	if number == "" {
		return "unreleased", false
	}
	return number, true
}
