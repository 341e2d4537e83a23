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

// Package paths contains functions to prepare paths to GopherApple
// resources: ROM images, disk images, recordings.
//
// The ResourcePath() function prepends the supplied resource string with
// the appropriate config directory. For example, the following returns the
// path to the machine ROM:
//
//	p := paths.ResourcePath("roms", "apple2.rom")
//
// The policy is simple: if the base resource path, currently ".gopherapple",
// is present in the program's current directory then that is the base path
// used. Otherwise the user's config directory is used, via
// os.UserConfigDir() from the standard library.
package paths

import (
	"os"
	"path"
)

// the base path for all resources. use through ResourcePath(), never
// directly.
const baseResourcePath = ".gopherapple"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with operating system specific details.
func ResourcePath(resource ...string) string {
	p := make([]string, 0, len(resource)+1)
	p = append(p, getBasePath())
	p = append(p, resource...)

	return path.Join(p...)
}

// getBasePath returns baseResourcePath as found in the current directory,
// or rooted in the user's config directory if it is not there.
//
// the existence of the resource requested by the caller is not checked.
func getBasePath() string {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return baseResourcePath
	}
	return path.Join(cnf, baseResourcePath[1:])
}
