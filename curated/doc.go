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

// Package curated is the error mechanism used throughout the emulator. A
// curated error remembers the pattern it was created with, meaning the
// pattern can be used later as a sentinel:
//
//	err := curated.Errorf(media.UnknownFormat, filename)
//
//	...
//
//	if curated.Is(err, media.UnknownFormat) {
//	}
//
// The Has() function digs through a chain of wrapped curated errors looking
// for the pattern anywhere in the chain.
//
// Error messages are normalised on the Error() call such that immediately
// repeated message parts are elided. This keeps messages readable when a
// pattern is wrapped by a function in the same package.
package curated
