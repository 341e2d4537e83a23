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

package hardware

// ClockMode selects how fast the machine runs relative to real time.
type ClockMode int

// List of clock modes. The default is the speed of the real machine.
const (
	Clock1MHz ClockMode = iota
	Clock28MHz
	ClockFreeRun
)

func (m ClockMode) String() string {
	switch m {
	case Clock1MHz:
		return "1.02MHz"
	case Clock28MHz:
		return "2.8MHz"
	case ClockFreeRun:
		return "free run"
	}
	return "unknown clock mode"
}

// Hz returns the emulated clock rate. The free run mode has no pacing but
// still needs a nominal rate for the burst quota and for peripherals that
// convert cycle counts to seconds; it reports the standard rate.
func (m ClockMode) Hz() int {
	switch m {
	case Clock28MHz:
		return 2800000
	default:
		return 1020484
	}
}

// CycleDuration returns the length of one cycle in nanoseconds, or zero for
// the free run mode.
func (m ClockMode) CycleDuration() uint64 {
	switch m {
	case Clock1MHz:
		return 980
	case Clock28MHz:
		return 357
	}
	return 0
}
