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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/gopherapple/gopherapple/curated"
	"github.com/gopherapple/gopherapple/hardware"
)

// Check the performance of the emulator. The machine runs for the specified
// duration and the effective clock rate is written to output. A CPU or
// memory profile of the run is created as requested by the profile
// argument.
func Check(output io.Writer, profile Profile, ap *hardware.Apple2, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	deadline := time.Now().Add(dur)

	runner := func() error {
		return ap.Run(func() (bool, error) {
			return time.Now().Before(deadline), nil
		})
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	cycles := ap.CPU.Cycles
	rate := float64(cycles) / dur.Seconds()
	target := float64(ap.Clock.Hz())

	fmt.Fprintf(output, "%d cycles in %v: %.2f MHz (%.1f%% of %s)\n",
		cycles, dur, rate/1e6, rate/target*100, ap.Clock)

	return nil
}
