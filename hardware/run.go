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

import (
	"time"

	"github.com/gopherapple/gopherapple/logger"
)

// housekeeping tasks are gated to roughly sixty times a second when the
// machine is free running. nanoseconds.
const housekeepingGate = 16667000

// statistics are logged every five seconds. nanoseconds.
const statsInterval = 5000000000

// when pacing, waits longer than this are slept rather than spun.
// nanoseconds.
const spinThreshold = 2000000

// RunStats counts scheduling events since Run() was called. Slips are
// iterations that missed their pacing deadline before the wait began.
type RunStats struct {
	Slips  uint64
	Busy   uint64
	Sleeps uint64
}

// Stats returns the scheduling counters of the current or most recent
// Run().
func (ap *Apple2) Stats() RunStats {
	return ap.stats
}

// Run the machine in real time. Instructions execute in bursts of a sixtieth
// of a second of emulated time; between bursts the housekeeping tasks run,
// in order: the poll function (the user interface's event pump), the audio
// frame, the video frame. In the fixed rate clock modes the loop then waits
// out the remainder of the burst's real time allowance.
//
// Run returns when the CPU halts, after one final video frame so the last
// state is visible, or when the poll function returns false.
func (ap *Apple2) Run(poll func() (bool, error)) error {
	quota := uint64(ap.Clock.Hz() / 60)
	cycleDuration := ap.Clock.CycleDuration()
	freeRun := ap.Clock == ClockFreeRun

	ap.stats = RunStats{}

	start := ap.now()
	lastPoll := start
	lastAudio := start
	lastVideo := start
	lastStats := start
	statsCycles := ap.CPU.Cycles

	for {
		burstCycles := ap.CPU.Cycles
		burstTime := ap.now()

		for ap.CPU.Cycles-burstCycles < quota && !ap.CPU.IsHalted() {
			if err := ap.CPU.ExecuteInstruction(); err != nil {
				return err
			}
		}

		// housekeeping cadence is controlled by the wall clock, not the
		// burst boundary, so a free running machine is not swamped by it
		now := ap.now()
		if !freeRun || now-lastPoll > housekeepingGate {
			running, err := poll()
			if err != nil {
				return err
			}
			if !running {
				ap.Display.Frame()
				return nil
			}
			lastPoll = now
		}

		now = ap.now()
		if !freeRun || now-lastAudio > housekeepingGate {
			ap.Speaker.Frame()
			lastAudio = now
		}

		now = ap.now()
		if !freeRun || now-lastVideo > housekeepingGate {
			ap.Display.Frame()
			lastVideo = now
		}

		now = ap.now()
		if now-lastStats > statsInterval {
			delta := ap.CPU.Cycles - statsCycles
			logger.Logf("run", "%d cycles: %.2f MHz [slips: %d, busy: %d, sleep: %d]",
				delta, float64(delta)/float64(statsInterval/1000),
				ap.stats.Slips, ap.stats.Busy, ap.stats.Sleeps)
			statsCycles = ap.CPU.Cycles
			lastStats = now
		}

		if ap.CPU.IsHalted() {
			ap.Display.Frame()
			logger.Logf("run", "halted: %v", ap.CPU.Halt)
			return nil
		}

		if !freeRun {
			wakeup := burstTime + (ap.CPU.Cycles-burstCycles)*cycleDuration
			now = ap.now()
			if now > wakeup {
				ap.stats.Slips++
			} else {
				if wakeup-now > spinThreshold {
					ap.sleep(time.Duration(wakeup-now-spinThreshold) * time.Nanosecond)
					ap.stats.Sleeps++
				}
				for ap.now() < wakeup {
				}
				ap.stats.Busy++
			}
		}
	}
}
