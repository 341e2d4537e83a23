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

package diskii

// head movement is in half track steps. two stepper phases per track, 35
// tracks.
const maxHalfTrack = (NumTracks - 1) * 2

// how long the spindle keeps turning after the motor is switched off. one
// second of drive time, expressed in CPU cycles.
const motorOffDelay = 750000

// drive is one of the two mechanisms attached to the controller.
type drive struct {
	// head position in half tracks. the nibble track under the head is
	// halfTrack/2
	halfTrack   int
	phases      [4]bool
	lastPhaseOn int

	motor bool

	// a pending deferred motor off. zero means nothing pending
	motorOffAt uint64

	q6 bool
	q7 bool

	writeProtect bool

	// tracks is nil when no disk is in the drive
	tracks [][]uint8

	// read head state. the shift register holds the nibble under the head
	// and bitPosition counts how much of it has been shifted out
	headPosition  int
	bitPosition   int
	shiftRegister uint8
}

func newDrive() *drive {
	return &drive{
		writeProtect: true,
	}
}

// phaseOn energises a stepper phase. the direction of head movement comes
// from which phase was energised before this one.
func (dr *drive) phaseOn(phase int) {
	if dr.lastPhaseOn == (phase+1)%4 {
		dr.halfTrack--
	} else if dr.lastPhaseOn == (phase+3)%4 {
		dr.halfTrack++
	}

	// the head hits the stop at track zero with the famous chugga-chugga.
	// the inner stop is quieter but just as solid
	if dr.halfTrack < 0 {
		dr.halfTrack = 0
	} else if dr.halfTrack > maxHalfTrack {
		dr.halfTrack = maxHalfTrack
	}

	dr.phases[phase] = true
	dr.lastPhaseOn = phase
}

func (dr *drive) phaseOff(phase int) {
	dr.phases[phase] = false
}

// readNibble shifts the next bit of the track out of the read register and
// returns the register's visible state. a full nibble becomes visible on
// the eighth read, when its high bit reaches the top of the register.
func (dr *drive) readNibble() uint8 {
	// with the motor off the disk is not turning. the register holds
	if !dr.motor {
		return dr.shiftRegister
	}

	if dr.bitPosition == 0 {
		if dr.tracks != nil {
			dr.shiftRegister = dr.tracks[dr.halfTrack/2][dr.headPosition]
		}
		dr.headPosition = (dr.headPosition + 1) % TrackLength
	}

	dr.bitPosition++
	v := dr.shiftRegister >> (8 - dr.bitPosition)
	if dr.bitPosition == 8 {
		dr.bitPosition = 0
	}

	return v
}
