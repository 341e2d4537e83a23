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

// Package diskii emulates the Disk II floppy controller and its two
// drives. The controller occupies a peripheral slot: its sixteen device
// registers appear in the soft switch page and its 256 byte boot firmware
// appears in the slot's firmware window.
//
// The sixteen registers drive a small state machine. Eight of them pulse
// the stepper motor phases that move the head, two switch the spindle
// motor, two select a drive and the last four set the Q6/Q7 latches that
// put the controller in read, write or write protect sense mode.
//
// Sector ordered disk images are translated at mount time into the GCR
// nibble stream the controller ROM expects to shift off the disk surface.
// The drive then simply plays the stream back in a circle. A consequence
// is that the virtual disk spins at whatever speed the CPU runs at, which
// suits the boot ROM's software data separator just fine.
package diskii
