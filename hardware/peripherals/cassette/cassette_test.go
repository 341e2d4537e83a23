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

package cassette_test

import (
	"testing"

	"github.com/gopherapple/gopherapple/hardware/memory"
	"github.com/gopherapple/gopherapple/hardware/peripherals/cassette"
	"github.com/gopherapple/gopherapple/media"
	"github.com/gopherapple/gopherapple/test"
)

func TestCassette(t *testing.T) {
	var cycles uint64

	// clock of 1000Hz with a 100Hz tape: ten cycles per sample
	cs := cassette.NewCassette(func() uint64 { return cycles }, func() int { return 1000 })

	mem := memory.NewMemory()
	err := cs.Install(mem)
	test.ExpectSuccess(t, err)

	// a tape that alternates sign every sample
	cs.LoadPCM([]int16{100, -100, 100, -100}, 100)

	// not playing yet
	test.Equate(t, mem.Read(0xc060), 0x00)

	cycles = 500
	cs.Play()
	test.Equate(t, cs.IsPlaying(), true)

	// sample zero is positive
	test.Equate(t, mem.Read(0xc060), 0x80)
	cycles = 509
	test.Equate(t, mem.Read(0xc060), 0x80)

	// ten cycles on, sample one is negative
	cycles = 510
	test.Equate(t, mem.Read(0xc060), 0x00)

	cycles = 520
	test.Equate(t, mem.Read(0xc060), 0x80)

	// the tape runs out and stops
	cycles = 540
	test.Equate(t, mem.Read(0xc060), 0x00)
	test.Equate(t, cs.IsPlaying(), false)
}

func TestCassetteLoadRejection(t *testing.T) {
	cs := cassette.NewCassette(func() uint64 { return 0 }, func() int { return 1000 })

	// wrong media type
	err := cs.Load(&media.Descriptor{Type: media.DiskDOSOrder, Data: []byte{}})
	test.ExpectFailure(t, err)

	// garbage that is not an MP3 stream
	err = cs.Load(&media.Descriptor{Type: media.Cassette, Data: []byte("not audio")})
	test.ExpectFailure(t, err)
}
