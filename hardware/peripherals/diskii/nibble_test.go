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

import (
	"testing"

	"github.com/gopherapple/gopherapple/test"
)

// decodeSector undoes the six and two encoding, the way the RWTS does it:
// reverse translate, undo the XOR chain, reassemble the low bit fragments.
func decodeSector(t *testing.T, enc []uint8) []uint8 {
	t.Helper()

	var untranslate [256]int
	for i := range untranslate {
		untranslate[i] = -1
	}
	for i, v := range writeTranslate {
		untranslate[v] = i
	}

	var nib [342]uint8
	var last uint8
	for i := 0; i < 342; i++ {
		v := untranslate[enc[i]]
		if v < 0 {
			t.Fatalf("byte %02x at offset %d is not a disk byte", enc[i], i)
		}
		nib[i] = uint8(v) ^ last
		last = nib[i]
	}

	// the checksum byte returns the chain to zero
	if untranslate[enc[342]] < 0 || uint8(untranslate[enc[342]])^last != 0 {
		t.Fatalf("checksum mismatch")
	}

	data := make([]uint8, SectorSize)
	for i := 0; i < SectorSize; i++ {
		data[i] = nib[86+i] << 2
	}
	for i := 0; i < 86; i++ {
		data[i] |= reverse2(nib[i])
		data[i+86] |= reverse2(nib[i] >> 2)
		if i+172 < SectorSize {
			data[i+172] |= reverse2(nib[i] >> 4)
		}
	}

	return data
}

func TestOddEven(t *testing.T) {
	xx, yy := oddEven(0xfe)
	test.Equate(t, xx, 0xff)
	test.Equate(t, yy, 0xfe)

	xx, yy = oddEven(0x00)
	test.Equate(t, xx, 0xaa)
	test.Equate(t, yy, 0xaa)

	// the decode rule is ((XX << 1) | 1) & YY
	v := uint8(0x35)
	xx, yy = oddEven(v)
	test.Equate(t, ((xx<<1)|1)&yy, v)
}

func TestEncodeSectorRoundTrip(t *testing.T) {
	data := make([]uint8, SectorSize)
	for i := range data {
		data[i] = uint8(i * 7)
	}

	enc := encodeSector(data)
	test.Equate(t, len(enc), 343)

	// every encoded byte has the high bit set
	for i, v := range enc {
		if v&0x80 == 0 {
			t.Fatalf("encoded byte %d has clear high bit (%02x)", i, v)
		}
	}

	dec := decodeSector(t, enc)
	for i := range data {
		if dec[i] != data[i] {
			t.Fatalf("byte %d decoded to %02x, expected %02x", i, dec[i], data[i])
		}
	}
}

func TestEncodeTrackLayout(t *testing.T) {
	// a disk where every sector is filled with its own logical number
	data := make([]uint8, SectorsPerTrack*SectorSize)
	for s := 0; s < SectorsPerTrack; s++ {
		for i := 0; i < SectorSize; i++ {
			data[s*SectorSize+i] = uint8(s)
		}
	}

	trk := encodeTrack(data, 17, defaultVolume, InterleaveDOS)
	test.Equate(t, len(trk), TrackLength)

	for phys := 0; phys < SectorsPerTrack; phys++ {
		cell := trk[phys*(TrackLength/SectorsPerTrack):]

		// sync gap then address field prologue
		test.Equate(t, cell[0], 0xff)
		test.Equate(t, cell[gap1Length], 0xd5)
		test.Equate(t, cell[gap1Length+1], 0xaa)
		test.Equate(t, cell[gap1Length+2], 0x96)

		// volume, track, physical sector and their checksum
		decode := func(off int) uint8 {
			return ((cell[off] << 1) | 1) & cell[off+1]
		}
		test.Equate(t, decode(gap1Length+3), defaultVolume)
		test.Equate(t, decode(gap1Length+5), 17)
		test.Equate(t, decode(gap1Length+7), uint8(phys))
		test.Equate(t, decode(gap1Length+9), defaultVolume^17^uint8(phys))

		// address epilogue
		test.Equate(t, cell[gap1Length+11], 0xde)
		test.Equate(t, cell[gap1Length+12], 0xaa)
		test.Equate(t, cell[gap1Length+13], 0xeb)

		// data field prologue after the second gap
		dataOff := gap1Length + 14 + gap2Length
		test.Equate(t, cell[dataOff], 0xd5)
		test.Equate(t, cell[dataOff+1], 0xaa)
		test.Equate(t, cell[dataOff+2], 0xad)

		// the cell holds the interleaved logical sector
		dec := decodeSector(t, cell[dataOff+3:])
		test.Equate(t, dec[0], uint8(InterleaveDOS[phys]))

		// data epilogue
		test.Equate(t, cell[dataOff+3+343], 0xde)
		test.Equate(t, cell[dataOff+4+343], 0xaa)
		test.Equate(t, cell[dataOff+5+343], 0xeb)
	}
}

func TestEncodeDisk(t *testing.T) {
	data := make([]uint8, NumTracks*SectorsPerTrack*SectorSize)
	tracks, err := encodeDisk(data, defaultVolume, InterleaveProDOS)
	test.ExpectSuccess(t, err)
	test.Equate(t, len(tracks), NumTracks)
	for _, trk := range tracks {
		test.Equate(t, len(trk), TrackLength)
	}

	_, err = encodeDisk(make([]uint8, 1000), defaultVolume, InterleaveProDOS)
	test.ExpectFailure(t, err)
}

func TestSplitNibbleImage(t *testing.T) {
	data := make([]uint8, NumTracks*TrackLength)
	data[TrackLength] = 0x42 // first byte of track 1

	tracks, err := splitNibbleImage(data)
	test.ExpectSuccess(t, err)
	test.Equate(t, len(tracks), NumTracks)
	test.Equate(t, tracks[1][0], 0x42)

	_, err = splitNibbleImage(make([]uint8, 1000))
	test.ExpectFailure(t, err)
}
