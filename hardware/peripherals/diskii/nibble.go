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
	"github.com/gopherapple/gopherapple/curated"
)

// Physical geometry of a 5.25 inch disk side.
const (
	NumTracks       = 35
	SectorsPerTrack = 16
	SectorSize      = 256

	// every encoded track is the same length. 16 sectors of 416 nibbles
	TrackLength = 0x1a00
)

// layout of one 416 nibble sector cell within a track.
const (
	gap1Length = 43
	gap2Length = 10
)

// Interleave maps the physical sector order on the track to the logical
// sector order of the image file.
type Interleave [SectorsPerTrack]int

// The two sector orders found in image files. DOS order is used by .do and
// .dsk images, ProDOS order by .po images.
var (
	InterleaveDOS    = Interleave{0, 7, 14, 6, 13, 5, 12, 4, 11, 3, 10, 2, 9, 1, 8, 15}
	InterleaveProDOS = Interleave{0, 8, 1, 9, 2, 10, 3, 11, 4, 12, 5, 13, 6, 14, 7, 15}
)

// the write translate table. the 64 disk bytes that encode six bits each.
// every one has the high bit set and never more than one pair of adjacent
// zero bits.
var writeTranslate = [64]uint8{
	0x96, 0x97, 0x9a, 0x9b, 0x9d, 0x9e, 0x9f, 0xa6,
	0xa7, 0xab, 0xac, 0xad, 0xae, 0xaf, 0xb2, 0xb3,
	0xb4, 0xb5, 0xb6, 0xb7, 0xb9, 0xba, 0xbb, 0xbc,
	0xbd, 0xbe, 0xbf, 0xcb, 0xcd, 0xce, 0xcf, 0xd3,
	0xd6, 0xd7, 0xd9, 0xda, 0xdb, 0xdc, 0xdd, 0xde,
	0xdf, 0xe5, 0xe6, 0xe7, 0xe9, 0xea, 0xeb, 0xec,
	0xed, 0xee, 0xef, 0xf2, 0xf3, 0xf4, 0xf5, 0xf6,
	0xf7, 0xf9, 0xfa, 0xfb, 0xfc, 0xfd, 0xfe, 0xff,
}

// oddEven encodes a byte as two bytes with the data bits interleaved with
// ones. used for the address field values.
func oddEven(v uint8) (uint8, uint8) {
	return (v >> 1) | 0xaa, v | 0xaa
}

// reverse the bottom two bits of a byte.
func reverse2(v uint8) uint8 {
	return ((v & 0x01) << 1) | ((v & 0x02) >> 1)
}

// encodeSector translates 256 bytes of user data into the 343 byte six and
// two encoded form: 86 bytes holding the low two bits of each data byte,
// 256 bytes holding the high six bits, and a trailing checksum. the stream
// is XOR chained so the reader can verify it with a running XOR.
func encodeSector(data []uint8) []uint8 {
	var nib [342]uint8

	for i := 0; i < 86; i++ {
		v := reverse2(data[i])
		v |= reverse2(data[i+86]) << 2
		if i+172 < SectorSize {
			v |= reverse2(data[i+172]) << 4
		}
		nib[i] = v
	}
	for i := 0; i < SectorSize; i++ {
		nib[86+i] = data[i] >> 2
	}

	out := make([]uint8, 343)
	var last uint8
	for i := 0; i < 342; i++ {
		out[i] = writeTranslate[(nib[i]^last)&0x3f]
		last = nib[i]
	}
	out[342] = writeTranslate[last&0x3f]

	return out
}

// encodeTrack lays out one full track: sixteen sector cells of sync gap,
// address field, sync gap and data field.
func encodeTrack(data []uint8, track int, volume uint8, interleave Interleave) []uint8 {
	out := make([]uint8, 0, TrackLength)

	for phys := 0; phys < SectorsPerTrack; phys++ {
		logical := interleave[phys]
		sector := data[logical*SectorSize : (logical+1)*SectorSize]

		for i := 0; i < gap1Length; i++ {
			out = append(out, 0xff)
		}

		// address field
		out = append(out, 0xd5, 0xaa, 0x96)
		xx, yy := oddEven(volume)
		out = append(out, xx, yy)
		xx, yy = oddEven(uint8(track))
		out = append(out, xx, yy)
		xx, yy = oddEven(uint8(phys))
		out = append(out, xx, yy)
		xx, yy = oddEven(volume ^ uint8(track) ^ uint8(phys))
		out = append(out, xx, yy)
		out = append(out, 0xde, 0xaa, 0xeb)

		for i := 0; i < gap2Length; i++ {
			out = append(out, 0xff)
		}

		// data field
		out = append(out, 0xd5, 0xaa, 0xad)
		out = append(out, encodeSector(sector)...)
		out = append(out, 0xde, 0xaa, 0xeb)
	}

	return out
}

// encodeDisk translates a sector ordered image into nibble tracks.
func encodeDisk(data []uint8, volume uint8, interleave Interleave) ([][]uint8, error) {
	if len(data) != NumTracks*SectorsPerTrack*SectorSize {
		return nil, curated.Errorf("diskii: wrong image size for encoding (%d bytes)", len(data))
	}

	tracks := make([][]uint8, NumTracks)
	for t := 0; t < NumTracks; t++ {
		tracks[t] = encodeTrack(data[t*SectorsPerTrack*SectorSize:(t+1)*SectorsPerTrack*SectorSize], t, volume, interleave)
	}

	return tracks, nil
}

// splitNibbleImage cuts an already encoded image into tracks.
func splitNibbleImage(data []uint8) ([][]uint8, error) {
	if len(data) != NumTracks*TrackLength {
		return nil, curated.Errorf("diskii: wrong image size for a nibble disk (%d bytes)", len(data))
	}

	tracks := make([][]uint8, NumTracks)
	for t := 0; t < NumTracks; t++ {
		tracks[t] = data[t*TrackLength : (t+1)*TrackLength]
	}

	return tracks, nil
}
