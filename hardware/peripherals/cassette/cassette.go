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

// Package cassette emulates the cassette input port. The tape signal is
// taken from an audio file: once playing, a read of $c060 reports in its
// high bit whether the waveform is above or below the zero line at the
// moment of the read, the moment being derived from the machine's cycle
// count. The zero crossing timing is exactly what the ROM's cassette read
// routine measures.
package cassette

import (
	"bytes"
	"fmt"

	"github.com/gopherapple/gopherapple/curated"
	"github.com/gopherapple/gopherapple/hardware/memory"
	"github.com/gopherapple/gopherapple/hardware/memory/addresses"
	"github.com/gopherapple/gopherapple/logger"
	"github.com/gopherapple/gopherapple/media"

	"github.com/hajimehoshi/go-mp3"
)

// Cassette is the cassette input port.
type Cassette struct {
	cycles  func() uint64
	clockHz func() int

	samples    []int16
	sampleRate int

	playing    bool
	startCycle uint64
}

// NewCassette is the preferred method of initialisation for the Cassette
// type. The cycles function reports the machine's running cycle count and
// clockHz the rate it advances at, consulted on every read so a change of
// clock mode reaches the tape timing.
func NewCassette(cycles func() uint64, clockHz func() int) *Cassette {
	return &Cassette{
		cycles:  cycles,
		clockHz: clockHz,
	}
}

// Install the cassette input soft switch.
func (cs *Cassette) Install(mem *memory.Memory) error {
	if err := mem.IO.Register(addresses.CassetteInput, addresses.CassetteInput, cs); err != nil {
		return curated.Errorf("cassette: %v", err)
	}
	return nil
}

// Load a tape from an audio file. MP3 decoding is done up front; tapes
// are short and the emulation must not stall mid read.
func (cs *Cassette) Load(desc *media.Descriptor) error {
	if desc.Type != media.Cassette {
		return curated.Errorf("cassette: cannot load %s", desc)
	}

	dec, err := mp3.NewDecoder(bytes.NewReader(desc.Data))
	if err != nil {
		return curated.Errorf("cassette: %v", err)
	}

	// the decoder produces 16 bit little endian stereo. fold to mono
	var samples []int16
	buf := make([]byte, 4096)
	for {
		n, err := dec.Read(buf)
		for i := 0; i+3 < n; i += 4 {
			l := int16(uint16(buf[i]) | uint16(buf[i+1])<<8)
			r := int16(uint16(buf[i+2]) | uint16(buf[i+3])<<8)
			samples = append(samples, int16((int32(l)+int32(r))/2))
		}
		if err != nil {
			break
		}
	}

	cs.LoadPCM(samples, dec.SampleRate())

	logger.Log("cassette", fmt.Sprintf("loaded %s: %d samples at %dHz", desc, len(samples), dec.SampleRate()))

	return nil
}

// LoadPCM loads a tape directly from PCM samples.
func (cs *Cassette) LoadPCM(samples []int16, sampleRate int) {
	cs.samples = samples
	cs.sampleRate = sampleRate
	cs.playing = false
}

// Play starts the tape from the beginning.
func (cs *Cassette) Play() {
	cs.playing = true
	cs.startCycle = cs.cycles()
}

// Stop the tape.
func (cs *Cassette) Stop() {
	cs.playing = false
}

// IsPlaying returns true while the tape is rolling.
func (cs *Cassette) IsPlaying() bool {
	return cs.playing
}

// Read the cassette input. The high bit is the sign of the waveform.
func (cs *Cassette) Read(address uint16) uint8 {
	if !cs.playing {
		return 0x00
	}

	idx := (cs.cycles() - cs.startCycle) * uint64(cs.sampleRate) / uint64(cs.clockHz())
	if idx >= uint64(len(cs.samples)) {
		cs.playing = false
		return 0x00
	}

	if cs.samples[idx] >= 0 {
		return 0x80
	}
	return 0x00
}

// Write the cassette input. The port is read only; the data disappears.
func (cs *Cassette) Write(address uint16, data uint8) {
}
