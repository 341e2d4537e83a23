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

// Package speaker emulates the one bit speaker. Software clicks the
// speaker by touching $c030; each touch flips the cone between its two
// positions. The emulation records the cycle time of every flip and
// renders the square wave into PCM once per video frame, fanning the
// samples out to whatever sinks are attached (the sound card, a WAV
// recorder).
package speaker

import (
	"github.com/gopherapple/gopherapple/curated"
	"github.com/gopherapple/gopherapple/hardware/memory"
	"github.com/gopherapple/gopherapple/hardware/memory/addresses"
)

// amplitude of the rendered square wave. the real cone is loud
const amplitude = 0x2000

// Sink consumes rendered PCM samples.
type Sink interface {
	Queue(samples []int16)
}

// Speaker is the one bit speaker.
type Speaker struct {
	cycles     func() uint64
	clockHz    func() int
	sampleRate int

	// cycle times of cone flips since the last frame
	events []uint64

	// cycle time the last rendered frame ended at
	rendered uint64

	high bool

	sinks []Sink
}

// NewSpeaker is the preferred method of initialisation for the Speaker
// type. The cycles function reports the machine's running cycle count;
// clockHz reports the rate that count advances at, consulted at render
// time so a change of clock mode reaches the audio; sampleRate is the PCM
// rate to render.
func NewSpeaker(cycles func() uint64, clockHz func() int, sampleRate int) *Speaker {
	return &Speaker{
		cycles:     cycles,
		clockHz:    clockHz,
		sampleRate: sampleRate,
		events:     make([]uint64, 0, 1024),
	}
}

// Install the speaker soft switch. The toggle is mirrored across sixteen
// addresses.
func (sp *Speaker) Install(mem *memory.Memory) error {
	if err := mem.IO.Register(addresses.SpeakerToggle, addresses.SpeakerToggle+0x0f, sp); err != nil {
		return curated.Errorf("speaker: %v", err)
	}
	return nil
}

// Attach a sink to receive rendered PCM.
func (sp *Speaker) Attach(sink Sink) {
	sp.sinks = append(sp.sinks, sink)
}

// SampleRate of the rendered PCM.
func (sp *Speaker) SampleRate() int {
	return sp.sampleRate
}

func (sp *Speaker) toggle() {
	sp.events = append(sp.events, sp.cycles())
}

// Read the speaker soft switch. Reading clicks the speaker.
func (sp *Speaker) Read(address uint16) uint8 {
	sp.toggle()
	return memory.FloatingBus
}

// Write the speaker soft switch. Writing clicks it too.
func (sp *Speaker) Write(address uint16, data uint8) {
	sp.toggle()
}

// Frame renders the square wave accumulated since the last call and hands
// it to the attached sinks. Called once per video frame by the machine
// loop.
func (sp *Speaker) Frame() {
	now := sp.cycles()
	if now <= sp.rendered {
		return
	}

	cyclesPerSample := float64(sp.clockHz()) / float64(sp.sampleRate)
	n := int(float64(now-sp.rendered) / cyclesPerSample)

	// when the machine is running far faster than real time there is no
	// point rendering it all. drop the backlog and resynchronise
	if n > sp.sampleRate {
		sp.rendered = now
		sp.events = sp.events[:0]
		return
	}

	samples := make([]int16, n)
	ev := 0
	for i := range samples {
		limit := sp.rendered + uint64(float64(i+1)*cyclesPerSample)
		for ev < len(sp.events) && sp.events[ev] <= limit {
			sp.high = !sp.high
			ev++
		}
		if sp.high {
			samples[i] = amplitude
		} else {
			samples[i] = -amplitude
		}
	}

	// flips after the last whole sample belong to the next frame
	sp.events = append(sp.events[:0], sp.events[ev:]...)
	sp.rendered += uint64(float64(n) * cyclesPerSample)

	for _, sink := range sp.sinks {
		sink.Queue(samples)
	}
}
