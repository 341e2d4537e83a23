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

package sdlplay

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/gopherapple/gopherapple/hardware"
)

// if this much audio is already queued the device has fallen behind the
// machine. drop the queue rather than let the lag grow
const maxQueuedBytes = hardware.AudioSampleRate / 2

// sound queues the speaker's rendered PCM on the SDL audio device. It
// implements the speaker.Sink interface.
type sound struct {
	id sdl.AudioDeviceID
}

func newSound() (*sound, error) {
	snd := &sound{}

	spec := &sdl.AudioSpec{
		Freq:     int32(hardware.AudioSampleRate),
		Format:   sdl.AUDIO_S16SYS,
		Channels: 1,
		Samples:  512,
	}

	var actualSpec sdl.AudioSpec

	var err error
	snd.id, err = sdl.OpenAudioDevice("", false, spec, &actualSpec, 0)
	if err != nil {
		return nil, err
	}

	sdl.PauseAudioDevice(snd.id, false)

	return snd, nil
}

// Queue implements the speaker.Sink interface.
func (snd *sound) Queue(samples []int16) {
	if len(samples) == 0 {
		return
	}

	if sdl.GetQueuedAudioSize(snd.id) > maxQueuedBytes {
		sdl.ClearQueuedAudio(snd.id)
	}

	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		buf[i*2] = byte(s)
		buf[i*2+1] = byte(s >> 8)
	}

	_ = sdl.QueueAudio(snd.id, buf)
}

func (snd *sound) end() {
	sdl.CloseAudioDevice(snd.id)
}
