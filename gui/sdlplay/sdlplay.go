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

// Package sdlplay is an SDL implementation of the gui.GUI interface. It
// shows the graphics page in a window, feeds keystrokes to the keyboard
// latch and queues the speaker's output on the sound device.
//
// SDL is not thread safe so the machine loop must run on the main thread,
// which also means RenderFrame() is only ever called from there.
package sdlplay

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/gopherapple/gopherapple/curated"
	"github.com/gopherapple/gopherapple/hardware"
	"github.com/gopherapple/gopherapple/hardware/display"
)

// pixelDepth is the number of bytes per pixel in the texture.
const pixelDepth = 4

// hires pixels are squat. double the width to approximate the real aspect
// ratio.
const pixelWidth = 2.0

// SdlPlay is an SDL implementation of the gui.GUI interface.
type SdlPlay struct {
	ap *hardware.Apple2

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	snd *sound

	// pixels is the byte array copied to the texture when a graphics frame
	// arrives
	pixels []byte
}

// NewSdlPlay is the preferred method of initialisation for the SdlPlay
// type. The window is sized to the hires screen multiplied by scale and the
// surface is attached to the machine's display and speaker.
func NewSdlPlay(ap *hardware.Apple2, scale float32) (*SdlPlay, error) {
	scr := &SdlPlay{
		ap:     ap,
		pixels: make([]byte, display.PixelWidth*display.PixelHeight*pixelDepth),
	}

	var err error

	err = sdl.Init(sdl.INIT_EVERYTHING)
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	w := int32(float32(display.PixelWidth) * scale * pixelWidth)
	h := int32(float32(display.PixelHeight) * scale * pixelWidth)

	scr.window, err = sdl.CreateWindow("GopherApple",
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		w, h,
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING),
		display.PixelWidth, display.PixelHeight)
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	// preset alpha channel - we never change the value of this channel
	for i := pixelDepth - 1; i < len(scr.pixels); i += pixelDepth {
		scr.pixels[i] = 255
	}

	scr.snd, err = newSound()
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}
	ap.Speaker.Attach(scr.snd)

	ap.Display.Attach(scr)

	setupService()

	return scr, nil
}

// RenderFrame implements the display.Renderer interface. Text frames show
// as a blank screen; the window renders the graphics page and the terminal
// surface is the one that draws text.
func (scr *SdlPlay) RenderFrame(frame *display.Frame) {
	if frame.Graphics && frame.Pixels != nil {
		for i, v := range frame.Pixels {
			lum := byte(0)
			if v != 0 {
				lum = 255
			}
			scr.pixels[i*pixelDepth] = lum
			scr.pixels[i*pixelDepth+1] = lum
			scr.pixels[i*pixelDepth+2] = lum
		}
	} else {
		for i := 0; i < len(scr.pixels); i += pixelDepth {
			scr.pixels[i] = 0
			scr.pixels[i+1] = 0
			scr.pixels[i+2] = 0
		}
	}

	_ = scr.texture.Update(nil, scr.pixels, display.PixelWidth*pixelDepth)
	_ = scr.renderer.Copy(scr.texture, nil, nil)
	scr.renderer.Present()
}

// End implements the gui.GUI interface.
func (scr *SdlPlay) End() error {
	scr.snd.end()
	scr.texture.Destroy()
	scr.renderer.Destroy()
	scr.window.Destroy()
	sdl.Quit()
	return nil
}
