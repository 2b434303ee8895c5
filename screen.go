/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package main

import (
	"fmt"

	"github.com/massung/chip8vm/chip8"
	"github.com/massung/chip8vm/internal/keymap"
	"github.com/veandco/go-sdl2/sdl"
)

/// Each CHIP-8 pixel is drawn as a 10x10 block.
///
const scale = 10

/// Bytes per texture pixel (ARGB8888).
///
const bytesPerPixel = 4

/// Window is the SDL frontend: a window showing the video memory, the
/// keyboard mapped to the CHIP-8 keys and a beeper.
///
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer

	/// Streaming texture the video memory is copied into.
	///
	screen *sdl.Texture
	pixels []byte

	keys  map[sdl.Scancode]uint
	audio *Beeper
}

/// NewWindow initializes SDL and opens the 640x320 emulator window.
///
func NewWindow(title string, layout keymap.Layout) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("initializing SDL: %w", err)
	}

	w := &Window{
		pixels: make([]byte, chip8.DisplaySize*bytesPerPixel),
		keys:   scancodes(layout),
	}

	var err error

	// create the main window and renderer
	w.window, err = sdl.CreateWindow("CHIP-8 - "+title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		chip8.Width*scale, chip8.Height*scale, sdl.WINDOW_SHOWN)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	if w.renderer, err = sdl.CreateRenderer(w.window, -1, sdl.RENDERER_ACCELERATED); err != nil {
		w.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	// create a render target for the display
	w.screen, err = w.renderer.CreateTexture(sdl.PIXELFORMAT_ARGB8888, sdl.TEXTUREACCESS_STREAMING,
		chip8.Width, chip8.Height)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("creating screen texture: %w", err)
	}

	return w, nil
}

/// OpenAudio opens the beeper. Without it the window stays silent.
///
func (w *Window) OpenAudio() error {
	audio, err := NewBeeper()
	if err != nil {
		return err
	}

	w.audio = audio
	return nil
}

/// Close releases all SDL resources.
///
func (w *Window) Close() {
	if w.audio != nil {
		w.audio.Close()
	}
	if w.screen != nil {
		_ = w.screen.Destroy()
	}
	if w.renderer != nil {
		_ = w.renderer.Destroy()
	}
	if w.window != nil {
		_ = w.window.Destroy()
	}

	sdl.Quit()
}

/// Refresh the window with the CHIP-8 video memory.
///
func (w *Window) Refresh(vm *chip8.CHIP_8) error {
	fillPixels(w.pixels, vm)

	if err := w.screen.Update(nil, w.pixels, chip8.Width*bytesPerPixel); err != nil {
		return fmt.Errorf("updating screen texture: %w", err)
	}

	if err := w.renderer.Clear(); err != nil {
		return fmt.Errorf("clearing renderer: %w", err)
	}

	// stretch the texture over the whole window
	if err := w.renderer.Copy(w.screen, nil, nil); err != nil {
		return fmt.Errorf("copying screen texture: %w", err)
	}

	w.renderer.Present()
	return nil
}

/// Beep turns the buzzer on or off.
///
func (w *Window) Beep(on bool) {
	if w.audio != nil {
		w.audio.Beep(on)
	}
}

/// Convert the video memory into ARGB8888 texture bytes, lit pixels are
/// white and the rest black.
///
func fillPixels(pixels []byte, vm *chip8.CHIP_8) {
	for i := 0; i < chip8.DisplaySize; i++ {
		var c byte
		if vm.Pixel(i) != 0 {
			c = 0xFF
		}

		// little endian: blue, green, red, alpha
		p := pixels[i*bytesPerPixel : (i+1)*bytesPerPixel]
		p[0], p[1], p[2], p[3] = c, c, c, 0xFF
	}
}
