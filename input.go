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
	"github.com/massung/chip8vm/chip8"
	"github.com/massung/chip8vm/internal/keymap"
	"github.com/veandco/go-sdl2/sdl"
)

/// Map the host key names of a layout to SDL scancodes. Names SDL doesn't
/// know are left unmapped.
///
func scancodes(layout keymap.Layout) map[sdl.Scancode]uint {
	keys := make(map[sdl.Scancode]uint, len(layout))

	for i, name := range layout {
		if code := sdl.GetScancodeFromName(name); code != sdl.SCANCODE_UNKNOWN {
			keys[code] = uint(i)
		}
	}

	return keys
}

/// ProcessEvents from SDL and map keys to the CHIP-8 VM. Returns false
/// once the window was closed or Escape pressed.
///
func (w *Window) ProcessEvents(vm *chip8.CHIP_8) bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			key, mapped := w.keys[ev.Keysym.Scancode]

			if ev.Type == sdl.KEYUP {
				if mapped {
					vm.ReleaseKey(key)
				}
				continue
			}

			// held keys stay pressed, ignore auto repeat
			if ev.Repeat != 0 {
				continue
			}

			switch {
			case mapped:
				vm.PressKey(key)
			case ev.Keysym.Scancode == sdl.SCANCODE_ESCAPE:
				return false
			case ev.Keysym.Scancode == sdl.SCANCODE_BACKSPACE:
				vm.Reset()
			}
		}
	}

	return true
}
