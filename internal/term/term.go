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

// Package term renders a CHIP-8 machine to a text terminal using tcell.
// Two pixels share one character cell, the registers are shown to the
// right of the display and the output history below it.
package term

import (
	"fmt"

	"github.com/gdamore/tcell"
	"github.com/massung/chip8vm/chip8"
	"github.com/massung/chip8vm/internal/keymap"
)

// holdTicks is how many ticks a key stays pressed after a key event.
// Terminals don't report key releases.
const holdTicks = 8

const (
	displayRows = chip8.Height / 2
	panelX      = chip8.Width + 2
	statusY     = displayRows
	historyY    = displayRows + 1
)

var (
	pixelStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	panelStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	statusStyle = tcell.StyleDefault.Reverse(true)
	textStyle   = tcell.StyleDefault
)

// Frontend is a terminal frontend for the runner.
type Frontend struct {
	screen  tcell.Screen
	keys    keymap.Layout
	history *History

	// ticks left until each CHIP-8 key is released
	held [chip8.NumKeys]int

	events chan tcell.Event
	done   chan struct{}

	beeping bool
}

// New initializes the screen and starts reading its events. Close must be
// called to restore the terminal.
func New(screen tcell.Screen, keys keymap.Layout) (*Frontend, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}

	screen.HideCursor()
	screen.Clear()

	f := &Frontend{
		screen:  screen,
		keys:    keys,
		history: NewHistory(),
		events:  make(chan tcell.Event, 64),
		done:    make(chan struct{}),
	}

	go f.pollEvents()

	return f, nil
}

// pollEvents forwards screen events until the screen is finalized.
func (f *Frontend) pollEvents() {
	for {
		ev := f.screen.PollEvent()
		if ev == nil {
			return
		}

		select {
		case f.events <- ev:
		case <-f.done:
			return
		}
	}
}

// Close restores the terminal.
func (f *Frontend) Close() {
	close(f.done)
	f.screen.Fini()
}

// History returns the output pane. It is an io.Writer for logs and traces.
func (f *Frontend) History() *History {
	return f.history
}

// ProcessEvents releases keys whose hold time ran out, then applies all
// pending key events. Escape and Ctrl-C quit.
func (f *Frontend) ProcessEvents(vm *chip8.CHIP_8) bool {
	for k := range f.held {
		if f.held[k] == 0 {
			continue
		}

		f.held[k]--
		if f.held[k] == 0 {
			vm.ReleaseKey(uint(k))
		}
	}

	for {
		select {
		case ev := <-f.events:
			if !f.handleEvent(vm, ev) {
				return false
			}
		default:
			return true
		}
	}
}

func (f *Frontend) handleEvent(vm *chip8.CHIP_8, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			if key, ok := f.keys.Lookup(string(ev.Rune())); ok {
				vm.PressKey(key)
				f.held[key] = holdTicks
			}
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			f.history.Add("Rebooting")
			vm.Reset()
			f.held = [chip8.NumKeys]int{}
		case tcell.KeyPgUp, tcell.KeyUp:
			f.history.ScrollUp()
			f.drawPanels(vm)
		case tcell.KeyPgDn, tcell.KeyDown:
			f.history.ScrollDown(f.historyRows())
			f.drawPanels(vm)
		case tcell.KeyHome:
			f.history.Home()
			f.drawPanels(vm)
		case tcell.KeyEnd:
			f.history.End()
			f.drawPanels(vm)
		}
	case *tcell.EventResize:
		f.screen.Sync()
		return f.Refresh(vm) == nil
	}
	return true
}

// Refresh draws the video memory, the register panel, the status line and
// the history.
func (f *Frontend) Refresh(vm *chip8.CHIP_8) error {
	for row := 0; row < displayRows; row++ {
		for x := 0; x < chip8.Width; x++ {
			top := vm.Pixel(x + 2*row*chip8.Width)
			bottom := vm.Pixel(x + (2*row+1)*chip8.Width)

			f.screen.SetContent(x, row, halfBlock(top, bottom), nil, pixelStyle)
		}
	}

	f.drawPanels(vm)
	return nil
}

// drawPanels redraws everything except the display.
func (f *Frontend) drawPanels(vm *chip8.CHIP_8) {
	// the v-registers
	for i := 0; i < 16; i++ {
		f.drawText(panelX, i, panelStyle, fmt.Sprintf("V%X - #%02X", i, vm.V[i]))
	}

	w, h := f.screen.Size()

	status := fmt.Sprintf(" PC #%04X  I #%04X  SP %02d  DT #%02X  ST #%02X  %d cycles",
		vm.PC, vm.I, vm.SP, vm.DT, vm.ST, vm.Cycles)
	f.fillRow(statusY, w, statusStyle)
	f.drawText(0, statusY, statusStyle, status)

	rows := f.historyRows()
	lines := f.history.Window(rows)
	for i := 0; i < rows && historyY+i < h; i++ {
		f.fillRow(historyY+i, w, textStyle)
		if i < len(lines) {
			f.drawText(0, historyY+i, textStyle, lines[i])
		}
	}

	f.screen.Show()
}

// historyRows is the number of lines below the status line.
func (f *Frontend) historyRows() int {
	_, h := f.screen.Size()
	if h <= historyY {
		return 0
	}
	return h - historyY
}

// Beep rings the terminal bell when the buzzer turns on.
func (f *Frontend) Beep(on bool) {
	if on && !f.beeping {
		_ = f.screen.Beep()
	}
	f.beeping = on
}

func (f *Frontend) drawText(x, y int, style tcell.Style, s string) {
	for _, c := range s {
		f.screen.SetContent(x, y, c, nil, style)
		x++
	}
}

func (f *Frontend) fillRow(y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		f.screen.SetContent(x, y, ' ', nil, style)
	}
}

// halfBlock returns the character showing two vertically stacked pixels.
func halfBlock(top, bottom byte) rune {
	switch {
	case top != 0 && bottom != 0:
		return tcell.RuneBlock
	case top != 0:
		return '▀'
	case bottom != 0:
		return '▄'
	}
	return ' '
}
