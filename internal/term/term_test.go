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

package term

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell"
	"github.com/massung/chip8vm/chip8"
	"github.com/massung/chip8vm/internal/keymap"
	"github.com/retroenv/retrogolib/assert"
)

func newFrontend(t *testing.T) (*Frontend, tcell.SimulationScreen) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	f, err := New(screen, keymap.Default)
	assert.NoError(t, err)
	t.Cleanup(f.Close)

	return f, screen
}

// waitFor processes events until cond holds.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for event")
		}
		time.Sleep(time.Millisecond)
	}
}

func row(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()

	var sb strings.Builder
	for x := 0; x < w; x++ {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(runes[0])
	}
	return sb.String()
}

func TestRefresh(t *testing.T) {
	f, screen := newFrontend(t)
	vm := chip8.New(chip8.WithTrace(io.Discard))

	vm.Video[0] = 1                 // (0,0)
	vm.Video[1+chip8.Width] = 1     // (1,1)
	vm.Video[2] = 1                 // (2,0)
	vm.Video[2+chip8.Width] = 1     // (2,1)
	vm.Video[63+31*chip8.Width] = 1 // (63,31)
	vm.V[0xA] = 0x3C

	assert.NoError(t, f.Refresh(vm))

	top := []rune(row(screen, 0))
	assert.Equal(t, '▀', top[0])
	assert.Equal(t, '▄', top[1])
	assert.Equal(t, tcell.RuneBlock, top[2])
	assert.Equal(t, ' ', top[3])

	bottom := []rune(row(screen, displayRows-1))
	assert.Equal(t, '▄', bottom[63])

	assert.True(t, strings.Contains(row(screen, 10), "VA - #3C"))
	assert.True(t, strings.Contains(row(screen, statusY), "PC #0200"))
}

func TestHistoryPane(t *testing.T) {
	f, screen := newFrontend(t)
	vm := chip8.New(chip8.WithTrace(f.History()))
	assert.NoError(t, vm.LoadROM([]byte{0x00, 0xE0}))

	_, err := vm.Step(true, false)
	assert.NoError(t, err)
	assert.NoError(t, f.Refresh(vm))

	assert.True(t, strings.HasPrefix(row(screen, historyY), "0200 00E0 00"))
	assert.True(t, strings.Contains(row(screen, statusY), "1 cycles"))
}

func TestKeyHold(t *testing.T) {
	f, screen := newFrontend(t)
	vm := chip8.New()

	// unmapped keys are ignored
	screen.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'W', tcell.ModNone)

	waitFor(t, func() bool {
		assert.True(t, f.ProcessEvents(vm))
		return vm.Keys[5]
	})
	assert.Equal(t, [chip8.NumKeys]bool{5: true}, vm.Keys)

	for i := 0; i < holdTicks-1; i++ {
		assert.True(t, f.ProcessEvents(vm))
		assert.True(t, vm.Keys[5])
	}

	assert.True(t, f.ProcessEvents(vm))
	assert.False(t, vm.Keys[5])
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
	}{
		{name: "escape", key: tcell.KeyEscape},
		{name: "ctrl-c", key: tcell.KeyCtrlC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, screen := newFrontend(t)
			vm := chip8.New()

			screen.InjectKey(tt.key, 0, tcell.ModNone)
			waitFor(t, func() bool {
				return !f.ProcessEvents(vm)
			})
		})
	}
}

func TestBackspaceReboots(t *testing.T) {
	f, screen := newFrontend(t)
	vm := chip8.New()
	vm.V[0] = 5
	vm.PC = 0x300

	screen.InjectKey(tcell.KeyBackspace2, 0, tcell.ModNone)
	waitFor(t, func() bool {
		assert.True(t, f.ProcessEvents(vm))
		return f.History().Len() > 0
	})

	assert.Equal(t, 0, vm.V[0])
	assert.Equal(t, chip8.ProgramStart, vm.PC)
}

func TestHalfBlock(t *testing.T) {
	assert.Equal(t, ' ', halfBlock(0, 0))
	assert.Equal(t, '▀', halfBlock(1, 0))
	assert.Equal(t, '▄', halfBlock(0, 1))
	assert.Equal(t, tcell.RuneBlock, halfBlock(1, 1))
}
