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

package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/massung/chip8vm/internal/keymap"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Options
	}{
		{
			name: "rom only",
			args: []string{"pong.ch8"},
			want: Options{ROM: "pong.ch8", Hz: DefaultHz, Keys: keymap.Default},
		},
		{
			name: "flags before rom",
			args: []string{"-t", "-s", "pong.ch8"},
			want: Options{ROM: "pong.ch8", Trace: true, SingleStep: true, Hz: DefaultHz, Keys: keymap.Default},
		},
		{
			name: "flags after rom",
			args: []string{"pong.ch8", "-t", "-s"},
			want: Options{ROM: "pong.ch8", Trace: true, SingleStep: true, Hz: DefaultHz, Keys: keymap.Default},
		},
		{
			name: "flags around rom",
			args: []string{"-hz", "500", "pong.ch8", "-n", "100", "-mute"},
			want: Options{ROM: "pong.ch8", Hz: 500, MaxSteps: 100, Mute: true, Keys: keymap.Default},
		},
		{
			name: "terminal frontend",
			args: []string{"-term", "-seed", "7", "-debug", "pong.ch8"},
			want: Options{ROM: "pong.ch8", Term: true, Seed: 7, Debug: true, Hz: DefaultHz, Keys: keymap.Default},
		},
		{
			name: "browse without rom",
			args: []string{"-browse", "-q"},
			want: Options{Browse: true, Quiet: true, Hz: DefaultHz, Keys: keymap.Default},
		},
		{
			name: "headless",
			args: []string{"-headless", "pong.ch8"},
			want: Options{ROM: "pong.ch8", Headless: true, Hz: DefaultHz, Keys: keymap.Default},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlags(tt.args, &bytes.Buffer{})
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsKeys(t *testing.T) {
	got, err := ParseFlags([]string{"-keys", "0123456789abcdef", "pong.ch8"}, &bytes.Buffer{})
	assert.NoError(t, err)

	key, ok := got.Keys.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, 0xA, key)
}

func TestParseFlagsHelp(t *testing.T) {
	for _, arg := range []string{"-help", "-h"} {
		t.Run(arg, func(t *testing.T) {
			var buf bytes.Buffer

			_, err := ParseFlags([]string{arg}, &buf)
			assert.True(t, errors.Is(err, ErrHelp))
			assert.True(t, strings.HasPrefix(buf.String(), "usage: chip8vm"))
			assert.True(t, strings.Contains(buf.String(), "-hz"))
		})
	}
}

func TestParseFlagsUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no rom", args: nil},
		{name: "unknown flag", args: []string{"-x", "pong.ch8"}},
		{name: "unknown flag after rom", args: []string{"pong.ch8", "-x"}},
		{name: "two roms", args: []string{"pong.ch8", "brix.ch8"}},
		{name: "zero speed", args: []string{"-hz", "0", "pong.ch8"}},
		{name: "negative steps", args: []string{"-n", "-1", "pong.ch8"}},
		{name: "bad layout", args: []string{"-keys", "abc", "pong.ch8"}},
		{name: "conflicting frontends", args: []string{"-term", "-headless", "pong.ch8"}},
		{name: "single step in terminal", args: []string{"-term", "pong.ch8", "-s"}},
		{name: "bad number", args: []string{"-hz", "fast", "pong.ch8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args, &bytes.Buffer{})

			var usage *UsageError
			assert.True(t, errors.As(err, &usage))

			var buf bytes.Buffer
			usage.ShowUsage(&buf)
			assert.True(t, strings.HasPrefix(buf.String(), "usage: chip8vm"))
		})
	}
}
