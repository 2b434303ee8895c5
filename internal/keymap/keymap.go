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

// Package keymap maps host keyboard keys to the 16 CHIP-8 keypad keys.
package keymap

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidLayout is returned when a layout string can't be parsed.
var ErrInvalidLayout = errors.New("invalid key layout")

// Layout names the host key for each CHIP-8 key, indexed 0x0 to 0xF.
type Layout [16]string

// Default is the common QWERTY layout of the hex keypad:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  q w e r
//	7 8 9 E      a s d f
//	A 0 B F      z x c v
var Default = Layout{
	"x", "1", "2", "3",
	"q", "w", "e", "a",
	"s", "d", "z", "c",
	"4", "r", "f", "v",
}

// Parse reads a layout from 16 characters, the host key for CHIP-8 key 0x0
// first. Each character may be used only once.
func Parse(s string) (Layout, error) {
	var layout Layout

	if n := utf8.RuneCountInString(s); n != len(layout) {
		return layout, fmt.Errorf("%w: %d keys given, expected %d", ErrInvalidLayout, n, len(layout))
	}

	seen := make(map[string]int, len(layout))
	i := 0
	for _, r := range s {
		name := strings.ToLower(string(r))
		if prev, ok := seen[name]; ok {
			return layout, fmt.Errorf("%w: key '%s' assigned to %X and %X", ErrInvalidLayout, name, prev, i)
		}
		seen[name] = i
		layout[i] = name
		i++
	}

	return layout, nil
}

// Lookup returns the CHIP-8 key for a host key name. Names compare case
// insensitively.
func (l Layout) Lookup(name string) (uint, bool) {
	for i, key := range l {
		if strings.EqualFold(key, name) {
			return uint(i), true
		}
	}
	return 0, false
}

// String returns the layout in the form accepted by Parse.
func (l Layout) String() string {
	return strings.Join(l[:], "")
}
