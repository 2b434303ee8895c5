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
	"strings"
)

// maxHistory is the number of lines kept before the oldest are dropped.
const maxHistory = 1000

// History is a scrollable buffer of output lines, trace and log output
// end up here while the terminal frontend owns the screen.
type History struct {
	// lines contains each complete line of text.
	lines []string

	// partial holds text written without a trailing newline yet.
	partial string

	// pos is the current user read position, the line after the last one
	// shown.
	pos int
}

// NewHistory creates an empty History.
func NewHistory() *History {
	return &History{
		lines: make([]string, 0, 100),
	}
}

// Add appends a line. The view follows new lines while it is scrolled to
// the end.
func (h *History) Add(s ...string) {
	follow := h.pos == len(h.lines)

	h.lines = append(h.lines, strings.Join(s, " "))

	// drop the oldest lines, keeping the view on the same text
	if over := len(h.lines) - maxHistory; over > 0 {
		h.lines = append(h.lines[:0], h.lines[over:]...)
		h.pos -= over
		if h.pos < 0 {
			h.pos = 0
		}
	}

	if follow {
		h.pos = len(h.lines)
	}
}

// Write adds every complete line of p, so a History can be used as the
// output of a logger or the trace.
func (h *History) Write(p []byte) (int, error) {
	text := h.partial + string(p)

	lines := strings.Split(text, "\n")
	h.partial = lines[len(lines)-1]

	for _, line := range lines[:len(lines)-1] {
		h.Add(strings.TrimRight(line, "\r"))
	}
	return len(p), nil
}

// Len returns the number of complete lines.
func (h *History) Len() int {
	return len(h.lines)
}

// Window returns up to n lines ending at the read position.
func (h *History) Window(n int) []string {
	start := h.pos - n

	// don't scroll past the beginning
	if start < 0 {
		start = 0
	}

	if start+n >= len(h.lines) {
		return h.lines[start:]
	}

	return h.lines[start : start+n]
}

// Home scrolls to the beginning.
func (h *History) Home() {
	h.pos = 0
}

// End scrolls to the end and follows new lines again.
func (h *History) End() {
	h.pos = len(h.lines)
}

// ScrollUp scrolls back one line.
func (h *History) ScrollUp() {
	h.pos--

	// clamp to home
	if h.pos < 0 {
		h.Home()
	}
}

// ScrollDown scrolls forward one line.
func (h *History) ScrollDown(windowSize int) {
	h.pos++

	// from the top, move past the first full window
	if h.pos <= windowSize {
		h.pos = windowSize + 1
	}

	// clamp to end
	if h.pos >= len(h.lines) {
		h.End()
	}
}
