//go:build linux || darwin

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

package stepper

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// EnableRaw switches the terminal f to unbuffered input without echo, so a
// single key press steps. The returned func restores the previous state.
func EnableRaw(f *os.File) (func() error, error) {
	fd := int(f.Fd())

	termios, err := unix.IoctlGetTermios(fd, getTermios)
	if err != nil {
		return nil, fmt.Errorf("reading terminal state: %w", err)
	}

	restore := *termios
	state := *termios

	state.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL
	state.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	state.Cflag &^= unix.CSIZE | unix.PARENB
	state.Cflag |= unix.CS8

	// block until at least one byte is available
	state.Cc[unix.VMIN] = 1
	state.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, setTermios, &state); err != nil {
		return nil, fmt.Errorf("setting raw terminal mode: %w", err)
	}

	return func() error {
		return unix.IoctlSetTermios(fd, setTermios, &restore)
	}, nil
}
