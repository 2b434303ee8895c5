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

// Package stepper pauses a running machine between instructions until the
// operator confirms the next step.
package stepper

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/massung/chip8vm/chip8"
)

const escape = 0x1B

// Stepper shows the next instruction and waits for a key before it runs.
type Stepper struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a stepper reading keys from in and writing the disassembly
// to out.
func New(in io.Reader, out io.Writer) *Stepper {
	return &Stepper{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Wait prints the instruction at the program counter and blocks for a
// key. Escape or q stop the run, any other key steps. The end of the
// input stops the run as well.
func (s *Stepper) Wait(vm *chip8.CHIP_8) (bool, error) {
	if _, err := fmt.Fprintf(s.out, "%s\n", vm.Disassemble(vm.PC)); err != nil {
		return false, fmt.Errorf("writing disassembly: %w", err)
	}

	b, err := s.in.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("reading key: %w", err)
	}

	// a line typed in cooked mode counts as one key
	s.discardLine(b)

	switch b {
	case escape, 'q', 'Q':
		return false, nil
	}
	return true, nil
}

// discardLine drops already buffered input up to the end of the line.
func (s *Stepper) discardLine(b byte) {
	for b != '\n' && s.in.Buffered() > 0 {
		next, err := s.in.ReadByte()
		if err != nil {
			return
		}
		b = next
	}
}
