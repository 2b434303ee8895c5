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

package chip8

import (
	"errors"
	"fmt"
	"os"
)

/// ErrROMTooLarge is returned when a program doesn't fit between 0x200 and
/// the end of memory.
///
var ErrROMTooLarge = errors.New("program too large to fit in memory")

/// LoadROM copies a program into memory at 0x200. The program also
/// becomes part of the ROM image that Reset restores. A program that is
/// too large leaves memory untouched.
///
func (vm *CHIP_8) LoadROM(program []byte) error {
	if len(program) > MaxROMSize {
		return fmt.Errorf("%d bytes, at most %d allowed: %w", len(program), MaxROMSize, ErrROMTooLarge)
	}

	// drop any previously loaded program
	for i := ProgramStart; i < MemorySize; i++ {
		vm.ROM[i] = 0
	}

	copy(vm.ROM[ProgramStart:], program)
	copy(vm.Memory[ProgramStart:], vm.ROM[ProgramStart:])

	return nil
}

/// LoadFile reads a ROM file and loads it with LoadROM.
///
func (vm *CHIP_8) LoadFile(file string) error {
	program, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading rom file: %w", err)
	}

	return vm.LoadROM(program)
}
