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

import "fmt"

/// Disassemble the CHIP-8 instruction stored at address i.
///
func (vm *CHIP_8) Disassemble(i uint16) string {
	inst := uint16(vm.read(i))<<8 | uint16(vm.read(i+1))

	return fmt.Sprintf("%04X - %s", i, Mnemonic(inst))
}

/// Mnemonic renders a single instruction word as assembly. Words that
/// don't decode render as "??".
///
func Mnemonic(inst uint16) string {
	// 12-bit literal address
	a := inst & 0xFFF

	// byte and nibble literals
	b := byte(inst & 0xFF)
	n := byte(inst & 0xF)

	// vx and vy registers
	x := inst >> 8 & 0xF
	y := inst >> 4 & 0xF

	switch inst & 0xF000 {
	case 0x0000:
		switch inst {
		case 0x00E0:
			return "CLS"
		case 0x00EE:
			return "RET"
		}
	case 0x1000:
		return fmt.Sprintf("JP     #%03X", a)
	case 0x2000:
		return fmt.Sprintf("CALL   #%03X", a)
	case 0x3000:
		return fmt.Sprintf("SE     V%X, #%02X", x, b)
	case 0x4000:
		return fmt.Sprintf("SNE    V%X, #%02X", x, b)
	case 0x5000:
		if n == 0 {
			return fmt.Sprintf("SE     V%X, V%X", x, y)
		}
	case 0x6000:
		return fmt.Sprintf("LD     V%X, #%02X", x, b)
	case 0x7000:
		return fmt.Sprintf("ADD    V%X, #%02X", x, b)
	case 0x8000:
		if op, ok := aluMnemonics[n]; ok {
			return fmt.Sprintf("%-6s V%X, V%X", op, x, y)
		}
	case 0x9000:
		if n == 0 {
			return fmt.Sprintf("SNE    V%X, V%X", x, y)
		}
	case 0xA000:
		return fmt.Sprintf("LD     I, #%03X", a)
	case 0xB000:
		return fmt.Sprintf("JP     V0, #%03X", a)
	case 0xC000:
		return fmt.Sprintf("RND    V%X, #%02X", x, b)
	case 0xD000:
		return fmt.Sprintf("DRW    V%X, V%X, %d", x, y, n)
	case 0xE000:
		switch b {
		case 0x9E:
			return fmt.Sprintf("SKP    V%X", x)
		case 0xA1:
			return fmt.Sprintf("SKNP   V%X", x)
		}
	case 0xF000:
		if format, ok := miscMnemonics[b]; ok {
			return fmt.Sprintf(format, x)
		}
	}

	// unknown instruction
	return "??"
}

var aluMnemonics = map[byte]string{
	0x0: "LD",
	0x1: "OR",
	0x2: "AND",
	0x3: "XOR",
	0x4: "ADD",
	0x5: "SUB",
	0x6: "SHR",
	0x7: "SUBN",
	0xE: "SHL",
}

var miscMnemonics = map[byte]string{
	0x07: "LD     V%X, DT",
	0x0A: "LD     V%X, K",
	0x15: "LD     DT, V%X",
	0x18: "LD     ST, V%X",
	0x1E: "ADD    I, V%X",
	0x29: "LD     F, V%X",
	0x33: "LD     B, V%X",
	0x55: "LD     [I], V%X",
	0x65: "LD     V%X, [I]",
}
