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

	"github.com/retroenv/retrogolib/log"
)

/// ErrUnknownOpcode is reported to the logger when an instruction can't
/// be decoded. Execution continues with the next instruction.
///
var ErrUnknownOpcode = errors.New("unknown opcode")

/// Decode and execute a single instruction.
///
func (vm *CHIP_8) execute(inst uint16) error {
	// 12-bit address operand
	a := inst & 0xFFF

	// byte and nibble operands
	b := byte(inst & 0xFF)
	n := byte(inst & 0xF)

	// x and y register operands
	x := uint(inst >> 8 & 0xF)
	y := uint(inst >> 4 & 0xF)

	switch inst & 0xF000 {
	case 0x0000:
		switch inst {
		case 0x00E0:
			vm.cls()
		case 0x00EE:
			return vm.ret()
		default:
			vm.unknown(inst)
		}
	case 0x1000:
		vm.jump(a)
	case 0x2000:
		return vm.call(a)
	case 0x3000:
		vm.skipIf(vm.V[x] == b)
	case 0x4000:
		vm.skipIf(vm.V[x] != b)
	case 0x5000:
		if n != 0 {
			vm.unknown(inst)
			break
		}
		vm.skipIf(vm.V[x] == vm.V[y])
	case 0x6000:
		vm.loadX(x, b)
	case 0x7000:
		vm.addX(x, b)
	case 0x8000:
		vm.alu(inst, x, y, n)
	case 0x9000:
		if n != 0 {
			vm.unknown(inst)
			break
		}
		vm.skipIf(vm.V[x] != vm.V[y])
	case 0xA000:
		vm.loadI(a)
	case 0xB000:
		vm.jumpV0(a)
	case 0xC000:
		vm.rnd(x, b)
	case 0xD000:
		vm.drw(x, y, n)
	case 0xE000:
		switch b {
		case 0x9E:
			vm.skipIf(vm.Keys[vm.V[x]&0xF])
		case 0xA1:
			vm.skipIf(!vm.Keys[vm.V[x]&0xF])
		default:
			vm.unknown(inst)
		}
	case 0xF000:
		vm.misc(inst, x, b)
	}

	return nil
}

/// Execute the 8XYN register to register instructions.
///
func (vm *CHIP_8) alu(inst uint16, x, y uint, n byte) {
	switch n {
	case 0x0:
		vm.loadXY(x, y)
	case 0x1:
		vm.or(x, y)
	case 0x2:
		vm.and(x, y)
	case 0x3:
		vm.xor(x, y)
	case 0x4:
		vm.addXY(x, y)
	case 0x5:
		vm.subXY(x, y)
	case 0x6:
		vm.shr(x)
	case 0x7:
		vm.subYX(x, y)
	case 0xE:
		vm.shl(x)
	default:
		vm.unknown(inst)
	}
}

/// Execute the FXNN timer, key and memory instructions.
///
func (vm *CHIP_8) misc(inst uint16, x uint, b byte) {
	switch b {
	case 0x07:
		vm.loadXDT(x)
	case 0x0A:
		vm.loadXK(x)
	case 0x15:
		vm.loadDTX(x)
	case 0x18:
		vm.loadSTX(x)
	case 0x1E:
		vm.addIX(x)
	case 0x29:
		vm.loadF(x)
	case 0x33:
		vm.loadB(x)
	case 0x55:
		vm.saveRegs(x)
	case 0x65:
		vm.loadRegs(x)
	default:
		vm.unknown(inst)
	}
}

/// Report an instruction that can't be decoded and skip over it.
///
func (vm *CHIP_8) unknown(inst uint16) {
	vm.logger.Error("Decoding instruction failed", ErrUnknownOpcode,
		log.String("opcode", fmt.Sprintf("%04X", inst)),
		log.String("pc", fmt.Sprintf("%04X", vm.PC)))

	vm.PC += 2
}

/// Clear the video display memory.
///
func (vm *CHIP_8) cls() {
	vm.Video = [DisplaySize]byte{}
	vm.redraw = true
	vm.PC += 2
}

/// return from subroutine.
///
func (vm *CHIP_8) ret() error {
	if vm.SP == 0 {
		return fmt.Errorf("return at %04X: %w", vm.PC, ErrStackUnderflow)
	}

	vm.SP--

	// resume after the call instruction
	vm.PC = vm.Stack[vm.SP] + 2

	return nil
}

/// call a subroutine at address.
///
func (vm *CHIP_8) call(address uint16) error {
	if vm.SP >= StackDepth {
		return fmt.Errorf("call %03X at %04X: %w", address, vm.PC, ErrStackOverflow)
	}

	vm.Stack[vm.SP] = vm.PC
	vm.SP++

	// jump to address
	vm.PC = address

	return nil
}

/// jump to address.
///
func (vm *CHIP_8) jump(address uint16) {
	vm.PC = address
}

/// jump to address + v0.
///
func (vm *CHIP_8) jumpV0(address uint16) {
	vm.PC = address + uint16(vm.V[0])
}

/// advance past this instruction, and the next one too if cond is true.
///
func (vm *CHIP_8) skipIf(cond bool) {
	vm.PC += 2

	if cond {
		vm.PC += 2
	}
}

/// load n into vx.
///
func (vm *CHIP_8) loadX(x uint, b byte) {
	vm.V[x] = b
	vm.PC += 2
}

/// load y into vx.
///
func (vm *CHIP_8) loadXY(x, y uint) {
	vm.V[x] = vm.V[y]
	vm.PC += 2
}

/// load delay timer into vx.
///
func (vm *CHIP_8) loadXDT(x uint) {
	vm.V[x] = vm.DT
	vm.PC += 2
}

/// load vx into delay timer.
///
func (vm *CHIP_8) loadDTX(x uint) {
	vm.DT = vm.V[x]
	vm.PC += 2
}

/// load vx into sound timer.
///
func (vm *CHIP_8) loadSTX(x uint) {
	vm.ST = vm.V[x]
	vm.PC += 2
}

/// load vx with a pressed key. With no key down the program counter
/// stays put, so the instruction runs again next step.
///
func (vm *CHIP_8) loadXK(x uint) {
	pressed := false

	// the highest pressed key wins
	for k, down := range vm.Keys {
		if down {
			vm.V[x] = byte(k)
			pressed = true
		}
	}

	if pressed {
		vm.PC += 2
	}
}

/// load address register.
///
func (vm *CHIP_8) loadI(address uint16) {
	vm.I = address
	vm.PC += 2
}

/// load address with BCD of vx.
///
func (vm *CHIP_8) loadB(x uint) {
	v := vm.V[x]

	vm.write(vm.I+0, v/100)
	vm.write(vm.I+1, v/10%10)
	vm.write(vm.I+2, v%10)
	vm.PC += 2
}

/// load font sprite for vx into I.
///
func (vm *CHIP_8) loadF(x uint) {
	vm.I = uint16(vm.V[x]) * 5
	vm.PC += 2
}

/// or vx with vy into vx.
///
func (vm *CHIP_8) or(x, y uint) {
	vm.V[x] |= vm.V[y]
	vm.V[0xF] = 0
	vm.PC += 2
}

/// and vx with vy into vx.
///
func (vm *CHIP_8) and(x, y uint) {
	vm.V[x] &= vm.V[y]
	vm.V[0xF] = 0
	vm.PC += 2
}

/// xor vx with vy into vx.
///
func (vm *CHIP_8) xor(x, y uint) {
	vm.V[x] ^= vm.V[y]
	vm.V[0xF] = 0
	vm.PC += 2
}

/// shl vx 1 bit, set carry to MSB of vx before shift.
///
func (vm *CHIP_8) shl(x uint) {
	vm.V[0xF] = vm.V[x] >> 7
	vm.V[x] <<= 1
	vm.PC += 2
}

/// shr vx 1 bit, set carry to LSB of vx before shift.
///
func (vm *CHIP_8) shr(x uint) {
	vm.V[0xF] = vm.V[x] & 1
	vm.V[x] >>= 1
	vm.PC += 2
}

/// add n to vx.
///
func (vm *CHIP_8) addX(x uint, b byte) {
	vm.V[x] += b
	vm.PC += 2
}

/// add vy to vx and set carry.
///
func (vm *CHIP_8) addXY(x, y uint) {
	sum := uint(vm.V[x]) + uint(vm.V[y])

	vm.V[0xF] = flag(sum > 0xFF)
	vm.V[x] = byte(sum)
	vm.PC += 2
}

/// add vx to i, set carry when leaving the 12-bit address space.
///
func (vm *CHIP_8) addIX(x uint) {
	vm.V[0xF] = flag(uint(vm.I)+uint(vm.V[x]) > 0xFFF)
	vm.I += uint16(vm.V[x])
	vm.PC += 2
}

/// subtract vy from vx, set carry if no borrow.
///
func (vm *CHIP_8) subXY(x, y uint) {
	vm.V[0xF] = flag(vm.V[x] >= vm.V[y])
	vm.V[x] -= vm.V[y]
	vm.PC += 2
}

/// subtract vx from vy and store in vx, set carry if no borrow.
///
func (vm *CHIP_8) subYX(x, y uint) {
	vm.V[0xF] = flag(vm.V[x] <= vm.V[y])
	vm.V[x] = vm.V[y] - vm.V[x]
	vm.PC += 2
}

// VF is written before the result, so VF as the destination keeps the result.
func flag(set bool) byte {
	if set {
		return 1
	}
	return 0
}

/// load a random number & n into vx.
///
func (vm *CHIP_8) rnd(x uint, b byte) {
	vm.V[x] = vm.random() & b
	vm.PC += 2
}

/// draw a sprite at I to video memory at vx, vy.
///
func (vm *CHIP_8) drw(x, y uint, n byte) {
	px := int(vm.V[x])
	py := int(vm.V[y])

	vm.V[0xF] = 0

	// draw each row of the sprite
	for row := 0; row < int(n); row++ {
		s := vm.read(vm.I + uint16(row))

		for col := 0; col < 8; col++ {
			if s&(0x80>>uint(col)) == 0 {
				continue
			}

			// both axes wrap through the same index
			i := (px + col + (py+row)*Width) % DisplaySize

			// was a lit pixel turned off?
			if vm.Video[i] == 1 {
				vm.V[0xF] = 1
			}

			vm.Video[i] ^= 1
		}
	}

	vm.redraw = true
	vm.PC += 2
}

/// save registers v0..vx to I.
///
func (vm *CHIP_8) saveRegs(x uint) {
	for i := uint(0); i <= x; i++ {
		vm.write(vm.I+uint16(i), vm.V[i])
	}

	vm.I += uint16(x) + 1
	vm.PC += 2
}

/// load registers v0..vx from I.
///
func (vm *CHIP_8) loadRegs(x uint) {
	for i := uint(0); i <= x; i++ {
		vm.V[i] = vm.read(vm.I + uint16(i))
	}

	vm.I += uint16(x) + 1
	vm.PC += 2
}
