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
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/retroenv/retrogolib/log"
)

/// Memory layout and machine dimensions.
///
const (
	MemorySize   = 0x1000
	ProgramStart = 0x200
	MaxROMSize   = MemorySize - ProgramStart

	Width       = 64
	Height      = 32
	DisplaySize = Width * Height

	StackDepth = 16
	NumKeys    = 16
)

var (
	/// ErrStackOverflow is returned by Step when a CALL would exceed the
	/// 16 entry stack.
	///
	ErrStackOverflow = errors.New("stack overflow")

	/// ErrStackUnderflow is returned by Step when RET runs with an empty
	/// stack.
	///
	ErrStackUnderflow = errors.New("stack underflow")
)

/// CHIP_8 virtual machine emulator.
///
type CHIP_8 struct {
	/// ROM memory for CHIP-8. This holds the font sprites as well as the
	/// program. It is the pristine state that Memory is reset back to.
	///
	ROM [MemorySize]byte

	/// Memory addressable by CHIP-8. The first 80 bytes hold the font
	/// sprites, the rest of the first 512 bytes is reserved.
	///
	Memory [MemorySize]byte

	/// Video memory for CHIP-8 (64x32). Each byte is a single pixel that
	/// is either 0 or 1, stored row by row.
	///
	Video [DisplaySize]byte

	/// PC is the program counter. All programs begin at 0x200.
	///
	PC uint16

	/// SP is the number of return addresses on the stack.
	///
	SP uint

	/// Stack of return addresses. Each entry is the address of the CALL
	/// instruction that pushed it.
	///
	Stack [StackDepth]uint16

	/// I is the address register.
	///
	I uint16

	/// V are the 16 virtual registers.
	///
	V [16]byte

	/// The delay timer register. Counts down once per step.
	///
	DT byte

	/// The sound timer register. Counts down once per step, the buzzer
	/// sounds while it is non-zero.
	///
	ST byte

	/// Cycles is how many steps have been processed since the last reset.
	///
	Cycles int64

	/// Keys hold the current state for the 16-key pad keys.
	///
	Keys [NumKeys]bool

	// set whenever video memory changes, cleared by the display
	redraw bool

	random func() byte
	trace  io.Writer
	logger *log.Logger
}

/// Option configures a CHIP_8 when it is created.
///
type Option func(vm *CHIP_8)

/// WithLogger sets the logger used to report unknown opcodes.
///
func WithLogger(logger *log.Logger) Option {
	return func(vm *CHIP_8) {
		vm.logger = logger
	}
}

/// WithRandom replaces the random byte generator used by RND.
///
func WithRandom(random func() byte) Option {
	return func(vm *CHIP_8) {
		vm.random = random
	}
}

/// WithSeed seeds the random byte generator used by RND.
///
func WithSeed(seed int64) Option {
	return func(vm *CHIP_8) {
		vm.random = randomSource(seed)
	}
}

/// WithTrace sets where trace lines are written to. Defaults to stdout.
///
func WithTrace(w io.Writer) Option {
	return func(vm *CHIP_8) {
		vm.trace = w
	}
}

/// New creates a freshly reset CHIP-8 virtual machine.
///
func New(opts ...Option) *CHIP_8 {
	vm := &CHIP_8{
		random: randomSource(time.Now().UTC().UnixNano()),
		trace:  os.Stdout,
		logger: log.NewNop(),
	}

	// the font sprites live at the very start of memory
	copy(vm.ROM[:], Font[:])

	for _, opt := range opts {
		opt(vm)
	}

	vm.Reset()

	return vm
}

/// Create a random byte generator from a seed.
///
func randomSource(seed int64) func() byte {
	r := rand.New(rand.NewSource(seed))

	return func() byte {
		return byte(r.Intn(0x100))
	}
}

/// Reset the CHIP-8 virtual machine to its power on state. Memory is
/// restored from the ROM, so a loaded program survives a reset.
///
func (vm *CHIP_8) Reset() {
	vm.Memory = vm.ROM

	// reset video memory
	vm.Video = [DisplaySize]byte{}
	vm.redraw = false

	// reset keys
	vm.Keys = [NumKeys]bool{}

	// reset program counter and stack
	vm.PC = ProgramStart
	vm.SP = 0
	vm.Stack = [StackDepth]uint16{}

	// reset address register
	vm.I = 0

	// reset virtual registers
	vm.V = [16]byte{}

	// reset timer registers
	vm.DT = 0
	vm.ST = 0

	vm.Cycles = 0
}

/// DrawFlag is true when video memory changed since the display last
/// cleared it.
///
func (vm *CHIP_8) DrawFlag() bool {
	return vm.redraw
}

/// SetDrawFlag is used by the display once it consumed a frame.
///
func (vm *CHIP_8) SetDrawFlag(flag bool) {
	vm.redraw = flag
}

/// Pixel returns 1 if pixel i (x + y*64) is lit, 0 otherwise.
///
func (vm *CHIP_8) Pixel(i int) byte {
	return vm.Video[i%DisplaySize]
}

/// SetKey sets the pressed state of a CHIP-8 key.
///
func (vm *CHIP_8) SetKey(key uint, pressed bool) {
	if key < NumKeys {
		vm.Keys[key] = pressed
	}
}

/// PressKey emulates a CHIP-8 key being pressed.
///
func (vm *CHIP_8) PressKey(key uint) {
	vm.SetKey(key, true)
}

/// ReleaseKey emulates a CHIP-8 key being released.
///
func (vm *CHIP_8) ReleaseKey(key uint) {
	vm.SetKey(key, false)
}

/// Step the CHIP-8 virtual machine a single instruction, then tick both
/// timers once. When trace is set, the machine state is written before
/// the instruction executes. The returned bool is true when sound is
/// enabled and the sound timer was running at the start of the tick.
///
func (vm *CHIP_8) Step(trace, sound bool) (bool, error) {
	inst := vm.fetch()

	if trace {
		vm.writeTrace(inst)
	}

	if err := vm.execute(inst); err != nil {
		return false, err
	}

	// tick timers
	if vm.DT > 0 {
		vm.DT--
	}

	beep := sound && vm.ST > 0

	if vm.ST > 0 {
		vm.ST--
	}

	vm.Cycles++

	return beep, nil
}

/// Fetch the 16-bit instruction at the program counter.
///
func (vm *CHIP_8) fetch() uint16 {
	return uint16(vm.read(vm.PC))<<8 | uint16(vm.read(vm.PC+1))
}

/// Read a byte of memory, wrapping the address to 12 bits.
///
func (vm *CHIP_8) read(address uint16) byte {
	return vm.Memory[address&(MemorySize-1)]
}

/// Write a byte of memory, wrapping the address to 12 bits.
///
func (vm *CHIP_8) write(address uint16, b byte) {
	vm.Memory[address&(MemorySize-1)] = b
}
