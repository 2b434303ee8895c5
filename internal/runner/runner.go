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

// Package runner drives a CHIP-8 virtual machine at a fixed rate and
// connects it to a frontend for display, input and sound.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/massung/chip8vm/chip8"
	"github.com/retroenv/retrogolib/log"
)

// DefaultHz is the step rate used when none is configured.
const DefaultHz = 60

// Frontend displays the machine and feeds it input.
type Frontend interface {
	// ProcessEvents applies pending input to the machine. It returns false
	// once the user asked to quit.
	ProcessEvents(vm *chip8.CHIP_8) bool

	// Refresh renders the video memory.
	Refresh(vm *chip8.CHIP_8) error

	// Beep turns the buzzer on or off.
	Beep(on bool)
}

// Gate is consulted between steps in single step mode. Wait returns false
// to stop the run.
type Gate interface {
	Wait(vm *chip8.CHIP_8) (bool, error)
}

// Options configure a Runner.
type Options struct {
	Hz       int   // steps per second, DefaultHz if 0
	Trace    bool  // write a trace line per step
	Sound    bool  // forward the sound timer to the frontend
	MaxSteps int64 // stop after this many steps, 0 runs until quit
	Gate     Gate  // single step gate, nil runs freely

	Logger *log.Logger
}

// Runner paces a virtual machine and services its frontend.
type Runner struct {
	vm       *chip8.CHIP_8
	frontend Frontend
	opts     Options
	logger   *log.Logger
}

// New returns a runner for the machine and frontend.
func New(vm *chip8.CHIP_8, frontend Frontend, opts Options) *Runner {
	if opts.Hz <= 0 {
		opts.Hz = DefaultHz
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	return &Runner{
		vm:       vm,
		frontend: frontend,
		opts:     opts,
		logger:   logger,
	}
}

// Run steps the machine until the context is cancelled, the frontend or
// gate quits, the step limit is reached or the machine fails. Only the
// machine failing returns an error.
func (r *Runner) Run(ctx context.Context) error {
	clock := time.NewTicker(time.Second / time.Duration(r.opts.Hz))
	defer clock.Stop()

	// the buzzer must not keep sounding after the run
	defer r.frontend.Beep(false)

	r.logger.Debug("Starting", log.Int("hz", r.opts.Hz), log.Bool("trace", r.opts.Trace))

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("Run cancelled", log.Int64("cycles", r.vm.Cycles))
			return nil
		case <-clock.C:
		}

		ok, err := r.tick()
		if err != nil {
			return fmt.Errorf("cycle %d: %w", r.vm.Cycles, err)
		}
		if !ok {
			r.logger.Info("Stopped", log.Int64("cycles", r.vm.Cycles))
			return nil
		}
	}
}

// tick runs a single cycle and returns false when the run should end.
func (r *Runner) tick() (bool, error) {
	beep, err := r.vm.Step(r.opts.Trace, r.opts.Sound)
	if err != nil {
		return false, err
	}

	r.frontend.Beep(beep)

	if !r.frontend.ProcessEvents(r.vm) {
		return false, nil
	}

	// only redraw when video memory changed
	if r.vm.DrawFlag() {
		if err := r.frontend.Refresh(r.vm); err != nil {
			return false, fmt.Errorf("refreshing display: %w", err)
		}
		r.vm.SetDrawFlag(false)
	}

	if r.opts.MaxSteps > 0 && r.vm.Cycles >= r.opts.MaxSteps {
		return false, nil
	}

	if r.opts.Gate != nil {
		return r.opts.Gate.Wait(r.vm)
	}
	return true, nil
}

// Headless is a frontend without any display or input. It never quits on
// its own.
type Headless struct{}

// ProcessEvents has nothing to process.
func (Headless) ProcessEvents(*chip8.CHIP_8) bool { return true }

// Refresh discards the frame.
func (Headless) Refresh(*chip8.CHIP_8) error { return nil }

// Beep is silent.
func (Headless) Beep(bool) {}
