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

// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/massung/chip8vm/internal/keymap"
)

// DefaultHz is the default number of instructions stepped per second.
const DefaultHz = 60

// Options collects everything given on the command line.
type Options struct {
	ROM string

	Trace      bool
	SingleStep bool

	Term     bool
	Headless bool
	Browse   bool
	Mute     bool

	Hz       int
	MaxSteps int64
	Seed     int64
	Keys     keymap.Layout

	Debug bool
	Quiet bool
}

// ErrHelp is returned when help was requested. The usage has been printed
// and the program should exit successfully.
var ErrHelp = flag.ErrHelp

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage line and all flag defaults to w.
func (e *UsageError) ShowUsage(w io.Writer) {
	showUsage(w, e.flags)
}

func showUsage(w io.Writer, flags *flag.FlagSet) {
	_, _ = fmt.Fprintf(w, "usage: chip8vm [options] <rom file> [options]\n\n")
	flags.SetOutput(w)
	flags.PrintDefaults()
	_, _ = fmt.Fprintln(w)
}

// ParseFlags parses the command line arguments, excluding the program name.
// Flags may appear before and after the ROM file. When help was requested
// the usage is written to w and ErrHelp returned.
func ParseFlags(args []string, w io.Writer) (Options, error) {
	flags := flag.NewFlagSet("chip8vm", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Options
	var keys string
	readOptionFlags(flags, &opts, &keys)

	var positional []string
	for {
		if err := flags.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				showUsage(w, flags)
				return opts, ErrHelp
			}
			return opts, &UsageError{flags: flags, msg: err.Error()}
		}

		args = flags.Args()
		if len(args) == 0 {
			break
		}

		// the rom file ends a flag run, keep parsing after it
		positional = append(positional, args[0])
		args = args[1:]
	}

	if err := validateArgs(flags, &opts, positional); err != nil {
		return opts, err
	}

	layout, err := keymap.Parse(keys)
	if err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	opts.Keys = layout

	return opts, nil
}

// validateArgs checks the rom file argument and option values.
func validateArgs(flags *flag.FlagSet, opts *Options, positional []string) error {
	switch {
	case len(positional) > 1:
		return &UsageError{flags: flags, msg: fmt.Sprintf("only one rom file expected, got %d", len(positional))}
	case len(positional) == 1:
		opts.ROM = positional[0]
	case !opts.Browse:
		return &UsageError{flags: flags, msg: "no rom file given"}
	}

	if opts.Hz <= 0 {
		return &UsageError{flags: flags, msg: fmt.Sprintf("invalid speed %d, must be positive", opts.Hz)}
	}
	if opts.MaxSteps < 0 {
		return &UsageError{flags: flags, msg: fmt.Sprintf("invalid step count %d", opts.MaxSteps)}
	}
	if opts.Term && opts.Headless {
		return &UsageError{flags: flags, msg: "-term and -headless can not be combined"}
	}
	if opts.Term && opts.SingleStep {
		return &UsageError{flags: flags, msg: "-s reads the terminal and can not be combined with -term"}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *Options, keys *string) {
	flags.BoolVar(&opts.Trace, "t", false, "trace every instruction to stdout")
	flags.BoolVar(&opts.SingleStep, "s", false, "single step, wait for a key before each instruction (q or Escape quits)")
	flags.BoolVar(&opts.Term, "term", false, "render to the terminal instead of an SDL window")
	flags.BoolVar(&opts.Headless, "headless", false, "run without any display or input")
	flags.BoolVar(&opts.Browse, "browse", false, "pick the rom file with a file dialog")
	flags.BoolVar(&opts.Mute, "mute", false, "disable the buzzer")
	flags.IntVar(&opts.Hz, "hz", DefaultHz, "instructions executed per second")
	flags.Int64Var(&opts.MaxSteps, "n", 0, "stop after this many instructions, 0 runs until quit")
	flags.Int64Var(&opts.Seed, "seed", 0, "seed for the random number generator, 0 seeds from the clock")
	flags.StringVar(keys, "keys", keymap.Default.String(), "host keys for CHIP-8 keys 0 to F")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
