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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/gdamore/tcell"
	"github.com/massung/chip8vm/chip8"
	"github.com/massung/chip8vm/internal/cli"
	"github.com/massung/chip8vm/internal/config"
	"github.com/massung/chip8vm/internal/runner"
	"github.com/massung/chip8vm/internal/stepper"
	"github.com/massung/chip8vm/internal/term"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func init() {
	// SDL must be driven from the main thread
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the emulator and returns the process exit code.
func run(args []string) int {
	opts, err := cli.ParseFlags(args, os.Stdout)
	if err != nil {
		if errors.Is(err, cli.ErrHelp) {
			fmt.Printf("version: %s\n", buildinfo.Version(version, commit, date))
			return 0
		}

		var usage *cli.UsageError
		if errors.As(err, &usage) {
			fmt.Fprintf(os.Stderr, "%s\n\n", err)
			usage.ShowUsage(os.Stderr)
		}
		return 1
	}

	if !opts.Quiet {
		printBanner()
	}

	if opts.Browse {
		file, err := browse()
		if err != nil {
			if errors.Is(err, dialog.ErrCancelled) {
				return 0
			}
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		opts.ROM = file
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := emulate(ctx, opts); err != nil {
		return 1
	}
	return 0
}

func printBanner() {
	fmt.Println("[---------------------------------]")
	fmt.Println("[ chip8vm - CHIP-8 interpreter    ]")
	fmt.Printf("[---------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

// browse asks for the ROM file with a file dialog.
func browse() (string, error) {
	file, err := dialog.File().
		Filter("CHIP-8 ROMs", "ch8", "c8").
		Title("Load CHIP-8 ROM").
		Load()
	if err != nil {
		return "", fmt.Errorf("selecting rom file: %w", err)
	}
	return file, nil
}

// emulate loads the ROM and runs it on the selected frontend. Errors are
// logged before they are returned.
func emulate(ctx context.Context, opts cli.Options) (err error) {
	var output io.Writer = os.Stdout
	var frontend runner.Frontend

	switch {
	case opts.Headless:
		frontend = runner.Headless{}

	case opts.Term:
		tf, termErr := openTerminal(opts)
		if termErr != nil {
			fmt.Fprintln(os.Stderr, termErr)
			return termErr
		}
		defer func() {
			tf.Close()

			// the log went to the screen, repeat the failure
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}()

		output = tf.History()
		frontend = tf

	default:
		window, windowErr := NewWindow(opts.ROM, opts.Keys)
		if windowErr != nil {
			fmt.Fprintf(os.Stderr, "opening window: %s\n", windowErr)
			return windowErr
		}
		defer window.Close()

		frontend = window
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet, output)

	if window, ok := frontend.(*Window); ok && !opts.Mute {
		if audioErr := window.OpenAudio(); audioErr != nil {
			logger.Warn("Sound disabled", log.Err(audioErr))
		}
	}

	vmOpts := []chip8.Option{
		chip8.WithLogger(logger),
		chip8.WithTrace(output),
	}
	if opts.Seed != 0 {
		vmOpts = append(vmOpts, chip8.WithSeed(opts.Seed))
	}
	vm := chip8.New(vmOpts...)

	if err = vm.LoadFile(opts.ROM); err != nil {
		logger.Error("Loading ROM failed", err, log.String("file", opts.ROM))
		if _, ok := frontend.(*Window); ok {
			dialog.Message("%s", err).Title("Loading ROM failed").Error()
		}
		return err
	}
	logger.Debug("Loaded ROM", log.String("file", opts.ROM))

	runOpts := runner.Options{
		Hz:       opts.Hz,
		Trace:    opts.Trace,
		Sound:    !opts.Mute,
		MaxSteps: opts.MaxSteps,
		Logger:   logger,
	}

	if opts.SingleStep {
		runOpts.Gate = stepper.New(os.Stdin, os.Stdout)

		restore, rawErr := stepper.EnableRaw(os.Stdin)
		if rawErr != nil {
			logger.Debug("Single stepping line by line", log.Err(rawErr))
		} else {
			defer func() { _ = restore() }()
		}
	}

	if err = runner.New(vm, frontend, runOpts).Run(ctx); err != nil {
		logger.Error("Execution failed", err)
		return err
	}
	return nil
}

// openTerminal takes over the terminal for the tcell frontend.
func openTerminal(opts cli.Options) (*term.Frontend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("opening terminal: %w", err)
	}
	return term.New(screen, opts.Keys)
}
