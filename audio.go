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
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	/// Output sample rate of the buzzer.
	///
	sampleRate = 22050

	/// Pitch of the buzzer in Hz.
	///
	tone = 440

	/// Each queued chunk of the square wave lasts 1/60th of a second.
	///
	chunkSamples = sampleRate / 60

	/// Unsigned 8-bit silence and the wave's distance from it.
	///
	silence   = 0x80
	amplitude = 0x20
)

/// Beeper plays a square wave while the CHIP-8 sound timer is active. The
/// wave is queued from the main loop, so no audio callback is needed.
///
type Beeper struct {
	device sdl.AudioDeviceID
	chunk  []byte
}

/// NewBeeper opens the default audio device. SDL audio must be initialized.
///
func NewBeeper() (*Beeper, error) {
	spec := &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  512,
	}

	device, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}

	// start playing, the queue is empty so nothing is heard yet
	sdl.PauseAudioDevice(device, false)

	return &Beeper{
		device: device,
		chunk:  squareWave(chunkSamples),
	}, nil
}

/// Beep keeps the queue filled while on, and drops it when turned off.
///
func (b *Beeper) Beep(on bool) {
	if !on {
		sdl.ClearQueuedAudio(b.device)
		return
	}

	// one chunk ahead is enough to avoid gaps
	if sdl.GetQueuedAudioSize(b.device) < uint32(len(b.chunk)) {
		_ = sdl.QueueAudio(b.device, b.chunk)
	}
}

/// Close the audio device.
///
func (b *Beeper) Close() {
	sdl.CloseAudioDevice(b.device)
}

/// Create n samples of the buzzer's square wave.
///
func squareWave(n int) []byte {
	samples := make([]byte, n)
	period := sampleRate / tone

	for i := range samples {
		if i%period < period/2 {
			samples[i] = silence + amplitude
		} else {
			samples[i] = silence - amplitude
		}
	}

	return samples
}
