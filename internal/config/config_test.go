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

package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestCreateLogger(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		quiet bool
		want  log.Level
	}{
		{name: "default", want: log.DefaultLevel()},
		{name: "debug", debug: true, want: log.DebugLevel},
		{name: "quiet", quiet: true, want: log.ErrorLevel},
		{name: "debug wins over quiet", debug: true, quiet: true, want: log.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := CreateLogger(tt.debug, tt.quiet, nil)
			assert.Equal(t, tt.want, logger.Level())
		})
	}
}

func TestCreateLoggerOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := CreateLogger(false, true, &buf)
	logger.Info("hidden")
	logger.Error("shown", nil)

	assert.False(t, strings.Contains(buf.String(), "hidden"))
	assert.True(t, strings.Contains(buf.String(), "shown"))
}
