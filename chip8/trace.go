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
	"fmt"
	"strings"
)

/// Write the trace line for the instruction about to execute:
///
///   PPPP OOOO SS V0 V1 ... VF
///
func (vm *CHIP_8) writeTrace(inst uint16) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%04X %04X %02X", vm.PC, inst, vm.SP)

	// all 16 registers, including the flag register
	for _, v := range vm.V {
		fmt.Fprintf(&sb, " %02X", v)
	}

	sb.WriteByte('\n')

	// trace output is best effort
	_, _ = fmt.Fprint(vm.trace, sb.String())
}
