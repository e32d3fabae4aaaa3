// This file is part of hackvm - https://github.com/db47h/hackvm
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import "github.com/pkg/errors"

// ErrStepLimit is the cause of the error returned by Run when the maximum
// number of instructions set with MaxSteps has been reached.
var ErrStepLimit = errors.New("step limit reached")

// C-instruction fields. Bit 15 is set for C-instructions, so they are negative
// when stored in a Cell.
const (
	bitM = 1 << 12 // y operand is M instead of A

	zx = 0x20 << 6
	nx = 0x10 << 6
	zy = 0x08 << 6
	ny = 0x04 << 6
	fn = 0x02 << 6 // x+y if set, x&y otherwise
	no = 0x01 << 6

	destA = 4 << 3
	destD = 2 << 3
	destM = 1 << 3

	jlt = 4
	jeq = 2
	jgt = 1
	jmp = jlt | jeq | jgt
)

// alu computes the comp field of instruction op for operands x and y.
func alu(op, x, y Cell) Cell {
	if op&zx != 0 {
		x = 0
	}
	if op&nx != 0 {
		x = ^x
	}
	if op&zy != 0 {
		y = 0
	}
	if op&ny != 0 {
		y = ^y
	}
	var out Cell
	if op&fn != 0 {
		out = x + y
	} else {
		out = x & y
	}
	if op&no != 0 {
		out = ^out
	}
	return out
}

// jumps returns true if the jump condition of op holds for out.
func jumps(op, out Cell) bool {
	switch {
	case out < 0:
		return op&jlt != 0
	case out == 0:
		return op&jeq != 0
	default:
		return op&jgt != 0
	}
}

// Run starts execution of the program in ROM, from the current PC.
//
// If an error occurs, the PC will point to the instruction that triggered the
// error.
//
// Run returns nil when the PC moves past the end of the program, or when the
// program enters a loop of the form "(L) @L 0;JMP", in which case Halted will
// return true. If a step limit is set, Run returns an error with cause
// ErrStepLimit once that many instructions have been executed.
func (i *Instance) Run() (err error) {
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				err = errors.Wrapf(e, "Recovered error @pc=%d/%d, A=%d", i.PC, len(i.ROM), i.A)
			default:
				panic(e)
			}
		}
	}()
	i.steps = 0
	i.halted = false
	for i.PC < len(i.ROM) {
		if i.maxSteps > 0 && i.steps >= i.maxSteps {
			return errors.Wrapf(ErrStepLimit, "@pc=%d after %d instructions", i.PC, i.steps)
		}
		i.steps++
		op := i.ROM[i.PC]
		if op >= 0 {
			i.A = op
			i.PC++
			continue
		}
		addr := i.A
		y := addr
		if op&bitM != 0 {
			y = i.RAM[uint16(addr)]
		}
		out := alu(op, i.D, y)
		if op&destM != 0 {
			i.RAM[uint16(addr)] = out
		}
		if op&destA != 0 {
			i.A = out
		}
		if op&destD != 0 {
			i.D = out
		}
		if !jumps(op, out) {
			i.PC++
			continue
		}
		if op&jmp == jmp && int(addr) == i.PC-1 && i.PC > 0 && i.ROM[i.PC-1] == addr {
			i.halted = true
			return nil
		}
		i.PC = int(uint16(addr))
	}
	return nil
}
