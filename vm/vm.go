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

import (
	"io"
	"strconv"

	"github.com/db47h/hackvm/internal/iox"
	"github.com/pkg/errors"
)

// Cell is the raw type stored in a memory location: a 16 bits word.
type Cell int16

const (
	// RAMSize is the default RAM size in cells: the data memory, screen and
	// keyboard register.
	RAMSize = 24577
	// ROMSize is the maximum program size.
	ROMSize = 32768
)

// Predefined RAM addresses.
const (
	SP     = 0
	LCL    = 1
	ARG    = 2
	THIS   = 3
	THAT   = 4
	SCREEN = 16384
	KBD    = 24576
)

// Instance represents a Hack CPU along with its ROM and RAM.
type Instance struct {
	PC       int    // Program Counter
	A        Cell   // A register
	D        Cell   // D register
	ROM      []Cell // Program memory
	RAM      []Cell // Data memory
	steps    int64
	maxSteps int64
	halted   bool
}

// Option interface
type Option func(*Instance) error

// MaxSteps sets the maximum number of instructions that Run will execute. The
// default is 0, meaning no limit.
func MaxSteps(n int64) Option {
	return func(i *Instance) error { i.maxSteps = n; return nil }
}

// Memory sets the RAM size in cells. It will not erase RAM, but data nay be
// lost if set to a smaller size. The default is RAMSize.
func Memory(size int) Option {
	return func(i *Instance) error {
		if size <= 0 {
			return errors.Errorf("invalid RAM size %d", size)
		}
		if size <= len(i.RAM) {
			i.RAM = i.RAM[:size]
		} else {
			t := make([]Cell, size)
			copy(t, i.RAM)
			i.RAM = t
		}
		return nil
	}
}

// Preset stores the given values in RAM, starting at address addr.
func Preset(addr int, values ...Cell) Option {
	return func(i *Instance) error {
		if addr < 0 || addr+len(values) > len(i.RAM) {
			return errors.Errorf("preset address %d out of range", addr)
		}
		copy(i.RAM[addr:], values)
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Hack CPU instance that will run the given program.
//
// Options will be set by calling SetOptions.
func New(rom []Cell, opts ...Option) (*Instance, error) {
	if len(rom) > ROMSize {
		return nil, errors.Errorf("program too large: %d words", len(rom))
	}
	i := &Instance{
		ROM: rom,
		RAM: make([]Cell, RAMSize),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// Peek returns the value at RAM address addr.
func (i *Instance) Peek(addr int) Cell { return i.RAM[addr] }

// Poke sets the value at RAM address addr.
func (i *Instance) Poke(addr int, v Cell) { i.RAM[addr] = v }

// Stack returns the stack contents, from base to RAM[SP] (excluded). Note that
// value changes will be reflected in RAM.
func (i *Instance) Stack(base int) []Cell {
	sp := int(i.RAM[SP])
	if sp < base || sp > len(i.RAM) {
		return nil
	}
	return i.RAM[base:sp]
}

// InstructionCount returns the number of instructions executed by the last
// call to Run.
func (i *Instance) InstructionCount() int64 {
	return i.steps
}

// Halted returns true if the last call to Run stopped on an infinite loop of
// the form "(L) @L 0;JMP".
func (i *Instance) Halted() bool {
	return i.halted
}

func dumpSlice(w *iox.ErrWriter, a []Cell) {
	l := len(a) - 1
	if l >= 0 {
		for i := 0; i < l; i++ {
			io.WriteString(w, strconv.Itoa(int(a[i])))
			w.Write([]byte{' '})
		}
		io.WriteString(w, strconv.Itoa(int(a[l])))
	}
}

// Dump writes the registers, the first 16 RAM cells and the stack contents
// starting at base to the specified io.Writer.
func (i *Instance) Dump(w io.Writer, base int) error {
	ew := iox.NewErrWriter(w)
	io.WriteString(ew, "PC: "+strconv.Itoa(i.PC)+" A: "+strconv.Itoa(int(i.A))+" D: "+strconv.Itoa(int(i.D))+"\nRAM: ")
	dumpSlice(ew, i.RAM[:min(16, len(i.RAM))])
	io.WriteString(ew, "\nStack: ")
	dumpSlice(ew, i.Stack(base))
	ew.WriteLine("")
	return ew.Err
}
