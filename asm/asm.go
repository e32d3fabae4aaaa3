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

package asm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/db47h/hackvm/internal/iox"
	"github.com/db47h/hackvm/vm"
)

// comp fields (a bit + c1..c6). The first name is the one used by the
// disassembler, others are accepted aliases.
var comps = [...]struct {
	bits  vm.Cell
	names []string
}{
	{0x2a, []string{"0"}},
	{0x3f, []string{"1"}},
	{0x3a, []string{"-1"}},
	{0x0c, []string{"D"}},
	{0x30, []string{"A"}},
	{0x70, []string{"M"}},
	{0x0d, []string{"!D"}},
	{0x31, []string{"!A"}},
	{0x71, []string{"!M"}},
	{0x0f, []string{"-D"}},
	{0x33, []string{"-A"}},
	{0x73, []string{"-M"}},
	{0x1f, []string{"D+1", "1+D"}},
	{0x37, []string{"A+1", "1+A"}},
	{0x77, []string{"M+1", "1+M"}},
	{0x0e, []string{"D-1"}},
	{0x32, []string{"A-1"}},
	{0x72, []string{"M-1"}},
	{0x02, []string{"D+A", "A+D"}},
	{0x42, []string{"D+M", "M+D"}},
	{0x13, []string{"D-A"}},
	{0x53, []string{"D-M"}},
	{0x07, []string{"A-D"}},
	{0x47, []string{"M-D"}},
	{0x00, []string{"D&A", "A&D"}},
	{0x40, []string{"D&M", "M&D"}},
	{0x15, []string{"D|A", "A|D"}},
	{0x55, []string{"D|M", "M|D"}},
}

var jumps = [...]string{"", "JGT", "JEQ", "JGE", "JLT", "JNE", "JLE", "JMP"}

var dests = [...]string{"", "M", "D", "MD", "A", "AM", "AD", "AMD"}

var (
	compIndex = make(map[string]vm.Cell)
	compNames = make(map[vm.Cell]string)
	jumpIndex = make(map[string]vm.Cell)
)

func init() {
	for _, c := range comps {
		for _, n := range c.names {
			compIndex[n] = c.bits
		}
		compNames[c.bits] = c.names[0]
	}
	for i, j := range jumps[1:] {
		jumpIndex[j] = vm.Cell(i + 1)
	}
}

// Assemble compiles Hack assembly read from the supplied io.Reader and returns
// the resulting program and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (rom []vm.Cell, err error) {
	p := newParser(name)
	rom, err = p.Parse(r)
	if err != nil {
		return nil, err
	}
	return rom, nil
}

// Disassemble writes a disassembly of the instruction at position pc in rom to
// the specified io.Writer and returns the position of the next instruction and
// any write error.
func Disassemble(rom []vm.Cell, pc int, w io.Writer) (next int, err error) {
	ew := iox.NewErrWriter(w)
	op := rom[pc]
	if op >= 0 {
		io.WriteString(ew, "@"+strconv.Itoa(int(op)))
		return pc + 1, ew.Err
	}
	comp, ok := compNames[(op>>6)&0x7f]
	if !ok {
		io.WriteString(ew, "???")
		return pc + 1, ew.Err
	}
	if d := (op >> 3) & 7; d != 0 {
		io.WriteString(ew, dests[d]+"=")
	}
	io.WriteString(ew, comp)
	if j := op & 7; j != 0 {
		io.WriteString(ew, ";"+jumps[j])
	}
	return pc + 1, ew.Err
}

// DisassembleAll writes a disassembly of all instructions in rom to the
// specified io.Writer. The base argument specifies the real address of the
// first instruction (rom[0]). It will return any write error.
func DisassembleAll(rom []vm.Cell, base int, w io.Writer) error {
	ew := iox.NewErrWriter(w)
	for pc := 0; pc < len(rom); {
		fmt.Fprintf(ew, "% 6d\t", base+pc)
		pc, _ = Disassemble(rom, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
