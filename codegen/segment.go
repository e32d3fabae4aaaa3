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

package codegen

import (
	"strconv"

	"github.com/db47h/hackvm/vmcode"
)

// Mode is a segment addressing mode.
type Mode int

// Addressing modes.
const (
	BaseIndirect  Mode = iota // RAM[RAM[Reg]+Index]
	FixedIndirect             // RAM[Base+Index]
	Immediate                 // the value Index itself
	Symbolic                  // RAM[Symbol]
)

// Fixed segment bases.
const (
	PointerBase = 3
	TempBase    = 5
)

// MaxConstant is the largest value that fits in an A-instruction.
const MaxConstant = 1<<15 - 1

var baseRegs = [...]string{
	vmcode.Local:    "LCL",
	vmcode.Argument: "ARG",
	vmcode.This:     "THIS",
	vmcode.That:     "THAT",
}

// Address is the addressing recipe for a segment access.
type Address struct {
	Mode   Mode
	Reg    string // base register (BaseIndirect)
	Base   int    // fixed base address (FixedIndirect)
	Index  int
	Symbol string // variable name (Symbolic)
}

// Resolve returns the addressing recipe for seg[index]. The unit name is only
// used to qualify static variables.
func Resolve(unit string, seg vmcode.Segment, index int) (Address, error) {
	if seg < vmcode.Local || seg > vmcode.Temp {
		return Address{}, vmcode.NewError(vmcode.UnknownSegment, "", seg.String())
	}
	if index < 0 || index > MaxConstant {
		return Address{}, vmcode.NewError(vmcode.InvalidOperand, "", "index "+strconv.Itoa(index)+" out of range")
	}
	switch seg {
	case vmcode.Local, vmcode.Argument, vmcode.This, vmcode.That:
		return Address{Mode: BaseIndirect, Reg: baseRegs[seg], Index: index}, nil
	case vmcode.Pointer:
		return Address{Mode: FixedIndirect, Base: PointerBase, Index: index}, nil
	case vmcode.Temp:
		return Address{Mode: FixedIndirect, Base: TempBase, Index: index}, nil
	case vmcode.Constant:
		return Address{Mode: Immediate, Index: index}, nil
	case vmcode.Static:
		if !vmcode.IsIdent(unit) {
			return Address{}, vmcode.NewError(vmcode.InvalidIdentifier, "", "unit name "+strconv.Quote(unit))
		}
		return Address{Mode: Symbolic, Index: index, Symbol: unit + "." + strconv.Itoa(index)}, nil
	}
	panic("unreachable")
}
