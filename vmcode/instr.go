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

package vmcode

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Op is an arithmetic or logical operator.
type Op int

// Arithmetic and logical operators.
const (
	Add Op = iota
	Sub
	Neg
	Eq
	Gt
	Lt
	And
	Or
	Not
)

var opNames = [...]string{
	"add",
	"sub",
	"neg",
	"eq",
	"gt",
	"lt",
	"and",
	"or",
	"not",
}

var opIndex = make(map[string]Op)

// Segment is one of the eight virtual memory segments.
type Segment int

// Memory segments.
const (
	Local Segment = iota
	Argument
	This
	That
	Constant
	Static
	Pointer
	Temp
)

var segmentNames = [...]string{
	"local",
	"argument",
	"this",
	"that",
	"constant",
	"static",
	"pointer",
	"temp",
}

var segmentIndex = make(map[string]Segment)

func init() {
	for i, n := range opNames {
		opIndex[n] = Op(i)
	}
	for i, n := range segmentNames {
		segmentIndex[n] = Segment(i)
	}
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "op(" + strconv.Itoa(int(op)) + ")"
	}
	return opNames[op]
}

// Valid returns true if op is a known operator.
func (op Op) Valid() bool { return op >= 0 && int(op) < len(opNames) }

// Arity returns the number of stack operands consumed by op.
func (op Op) Arity() int {
	if op == Neg || op == Not {
		return 1
	}
	return 2
}

// IsComparison returns true for eq, gt and lt.
func (op Op) IsComparison() bool {
	return op == Eq || op == Gt || op == Lt
}

// ParseOp returns the operator with the given mnemonic.
func ParseOp(s string) (Op, bool) {
	op, ok := opIndex[s]
	return op, ok
}

func (s Segment) String() string {
	if s < 0 || int(s) >= len(segmentNames) {
		return "segment(" + strconv.Itoa(int(s)) + ")"
	}
	return segmentNames[s]
}

// ParseSegment returns the segment with the given name.
func ParseSegment(s string) (Segment, bool) {
	seg, ok := segmentIndex[s]
	return seg, ok
}

// Instruction is a single VM instruction. The concrete types are Arithmetic,
// Push, Pop, Label, Goto, IfGoto, Function, Call and Return.
type Instruction interface {
	String() string
	instruction()
}

// Arithmetic is an arithmetic or logical command (add, eq, not...).
type Arithmetic struct {
	Op Op
}

// Push pushes the value at Segment[Index] on the stack.
type Push struct {
	Segment Segment
	Index   int
}

// Pop pops the stack top into Segment[Index].
type Pop struct {
	Segment Segment
	Index   int
}

// Label declares a branch target local to the current function.
type Label struct {
	Name string
}

// Goto jumps unconditionally to a label.
type Goto struct {
	Name string
}

// IfGoto pops the stack top and jumps to a label if it is not zero.
type IfGoto struct {
	Name string
}

// Function declares a function entry point with Locals local variables.
type Function struct {
	Name   string
	Locals int
}

// Call calls a function after Args arguments have been pushed.
type Call struct {
	Name string
	Args int
}

// Return returns from the current function.
type Return struct{}

func (Arithmetic) instruction() {}
func (Push) instruction()       {}
func (Pop) instruction()        {}
func (Label) instruction()      {}
func (Goto) instruction()       {}
func (IfGoto) instruction()     {}
func (Function) instruction()   {}
func (Call) instruction()       {}
func (Return) instruction()     {}

func (i Arithmetic) String() string { return i.Op.String() }
func (i Push) String() string       { return "push " + i.Segment.String() + " " + strconv.Itoa(i.Index) }
func (i Pop) String() string        { return "pop " + i.Segment.String() + " " + strconv.Itoa(i.Index) }
func (i Label) String() string      { return "label " + i.Name }
func (i Goto) String() string       { return "goto " + i.Name }
func (i IfGoto) String() string     { return "if-goto " + i.Name }
func (i Function) String() string   { return "function " + i.Name + " " + strconv.Itoa(i.Locals) }
func (i Call) String() string       { return "call " + i.Name + " " + strconv.Itoa(i.Args) }
func (Return) String() string       { return "return" }

// Stmt is an Instruction along with the source line it was read from. Line is
// 0 for generated code.
type Stmt struct {
	Line int
	Instruction
}

// Unit is a compilation unit: a named sequence of instructions. The name
// qualifies the unit's static variables.
type Unit struct {
	Name string
	Code []Stmt
}

// NewUnit returns a Unit built from the given instructions, without line
// information.
func NewUnit(name string, code ...Instruction) *Unit {
	u := &Unit{Name: name, Code: make([]Stmt, len(code))}
	for i, in := range code {
		u.Code[i] = Stmt{Instruction: in}
	}
	return u
}

// Defines returns true if the unit declares a function with the given name.
func (u *Unit) Defines(fn string) bool {
	for _, s := range u.Code {
		if f, ok := s.Instruction.(Function); ok && f.Name == fn {
			return true
		}
	}
	return false
}

// UnitName returns the unit name for a source file: its base name without
// extension.
func UnitName(path string) string {
	b := filepath.Base(path)
	return strings.TrimSuffix(b, filepath.Ext(b))
}
