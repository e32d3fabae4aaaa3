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

// comp field computing M op D, with M the left operand.
var binaryOps = [...]string{
	vmcode.Add: "D+M",
	vmcode.Sub: "M-D",
	vmcode.And: "D&M",
	vmcode.Or:  "D|M",
}

var unaryOps = [...]string{
	vmcode.Neg: "-M",
	vmcode.Not: "!M",
}

var jumps = [...]string{
	vmcode.Eq: "JEQ",
	vmcode.Gt: "JGT",
	vmcode.Lt: "JLT",
}

// pushD writes D to the stack top and increments SP.
func (t *Translator) pushD() {
	t.emit("@SP", "A=M", "M=D", "@SP", "M=M+1")
}

// popD decrements SP and loads the stack top in D.
func (t *Translator) popD() {
	t.emit("@SP", "AM=M-1", "D=M")
}

func (t *Translator) writeArithmetic(op vmcode.Op) error {
	switch {
	case !op.Valid():
		return vmcode.NewError(vmcode.UnknownOperator, "", op.String())
	case op.Arity() == 1:
		t.emit("@SP", "A=M-1", "M="+unaryOps[op])
	case op.IsComparison():
		n := t.nextLabel()
		yes, end := "$cmp."+n+".true", "$cmp."+n+".end"
		// D = x - y, A points to x
		t.popD()
		t.emit("A=A-1", "D=M-D",
			"@"+yes, "D;"+jumps[op],
			"@SP", "A=M-1", "M=0",
			"@"+end, "0;JMP",
			"("+yes+")",
			"@SP", "A=M-1", "M=-1",
			"("+end+")")
	default:
		t.popD()
		t.emit("A=A-1", "M="+binaryOps[op])
	}
	return nil
}

func (t *Translator) writePush(seg vmcode.Segment, index int) error {
	a, err := Resolve(t.unit, seg, index)
	if err != nil {
		return err
	}
	switch a.Mode {
	case BaseIndirect:
		t.emit("@"+a.Reg, "D=M", "@"+strconv.Itoa(a.Index), "A=D+A", "D=M")
	case FixedIndirect:
		t.emit("@"+strconv.Itoa(a.Base+a.Index), "D=M")
	case Immediate:
		t.emit("@"+strconv.Itoa(a.Index), "D=A")
	case Symbolic:
		t.emit("@"+a.Symbol, "D=M")
	}
	t.pushD()
	return nil
}

func (t *Translator) writePop(seg vmcode.Segment, index int) error {
	if seg == vmcode.Constant {
		return vmcode.NewError(vmcode.IllegalPopTarget, "", "cannot pop to constant")
	}
	a, err := Resolve(t.unit, seg, index)
	if err != nil {
		return err
	}
	switch a.Mode {
	case BaseIndirect:
		// R13 = base + index
		t.emit("@"+a.Reg, "D=M", "@"+strconv.Itoa(a.Index), "D=D+A", "@"+r13, "M=D")
		t.popD()
		t.emit("@"+r13, "A=M", "M=D")
	case FixedIndirect:
		t.popD()
		t.emit("@"+strconv.Itoa(a.Base+a.Index), "M=D")
	case Symbolic:
		t.popD()
		t.emit("@"+a.Symbol, "M=D")
	}
	return nil
}

func (t *Translator) writeIfGoto(label string) {
	t.popD()
	t.emit("@"+t.local(label), "D;JNE")
}

func (t *Translator) writeFunction(name string, locals int) error {
	if err := checkIdent(name); err != nil {
		return err
	}
	if locals < 0 {
		return vmcode.NewError(vmcode.NegativeLocalCount, "", strconv.Itoa(locals))
	}
	if locals > MaxConstant {
		return vmcode.NewError(vmcode.InvalidOperand, "", "local count "+strconv.Itoa(locals)+" out of range")
	}
	t.fn = name
	t.emit("("+name+")", "@LCL", "A=M")
	for i := 0; i < locals; i++ {
		t.emit("M=0", "A=A+1")
	}
	// SP = LCL + locals
	t.emit("D=A", "@SP", "M=D")
	return nil
}

// writeCall pushes the frame {return address, LCL, ARG, THIS, THAT}, then
// sets ARG = SP - (args+5), LCL = SP and jumps to the callee.
func (t *Translator) writeCall(name string, args int) error {
	if err := checkIdent(name); err != nil {
		return err
	}
	if args < 0 {
		return vmcode.NewError(vmcode.NegativeArgCount, "", strconv.Itoa(args))
	}
	// ARG = SP - (args+5) must stay a valid constant
	if args > MaxConstant-5 {
		return vmcode.NewError(vmcode.InvalidOperand, "", "argument count "+strconv.Itoa(args)+" out of range")
	}
	ret := "$ret." + t.nextLabel()
	t.emit("@"+ret, "D=A")
	t.pushD()
	for _, r := range [...]string{"LCL", "ARG", "THIS", "THAT"} {
		t.emit("@"+r, "D=M")
		t.pushD()
	}
	t.emit("@SP", "D=M", "@"+strconv.Itoa(args+5), "D=D-A", "@ARG", "M=D",
		"@SP", "D=M", "@LCL", "M=D",
		"@"+name, "0;JMP",
		"("+ret+")")
	return nil
}

// writeReturn unwinds the frame at LCL. The return address is saved before
// the return value is stored at ARG[0]: with no arguments, both share the same
// slot.
func (t *Translator) writeReturn() {
	// R13 = frame, R14 = return address
	t.emit("@LCL", "D=M", "@"+r13, "M=D",
		"@5", "A=D-A", "D=M", "@"+r14, "M=D")
	// *ARG = pop(), SP = ARG+1
	t.popD()
	t.emit("@ARG", "A=M", "M=D",
		"@ARG", "D=M+1", "@SP", "M=D")
	// restore THAT, THIS, ARG, LCL from frame-1 ... frame-4
	for _, r := range [...]string{"THAT", "THIS", "ARG", "LCL"} {
		t.emit("@"+r13, "AM=M-1", "D=M", "@"+r, "M=D")
	}
	t.emit("@"+r14, "A=M", "0;JMP")
}
