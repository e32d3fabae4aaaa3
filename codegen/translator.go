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
	"io"
	"strconv"

	"github.com/db47h/hackvm/internal/iox"
	"github.com/db47h/hackvm/vmcode"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// EntryPoint is the function called by the bootstrap code, if defined.
	EntryPoint = "Sys.init"
	// BootFunction is the function context of code appearing before the
	// first function declaration. It cannot clash with a VM identifier.
	BootFunction = "$boot"
	// DefaultStackBase is the initial value of SP.
	DefaultStackBase = 256
)

// scratch registers. They must not alias SP, LCL, ARG, THIS or THAT.
const (
	r13 = "R13"
	r14 = "R14"
)

// Translator translates VM instructions to Hack assembly. A Translator holds
// the state shared by all units of a single run: the label counter and the
// current function name. It is not safe for concurrent use.
type Translator struct {
	w         *iox.ErrWriter
	log       *zap.Logger
	stackBase int
	comments  bool
	labels    int    // label counter
	fn        string // current function
	unit      string // current unit
}

// Option interface
type Option func(*Translator) error

// StackBase sets the address the bootstrap code initializes SP with. The
// default is 256.
func StackBase(addr int) Option {
	return func(t *Translator) error {
		if addr < 0 || addr > MaxConstant {
			return errors.Errorf("stack base %d out of range", addr)
		}
		t.stackBase = addr
		return nil
	}
}

// Comments enables or disables the comment line emitted before the code of
// each VM instruction. Enabled by default.
func Comments(enable bool) Option {
	return func(t *Translator) error { t.comments = enable; return nil }
}

// Logger sets the logger. The default logger discards everything.
func Logger(l *zap.Logger) Option {
	return func(t *Translator) error {
		if l == nil {
			l = zap.NewNop()
		}
		t.log = l
		return nil
	}
}

// New returns a new Translator that writes assembly to w.
func New(w io.Writer, opts ...Option) (*Translator, error) {
	t := &Translator{
		w:         iox.NewErrWriter(w),
		log:       zap.NewNop(),
		stackBase: DefaultStackBase,
		comments:  true,
		fn:        BootFunction,
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Labels returns the number of labels allocated so far.
func (t *Translator) Labels() int { return t.labels }

// Function returns the name of the function being translated.
func (t *Translator) Function() string { return t.fn }

// nextLabel allocates a new label number. Numbers are never reused within a
// run.
func (t *Translator) nextLabel() string {
	n := t.labels
	t.labels++
	return strconv.Itoa(n)
}

// checkIdent returns an InvalidIdentifier error if name is not a valid VM
// identifier. Generated labels all contain a '$', valid identifiers never do.
func checkIdent(name string) error {
	if !vmcode.IsIdent(name) {
		return vmcode.NewError(vmcode.InvalidIdentifier, "", strconv.Quote(name))
	}
	return nil
}

// local returns the name of label within the current function.
func (t *Translator) local(label string) string {
	return t.fn + "$" + label
}

func (t *Translator) emit(lines ...string) {
	for _, l := range lines {
		t.w.WriteLine(l)
	}
}

// Bootstrap writes the program start-up code: set SP to the stack base, then
// call Sys.init if entry is true.
func (t *Translator) Bootstrap(entry bool) error {
	if t.comments {
		t.emit("// bootstrap")
	}
	t.emit("@"+strconv.Itoa(t.stackBase), "D=A", "@SP", "M=D")
	if entry {
		if err := t.Translate(vmcode.Call{Name: EntryPoint}); err != nil {
			return err
		}
	}
	return t.w.Err
}

// Translate writes the assembly code for a single instruction of the current
// unit.
func (t *Translator) Translate(in vmcode.Instruction) error {
	if t.comments {
		t.emit("// " + in.String())
	}
	var err error
	switch in := in.(type) {
	case vmcode.Arithmetic:
		err = t.writeArithmetic(in.Op)
	case vmcode.Push:
		err = t.writePush(in.Segment, in.Index)
	case vmcode.Pop:
		err = t.writePop(in.Segment, in.Index)
	case vmcode.Label:
		if err = checkIdent(in.Name); err == nil {
			t.emit("(" + t.local(in.Name) + ")")
		}
	case vmcode.Goto:
		if err = checkIdent(in.Name); err == nil {
			t.emit("@"+t.local(in.Name), "0;JMP")
		}
	case vmcode.IfGoto:
		if err = checkIdent(in.Name); err == nil {
			t.writeIfGoto(in.Name)
		}
	case vmcode.Function:
		err = t.writeFunction(in.Name, in.Locals)
	case vmcode.Call:
		err = t.writeCall(in.Name, in.Args)
	case vmcode.Return:
		t.writeReturn()
	default:
		return errors.Errorf("unsupported instruction type %T", in)
	}
	if err != nil {
		return vmcode.Locate(err, t.unit, 0, in.String())
	}
	return t.w.Err
}

// TranslateUnit translates all instructions of u, in order.
func (t *Translator) TranslateUnit(u *vmcode.Unit) error {
	// the unit name qualifies static variables
	if !vmcode.IsIdent(u.Name) {
		err := vmcode.NewError(vmcode.InvalidIdentifier, "", "unit name "+strconv.Quote(u.Name))
		return vmcode.Locate(err, u.Name, 0, "")
	}
	t.unit = u.Name
	for _, s := range u.Code {
		if err := t.Translate(s.Instruction); err != nil {
			return vmcode.Locate(err, u.Name, s.Line, s.String())
		}
	}
	return nil
}
