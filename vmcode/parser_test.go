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

package vmcode_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/db47h/hackvm/vmcode"
	"github.com/pkg/errors"
)

func TestParse(t *testing.T) {
	code := `// header comment
function SimpleFunction.test 2
	push local 0   // trailing
	push local 1
	add
	not

	pop static 3
	label LOOP_1
	if-goto LOOP_1
	goto END.x:y
	call Math.multiply 2
	neg
	eq
	return
`
	u, err := vmcode.Parse("dir/SimpleFunction.vm", strings.NewReader(code))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	want := &vmcode.Unit{
		Name: "SimpleFunction",
		Code: []vmcode.Stmt{
			{2, vmcode.Function{Name: "SimpleFunction.test", Locals: 2}},
			{3, vmcode.Push{Segment: vmcode.Local, Index: 0}},
			{4, vmcode.Push{Segment: vmcode.Local, Index: 1}},
			{5, vmcode.Arithmetic{Op: vmcode.Add}},
			{6, vmcode.Arithmetic{Op: vmcode.Not}},
			{8, vmcode.Pop{Segment: vmcode.Static, Index: 3}},
			{9, vmcode.Label{Name: "LOOP_1"}},
			{10, vmcode.IfGoto{Name: "LOOP_1"}},
			{11, vmcode.Goto{Name: "END.x:y"}},
			{12, vmcode.Call{Name: "Math.multiply", Args: 2}},
			{13, vmcode.Arithmetic{Op: vmcode.Neg}},
			{14, vmcode.Arithmetic{Op: vmcode.Eq}},
			{15, vmcode.Return{}},
		},
	}
	if !reflect.DeepEqual(u, want) {
		t.Errorf("Expected:\n%s\nGot:\n%s", spew.Sdump(want), spew.Sdump(u))
	}
}

func TestParse_errors(t *testing.T) {
	var data = []struct {
		code string
		kind vmcode.Kind
		line int
	}{
		{"push constant 1\nmul", vmcode.UnknownOperator, 2},
		{"push heap 0", vmcode.UnknownSegment, 1},
		{"push constant", vmcode.MalformedOperandCount, 1},
		{"add 1", vmcode.MalformedOperandCount, 1},
		{"\n\nreturn 0", vmcode.MalformedOperandCount, 3},
		{"label", vmcode.MalformedOperandCount, 1},
		{"function f 1 2", vmcode.MalformedOperandCount, 1},
		{"push local x", vmcode.InvalidOperand, 1},
		{"call f two", vmcode.InvalidOperand, 1},
		{"goto 1abc", vmcode.InvalidIdentifier, 1},
		{"label a$b", vmcode.InvalidIdentifier, 1},
		{"function f-g 0", vmcode.InvalidIdentifier, 1},
	}
	for _, test := range data {
		_, err := vmcode.Parse("Test.vm", strings.NewReader(test.code))
		if err == nil {
			t.Errorf("%q: expected error", test.code)
			continue
		}
		e, ok := errors.Cause(err).(*vmcode.Error)
		if !ok {
			t.Errorf("%q: unexpected error type %T", test.code, errors.Cause(err))
			continue
		}
		if e.Kind != test.kind || e.Line != test.line || e.Unit != "Test" {
			t.Errorf("%q: expected %v at line %d, got %v", test.code, test.kind, test.line, err)
		}
	}
}

func TestIsIdent(t *testing.T) {
	for _, s := range []string{"a", "Main.main", "_x1", ":loop", "IF_TRUE.0"} {
		if !vmcode.IsIdent(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []string{"", "0a", "a b", "a$b", "a-b", "é"} {
		if vmcode.IsIdent(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestInstruction_String(t *testing.T) {
	code := "push constant 7\npop pointer 1\nlabel X\ngoto X\nif-goto X\nfunction f 3\ncall f 1\nreturn\nlt\n"
	u, err := vmcode.Parse("T", strings.NewReader(code))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	var b strings.Builder
	for _, s := range u.Code {
		b.WriteString(s.String())
		b.WriteByte('\n')
	}
	if b.String() != code {
		t.Errorf("Expected %q, got %q", code, b.String())
	}
}

func TestUnit_Defines(t *testing.T) {
	u := vmcode.NewUnit("Sys", vmcode.Function{Name: "Sys.init"}, vmcode.Call{Name: "Main.main"})
	if !u.Defines("Sys.init") {
		t.Error("Sys.init not found")
	}
	if u.Defines("Main.main") {
		t.Error("Main.main is called, not defined")
	}
}

func TestError(t *testing.T) {
	err := vmcode.NewError(vmcode.IllegalPopTarget, "", "cannot pop to constant")
	err = vmcode.Locate(err, "Main", 12, "pop constant 1")
	err = vmcode.Locate(err, "Other", 1, "ignored")
	exp := `Main:12: illegal pop target: cannot pop to constant in "pop constant 1"`
	if err.Error() != exp {
		t.Errorf("Expected %s, got %s", exp, err)
	}
	if k := vmcode.KindOf(err); k != vmcode.IllegalPopTarget {
		t.Errorf("Bad kind %v", k)
	}
	if k := vmcode.KindOf(errors.New("foo")); k != 0 {
		t.Errorf("Bad kind %v", k)
	}
}

func ExampleParse() {
	u, err := vmcode.Parse("Foo.vm", strings.NewReader("push constant 1\nfoo\n"))
	fmt.Println(u, err)

	u, _ = vmcode.Parse("Foo.vm", strings.NewReader("// comment\npush argument 1 // load\n"))
	fmt.Println(u.Name, u.Code[0].Line, u.Code[0])

	// Output:
	// <nil> Foo:2: unknown arithmetic operator: "foo" in "foo"
	// Foo 2 push argument 1
}
