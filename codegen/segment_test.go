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

package codegen_test

import (
	"testing"

	"github.com/db47h/hackvm/codegen"
	"github.com/db47h/hackvm/vmcode"
)

func TestResolve(t *testing.T) {
	var data = []struct {
		seg   vmcode.Segment
		index int
		want  codegen.Address
	}{
		{vmcode.Local, 2, codegen.Address{Mode: codegen.BaseIndirect, Reg: "LCL", Index: 2}},
		{vmcode.Argument, 0, codegen.Address{Mode: codegen.BaseIndirect, Reg: "ARG"}},
		{vmcode.This, 6, codegen.Address{Mode: codegen.BaseIndirect, Reg: "THIS", Index: 6}},
		{vmcode.That, 5, codegen.Address{Mode: codegen.BaseIndirect, Reg: "THAT", Index: 5}},
		{vmcode.Pointer, 1, codegen.Address{Mode: codegen.FixedIndirect, Base: 3, Index: 1}},
		{vmcode.Temp, 6, codegen.Address{Mode: codegen.FixedIndirect, Base: 5, Index: 6}},
		{vmcode.Constant, 32767, codegen.Address{Mode: codegen.Immediate, Index: 32767}},
		{vmcode.Static, 3, codegen.Address{Mode: codegen.Symbolic, Index: 3, Symbol: "Foo.3"}},
	}
	for _, test := range data {
		a, err := codegen.Resolve("Foo", test.seg, test.index)
		if err != nil {
			t.Errorf("%v %d: %+v", test.seg, test.index, err)
			continue
		}
		if a != test.want {
			t.Errorf("%v %d: expected %+v, got %+v", test.seg, test.index, test.want, a)
		}
	}
}

func TestResolve_errors(t *testing.T) {
	var data = []struct {
		seg   vmcode.Segment
		index int
		kind  vmcode.Kind
	}{
		{vmcode.Segment(42), 0, vmcode.UnknownSegment},
		{vmcode.Segment(-1), 0, vmcode.UnknownSegment},
		{vmcode.Local, -1, vmcode.InvalidOperand},
		{vmcode.Constant, 32768, vmcode.InvalidOperand},
	}
	for _, test := range data {
		_, err := codegen.Resolve("Foo", test.seg, test.index)
		if k := vmcode.KindOf(err); k != test.kind {
			t.Errorf("%v %d: expected %v, got %v", test.seg, test.index, test.kind, err)
		}
	}
}

func TestResolve_staticIsolation(t *testing.T) {
	a, _ := codegen.Resolve("A", vmcode.Static, 0)
	b, _ := codegen.Resolve("B", vmcode.Static, 0)
	if a.Symbol == b.Symbol {
		t.Errorf("Units A and B share static symbol %s", a.Symbol)
	}
}

func TestResolve_unitName(t *testing.T) {
	for _, unit := range []string{"", "my-prog", "01main", "My Prog", "a$b"} {
		_, err := codegen.Resolve(unit, vmcode.Static, 0)
		if k := vmcode.KindOf(err); k != vmcode.InvalidIdentifier {
			t.Errorf("%q: expected %v, got %v", unit, vmcode.InvalidIdentifier, err)
		}
	}
	// only static variables depend on the unit name
	if _, err := codegen.Resolve("my-prog", vmcode.Local, 0); err != nil {
		t.Errorf("%+v", err)
	}
}
