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
	"fmt"
	"os"
	"strings"

	"github.com/db47h/hackvm/codegen"
	"github.com/db47h/hackvm/vmcode"
)

func ExampleLink() {
	u, err := vmcode.Parse("Add.vm", strings.NewReader(`
push constant 7
push constant 8
add
`))
	if err != nil {
		fmt.Println(err)
		return
	}
	if err = codegen.Link(os.Stdout, codegen.NewProgram(u), codegen.Comments(false)); err != nil {
		fmt.Println(err)
	}

	// Output:
	// @256
	// D=A
	// @SP
	// M=D
	// @7
	// D=A
	// @SP
	// A=M
	// M=D
	// @SP
	// M=M+1
	// @8
	// D=A
	// @SP
	// A=M
	// M=D
	// @SP
	// M=M+1
	// @SP
	// AM=M-1
	// D=M
	// A=A-1
	// M=D+M
}

func ExampleTranslator_TranslateUnit() {
	t, _ := codegen.New(os.Stdout)
	u := vmcode.NewUnit("Foo",
		vmcode.Pop{Segment: vmcode.Static, Index: 2},
		vmcode.Pop{Segment: vmcode.Constant, Index: 2})
	err := t.TranslateUnit(u)
	fmt.Println(err)

	// Output:
	// // pop static 2
	// @SP
	// AM=M-1
	// D=M
	// @Foo.2
	// M=D
	// // pop constant 2
	// Foo: illegal pop target: cannot pop to constant in "pop constant 2"
}
