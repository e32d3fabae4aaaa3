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

// The hackasm command assembles Hack assembly into .hack binary text files.
//
// Usage:
//
//	hackasm [flags] file.asm|file.hack
//
//	-d
//		  disassemble a .hack file
//	-debug
//		  enable debug diagnostics
//	-o filename
//		  output filename
//
// By default, Foo.asm is assembled to Foo.hack. With -d, the disassembly is
// written to stdout unless -o is specified.
//
// See package github.com/db47h/hackvm/asm for the assembly syntax.
package main
