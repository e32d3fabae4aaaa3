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

// Package vm implements a Hack CPU emulator.
//
// The CPU has two 16 bits registers, A and D, a program counter, a read-only
// program memory (ROM) and a data memory (RAM). Instructions are 16 bits words:
//
//	0vvvvvvvvvvvvvvv	A-instruction: A = v
//	111accccccdddjjj	C-instruction: dest = comp; jump
//
// There is no halt instruction. Run stops when the PC moves past the end of the
// program or when it reaches the customary end loop:
//
//	(END)
//		@END
//		0;JMP
//
// The screen and keyboard are plain RAM cells: no I/O is emulated.
package vm
