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

// Package asm provides utility functions to assemble and disassemble Hack
// machine code.
//
// Syntax:
//
// There is one instruction or label definition per line. White space is
// ignored and comments start with "//" and run until the end of the line.
//
//	@value		A-instruction: load a decimal constant in 0..32767 into A
//	@symbol		A-instruction: load the value of a symbol into A
//	dest=comp;jump	C-instruction: both dest= and ;jump are optional
//	(LABEL)		define LABEL as the address of the next instruction
//
// dest is any combination of A, D and M, each appearing at most once. jump is
// one of JGT, JEQ, JGE, JLT, JNE, JLE or JMP. comp is one of:
//
//	0  1  -1  D  A  M  !D  !A  !M  -D  -A  -M
//	D+1  A+1  M+1  D-1  A-1  M-1
//	D+A  D+M  D-A  D-M  A-D  M-D  D&A  D&M  D|A  D|M
//
// Commutative operations may be written with their operands swapped (A+D,
// 1+M, M&D...).
//
// Symbols:
//
// Symbols start with a letter, '_', '.', '$' or ':', followed by any number of
// letters, digits, '_', '.', '$' or ':'. A symbol is resolved in this order:
//
//	- a label defined anywhere in the program (forward references are fine)
//	- a predefined symbol: SP, LCL, ARG, THIS, THAT (0 to 4), R0 to R15,
//	  SCREEN (16384) and KBD (24576)
//	- otherwise, a variable. Variables are allocated in order of first use,
//	  starting at address 16.
//
// Labels cannot be defined twice and cannot redefine a predefined symbol.
package asm
