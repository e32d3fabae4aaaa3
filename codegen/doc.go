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

// Package codegen translates VM code to Hack assembly.
//
// Memory segments are mapped as follows:
//
//	segment		address
//	-------		-------
//	local		RAM[LCL]+i
//	argument	RAM[ARG]+i
//	this		RAM[THIS]+i
//	that		RAM[THAT]+i
//	pointer		3+i
//	temp		5+i
//	static		variable <unit>.i
//	constant	i (immediate)
//
// Calling convention:
//
// A call pushes a frame of 5 words right above the arguments: the return
// address, followed by the caller's LCL, ARG, THIS and THAT. The callee's ARG
// points to its first argument and LCL to the word right after the frame.
// Return stores the return value at ARG[0] and sets SP to ARG+1.
//
//	ARG ->	arg 0
//		...
//		arg n-1
//		return address
//		saved LCL
//		saved ARG
//		saved THIS
//		saved THAT
//	LCL ->	local 0
//		...
//
// Labels:
//
// Branch labels are qualified with the enclosing function name as
// function$label. Code appearing before the first function declaration uses
// the function name "$boot". The translator also generates the labels
// $cmp.N.true and $cmp.N.end for comparisons and $ret.N for return addresses,
// N being a counter shared by all units of a program. VM identifiers cannot
// contain a '$', so none of these can clash with user symbols.
//
// R13 and R14 are used as scratch registers.
package codegen
