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

// Package vmcode defines the instruction set of the stack based virtual machine
// and parses its textual form.
//
// Source files contain one instruction per line. Everything after "//" is a
// comment. Tokens are separated by white space:
//
//	instruction		operands	stack
//	-----------		--------	-----
//	add sub and or		-		xy-z
//	eq gt lt		-		xy-b	(b is -1 for true, 0 for false)
//	neg not			-		x-y
//	push			segment index	-x
//	pop			segment index	x-
//	label			name
//	goto			name
//	if-goto			name		x-	(jump if x != 0)
//	function		name nLocals
//	call			name nArgs
//	return
//
// Segments are local, argument, this, that, constant, static, pointer and temp.
// constant is not a valid pop target.
//
// Identifiers are sequences of letters, digits, '_', '.' and ':' that do not
// start with a digit.
package vmcode
