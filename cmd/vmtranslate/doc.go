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

// The vmtranslate command translates VM code to Hack assembly.
//
// Usage:
//
//	vmtranslate [flags] file.vm|directory
//
//	-config filename
//		  load configuration from filename
//	-debug
//		  enable debug diagnostics
//	-dump
//		  dump parsed units to stdout
//	-hack
//		  also assemble the output to a .hack file
//	-nocomments
//		  do not emit VM instructions as comments
//	-o filename
//		  write assembly to filename
//	-run N
//		  run the program in the emulator for at most N instructions
//	-stack address
//		  initial stack pointer address (default 256)
//	-v
//		  verbose logging
//
// When given a directory, all .vm files it contains are translated in file
// name order and linked into a single program named after the directory:
// Prog/Prog.asm for a directory Prog. A single file Foo.vm is translated to
// Foo.asm.
//
// The bootstrap code initializes SP and calls Sys.init if any of the input
// files defines it.
//
// -run: assembles the result, runs it in the emulator and prints the machine
// state, including the stack contents. Execution stops at the end of the
// program, on an end loop of the form "(L) @L 0;JMP", or after N
// instructions.
//
// -debug: prints errors with a full stack trace.
//
// Configuration:
//
// Settings can also be read from a TOML file, given with -config or found as
// vmtranslate.toml in the input directory. Flags explicitly set on the
// command line take precedence.
//
//	stack_base = 256
//	comments = true
//	assemble = false
//	run_steps = 0
package main
