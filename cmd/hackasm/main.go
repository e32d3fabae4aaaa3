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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/db47h/hackvm/asm"
	"github.com/db47h/hackvm/vm"
	"github.com/pkg/errors"
)

var (
	debug       bool
	disasm      bool
	outFileName string
)

func atExit(err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%+v\n", err)
	os.Exit(1)
}

func assemble(fileName string) error {
	f, err := os.Open(fileName)
	if err != nil {
		return errors.Wrap(err, "open failed")
	}
	defer f.Close()
	rom, err := asm.Assemble(fileName, bufio.NewReader(f))
	if err != nil {
		return err
	}
	if outFileName == "" {
		outFileName = strings.TrimSuffix(fileName, filepath.Ext(fileName)) + ".hack"
	}
	return vm.Save(outFileName, rom)
}

func disassemble(fileName string) (err error) {
	rom, err := vm.Load(fileName)
	if err != nil {
		return err
	}
	var w io.Writer = os.Stdout
	if outFileName != "" {
		f, e := os.Create(outFileName)
		if e != nil {
			return errors.Wrap(e, "create failed")
		}
		defer func() {
			if e := f.Close(); err == nil && e != nil {
				err = errors.Wrap(e, "close failed")
			}
		}()
		w = f
	}
	bw := bufio.NewWriter(w)
	if err = asm.DisassembleAll(rom, 0, bw); err != nil {
		return err
	}
	return errors.Wrap(bw.Flush(), "write failed")
}

func main() {
	var err error
	defer func() {
		atExit(err)
	}()

	flag.BoolVar(&disasm, "d", false, "disassemble a .hack file")
	flag.StringVar(&outFileName, "o", "", "output `filename`")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] file.asm|file.hack\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if disasm {
		err = disassemble(flag.Arg(0))
	} else {
		err = assemble(flag.Arg(0))
	}
}
