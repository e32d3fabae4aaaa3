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
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/db47h/hackvm/asm"
	"github.com/db47h/hackvm/codegen"
	"github.com/db47h/hackvm/vm"
	"github.com/db47h/hackvm/vmcode"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	debug       bool
	dump        bool
	verbose     bool
	outFileName string
	cfgFileName string
)

// inputFiles returns the list of VM files to translate, sorted by name, and
// the default output file name.
func inputFiles(path string) (files []string, out string, err error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, "", errors.Wrap(err, "stat failed")
	}
	if !st.IsDir() {
		return []string{path}, strings.TrimSuffix(path, filepath.Ext(path)) + ".asm", nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", errors.Wrap(err, path)
	}
	// Glob returns files in lexical order
	files, err = filepath.Glob(filepath.Join(path, "*.vm"))
	if err != nil {
		return nil, "", errors.Wrap(err, path)
	}
	if len(files) == 0 {
		return nil, "", errors.Errorf("%s: no .vm files found", path)
	}
	return files, filepath.Join(path, filepath.Base(abs)+".asm"), nil
}

// parseAll parses all files. Errors are combined so that every malformed file
// gets reported.
func parseAll(files []string) ([]*vmcode.Unit, error) {
	var units []*vmcode.Unit
	var err error
	for _, name := range files {
		u, e := vmcode.ParseFile(name)
		if e != nil {
			err = multierr.Append(err, e)
			continue
		}
		units = append(units, u)
	}
	return units, err
}

func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// report writes err to w, one line per combined error. When debugging, it
// also dumps the machine state with the stack starting at base.
func report(w io.Writer, i *vm.Instance, base int, err error) {
	for _, e := range multierr.Errors(err) {
		if debug {
			fmt.Fprintf(w, "%+v\n", e)
		} else {
			fmt.Fprintf(w, "%v\n", e)
		}
	}
	if debug && i != nil {
		i.Dump(w, base)
	}
}

func atExit(i *vm.Instance, base int, err error) {
	if err == nil {
		return
	}
	report(os.Stderr, i, base, err)
	os.Exit(1)
}

// execute runs the program in the emulator for at most steps instructions.
func execute(rom []vm.Cell, steps int64, stackBase int, log *zap.Logger) (*vm.Instance, error) {
	i, err := vm.New(rom, vm.MaxSteps(steps))
	if err != nil {
		return nil, err
	}
	err = i.Run()
	log.Info("run complete",
		zap.Int64("instructions", i.InstructionCount()),
		zap.Bool("halted", i.Halted()),
		zap.Error(err))
	if errors.Cause(err) == vm.ErrStepLimit {
		// reported, but the machine state is still dumped
		fmt.Fprintf(os.Stderr, "%v\n", err)
		err = nil
	}
	if err != nil {
		return i, err
	}
	fmt.Printf("SP: %d\n", i.Peek(vm.SP))
	return i, i.Dump(os.Stdout, stackBase)
}

func main() {
	var err error
	var i *vm.Instance
	cfg := defaultConfig()
	log := zap.NewNop()

	defer func() {
		log.Sync()
		atExit(i, cfg.StackBase, err)
	}()

	var (
		noComments bool
		hack       bool
		stackBase  int
		runSteps   int64
	)
	flag.StringVar(&outFileName, "o", "", "write assembly to `filename`")
	flag.BoolVar(&hack, "hack", false, "also assemble the output to a .hack file")
	flag.Int64Var(&runSteps, "run", 0, "run the program in the emulator for at most `N` instructions")
	flag.BoolVar(&noComments, "nocomments", false, "do not emit VM instructions as comments")
	flag.IntVar(&stackBase, "stack", codegen.DefaultStackBase, "initial stack pointer `address`")
	flag.StringVar(&cfgFileName, "config", "", "load configuration from `filename`")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	flag.BoolVar(&dump, "dump", false, "dump parsed units to stdout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] file.vm|directory\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	files, out, err := inputFiles(flag.Arg(0))
	if err != nil {
		return
	}
	if outFileName != "" {
		out = outFileName
	}

	if err = loadConfig(cfgFileName, filepath.Dir(files[0]), &cfg); err != nil {
		return
	}
	// explicit flags override the configuration file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "nocomments":
			cfg.Comments = !noComments
		case "hack":
			cfg.Assemble = hack
		case "stack":
			cfg.StackBase = stackBase
		case "run":
			cfg.RunSteps = runSteps
		}
	})

	l, err := newLogger()
	if err != nil {
		return
	}
	log = l

	units, err := parseAll(files)
	if err != nil {
		return
	}
	if dump {
		spew.Fdump(os.Stdout, units)
	}

	var b bytes.Buffer
	if err = codegen.Link(&b, codegen.NewProgram(units...), append(cfg.options(), codegen.Logger(log))...); err != nil {
		return
	}
	if err = os.WriteFile(out, b.Bytes(), 0644); err != nil {
		err = errors.Wrap(err, "write failed")
		return
	}
	log.Info("assembly written", zap.String("file", out), zap.Int("units", len(units)))

	if !cfg.Assemble && cfg.RunSteps <= 0 {
		return
	}
	rom, err := asm.Assemble(out, &b)
	if err != nil {
		return
	}
	if cfg.Assemble {
		hackName := strings.TrimSuffix(out, filepath.Ext(out)) + ".hack"
		if err = vm.Save(hackName, rom); err != nil {
			return
		}
		log.Info("binary written", zap.String("file", hackName), zap.Int("words", len(rom)))
	}
	if cfg.RunSteps > 0 {
		i, err = execute(rom, cfg.RunSteps, cfg.StackBase, log)
	}
}
