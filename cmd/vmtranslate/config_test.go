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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func TestDecodeConfig(t *testing.T) {
	c := defaultConfig()
	err := decodeConfig(strings.NewReader(`
stack_base = 512
run_steps = 1000
`), &c)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	exp := config{StackBase: 512, Comments: true, RunSteps: 1000}
	if c != exp {
		t.Errorf("Expected %+v, got %+v", exp, c)
	}

	if err = decodeConfig(strings.NewReader("stack = 3\n"), &c); err == nil {
		t.Error("Expected error on unknown key")
	}
	if err = decodeConfig(strings.NewReader("comments = 3\n"), &c); err == nil {
		t.Error("Expected error on bad value type")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	c := defaultConfig()
	if err := loadConfig("", dir, &c); err != nil {
		t.Fatalf("Missing default file should be ignored: %+v", err)
	}
	if err := loadConfig(filepath.Join(dir, "nope.toml"), dir, &c); err == nil {
		t.Error("Expected error on missing explicit file")
	}
	err := os.WriteFile(filepath.Join(dir, configFileName), []byte("comments = false\nassemble = true\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	if err = loadConfig("", dir, &c); err != nil {
		t.Fatalf("%+v", err)
	}
	if c.Comments || !c.Assemble || c.StackBase != 256 {
		t.Errorf("Bad configuration %+v", c)
	}
}

func TestInputFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Prog")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if _, _, err := inputFiles(dir); err == nil {
		t.Error("Expected error on empty directory")
	}
	for _, n := range []string{"Sys.vm", "Main.vm", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("push constant 1\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	files, out, err := inputFiles(dir)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "Main.vm" || filepath.Base(files[1]) != "Sys.vm" {
		t.Errorf("Bad file list %v", files)
	}
	if out != filepath.Join(dir, "Prog.asm") {
		t.Errorf("Bad output file name %s", out)
	}

	files, out, err = inputFiles(files[1])
	if err != nil || len(files) != 1 || out != filepath.Join(dir, "Sys.asm") {
		t.Errorf("Bad input for single file: %v %s %v", files, out, err)
	}
}

func TestParseAll(t *testing.T) {
	dir := t.TempDir()
	src := map[string]string{
		"A.vm": "push constant 1\nfoo\n",
		"B.vm": "push constant 1\n",
		"C.vm": "pop heap 1\n",
	}
	var files []string
	for _, n := range []string{"A.vm", "B.vm", "C.vm"} {
		f := filepath.Join(dir, n)
		if err := os.WriteFile(f, []byte(src[n]), 0644); err != nil {
			t.Fatal(err)
		}
		files = append(files, f)
	}
	units, err := parseAll(files)
	if n := len(multierr.Errors(err)); n != 2 {
		t.Errorf("Expected 2 errors, got %d: %v", n, err)
	}
	if len(units) != 1 || units[0].Name != "B" {
		t.Errorf("Bad units %v", units)
	}
}
