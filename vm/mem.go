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

package vm

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Read reads a program in .hack format from r: one instruction per line,
// written as 16 binary digits. Blank lines are ignored.
func Read(r io.Reader) ([]Cell, error) {
	var rom []Cell
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		l := strings.TrimSpace(s.Text())
		if l == "" {
			continue
		}
		if len(l) != 16 {
			return nil, errors.Errorf("line %d: expected 16 binary digits, got %q", line, l)
		}
		var v uint16
		for _, c := range []byte(l) {
			if c != '0' && c != '1' {
				return nil, errors.Errorf("line %d: invalid binary digit %q", line, c)
			}
			v = v<<1 | uint16(c-'0')
		}
		if len(rom) == ROMSize {
			return nil, errors.Errorf("line %d: program too large", line)
		}
		rom = append(rom, Cell(v))
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	return rom, nil
}

// Write writes rom to w in .hack format.
func Write(w io.Writer, rom []Cell) error {
	bw := bufio.NewWriter(w)
	var b [17]byte
	b[16] = '\n'
	for _, c := range rom {
		v := uint16(c)
		for k := 15; k >= 0; k-- {
			b[k] = '0' + byte(v&1)
			v >>= 1
		}
		if _, err := bw.Write(b[:]); err != nil {
			return errors.Wrap(err, "write failed")
		}
	}
	return errors.Wrap(bw.Flush(), "write failed")
}

// Load loads a program from a .hack file.
func Load(fileName string) ([]Cell, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	rom, err := Read(f)
	if err != nil {
		return nil, errors.Wrap(err, "load failed")
	}
	return rom, nil
}

// Save saves a program to a .hack file. The file is deleted if an error occurs.
func Save(fileName string, rom []Cell) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	defer func() {
		if e := f.Close(); err == nil && e != nil {
			err = errors.Wrap(e, "close failed")
		}
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	return errors.Wrap(Write(f, rom), "save failed")
}
