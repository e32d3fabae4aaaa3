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

package asm

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/db47h/hackvm/vm"
)

// maxErrors is the maximum number of errors reported by Assemble.
const maxErrors = 10

// VarBase is the address of the first variable.
const VarBase = 16

// Error is an assembly error at a given position.
type Error struct {
	Pos scanner.Position
	Msg string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrAsm is the error type returned by Assemble: a list of assembly errors in
// source order.
type ErrAsm []Error

func (e ErrAsm) Error() string {
	var b strings.Builder
	for i := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e[i].Error())
	}
	return b.String()
}

var predefined = map[string]vm.Cell{
	"SP":     vm.SP,
	"LCL":    vm.LCL,
	"ARG":    vm.ARG,
	"THIS":   vm.THIS,
	"THAT":   vm.THAT,
	"SCREEN": vm.SCREEN,
	"KBD":    vm.KBD,
}

func init() {
	for i := 0; i < 16; i++ {
		predefined["R"+strconv.Itoa(i)] = vm.Cell(i)
	}
}

func isSymbolRune(ch byte, i int) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
		return true
	case ch == '_', ch == '.', ch == '$', ch == ':':
		return true
	case ch >= '0' && ch <= '9':
		return i > 0
	}
	return false
}

func isSymbol(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isSymbolRune(s[i], i) {
			return false
		}
	}
	return true
}

// symbol use in an A-instruction, resolved in the second pass.
type symbolUse struct {
	pos  scanner.Position
	name string
	pc   int
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type parser struct {
	name   string
	rom    []vm.Cell
	labels map[string]labelSite
	uses   []symbolUse
	errs   ErrAsm
}

func newParser(name string) *parser {
	return &parser{
		name:   name,
		labels: make(map[string]labelSite),
	}
}

func (p *parser) error(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, Error{pos, msg})
	}
}

func (p *parser) write(v vm.Cell) {
	p.rom = append(p.rom, v)
}

// parseC parses a C-instruction of the form dest=comp;jump.
func (p *parser) parseC(pos scanner.Position, s string) {
	var dest, jump vm.Cell
	if k := strings.IndexByte(s, '='); k >= 0 {
		for _, r := range s[:k] {
			var bit vm.Cell
			switch r {
			case 'A':
				bit = 4
			case 'D':
				bit = 2
			case 'M':
				bit = 1
			}
			if bit == 0 || dest&bit != 0 {
				p.error(pos, "Invalid destination: "+s[:k])
				return
			}
			dest |= bit
		}
		if k == 0 {
			p.error(pos, "Empty destination: "+s)
			return
		}
		s = s[k+1:]
	}
	if k := strings.IndexByte(s, ';'); k >= 0 {
		j, ok := jumpIndex[s[k+1:]]
		if !ok {
			p.error(pos, "Invalid jump: "+s[k+1:])
			return
		}
		jump = j
		s = s[:k]
	}
	comp, ok := compIndex[s]
	if !ok {
		p.error(pos, "Invalid computation: "+s)
		return
	}
	p.write(vm.Cell(0xe000 | uint16(comp)<<6 | uint16(dest)<<3 | uint16(jump)))
}

func (p *parser) parseLine(pos scanner.Position, s string) {
	switch s[0] {
	case '(':
		if s[len(s)-1] != ')' {
			p.error(pos, "Missing ) in label definition: "+s)
			return
		}
		n := s[1 : len(s)-1]
		if !isSymbol(n) {
			p.error(pos, "Invalid label name: "+n)
			return
		}
		if _, ok := predefined[n]; ok {
			p.error(pos, "Label redefinition: "+n+" is a predefined symbol")
			return
		}
		if l, ok := p.labels[n]; ok {
			p.error(pos, "Label redefinition: "+n+", previous definition here: "+l.pos.String())
			return
		}
		if len(p.rom) >= vm.ROMSize {
			p.error(pos, "Label address out of range: "+n)
			return
		}
		p.labels[n] = labelSite{pos, len(p.rom)}
	case '@':
		v := s[1:]
		if len(v) > 0 && v[0] >= '0' && v[0] <= '9' {
			n, err := strconv.ParseUint(v, 10, 16)
			if err != nil || n > 32767 {
				p.error(pos, "Invalid constant: "+v)
				return
			}
			p.write(vm.Cell(n))
			return
		}
		if !isSymbol(v) {
			p.error(pos, "Invalid symbol: "+v)
			return
		}
		p.uses = append(p.uses, symbolUse{pos, v, len(p.rom)})
		p.write(0)
	default:
		p.parseC(pos, s)
	}
}

// Parse does the parsing and compiling.
func (p *parser) Parse(r io.Reader) ([]vm.Cell, error) {
	s := bufio.NewScanner(r)
	pos := scanner.Position{Filename: p.name, Column: 1}
	next := 0
	for s.Scan() {
		l := s.Text()
		pos.Line++
		pos.Offset = next
		next += len(l) + 1
		if k := strings.Index(l, "//"); k >= 0 {
			l = l[:k]
		}
		l = strings.Join(strings.Fields(l), "")
		if l == "" {
			continue
		}
		p.parseLine(pos, l)
		if len(p.rom) > vm.ROMSize {
			p.error(pos, "Program too large")
			break
		}
	}
	if err := s.Err(); err != nil {
		p.error(pos, err.Error())
	}

	// resolve symbols: labels first, then predefined symbols. Anything else
	// is a variable, allocated in order of first use.
	vars := make(map[string]vm.Cell)
	nextVar := vm.Cell(VarBase)
	for _, u := range p.uses {
		if l, ok := p.labels[u.name]; ok {
			p.rom[u.pc] = vm.Cell(l.address)
			continue
		}
		if v, ok := predefined[u.name]; ok {
			p.rom[u.pc] = v
			continue
		}
		v, ok := vars[u.name]
		if !ok {
			if nextVar >= vm.SCREEN {
				p.error(u.pos, "Too many variables: "+u.name)
				break
			}
			v = nextVar
			vars[u.name] = v
			nextVar++
		}
		p.rom[u.pc] = v
	}

	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return p.rom, nil
}
