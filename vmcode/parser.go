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

package vmcode

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// IsIdent returns true if s is a valid VM identifier: a sequence of letters,
// digits, '_', '.' and ':' that does not start with a digit.
func IsIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == '.', c == ':':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

type parser struct {
	unit string
	line int
	text string
}

func (p *parser) fail(kind Kind, msg string) error {
	return errors.WithStack(&Error{Kind: kind, Unit: p.unit, Line: p.line, Instr: p.text, Msg: msg})
}

func (p *parser) arity(f []string, n int) error {
	if len(f) != n+1 {
		return p.fail(MalformedOperandCount, f[0]+" expects "+strconv.Itoa(n)+" operand(s), got "+strconv.Itoa(len(f)-1))
	}
	return nil
}

func (p *parser) ident(s string) (string, error) {
	if !IsIdent(s) {
		return "", p.fail(InvalidIdentifier, strconv.Quote(s))
	}
	return s, nil
}

func (p *parser) number(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, p.fail(InvalidOperand, "expected integer, got "+strconv.Quote(s))
	}
	return n, nil
}

func (p *parser) segment(f []string) (Segment, int, error) {
	if err := p.arity(f, 2); err != nil {
		return 0, 0, err
	}
	seg, ok := ParseSegment(f[1])
	if !ok {
		return 0, 0, p.fail(UnknownSegment, strconv.Quote(f[1]))
	}
	n, err := p.number(f[2])
	return seg, n, err
}

// parse parses the fields of a single line.
func (p *parser) parse(f []string) (Instruction, error) {
	switch f[0] {
	case "push":
		seg, n, err := p.segment(f)
		if err != nil {
			return nil, err
		}
		return Push{seg, n}, nil
	case "pop":
		seg, n, err := p.segment(f)
		if err != nil {
			return nil, err
		}
		return Pop{seg, n}, nil
	case "label", "goto", "if-goto":
		if err := p.arity(f, 1); err != nil {
			return nil, err
		}
		name, err := p.ident(f[1])
		if err != nil {
			return nil, err
		}
		switch f[0] {
		case "label":
			return Label{name}, nil
		case "goto":
			return Goto{name}, nil
		}
		return IfGoto{name}, nil
	case "function", "call":
		if err := p.arity(f, 2); err != nil {
			return nil, err
		}
		name, err := p.ident(f[1])
		if err != nil {
			return nil, err
		}
		n, err := p.number(f[2])
		if err != nil {
			return nil, err
		}
		if f[0] == "function" {
			return Function{name, n}, nil
		}
		return Call{name, n}, nil
	case "return":
		if err := p.arity(f, 0); err != nil {
			return nil, err
		}
		return Return{}, nil
	}
	// anything else must be an arithmetic command
	op, ok := ParseOp(f[0])
	if !ok {
		return nil, p.fail(UnknownOperator, strconv.Quote(f[0]))
	}
	if err := p.arity(f, 0); err != nil {
		return nil, err
	}
	return Arithmetic{op}, nil
}

// Parse reads VM source code from r and returns the corresponding compilation
// unit.
//
// The name parameter is the source file name. The unit name is derived from it
// with UnitName and is also used in error messages.
//
// Syntax errors have an *Error cause (see errors.Cause).
func Parse(name string, r io.Reader) (*Unit, error) {
	p := &parser{unit: UnitName(name)}
	u := &Unit{Name: p.unit}
	s := bufio.NewScanner(r)
	for s.Scan() {
		p.line++
		p.text = s.Text()
		if i := strings.Index(p.text, "//"); i >= 0 {
			p.text = p.text[:i]
		}
		p.text = strings.TrimSpace(p.text)
		f := strings.Fields(p.text)
		if len(f) == 0 {
			continue
		}
		in, err := p.parse(f)
		if err != nil {
			return nil, err
		}
		u.Code = append(u.Code, Stmt{p.line, in})
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "%s: read failed", name)
	}
	return u, nil
}

// ParseFile parses the VM source file fileName.
func ParseFile(fileName string) (*Unit, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	return Parse(fileName, f)
}
