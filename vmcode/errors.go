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
	"strconv"

	"github.com/pkg/errors"
)

// Kind classifies translation errors.
type Kind int

// Error kinds.
const (
	UnknownOperator Kind = iota + 1
	UnknownSegment
	IllegalPopTarget
	MalformedOperandCount
	NegativeLocalCount
	NegativeArgCount
	InvalidOperand
	InvalidIdentifier
)

var kindNames = [...]string{
	"",
	"unknown arithmetic operator",
	"unknown segment",
	"illegal pop target",
	"malformed operand count",
	"negative local count",
	"negative argument count",
	"invalid operand",
	"invalid identifier",
}

func (k Kind) String() string {
	if k <= 0 || int(k) >= len(kindNames) {
		return "error"
	}
	return kindNames[k]
}

// Error is a translation error. All translation errors are fatal.
type Error struct {
	Kind  Kind
	Unit  string // unit name, may be empty
	Line  int    // source line, 0 if unknown
	Instr string // offending instruction or source text
	Msg   string // optional detail
}

func (e *Error) Error() string {
	var b []byte
	if e.Unit != "" {
		b = append(b, e.Unit...)
		if e.Line > 0 {
			b = append(b, ':')
			b = strconv.AppendInt(b, int64(e.Line), 10)
		}
		b = append(b, ": "...)
	}
	b = append(b, e.Kind.String()...)
	if e.Msg != "" {
		b = append(b, ": "...)
		b = append(b, e.Msg...)
	}
	if e.Instr != "" {
		b = append(b, " in \""...)
		b = append(b, e.Instr...)
		b = append(b, '"')
	}
	return string(b)
}

// NewError returns a new *Error with a stack trace attached.
func NewError(kind Kind, instr, msg string) error {
	return errors.WithStack(&Error{Kind: kind, Instr: instr, Msg: msg})
}

// Locate fills in the unit, line and instruction text of err if its cause is
// an *Error that does not have them yet. err is returned.
func Locate(err error, unit string, line int, instr string) error {
	if e, ok := errors.Cause(err).(*Error); ok {
		if e.Unit == "" {
			e.Unit = unit
		}
		if e.Line == 0 {
			e.Line = line
		}
		if e.Instr == "" {
			e.Instr = instr
		}
	}
	return err
}

// KindOf returns the Kind of err's cause, or 0 if it is not an *Error.
func KindOf(err error) Kind {
	if e, ok := errors.Cause(err).(*Error); ok {
		return e.Kind
	}
	return 0
}
