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

package codegen

import (
	"bytes"
	"io"

	"github.com/db47h/hackvm/vmcode"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Program is an ordered set of compilation units.
type Program struct {
	Units []*vmcode.Unit
	entry bool
}

// NewProgram returns a new Program made of the given units, in that order. It
// scans all units for a definition of Sys.init.
func NewProgram(units ...*vmcode.Unit) *Program {
	p := &Program{Units: units}
	for _, u := range units {
		if u.Defines(EntryPoint) {
			p.entry = true
			break
		}
	}
	return p
}

// HasEntryPoint returns true if any unit of the program defines Sys.init.
func (p *Program) HasEntryPoint() bool { return p.entry }

// Link translates all units of p and writes the resulting assembly to w.
//
// The output starts with bootstrap code that initializes SP and calls Sys.init
// if p.HasEntryPoint() is true, followed by the code of each unit in order.
//
// Nothing is written to w if an error occurs. Translation errors have a
// *vmcode.Error cause.
func Link(w io.Writer, p *Program, opts ...Option) error {
	var buf bytes.Buffer
	t, err := New(&buf, opts...)
	if err != nil {
		return err
	}
	if p.entry {
		t.log.Debug("entry point found", zap.String("function", EntryPoint))
	}
	if err = t.Bootstrap(p.entry); err != nil {
		return err
	}
	for _, u := range p.Units {
		n := t.labels
		if err = t.TranslateUnit(u); err != nil {
			return err
		}
		t.log.Debug("unit translated",
			zap.String("unit", u.Name),
			zap.Int("instructions", len(u.Code)),
			zap.Int("labels", t.labels-n))
	}
	if _, err = buf.WriteTo(w); err != nil {
		return errors.Wrap(err, "write failed")
	}
	return nil
}
