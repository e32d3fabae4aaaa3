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
	"io"
	"os"
	"path/filepath"

	"github.com/db47h/hackvm/codegen"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// configFileName is the configuration file looked up next to the input when
// -config is not given.
const configFileName = "vmtranslate.toml"

type config struct {
	StackBase int   `toml:"stack_base"`
	Comments  bool  `toml:"comments"`
	Assemble  bool  `toml:"assemble"`
	RunSteps  int64 `toml:"run_steps"`
}

func defaultConfig() config {
	return config{
		StackBase: codegen.DefaultStackBase,
		Comments:  true,
	}
}

// decodeConfig reads a TOML configuration from r. Keys missing from the input
// keep the value they have in c.
func decodeConfig(r io.Reader, c *config) error {
	d := toml.NewDecoder(r)
	d.DisallowUnknownFields()
	return errors.Wrap(d.Decode(c), "bad configuration")
}

// loadConfig loads the configuration file fileName into c. If fileName is
// empty, it looks for vmtranslate.toml in dir and silently returns if there is
// none.
func loadConfig(fileName, dir string, c *config) error {
	if fileName == "" {
		fileName = filepath.Join(dir, configFileName)
		if _, err := os.Stat(fileName); err != nil {
			return nil
		}
	}
	f, err := os.Open(fileName)
	if err != nil {
		return errors.Wrap(err, "open failed")
	}
	defer f.Close()
	return errors.Wrap(decodeConfig(f, c), fileName)
}

func (c *config) options() []codegen.Option {
	return []codegen.Option{
		codegen.StackBase(c.StackBase),
		codegen.Comments(c.Comments),
	}
}
