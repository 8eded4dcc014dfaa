// This file is part of intcode - https://github.com/db47h/intcode
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
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/db47h/intcode/circuit"
	"github.com/db47h/intcode/vm"
)

// cellList is a list of cells usable as a flag value or in a config file.
type cellList []vm.Cell

func (l *cellList) String() string { return vm.FormatCells(*l) }
func (l *cellList) Set(s string) error {
	v, err := vm.ParseCells(s)
	if err != nil {
		return err
	}
	*l = v
	return nil
}
func (l *cellList) Get() interface{} { return *l }

type topology struct{ circuit.Topology }

func (t *topology) Set(s string) (err error) {
	t.Topology, err = circuit.ParseTopology(s)
	return err
}
func (t *topology) Get() interface{} { return t.Topology }

// UnmarshalText implements encoding.TextUnmarshaler for config files.
func (t *topology) UnmarshalText(b []byte) error { return t.Set(string(b)) }

type config struct {
	Program   string        `toml:"program"`
	MemSize   int           `toml:"mem_size"`
	Input     cellList      `toml:"input"`
	Noun      int64         `toml:"noun"`
	Verb      int64         `toml:"verb"`
	Find      bool          `toml:"find"`
	Target    int64         `toml:"target"`
	Limit     int64         `toml:"limit"`
	Phases    cellList      `toml:"phases"`
	Topology  topology      `toml:"topology"`
	Parallel  int           `toml:"parallel"`
	Timeout   time.Duration `toml:"timeout"`
	Dump      bool          `toml:"dump"`
	Debug     bool          `toml:"debug"`
	Verbosity int           `toml:"verbosity"`
}

func defaultConfig() *config {
	return &config{
		MemSize:  vm.DefaultMemSize,
		Noun:     -1,
		Verb:     -1,
		Limit:    99,
		Parallel: runtime.NumCPU(),
	}
}

// parseFlags parses command line arguments into a new config. Values from the
// file given with -config are overridden by explicitly set flags.
func parseFlags(fs *flag.FlagSet, args []string) (*config, error) {
	c := defaultConfig()
	var cfgFile string

	fs.StringVar(&cfgFile, "config", "", "load settings from TOML `file`")
	fs.IntVar(&c.MemSize, "mem", c.MemSize, "memory size in cells")
	fs.Var(&c.Input, "input", "comma separated input `values` (default: read from stdin)")
	fs.Int64Var(&c.Noun, "noun", c.Noun, "store `value` at address 1 before running (-1: no patch)")
	fs.Int64Var(&c.Verb, "verb", c.Verb, "store `value` at address 2 before running (-1: no patch)")
	fs.BoolVar(&c.Find, "find", false, "search the noun and verb producing -target at address 0")
	fs.Int64Var(&c.Target, "target", 0, "target `value` for -find")
	fs.Int64Var(&c.Limit, "limit", c.Limit, "upper bound for nouns and verbs with -find")
	fs.Var(&c.Phases, "phases", "search the best permutation of phase `settings`")
	fs.Var(&c.Topology, "topology", "circuit topology for -phases: line or ring")
	fs.IntVar(&c.Parallel, "parallel", c.Parallel, "number of circuits evaluated concurrently")
	fs.DurationVar(&c.Timeout, "timeout", 0, "abort after `duration` (0: no timeout)")
	fs.BoolVar(&c.Dump, "dump", false, "dump memory upon exit")
	fs.BoolVar(&c.Debug, "debug", false, "enable debug diagnostics")
	fs.IntVar(&c.Verbosity, "v", 0, "log verbosity (0: notices, 1: info, 2: debug)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfgFile != "" {
		// the file writes through the flag values: save explicitly set
		// flags first, they take precedence.
		set := make(map[string]string)
		fs.Visit(func(f *flag.Flag) { set[f.Name] = f.Value.String() })
		if err := c.load(cfgFile); err != nil {
			return nil, err
		}
		for name, v := range set {
			if err := fs.Set(name, v); err != nil {
				return nil, err
			}
		}
	}

	if fs.NArg() > 0 {
		c.Program = fs.Arg(0)
	}
	return c, c.check()
}

func (c *config) load(fileName string) error {
	b, err := os.ReadFile(fileName)
	if err != nil {
		return errors.Wrap(err, "read config failed")
	}
	if err = toml.Unmarshal(b, c); err != nil {
		return errors.Wrapf(err, "%s", fileName)
	}
	return nil
}

func (c *config) check() error {
	switch {
	case c.Program == "":
		return errors.New("no program file")
	case c.MemSize <= 0:
		return errors.Errorf("invalid memory size %d", c.MemSize)
	case c.Parallel <= 0:
		return errors.Errorf("invalid parallelism %d", c.Parallel)
	case c.Find && c.Limit < 0:
		return errors.Errorf("invalid limit %d", c.Limit)
	case c.Find && len(c.Phases) > 0:
		return errors.New("-find and -phases are mutually exclusive")
	}
	return nil
}
