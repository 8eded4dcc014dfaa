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
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/db47h/intcode/circuit"
	"github.com/db47h/intcode/vm"
)

var debug bool

func atExit(i *vm.Instance, err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if i != nil {
		dumpState(os.Stderr, i)
	}
	os.Exit(1)
}

func newInput(c *config) vm.Reader {
	if len(c.Input) > 0 {
		return vm.Values(c.Input...)
	}
	var prompt func()
	if isTerminal(os.Stdin) {
		prompt = func() { fmt.Fprint(os.Stderr, "? ") }
	}
	return vm.NewTextReader(bufio.NewReader(os.Stdin), prompt)
}

// runSingle runs prog in a single VM instance wired to stdin and stdout.
func runSingle(ctx context.Context, c *config, prog []vm.Cell, out io.Writer) (*vm.Instance, error) {
	var err error
	if c.Noun >= 0 || c.Verb >= 0 {
		noun, verb := vm.Cell(c.Noun), vm.Cell(c.Verb)
		if len(prog) > 2 {
			// keep the original value of an unset noun or verb
			if noun < 0 {
				noun = prog[1]
			}
			if verb < 0 {
				verb = prog[2]
			}
		}
		if prog, err = circuit.Patch(prog, noun, verb); err != nil {
			return nil, err
		}
	}
	i, err := vm.New(prog,
		vm.MemSize(c.MemSize),
		vm.Input(newInput(c)),
		vm.Output(vm.NewTextWriter(out, "\n")))
	if err != nil {
		return nil, err
	}
	if err = i.RunContext(ctx); err != nil {
		return i, err
	}
	if c.Dump {
		err = dumpMem(out, i, len(prog))
	}
	return i, err
}

func run(ctx context.Context, c *config, out io.Writer) (*vm.Instance, error) {
	prog, err := vm.Load(c.Program)
	if err != nil {
		return nil, err
	}
	switch {
	case len(c.Phases) > 0:
		r, err := circuit.Search(ctx, prog, c.Topology.Topology, c.Phases,
			circuit.MemSize(c.MemSize),
			circuit.Parallel(c.Parallel))
		if err != nil {
			return nil, err
		}
		_, err = fmt.Fprintf(out, "%d %s\n", r.Signal, vm.FormatCells(r.Phases))
		return nil, err
	case c.Find:
		noun, verb, err := circuit.FindNounVerb(ctx, prog, vm.Cell(c.Target), vm.Cell(c.Limit), vm.MemSize(c.MemSize))
		if err != nil {
			return nil, err
		}
		_, err = fmt.Fprintf(out, "noun=%d verb=%d answer=%d\n", noun, verb, 100*noun+verb)
		return nil, err
	}
	return runSingle(ctx, c, prog, out)
}

func main() {
	var err error
	var i *vm.Instance

	stdout := bufio.NewWriter(os.Stdout)

	// flush output, catch and log errors
	defer func() {
		if e := stdout.Flush(); err == nil {
			err = errors.Wrap(e, "flush failed")
		}
		atExit(i, err)
	}()

	c, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		return
	}
	debug = c.Debug
	commonlog.Configure(c.Verbosity, nil)

	ctx := context.Background()
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	i, err = run(ctx, c, stdout)
}
