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

package circuit

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/db47h/intcode/vm"
)

// logger returns the package logger. The logging backend may be selected
// after package initialization.
func logger() commonlog.Logger {
	return commonlog.GetLogger("intcode.circuit")
}

// ErrNoSignal is returned by Run if the last unit of a circuit halted without
// producing any output.
var ErrNoSignal = errors.New("no output signal")

// Topology describes how units are connected.
type Topology int

// Supported topologies.
const (
	Line Topology = iota // single pass, the last unit's output is the result
	Ring                 // the last unit's output is fed back to the first unit
)

func (t Topology) String() string {
	switch t {
	case Line:
		return "line"
	case Ring:
		return "ring"
	}
	return "topology(" + strconv.Itoa(int(t)) + ")"
}

// ParseTopology returns the Topology with the given name.
func ParseTopology(s string) (Topology, error) {
	switch s {
	case "line":
		return Line, nil
	case "ring", "feedback":
		return Ring, nil
	}
	return 0, errors.Errorf("unknown topology %q", s)
}

// Option configures circuits.
type Option func(*config) error

type config struct {
	vmOpts   []vm.Option
	parallel int
}

// MemSize sets the memory size of each unit.
func MemSize(size int) Option {
	return func(c *config) error {
		if size <= 0 {
			return errors.Errorf("invalid memory size %d", size)
		}
		c.vmOpts = append(c.vmOpts, vm.MemSize(size))
		return nil
	}
}

// Parallel sets the maximum number of circuits evaluated concurrently by
// Search. The default is 1.
func Parallel(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return errors.Errorf("invalid parallelism %d", n)
		}
		c.parallel = n
		return nil
	}
}

func newConfig(opts []Option) (*config, error) {
	c := &config{parallel: 1}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// tap records the last value written to a unit's output.
type tap struct {
	w    vm.Writer
	last vm.Cell
	n    int
}

func (t *tap) WriteCell(v vm.Cell) error {
	t.last = v
	t.n++
	return t.w.WriteCell(v)
}

type unit struct {
	i   *vm.Instance
	in  *vm.Channel
	out *vm.Channel
}

// Circuit is a set of VM instances connected by channels. A Circuit runs only
// once: create a new one for each run.
type Circuit struct {
	id     string
	topo   Topology
	phases []vm.Cell
	units  []unit
	chans  []*vm.Channel
	result *tap
}

// New builds a circuit of len(phases) units running program in the given
// topology. Unit k gets phases[k] as its phase setting. Each unit gets its own
// copy of program.
func New(program []vm.Cell, topo Topology, phases []vm.Cell, opts ...Option) (*Circuit, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return newCircuit(program, topo, phases, cfg)
}

func newCircuit(program []vm.Cell, topo Topology, phases []vm.Cell, cfg *config) (*Circuit, error) {
	var err error
	n := len(phases)
	if n == 0 {
		return nil, errors.New("empty circuit")
	}
	if topo != Line && topo != Ring {
		return nil, errors.Errorf("unsupported %v", topo)
	}
	c := &Circuit{
		id:     uuid.New().String(),
		topo:   topo,
		phases: append([]vm.Cell(nil), phases...),
		units:  make([]unit, n),
	}

	// one channel per edge. In a ring, the last edge is the first unit's
	// input channel.
	edges := n + 1
	if topo == Ring {
		edges = n
	}
	c.chans = make([]*vm.Channel, edges)
	for k := range c.chans {
		c.chans[k] = vm.NewChannel()
	}
	c.chans[0].Push(0)
	if topo == Line {
		// nothing else will ever feed the first unit
		c.chans[0].Close()
	}

	for k := range c.units {
		u := &c.units[k]
		u.in, u.out = c.chans[k], c.chans[(k+1)%edges]
		var out vm.Writer = u.out
		if k == n-1 {
			c.result = &tap{w: u.out}
			out = c.result
		}
		opts := append([]vm.Option{vm.Phase(phases[k]), vm.Input(u.in), vm.Output(out)}, cfg.vmOpts...)
		u.i, err = vm.New(program, opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "unit %d", k)
		}
	}
	return c, nil
}

// ID returns a unique identifier for the circuit, used in log entries.
func (c *Circuit) ID() string {
	return c.id
}

// Topology returns the circuit topology.
func (c *Circuit) Topology() Topology {
	return c.topo
}

// Phases returns the phase settings of the units.
func (c *Circuit) Phases() []vm.Cell {
	return append([]vm.Cell(nil), c.phases...)
}

// Instance returns the VM instance of unit k.
func (c *Circuit) Instance(k int) *vm.Instance {
	return c.units[k].i
}

func (c *Circuit) abort() {
	for _, ch := range c.chans {
		ch.Close()
	}
}

// Run runs all units concurrently until they halt and returns the last value
// output by the last unit.
//
// If a unit fails, the circuit is aborted: all channels are closed so that no
// unit waits forever on its input, and Run returns the error of the failed
// unit. A unit waiting for input after its upstream unit has halted fails
// with vm.ErrChannelClosed. When ctx is done, the circuit is aborted and Run
// returns ctx.Err().
func (c *Circuit) Run(ctx context.Context) (vm.Cell, error) {
	logger().Debugf("circuit %s: starting %d units in %v with phases %v", c.id, len(c.units), c.topo, c.phases)
	g, gctx := errgroup.WithContext(ctx)
	go func() {
		// gctx is canceled on the first unit failure or when Wait returns.
		<-gctx.Done()
		c.abort()
	}()
	for k := range c.units {
		k, u := k, &c.units[k]
		g.Go(func() error {
			if err := u.i.RunContext(gctx); err != nil {
				logger().Debugf("circuit %s: unit %d failed: %v", c.id, k, err)
				return errors.Wrapf(err, "unit %d", k)
			}
			// the unit's output edge has no more producer
			u.out.Close()
			logger().Debugf("circuit %s: unit %d halted after %d instructions", c.id, k, u.i.InstructionCount())
			return nil
		})
	}
	err := g.Wait()
	if ctx.Err() != nil {
		return 0, errors.Wrapf(ctx.Err(), "circuit %s", c.id)
	}
	if err != nil {
		return 0, err
	}
	if c.result.n == 0 {
		return 0, ErrNoSignal
	}
	logger().Debugf("circuit %s: signal %d", c.id, c.result.last)
	return c.result.last, nil
}
