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

package vm

import "github.com/pkg/errors"

// Cell is the raw type stored in a memory location.
type Cell int64

// DefaultMemSize is the default memory size in cells.
const DefaultMemSize = 100000

// Instance represents an Intcode VM instance.
type Instance struct {
	PC       int    // Program Counter (aka. Instruction Pointer)
	Mem      []Cell // Memory
	rb       Cell
	halted   bool
	insCount int64
	memSize  int
	phase    Cell
	pending  bool // phase not consumed yet
	input    Reader
	output   Writer
}

// Option interface
type Option func(*Instance) error

// MemSize sets the memory size in cells. The default is DefaultMemSize. It
// must be at least the program size.
func MemSize(size int) Option {
	return func(i *Instance) error {
		if size <= 0 {
			return errors.Errorf("invalid memory size %d", size)
		}
		i.memSize = size
		return nil
	}
}

// Input configures the source of values for the INPUT instruction.
func Input(r Reader) Option {
	return func(i *Instance) error { i.input = r; return nil }
}

// Output configures the sink for values produced by the OUTPUT instruction.
func Output(w Writer) Option {
	return func(i *Instance) error { i.output = w; return nil }
}

// Phase sets a phase signal: the value returned by the first INPUT executed by
// the instance, before anything is read from the configured input. It is
// consumed only once. Any value, including 0, is a valid phase.
func Phase(v Cell) Option {
	return func(i *Instance) error {
		i.phase, i.pending = v, true
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode VM instance running the given program.
//
// The program is copied into the instance's own memory, so several instances
// may be created from the same program. Cells past the end of the program are
// zero.
//
// Options will be set by calling SetOptions.
func New(program []Cell, opts ...Option) (*Instance, error) {
	i := &Instance{
		memSize: DefaultMemSize,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	if len(program) > i.memSize {
		return nil, errors.Errorf("program size %d exceeds memory size %d", len(program), i.memSize)
	}
	i.Mem = make([]Cell, i.memSize)
	copy(i.Mem, program)
	return i, nil
}

// RelativeBase returns the current value of the relative base register.
func (i *Instance) RelativeBase() Cell {
	return i.rb
}

// Halted returns true once the program has executed a HLT instruction.
func (i *Instance) Halted() bool {
	return i.halted
}

// PhasePending returns true if the phase signal has been set and not yet
// consumed.
func (i *Instance) PhasePending() bool {
	return i.pending
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}
