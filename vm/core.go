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

import (
	"context"

	"github.com/pkg/errors"
)

// number of instructions between two checks of the run context.
const ctxCheckInterval = 1 << 12

// fetch returns the value at address addr.
func (i *Instance) fetch(addr Cell) Cell {
	if addr < 0 || addr >= Cell(len(i.Mem)) {
		panic(&MemoryFaultError{PC: i.PC, Addr: addr})
	}
	return i.Mem[addr]
}

// addr returns the address designated by operand k (starting at 1) of the
// current instruction.
func (i *Instance) addr(ins *Instruction, k int) Cell {
	v := i.fetch(Cell(i.PC + k))
	switch ins.Modes[k-1] {
	case ModeRelative:
		return v + i.rb
	case ModeImmediate:
		return Cell(i.PC + k)
	}
	return v
}

func (i *Instance) read(ins *Instruction, k int) Cell {
	return i.fetch(i.addr(ins, k))
}

func (i *Instance) checkWrite(ins *Instruction, k int) {
	if ins.Modes[k-1] == ModeImmediate {
		panic(&InvalidWriteError{PC: i.PC, Word: ins.Encode()})
	}
}

func (i *Instance) write(ins *Instruction, k int, v Cell) {
	i.checkWrite(ins, k)
	a := i.addr(ins, k)
	i.fetch(a)
	i.Mem[a] = v
}

func (i *Instance) in() Cell {
	if i.pending {
		i.pending = false
		return i.phase
	}
	if i.input == nil {
		panic(ErrNoInput)
	}
	v, err := i.input.ReadCell()
	if err != nil {
		panic(errors.Wrap(err, "input"))
	}
	return v
}

func (i *Instance) out(v Cell) {
	if i.output == nil {
		return
	}
	if err := i.output.WriteCell(v); err != nil {
		panic(errors.Wrap(err, "output"))
	}
}

func (i *Instance) jump(target Cell) {
	if target < 0 || target >= Cell(len(i.Mem)) {
		panic(&MemoryFaultError{PC: i.PC, Addr: target})
	}
	i.PC = int(target)
}

func b2c(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

// Run starts execution of the VM and returns when the program halts or an
// error occurs.
//
// If an error occurs, the PC will point to the instruction that triggered the
// error. VM faults are reported as *UnknownOpcodeError, *MemoryFaultError or
// *InvalidWriteError, possibly wrapped: use errors.Cause to get the underlying
// error. Errors returned by the input and output are wrapped.
//
// If the VM was stopped by a HLT instruction, Halted will return true
// and err will be nil. Calling Run on a halted instance is a no-op.
func (i *Instance) Run() error {
	return i.run(nil)
}

// RunContext is like Run but also returns ctx.Err() once ctx is done. The
// context is checked at regular intervals, so that programs stuck in a loop
// can be stopped. It does not interrupt a blocked INPUT: this is left to the
// input Reader (see Channel.Close).
func (i *Instance) RunContext(ctx context.Context) error {
	return i.run(ctx)
}

func (i *Instance) run(ctx context.Context) (err error) {
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case *MemoryFaultError:
				if i.PC >= 0 && i.PC < len(i.Mem) {
					e.Word = i.Mem[i.PC]
				}
				err = e
			case *InvalidWriteError:
				err = e
			case error:
				err = errors.Wrapf(e, "@pc=%d", i.PC)
			default:
				panic(e)
			}
		}
	}()
	var done <-chan struct{}
	if ctx != nil {
		done = ctx.Done()
	}
	for n := 0; !i.halted; n++ {
		if done != nil && n%ctxCheckInterval == 0 {
			select {
			case <-done:
				return errors.Wrapf(ctx.Err(), "@pc=%d", i.PC)
			default:
			}
		}
		ins, err := Decode(i.fetch(Cell(i.PC)))
		if err != nil {
			e := err.(*UnknownOpcodeError)
			e.PC = i.PC
			return e
		}
		switch ins.Op {
		case OpAdd:
			i.write(&ins, 3, i.read(&ins, 1)+i.read(&ins, 2))
			i.PC += 4
		case OpMul:
			i.write(&ins, 3, i.read(&ins, 1)*i.read(&ins, 2))
			i.PC += 4
		case OpIn:
			// fail before blocking on input
			i.checkWrite(&ins, 1)
			i.write(&ins, 1, i.in())
			i.PC += 2
		case OpOut:
			i.out(i.read(&ins, 1))
			i.PC += 2
		case OpJumpIfTrue:
			if i.read(&ins, 1) != 0 {
				i.jump(i.read(&ins, 2))
			} else {
				i.PC += 3
			}
		case OpJumpIfFalse:
			if i.read(&ins, 1) == 0 {
				i.jump(i.read(&ins, 2))
			} else {
				i.PC += 3
			}
		case OpLessThan:
			i.write(&ins, 3, b2c(i.read(&ins, 1) < i.read(&ins, 2)))
			i.PC += 4
		case OpEquals:
			i.write(&ins, 3, b2c(i.read(&ins, 1) == i.read(&ins, 2)))
			i.PC += 4
		case OpAdjustBase:
			i.rb += i.read(&ins, 1)
			i.PC += 2
		case OpHalt:
			i.halted = true
		}
		i.insCount++
	}
	return nil
}
