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
	"io"

	"github.com/davecgh/go-spew/spew"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
)

// dumpMem writes the memory of i in program format, up to the last non-zero
// cell and at least size cells.
func dumpMem(w io.Writer, i *vm.Instance, size int) error {
	if err := vm.Encode(w, vm.Used(i.Mem, size)); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// disassembly window around PC in dumpState
const window = 4

func dumpState(w io.Writer, i *vm.Instance) {
	ew := ici.NewErrWriter(w)
	ew.Printf("PC: %d, RB: %d, halted: %v, instructions: %d\n", i.PC, i.RelativeBase(), i.Halted(), i.InstructionCount())
	if i.PC < 0 || i.PC >= len(i.Mem) {
		return
	}
	pc := i.PC - window
	if pc < 0 {
		pc = 0
	}
	// resync on PC: disassembly from an arbitrary address may be misaligned.
	for pc < i.PC {
		next, err := asm.Disassemble(i.Mem, pc, io.Discard)
		if err != nil || next > i.PC {
			pc = i.PC
			break
		}
		pc = next
	}
	for n := 0; n < window && pc < len(i.Mem); n++ {
		if pc == i.PC {
			ew.WriteString("=> ")
		} else {
			ew.WriteString("   ")
		}
		ew.Printf("% 10d\t", pc)
		next, err := asm.Disassemble(i.Mem, pc, ew)
		if err != nil {
			return
		}
		ew.WriteByte('\n')
		pc = next
	}
	end := i.PC + 8
	if end > len(i.Mem) {
		end = len(i.Mem)
	}
	ew.WriteString(spew.Sdump(i.Mem[i.PC:end]))
}
