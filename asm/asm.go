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

package asm

import (
	"io"
	"strconv"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
)

var mnemonics = [...][]string{
	vm.OpAdd:         {"add"},
	vm.OpMul:         {"mul"},
	vm.OpIn:          {"in", "input"},
	vm.OpOut:         {"out", "output"},
	vm.OpJumpIfTrue:  {"jt", "jnz"},
	vm.OpJumpIfFalse: {"jf", "jz"},
	vm.OpLessThan:    {"lt"},
	vm.OpEquals:      {"eq"},
	vm.OpAdjustBase:  {"arb", "rbo"},
}

var opcodeIndex = map[string]vm.Opcode{
	"hlt":  vm.OpHalt,
	"halt": vm.OpHalt,
}

func init() {
	for op, names := range mnemonics {
		for _, n := range names {
			opcodeIndex[n] = vm.Opcode(op)
		}
	}
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting program and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (prog []vm.Cell, err error) {
	p := newParser()
	return p.Parse(name, r)
}

func writeOperand(w *ici.ErrWriter, m vm.Mode, v vm.Cell) {
	switch m {
	case vm.ModeImmediate:
		w.WriteByte('#')
	case vm.ModeRelative:
		w.WriteByte('~')
	}
	w.WriteString(strconv.FormatInt(int64(v), 10))
}

// Disassemble writes a disassembly of the cells in the given slice at position
// pc to the specified io.Writer and returns the position of the next
// instruction and any write error. Cells that do not decode to a valid
// instruction are written as .dat directives.
func Disassemble(mem []vm.Cell, pc int, w io.Writer) (next int, err error) {
	ew := ici.NewErrWriter(w)

	ins, err := vm.Decode(mem[pc])
	if err != nil || pc+ins.Op.Arity() >= len(mem) {
		ew.WriteString(".dat ")
		ew.WriteString(strconv.FormatInt(int64(mem[pc]), 10))
		return pc + 1, ew.Err
	}
	ew.WriteString(ins.Op.String())
	for k := 0; k < ins.Op.Arity(); k++ {
		ew.WriteByte(' ')
		writeOperand(ew, ins.Modes[k], mem[pc+1+k])
	}
	return pc + 1 + ins.Op.Arity(), ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (i[0]). It will return any write error.
func DisassembleAll(mem []vm.Cell, base int, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	for pc := 0; pc < len(mem); {
		ew.Printf("% 10d\t", base+pc)
		pc, _ = Disassemble(mem, pc, ew)
		ew.WriteByte('\n')
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
