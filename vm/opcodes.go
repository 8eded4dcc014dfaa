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

import "strconv"

// Opcode identifies an Intcode instruction.
type Opcode Cell

// Intcode opcodes.
const (
	OpAdd Opcode = iota + 1
	OpMul
	OpIn
	OpOut
	OpJumpIfTrue
	OpJumpIfFalse
	OpLessThan
	OpEquals
	OpAdjustBase
	OpHalt Opcode = 99
)

var opcodes = [...]struct {
	name  string
	arity int
}{
	OpAdd:         {"add", 3},
	OpMul:         {"mul", 3},
	OpIn:          {"in", 1},
	OpOut:         {"out", 1},
	OpJumpIfTrue:  {"jt", 2},
	OpJumpIfFalse: {"jf", 2},
	OpLessThan:    {"lt", 3},
	OpEquals:      {"eq", 3},
	OpAdjustBase:  {"arb", 1},
}

// Valid returns true if op is a known opcode.
func (op Opcode) Valid() bool {
	return op == OpHalt || (op >= OpAdd && op <= OpAdjustBase)
}

// Arity returns the number of operands expected by op.
func (op Opcode) Arity() int {
	if op >= OpAdd && op <= OpAdjustBase {
		return opcodes[op].arity
	}
	return 0
}

func (op Opcode) String() string {
	switch {
	case op == OpHalt:
		return "hlt"
	case op >= OpAdd && op <= OpAdjustBase:
		return opcodes[op].name
	}
	return "op(" + strconv.FormatInt(int64(op), 10) + ")"
}

// Mode is an operand addressing mode.
type Mode uint8

// Addressing modes.
const (
	ModePosition Mode = iota
	ModeImmediate
	ModeRelative
)

func (m Mode) String() string {
	switch m {
	case ModePosition:
		return "position"
	case ModeImmediate:
		return "immediate"
	case ModeRelative:
		return "relative"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// MaxOperands is the largest number of operands an instruction can take.
const MaxOperands = 3

// Instruction is a decoded instruction word.
type Instruction struct {
	Op    Opcode
	Modes [MaxOperands]Mode // Modes[k] applies to operand k+1
}

// Encode returns the instruction word for ins.
func (ins Instruction) Encode() Cell {
	w := Cell(ins.Op)
	f := Cell(100)
	for k := 0; k < ins.Op.Arity(); k++ {
		w += Cell(ins.Modes[k]) * f
		f *= 10
	}
	return w
}

// Decode splits an instruction word into its opcode and the addressing modes
// of its operands. The opcode is held in the two low decimal digits, the mode
// of operand 1 in the hundreds, operand 2 in the thousands and so on. Missing
// digits read as ModePosition.
//
// Decode returns an *UnknownOpcodeError if the opcode is unknown or if a mode
// digit used by the instruction is not a valid Mode. Its PC field is left to
// the caller.
func Decode(word Cell) (Instruction, error) {
	var ins Instruction
	if word < 0 {
		return ins, &UnknownOpcodeError{Word: word}
	}
	ins.Op = Opcode(word % 100)
	if !ins.Op.Valid() {
		return ins, &UnknownOpcodeError{Word: word}
	}
	m := word / 100
	for k := 0; k < ins.Op.Arity(); k++ {
		mode := Mode(m % 10)
		if mode > ModeRelative {
			return ins, &UnknownOpcodeError{Word: word}
		}
		ins.Modes[k] = mode
		m /= 10
	}
	return ins, nil
}
