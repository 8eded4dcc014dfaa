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
	"strconv"

	"github.com/pkg/errors"
)

var (
	// ErrChannelClosed is returned by Channel.Pop when the channel is closed
	// and drained. An Instance blocked on INPUT from such a channel has lost
	// its producer and would otherwise wait forever.
	ErrChannelClosed = errors.New("channel closed")

	// ErrNoInput is returned when a program executes INPUT and no input
	// source is configured.
	ErrNoInput = errors.New("no input source")
)

// UnknownOpcodeError is returned when the word at PC is not a valid
// instruction.
type UnknownOpcodeError struct {
	PC   int
	Word Cell
}

func (e *UnknownOpcodeError) Error() string {
	return "unknown opcode " + strconv.FormatInt(int64(e.Word), 10) + " @pc=" + strconv.Itoa(e.PC)
}

// MemoryFaultError is returned when an address falls outside of memory. Word
// is the instruction at PC, or 0 if PC itself is out of memory.
type MemoryFaultError struct {
	PC   int
	Word Cell
	Addr Cell
}

func (e *MemoryFaultError) Error() string {
	return "memory fault at address " + strconv.FormatInt(int64(e.Addr), 10) +
		" in instruction " + strconv.FormatInt(int64(e.Word), 10) + " @pc=" + strconv.Itoa(e.PC)
}

// InvalidWriteError is returned when an instruction writes through an
// immediate mode operand.
type InvalidWriteError struct {
	PC   int
	Word Cell
}

func (e *InvalidWriteError) Error() string {
	return "write to immediate operand in instruction " + strconv.FormatInt(int64(e.Word), 10) + " @pc=" + strconv.Itoa(e.PC)
}
