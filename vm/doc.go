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

// Package vm implements the Intcode VM.
//
// An Intcode program is a list of integers which is both the code and the
// data of the program. Programs are loaded into a fixed size memory, owned by
// a single Instance, and executed from address 0 until a HLT instruction.
//
// Instruction words encode the opcode in their two low decimal digits and the
// addressing mode of each operand in the upper digits, see Decode. Operands
// are read and written in position, immediate or relative mode. Relative mode
// addresses are offset by the relative base register, adjusted with the
// opcode 9.
//
// INPUT and OUTPUT instructions communicate with Go code through the Reader
// and Writer interfaces. Several instances can be chained with a Channel,
// each instance running in its own goroutine: INPUT blocks until the upstream
// instance has produced a value. See package circuit for ready made
// topologies.
//
// Like in most interpreters of this kind, the PC is not incremented in a
// single place, rather each opcode deals with the PC as needed.
package vm
