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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	Operands a and b are read, dst is written. Instructions are encoded as
//	the opcode plus the addressing mode of each operand.
//
//	opcode	asm	operands	description
//	------	---	--------	------------------------------------------------
//	1	add	a b dst		dst = a + b
//	2	mul	a b dst		dst = a * b
//	3	in	dst		dst = next input value
//	4	out	a		output a
//	5	jt	a b		jump to b if a != 0
//	6	jf	a b		jump to b if a == 0
//	7	lt	a b dst		dst = 1 if a < b else 0
//	8	eq	a b dst		dst = 1 if a == b else 0
//	9	arb	a		add a to the relative base
//	99	hlt			stop
//
// Operands:
//
// The addressing mode of an operand is given by its prefix:
//
//	42	position mode: the operand is the address 42
//	#42	immediate mode: the operand is the value 42
//	~42	relative mode: the operand is the address 42 + relative base
//
// An operand value is an integer (see strconv.ParseInt), a constant defined
// with .equ or a label. Write operands (dst) cannot use immediate mode.
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	(this is not )
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and evaluate to the
// address of the next cell. Forward references are ok:
//
//	:loop	add ctr #1 ctr
//		jt #1 #loop
//	:ctr	.dat 0
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value.
//
//	.org <value>
//
// will place the next cell at the given address.
//
//	.dat <value> ...
//
// will compile the following values as-is, up to the next instruction, label
// or directive.
package asm
