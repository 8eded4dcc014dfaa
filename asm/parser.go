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
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

// parser states
const (
	stInstr   = iota // accept anything
	stOperand        // need an operand
	stData           // after .dat, accept values or anything else
	stOrg            // need an integer or const (.org)
	stEqu            // need an integer or const (.equ value)
)

type parser struct {
	i       []vm.Cell
	pc      int
	size    int
	s       scanner.Scanner
	labels  map[string]*label
	consts  map[string]labelSite
	cstName string
	cstPos  scanner.Position
	errs    ErrAsm

	state   int
	ins     vm.Instruction // instruction being assembled
	insPC   int
	operand int // index of next operand of ins
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	p.consts = make(map[string]labelSite)
	return p
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.i) {
		p.i = append(p.i, make([]vm.Cell, 1024)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.size {
		p.size = p.pc
	}
}

func (p *parser) error(msg string) {
	pos := p.s.Position
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, ErrAsmEntry{pos, msg})
	}
}

func (p *parser) useLabel(name string) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{
			// use current position as valid temp position
			labelSite{p.s.Position, -1},
			nil,
		}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{p.s.Position, p.pc})
}

// value resolves an integer literal or constant.
func (p *parser) value(s string) (vm.Cell, bool) {
	n, err := strconv.ParseInt(s, 0, 64)
	if err == nil {
		return vm.Cell(n), true
	}
	if c, ok := p.consts[s]; ok {
		return vm.Cell(c.address), true
	}
	return 0, false
}

// isOperand returns true if s can only be an operand or a data value.
func (p *parser) isOperand(s string) bool {
	switch s[0] {
	case '#', '~':
		return len(s) > 1
	case ':', '.':
		return false
	}
	if _, ok := opcodeIndex[s]; ok {
		return false
	}
	return s != "("
}

// ref writes a value or label reference at the current address.
func (p *parser) ref(s string) {
	if v, ok := p.value(s); ok {
		p.write(v)
		return
	}
	p.useLabel(s)
	p.write(0)
}

func (p *parser) operandToken(s string) {
	mode := vm.ModePosition
	switch s[0] {
	case '#':
		mode, s = vm.ModeImmediate, s[1:]
	case '~':
		mode, s = vm.ModeRelative, s[1:]
	}
	k := p.operand
	if mode == vm.ModeImmediate && isWriteOperand(p.ins.Op, k) {
		p.error("immediate mode write operand for " + p.ins.Op.String())
	}
	p.ins.Modes[k] = mode
	p.i[p.insPC] = p.ins.Encode()
	p.ref(s)
	p.operand++
	if p.operand == p.ins.Op.Arity() {
		p.state = stInstr
	}
}

func isWriteOperand(op vm.Opcode, k int) bool {
	switch op {
	case vm.OpAdd, vm.OpMul, vm.OpLessThan, vm.OpEquals:
		return k == 2
	case vm.OpIn:
		return k == 0
	}
	return false
}

func (p *parser) labelDef(n string) {
	if len(n) == 0 {
		p.error("Empty label name")
		return
	}
	if cst, ok := p.consts[n]; ok {
		p.error("Label redefinition: " + n + ", previously defined as a constant here: " + cst.pos.String())
		return
	}
	if l, ok := p.labels[n]; ok {
		if l.address != -1 {
			p.error("Label redefinition: " + n + ", previous definition here: " + l.pos.String())
			return
		}
		l.address = p.pc
		l.pos = p.s.Position
		return
	}
	p.labels[n] = &label{labelSite{p.s.Position, p.pc}, nil}
}

func (p *parser) directive(s string) {
	switch s {
	case ".org":
		p.state = stOrg
	case ".dat":
		p.state = stData
	case ".equ":
		t := p.s.Scan()
		if t != scanner.Ident {
			p.error(".equ: expected identifier, got " + p.s.TokenText())
			return
		}
		p.cstName = p.s.TokenText()
		if l, ok := p.labels[p.cstName]; ok {
			p.error(".equ: redefinition of " + p.cstName + ", previously defined/used as a label here: " + l.pos.String())
			return
		}
		p.cstPos = p.s.Position
		p.state = stEqu
	default:
		p.error("Unknown directive: " + s)
	}
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) ([]vm.Cell, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.error(msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF && len(p.errs) < maxErrors; tok = p.s.Scan() {
		s := p.s.TokenText()
		if tok != scanner.Ident {
			p.error("Unexpected character " + strconv.QuoteRune(tok))
			continue
		}
		if s == "(" {
			// skip comments
			for ; tok != scanner.EOF && (tok != scanner.Ident || p.s.TokenText() != ")"); tok = p.s.Scan() {
			}
			continue
		}
		switch p.state {
		case stOrg, stEqu:
			v, ok := p.value(s)
			if !ok {
				p.error("Expected integer or constant, got " + s)
			} else if p.state == stOrg {
				if v < 0 {
					p.error("Negative .org address " + s)
				} else {
					p.pc = int(v)
				}
			} else {
				p.consts[p.cstName] = labelSite{p.cstPos, int(v)}
			}
			p.state = stInstr
			continue
		case stOperand:
			if !p.isOperand(s) {
				p.error(fmt.Sprintf("Missing operand for %v, got %s", p.ins.Op, s))
				p.state = stInstr
				break
			}
			p.operandToken(s)
			continue
		case stData:
			if p.isOperand(s) && s[0] != '#' && s[0] != '~' {
				p.ref(s)
				continue
			}
			p.state = stInstr
		}

		switch s[0] {
		case ':':
			p.labelDef(s[1:])
		case '.':
			p.directive(s)
		default:
			op, ok := opcodeIndex[s]
			if !ok {
				p.error("Unknown instruction " + s)
				continue
			}
			p.ins = vm.Instruction{Op: op}
			p.insPC = p.pc
			p.write(p.ins.Encode())
			p.operand = 0
			if op.Arity() > 0 {
				p.state = stOperand
			}
		}
	}

	switch p.state {
	case stOperand:
		p.error(fmt.Sprintf("Missing operand for %v", p.ins.Op))
	case stOrg, stEqu:
		p.error("Missing directive argument")
	}

	// write labels
	for n, l := range p.labels {
		if l.address == -1 {
			for _, u := range l.uses {
				p.s.Position = u.pos
				p.error("Undefined label " + n)
			}
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		p.errs.sort()
		return nil, p.errs
	}
	return p.i[:p.size:p.size], nil
}

// ErrAsmEntry is the error type returned by the assembler.
type ErrAsmEntry struct {
	Pos scanner.Position
	Msg string
}

func (e *ErrAsmEntry) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

const maxErrors = 10

// ErrAsm encapsulates errors generated by the assembler.
type ErrAsm []ErrAsmEntry

func (e ErrAsm) Error() string {
	var b strings.Builder
	for n := range e {
		if n > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e[n].Error())
	}
	return b.String()
}

func (e ErrAsm) sort() {
	sort.SliceStable(e, func(i, j int) bool { return e[i].Pos.Offset < e[j].Pos.Offset })
}
