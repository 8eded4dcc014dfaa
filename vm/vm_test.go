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

package vm_test

import (
	"context"
	"io"
	"strconv"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

func TestAddMul(t *testing.T) {
	var tests = [...]struct {
		prog, mem C
	}{
		{C{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}, C{3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50}},
		{C{1, 0, 0, 0, 99}, C{2, 0, 0, 0, 99}},
		{C{2, 3, 0, 3, 99}, C{2, 3, 0, 6, 99}},
		{C{2, 4, 4, 5, 99, 0}, C{2, 4, 4, 5, 99, 9801}},
		{C{1, 1, 1, 4, 99, 5, 6, 0, 99}, C{30, 1, 1, 4, 2, 5, 6, 0, 99}},
	}
	for _, test := range tests {
		i, err := runProg(test.prog)
		if err != nil {
			t.Errorf("%v: %+v", test.prog, err)
			continue
		}
		if mem := C(i.Mem[:len(test.mem)]); !equal(mem, test.mem) {
			t.Errorf("%v: expected %v, got %v", test.prog, test.mem, mem)
		}
		for _, v := range i.Mem[len(test.mem):] {
			if v != 0 {
				t.Errorf("%v: memory past the program was modified", test.prog)
				break
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	prog := C{1, 0, 0, 3, 1, 1, 2, 3, 1, 3, 4, 3, 1, 5, 0, 3, 2, 1, 10, 19, 4, 19, 99, 0}
	run := func(noun, verb vm.Cell) (*vm.Instance, vm.Buffer, string) {
		var out vm.Buffer
		p := append(C(nil), prog...)
		p[1], p[2] = noun, verb
		i, err := vm.New(p, vm.Output(&out))
		if err != nil {
			t.Fatal(err)
		}
		// some pairs fault, they must fault the same way
		if err = i.Run(); err != nil {
			return i, out, err.Error()
		}
		return i, out, ""
	}
	for noun := vm.Cell(0); noun < 20; noun++ {
		for verb := vm.Cell(0); verb < 20; verb++ {
			i1, out1, err1 := run(noun, verb)
			i2, out2, err2 := run(noun, verb)
			if err1 != err2 || i1.PC != i2.PC || !equal(i1.Mem, i2.Mem) || !equal(C(out1), C(out2)) {
				t.Fatalf("noun=%d verb=%d: runs differ", noun, verb)
			}
		}
	}
}

func TestModeEquivalence(t *testing.T) {
	var tests = [...]struct {
		name           string
		immediate, pos C
	}{
		{"out", C{104, 42, 99}, C{4, 3, 99, 42}},
		{"add", C{1101, 100, -1, 7, 4, 7, 99, 0}, C{1, 8, 9, 7, 4, 7, 99, 0, 100, -1}},
		{"mul", C{1002, 7, 3, 7, 4, 7, 99, 33}, C{2, 7, 8, 7, 4, 7, 99, 33, 3}},
		{"jump", C{1105, 1, 4, 99, 104, 1, 99}, C{5, 7, 8, 99, 104, 1, 99, 1, 4}},
		{"lt", C{1107, 3, 8, 9, 4, 9, 99, 0, 0, 0}, C{7, 10, 11, 9, 4, 9, 99, 0, 0, 0, 3, 8}},
	}
	for _, test := range tests {
		var a, b vm.Buffer
		if _, err := runProg(test.immediate, vm.Output(&a)); err != nil {
			t.Errorf("%s: %+v", test.name, err)
			continue
		}
		if _, err := runProg(test.pos, vm.Output(&b)); err != nil {
			t.Errorf("%s: %+v", test.name, err)
			continue
		}
		if len(a) == 0 || !equal(C(a), C(b)) {
			t.Errorf("%s: immediate %v, position %v", test.name, a, b)
		}
	}
}

func TestRelativeBase(t *testing.T) {
	for _, k := range []vm.Cell{0, 7, 30, 1000} {
		for _, j := range []vm.Cell{-7, 0, 5, 20} {
			addr := k + j
			if addr < 10 {
				continue
			}
			// read: arb #k, out ~j, hlt
			prog := make(C, addr+1)
			copy(prog, C{109, k, 204, j, 99})
			prog[addr] = 4242
			var out vm.Buffer
			i, err := runProg(prog, vm.Output(&out))
			if err != nil {
				t.Fatalf("k=%d j=%d: %+v", k, j, err)
			}
			if i.RelativeBase() != k || len(out) != 1 || out[0] != 4242 {
				t.Errorf("k=%d j=%d: relative read: rb %d, got %v", k, j, i.RelativeBase(), out)
			}

			// write: arb #k, add #5 #6 ~j, out addr, hlt
			i, err = runProg(C{109, k, 21101, 5, 6, j, 4, addr, 99}, vm.Output(&out))
			if err != nil {
				t.Fatalf("k=%d j=%d: %+v", k, j, err)
			}
			if i.Mem[addr] != 11 || out[len(out)-1] != 11 {
				t.Errorf("k=%d j=%d: relative write: got mem[%d]=%d", k, j, addr, i.Mem[addr])
			}
		}
	}
}

func TestQuine(t *testing.T) {
	prog := C{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}
	var out vm.Buffer
	if _, err := runProg(prog, vm.Output(&out)); err != nil {
		t.Fatalf("%+v", err)
	}
	if !equal(C(out), prog) {
		t.Errorf("expected %v, got %v", prog, out)
	}
}

func TestLargeNumbers(t *testing.T) {
	var out vm.Buffer
	if _, err := runProg(C{1102, 34915192, 34915192, 7, 4, 7, 99, 0}, vm.Output(&out)); err != nil {
		t.Fatalf("%+v", err)
	}
	if len(out) != 1 || len(strconv.FormatInt(int64(out[0]), 10)) != 16 || out[0] != 1219070632396864 {
		t.Errorf("got %v", out)
	}
	out = out[:0]
	if _, err := runProg(C{104, 1125899906842624, 99}, vm.Output(&out)); err != nil {
		t.Fatalf("%+v", err)
	}
	if len(out) != 1 || out[0] != 1125899906842624 {
		t.Errorf("got %v", out)
	}
}

var cmp8 = C{3, 21, 1008, 21, 8, 20, 1005, 20, 22, 107, 8, 21, 20, 1006, 20, 31, 1106, 0, 36, 98, 0, 0, 1002, 21, 125, 20, 4, 20, 1105, 1, 46, 104, 999, 1105, 1, 46, 1101, 1000, 1, 20, 4, 20, 1105, 1, 46, 98, 99}

func TestCompare(t *testing.T) {
	var tests = [...]struct {
		name      string
		prog      C
		input, ex vm.Cell
	}{
		{"eq8 pos", C{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, 8, 1},
		{"eq8 pos", C{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, 7, 0},
		{"lt8 pos", C{3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8}, 7, 1},
		{"lt8 pos", C{3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8}, 8, 0},
		{"eq8 imm", C{3, 3, 1108, -1, 8, 3, 4, 3, 99}, 8, 1},
		{"lt8 imm", C{3, 3, 1107, -1, 8, 3, 4, 3, 99}, 9, 0},
		{"jump pos", C{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}, 0, 0},
		{"jump pos", C{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}, 5, 1},
		{"jump imm", C{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1}, 0, 0},
		{"jump imm", C{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1}, -5, 1},
		{"cmp8", cmp8, 7, 999},
		{"cmp8", cmp8, 8, 1000},
		{"cmp8", cmp8, 9, 1001},
	}
	for _, test := range tests {
		var out vm.Buffer
		_, err := runProg(test.prog, vm.Input(vm.Values(test.input)), vm.Output(&out))
		if err != nil {
			t.Errorf("%s(%d): %+v", test.name, test.input, err)
			continue
		}
		if len(out) != 1 || out[0] != test.ex {
			t.Errorf("%s(%d): expected %d, got %v", test.name, test.input, test.ex, out)
		}
	}
}

func TestPhase(t *testing.T) {
	// phase 0 must be consumed like any other value
	prog := C{3, 9, 3, 10, 4, 9, 4, 10, 99, -1, -1}
	var out vm.Buffer
	i, err := vm.New(prog, vm.Phase(0), vm.Input(vm.Values(7)), vm.Output(&out))
	if err != nil {
		t.Fatal(err)
	}
	if !i.PhasePending() {
		t.Fatal("phase not pending")
	}
	if err = i.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
	if i.PhasePending() || !equal(C(out), C{0, 7}) {
		t.Errorf("got %v", out)
	}
}

func TestNew(t *testing.T) {
	prog := C{1, 0, 0, 0, 99}
	i1, err := vm.New(prog)
	if err != nil {
		t.Fatal(err)
	}
	i2, _ := vm.New(prog)
	if err = i1.Run(); err != nil {
		t.Fatal(err)
	}
	if prog[0] != 1 || i2.Mem[0] != 1 || i1.Mem[0] != 2 {
		t.Errorf("instances share memory: prog %v, i1 %v, i2 %v", prog, i1.Mem[:5], i2.Mem[:5])
	}
	if len(i1.Mem) != vm.DefaultMemSize {
		t.Errorf("memory size %d", len(i1.Mem))
	}

	// run on a halted instance
	n := i1.InstructionCount()
	if err = i1.Run(); err != nil || i1.InstructionCount() != n {
		t.Errorf("Run on halted instance: %v", err)
	}

	if _, err = vm.New(prog, vm.MemSize(4)); err == nil {
		t.Error("expected program too large error")
	}
	if _, err = vm.New(prog, vm.MemSize(0)); err == nil {
		t.Error("expected invalid memory size error")
	}
	i, err := vm.New(prog, vm.MemSize(5))
	if err != nil || len(i.Mem) != 5 {
		t.Errorf("MemSize(5): %v", err)
	}
}

func TestFaults(t *testing.T) {
	outErr := errors.New("sink failure")
	var tests = [...]struct {
		name  string
		prog  C
		opts  []vm.Option
		pc    int
		check func(err error) bool
	}{
		{"unknown opcode", C{1101, 1, 1, 5, 42}, nil, 4, func(err error) bool {
			e, ok := err.(*vm.UnknownOpcodeError)
			return ok && e.Word == 42 && e.PC == 4
		}},
		{"bad mode", C{301, 0, 0, 0, 99}, nil, 0, func(err error) bool {
			e, ok := err.(*vm.UnknownOpcodeError)
			return ok && e.Word == 301
		}},
		{"read fault", C{1, 100000, 0, 0, 99}, nil, 0, func(err error) bool {
			e, ok := err.(*vm.MemoryFaultError)
			return ok && e.Addr == 100000 && e.PC == 0 && e.Word == 1
		}},
		{"negative read", C{4, -1, 99}, nil, 0, func(err error) bool {
			e, ok := err.(*vm.MemoryFaultError)
			return ok && e.Addr == -1
		}},
		{"write fault", C{1101, 1, 1, 20, 99}, []vm.Option{vm.MemSize(10)}, 0, func(err error) bool {
			e, ok := err.(*vm.MemoryFaultError)
			return ok && e.Addr == 20
		}},
		{"relative fault", C{109, -10, 204, 0, 99}, nil, 2, func(err error) bool {
			e, ok := err.(*vm.MemoryFaultError)
			return ok && e.Addr == -10 && e.Word == 204
		}},
		{"jump fault", C{1105, 1, 10, 99}, []vm.Option{vm.MemSize(10)}, 0, func(err error) bool {
			e, ok := err.(*vm.MemoryFaultError)
			return ok && e.Addr == 10
		}},
		{"run off memory", C{1101, 0, 0, 3}, []vm.Option{vm.MemSize(4)}, 4, func(err error) bool {
			e, ok := err.(*vm.MemoryFaultError)
			return ok && e.Addr == 4 && e.Word == 0
		}},
		{"immediate write", C{11101, 1, 1, 0, 99}, nil, 0, func(err error) bool {
			e, ok := err.(*vm.InvalidWriteError)
			return ok && e.Word == 11101
		}},
		{"immediate input", C{103, 0, 99}, []vm.Option{vm.Input(vm.Values(1))}, 0, func(err error) bool {
			_, ok := err.(*vm.InvalidWriteError)
			return ok
		}},
		{"no input", C{3, 0, 99}, nil, 0, func(err error) bool { return err == vm.ErrNoInput }},
		{"input eof", C{3, 0, 3, 0, 99}, []vm.Option{vm.Input(vm.Values(1))}, 2, func(err error) bool { return err == io.EOF }},
		{"output error", C{104, 0, 99}, []vm.Option{vm.Output(vm.WriterFunc(func(vm.Cell) error { return outErr }))}, 0,
			func(err error) bool { return err == outErr }},
	}
	for _, test := range tests {
		i, err := runProg(test.prog, test.opts...)
		if err == nil {
			t.Errorf("%s: expected error", test.name)
			continue
		}
		if !test.check(errors.Cause(err)) {
			t.Errorf("%s: unexpected error %v", test.name, err)
			t.Log(spew.Sdump(err))
			continue
		}
		if i.PC != test.pc || i.Halted() {
			t.Errorf("%s: expected PC %d, got %d", test.name, test.pc, i.PC)
		}
	}
}

func TestRunContext(t *testing.T) {
	i, err := vm.New(C{1105, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = i.RunContext(ctx)
	if errors.Cause(err) != context.DeadlineExceeded {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if i.InstructionCount() == 0 {
		t.Error("no instruction executed")
	}
}
