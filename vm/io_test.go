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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

func TestChannel_FIFO(t *testing.T) {
	const n = 10000
	c := vm.NewChannel()
	go func() {
		for v := vm.Cell(0); v < n; v++ {
			c.Push(v)
		}
		c.Close()
	}()
	for want := vm.Cell(0); ; want++ {
		v, err := c.Pop()
		if err == vm.ErrChannelClosed {
			if want != n {
				t.Fatalf("channel closed after %d values", want)
			}
			break
		}
		if v != want {
			t.Fatalf("expected %d, got %d", want, v)
		}
	}
}

// a chain of goroutines, each forwarding values from one channel to the next.
func TestChannel_chain(t *testing.T) {
	const (
		stages = 8
		n      = 2000
	)
	chans := make([]*vm.Channel, stages+1)
	for k := range chans {
		chans[k] = vm.NewChannel()
	}
	var wg sync.WaitGroup
	for k := 0; k < stages; k++ {
		wg.Add(1)
		go func(in, out *vm.Channel) {
			defer wg.Done()
			defer out.Close()
			for {
				v, err := in.Pop()
				if err != nil {
					return
				}
				out.Push(v)
			}
		}(chans[k], chans[k+1])
	}
	for v := vm.Cell(0); v < n; v++ {
		chans[0].Push(v)
	}
	chans[0].Close()
	wg.Wait()
	last := chans[stages]
	if last.Len() != n {
		t.Fatalf("expected %d values, got %d", n, last.Len())
	}
	for want := vm.Cell(0); want < n; want++ {
		if v, _ := last.Pop(); v != want {
			t.Fatalf("expected %d, got %d", want, v)
		}
	}
}

func TestChannel_Close(t *testing.T) {
	c := vm.NewChannel(1, 2)
	done := make(chan error)
	go func() {
		var err error
		for err == nil {
			_, err = c.Pop()
		}
		done <- err
	}()
	select {
	case err := <-done:
		t.Fatalf("Pop returned early: %v", err)
	case <-time.After(20 * time.Millisecond):
	}
	c.Close()
	c.Close()
	if err := <-done; err != vm.ErrChannelClosed {
		t.Errorf("expected ErrChannelClosed, got %v", err)
	}
	c.Push(3)
	if c.Len() != 0 {
		t.Error("push after close was not discarded")
	}
}

func TestChannel_instances(t *testing.T) {
	// double each input
	double := C{3, 11, 1002, 11, 2, 11, 4, 11, 1105, 1, 0, 0}
	in, mid, out := vm.NewChannel(1, 2, 3), vm.NewChannel(), vm.NewChannel()
	edges := [][2]*vm.Channel{{in, mid}, {mid, out}}
	errs := make(chan error, len(edges))
	for _, e := range edges {
		i, err := vm.New(double, vm.Input(e[0]), vm.Output(e[1]))
		if err != nil {
			t.Fatal(err)
		}
		go func(i *vm.Instance, out *vm.Channel) {
			err := i.Run()
			out.Close()
			errs <- err
		}(i, e[1])
	}
	for _, want := range []vm.Cell{4, 8, 12} {
		if v, err := out.Pop(); v != want || err != nil {
			t.Fatalf("expected %d, got %d, %v", want, v, err)
		}
	}
	in.Close()
	for k := 0; k < 2; k++ {
		if err := <-errs; errors.Cause(err) != vm.ErrChannelClosed {
			t.Errorf("expected ErrChannelClosed, got %v", err)
		}
	}
}

func TestTextReader(t *testing.T) {
	prompts := 0
	r := vm.NewTextReader(strings.NewReader(" 1,-2\n\n 3 ,4\n5"), func() { prompts++ })
	var got C
	for {
		v, err := r.ReadCell()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v)
	}
	if !equal(got, C{1, -2, 3, 4, 5}) || prompts != 6 {
		t.Errorf("got %v with %d prompts", got, prompts)
	}

	r = vm.NewTextReader(strings.NewReader("12 abc"), nil)
	r.ReadCell()
	if _, err := r.ReadCell(); err == nil || err == io.EOF {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestTextWriter(t *testing.T) {
	var b bytes.Buffer
	w := vm.NewTextWriter(&b, "\n")
	for _, v := range []vm.Cell{0, -1, 1125899906842624} {
		if err := w.WriteCell(v); err != nil {
			t.Fatal(err)
		}
	}
	if b.String() != "0\n-1\n1125899906842624\n" {
		t.Errorf("got %q", b.String())
	}
}

func TestParse(t *testing.T) {
	prog, err := vm.ParseCells("1,9,10,3,\n2,3,11,0,99,30,40,50\n")
	if err != nil {
		t.Fatal(err)
	}
	if !equal(prog, C{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}) {
		t.Errorf("got %v", prog)
	}
	for _, in := range []string{"1,2,x", "1,,2", ",1", "1, ,2", "1,\n,2"} {
		if _, err = vm.ParseCells(in); err == nil {
			t.Errorf("%q: expected error", in)
		}
	}
	for _, in := range []string{"1 , 2,3\n", "1,2,\n", " 1\n2 3"} {
		if p, err := vm.ParseCells(in); err != nil || !equal(p, C{1, 2, 3}) {
			t.Errorf("%q: got %v, %v", in, p, err)
		}
	}

	var b bytes.Buffer
	if err = vm.Encode(&b, vm.Used(prog, 0)); err != nil {
		t.Fatal(err)
	}
	if b.String() != "1,9,10,3,2,3,11,0,99,30,40,50" {
		t.Errorf("got %q", b.String())
	}
	if s := vm.FormatCells(C{-1, 0, 7}); s != "-1,0,7" {
		t.Errorf("FormatCells returned %q", s)
	}
	if u := vm.Used(C{1, 0, 2, 0, 0}, 0); len(u) != 3 {
		t.Errorf("Used returned %v", u)
	}
	if u := vm.Used(C{1, 0, 0}, 2); len(u) != 2 {
		t.Errorf("Used returned %v", u)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "prog.txt")
	if err := os.WriteFile(name, []byte("104,1125899906842624,99\n"), 0644); err != nil {
		t.Fatal(err)
	}
	prog, err := vm.Load(name)
	if err != nil {
		t.Fatal(err)
	}
	if !equal(prog, C{104, 1125899906842624, 99}) {
		t.Errorf("got %v", prog)
	}

	empty := filepath.Join(dir, "empty.txt")
	os.WriteFile(empty, []byte("\n"), 0644)
	if _, err = vm.Load(empty); err == nil {
		t.Error("expected error loading empty program")
	}
	if _, err = vm.Load(filepath.Join(dir, "nope")); err == nil {
		t.Error("expected error loading missing file")
	}
}
